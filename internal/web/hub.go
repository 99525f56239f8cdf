package web

import (
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"

	"braill/pkg/protocol"
)

// hub fans the daemon's event stream out to every connected dashboard.
type hub struct {
	mu      sync.Mutex
	clients map[*hubClient]struct{}
	logger  *slog.Logger
}

type hubClient struct {
	conn *websocket.Conn
	send chan []byte
}

func newHub(logger *slog.Logger) *hub {
	return &hub{clients: map[*hubClient]struct{}{}, logger: logger}
}

// Emit implements assist.EventSink. It never blocks: a client that cannot
// keep up has events dropped, not the daemon stalled.
func (h *hub) Emit(e protocol.Event) {
	data, err := protocol.Encode(e)
	if err != nil {
		h.logger.Error("encode event", "err", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.logger.Warn("dropping event for slow dashboard client")
		}
	}
}

func (h *hub) add(conn *websocket.Conn) *hubClient {
	c := &hubClient{conn: conn, send: make(chan []byte, 64)}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go c.writeLoop()
	return c
}

func (h *hub) remove(c *hubClient) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

func (h *hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
		c.conn.Close()
	}
}

func (c *hubClient) writeLoop() {
	for data := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
}
