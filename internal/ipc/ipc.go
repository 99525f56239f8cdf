// Package ipc exposes the daemon's control channel on a unix socket. Each
// connection carries one JSON command and one JSON reply.
package ipc

import (
	"encoding/json"
	"fmt"
	"net"
	"os"

	"braill/pkg/protocol"
)

// Handler executes one control command and produces its reply.
type Handler func(protocol.Command) protocol.Reply

// Server accepts control connections.
type Server struct {
	ln      net.Listener
	path    string
	handler Handler
}

// StartServer listens on the unix socket at path, replacing a stale socket
// file from a previous run.
func StartServer(path string, handler Handler) (*Server, error) {
	os.Remove(path)

	ln, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen: %w", err)
	}

	s := &Server{ln: ln, path: path, handler: handler}
	go s.acceptLoop()
	return s, nil
}

// Close stops accepting and removes the socket file.
func (s *Server) Close() error {
	err := s.ln.Close()
	os.Remove(s.path)
	return err
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return
		}
		go s.handleConn(conn)
	}
}

func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	var cmd protocol.Command
	if err := json.NewDecoder(conn).Decode(&cmd); err != nil {
		return
	}

	reply := s.handler(cmd)
	_ = json.NewEncoder(conn).Encode(reply)
}

// SendCommand dials the daemon socket, sends one command and returns the
// reply.
func SendCommand(path string, cmd protocol.Command) (protocol.Reply, error) {
	conn, err := net.Dial("unix", path)
	if err != nil {
		return protocol.Reply{}, err
	}
	defer conn.Close()

	if err := json.NewEncoder(conn).Encode(cmd); err != nil {
		return protocol.Reply{}, err
	}

	var reply protocol.Reply
	if err := json.NewDecoder(conn).Decode(&reply); err != nil {
		return protocol.Reply{}, err
	}
	return reply, nil
}
