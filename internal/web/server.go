// Package web is the dashboard backend: REST endpoints for the persisted
// collections and a websocket carrying the live event stream plus inbound
// commands.
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"braill/internal/assist"
	"braill/internal/config"
	"braill/internal/contacts"
	"braill/internal/notes"
	"braill/internal/reminder"
	"braill/pkg/protocol"
)

// Server serves the dashboard API.
type Server struct {
	session   *assist.Session
	reminders *reminder.Store
	notes     *notes.Store
	contacts  *contacts.Registry

	envFile     string
	profilePath string

	engine     *gin.Engine
	httpServer *http.Server
	hub        *hub
	upgrader   websocket.Upgrader
	logger     *slog.Logger
}

// NewServer wires the dashboard backend. The returned server also implements
// the session's EventSink through its hub.
func NewServer(session *assist.Session, reminders *reminder.Store,
	noteStore *notes.Store, registry *contacts.Registry,
	envFile, profilePath string, logger *slog.Logger) *Server {

	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowWebSockets = true
	engine.Use(cors.New(corsCfg))

	s := &Server{
		session:     session,
		reminders:   reminders,
		notes:       noteStore,
		contacts:    registry,
		envFile:     envFile,
		profilePath: profilePath,
		engine:      engine,
		hub:         newHub(logger),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: logger,
	}
	s.routes()
	return s
}

// Events returns the sink the assistant session should publish to.
func (s *Server) Events() assist.EventSink { return s.hub }

func (s *Server) routes() {
	api := s.engine.Group("/api")
	api.GET("/status", s.handleStatus)
	api.GET("/reminders", s.handleGetReminders)
	api.POST("/reminders/delete", s.handleDeleteReminder)
	api.GET("/notes", s.handleGetNotes)
	api.GET("/contacts", s.handleGetContacts)
	api.POST("/config", s.handleSaveConfig)
	api.POST("/profile", s.handleSaveProfile)

	s.engine.GET("/ws", s.handleWS)
}

// Start serves until Shutdown.
func (s *Server) Start(addr string) error {
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops the server and drops every dashboard connection.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.closeAll()
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"running": s.session.Running(),
		"state":   s.session.State().String(),
	})
}

func (s *Server) handleGetReminders(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "reminders": s.reminders.List()})
}

type deleteReminderRequest struct {
	Time  string `json:"time" binding:"required"`
	Label string `json:"medicine" binding:"required"`
}

func (s *Server) handleDeleteReminder(c *gin.Context) {
	var req deleteReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	removed, err := s.reminders.Remove(func(r reminder.Reminder) bool {
		return r.Key() == req.Time && r.Label == req.Label
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "removed": removed})
}

func (s *Server) handleGetNotes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "notes": s.notes.List()})
}

func (s *Server) handleGetContacts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "contacts": s.contacts.List()})
}

type saveConfigRequest struct {
	AIKey    string `json:"ai_key"`
	PhoneKey string `json:"mobilerun_key"`
	DeviceID string `json:"device_id"`
}

func (s *Server) handleSaveConfig(c *gin.Context) {
	var req saveConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if err := config.SaveSecrets(s.envFile, req.AIKey, req.PhoneKey, req.DeviceID); err != nil {
		s.logger.Error("save config failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Configuration saved!"})
}

// Profile is the user profile the emergency flow reads.
type Profile struct {
	Name            string `json:"name"`
	Blood           string `json:"blood"`
	Address         string `json:"address"`
	EmergencyName   string `json:"emergency_name"`
	EmergencyNumber string `json:"emergency_number"`
}

// LoadProfile reads the persisted profile, so the emergency contact survives
// a daemon restart. A missing file returns a zero profile, as on a fresh
// install.
func LoadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Profile{}, nil
		}
		return Profile{}, fmt.Errorf("read profile: %w", err)
	}
	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("decode profile: %w", err)
	}
	return p, nil
}

func (s *Server) handleSaveProfile(c *gin.Context) {
	var p Profile
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err == nil {
		err = os.WriteFile(s.profilePath, data, 0o644)
	}
	if err != nil {
		s.logger.Error("save profile failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	s.contacts.SetEmergency(contacts.Contact{Name: p.EmergencyName, Number: p.EmergencyNumber})
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Profile saved!"})
}

// handleWS upgrades a dashboard connection: events flow out, commands flow
// in. Command outcomes come back as events, not as socket replies.
func (s *Server) handleWS(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "err", err)
		return
	}

	client := s.hub.add(conn)
	defer func() {
		s.hub.remove(client)
		conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var cmd protocol.Command
		if err := json.Unmarshal(data, &cmd); err != nil {
			s.logger.Warn("bad dashboard command", "err", err)
			continue
		}

		// Dispatch blocks until the command completes; run it off the read
		// loop so the dashboard can still send a stop meanwhile.
		go func(cmd protocol.Command) {
			reply := s.session.Dispatch(context.Background(), cmd)
			if !reply.OK {
				s.hub.Emit(protocol.Event{
					Kind:    protocol.EventCommandFailed,
					Command: string(cmd.Name),
					Contact: cmd.Contact,
					Err:     reply.Message,
					Time:    time.Now(),
				})
			}
		}(cmd)
	}
}
