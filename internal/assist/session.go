package assist

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"braill/internal/contacts"
	"braill/internal/notes"
	"braill/internal/notify"
	"braill/internal/phone"
	"braill/internal/qa"
	"braill/internal/reminder"
	"braill/internal/speech"
	"braill/pkg/protocol"
)

// ErrAlreadyRunning is returned by Start while a session is active.
var ErrAlreadyRunning = errors.New("assistant already running")

// Deps bundles the collaborators a session wires into each controller run.
type Deps struct {
	Listener  speech.Listener
	Tracker   *speech.Tracker
	Reminders *reminder.Store
	Notes     *notes.Store
	Contacts  *contacts.Registry
	Phone     *phone.Client
	QA        qa.Answerer
	Chime     *notify.Chime
	Events    EventSink
	Logger    *slog.Logger

	// Refresh, when set, runs at the start of every session so collaborators
	// built from secrets (QA, Phone) can pick up keys saved through the
	// dashboard since boot.
	Refresh func(*Deps)
}

// Session manages the lifetime of assistant runs: front ends start and stop
// it at will, and each start gets a fresh controller plus a reminder
// scheduler that lives exactly as long as the run.
type Session struct {
	cfg          Config
	pollInterval time.Duration
	deps         Deps

	mu      sync.Mutex
	ctrl    *Controller
	cancel  context.CancelFunc
	running bool
}

// NewSession creates a stopped session.
func NewSession(cfg Config, pollInterval time.Duration, deps Deps) *Session {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if pollInterval <= 0 {
		pollInterval = reminder.DefaultInterval
	}
	return &Session{cfg: cfg, pollInterval: pollInterval, deps: deps}
}

// SetEvents installs the event sink. The web backend is constructed after
// the session, so the daemon wires the sink in a second step, before Start.
func (s *Session) SetEvents(events EventSink) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		s.deps.Events = events
	}
}

// Start launches the conversation loop and the reminder scheduler.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return ErrAlreadyRunning
	}

	if s.deps.Refresh != nil {
		s.deps.Refresh(&s.deps)
	}

	ctx, cancel := context.WithCancel(context.Background())
	ctrl := New(s.cfg, s.deps.Listener, s.deps.Tracker, s.deps.Reminders,
		s.deps.Notes, s.deps.Contacts, s.deps.Phone, s.deps.QA,
		s.deps.Events, s.deps.Logger)

	// The chime precedes the spoken announcement so the user knows what
	// the sound is about before the first word.
	announce := func(r reminder.Reminder) {
		s.deps.Chime.Play()
		ctrl.AnnounceReminder(r)
	}
	sched := reminder.NewScheduler(s.deps.Reminders, announce,
		s.deps.Logger, reminder.WithInterval(s.pollInterval))

	s.ctrl = ctrl
	s.cancel = cancel
	s.running = true

	go sched.Run(ctx)
	go func() {
		ctrl.Run(ctx)
		cancel()

		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	return nil
}

// Stop requests the running session to end; it is a no-op when stopped.
func (s *Session) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// Running reports whether a session is active.
func (s *Session) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// State returns the current conversation state.
func (s *Session) State() State {
	s.mu.Lock()
	ctrl, running := s.ctrl, s.running
	s.mu.Unlock()

	if !running || ctrl == nil {
		return StateIdle
	}
	return ctrl.State()
}

// RunCommand forwards an external command to the active controller.
func (s *Session) RunCommand(ctx context.Context, name protocol.CommandName, contact string) error {
	s.mu.Lock()
	ctrl, running := s.ctrl, s.running
	s.mu.Unlock()

	if !running || ctrl == nil {
		return ErrNotRunning
	}
	return ctrl.RunCommand(ctx, name, contact)
}
