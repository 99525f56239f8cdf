// Package assist runs the conversation: listen, filter, route, act. It owns
// the conversation state and the pause protocol that lets externally
// triggered commands borrow the speech and phone collaborators safely.
package assist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"braill/internal/contacts"
	"braill/internal/intent"
	"braill/internal/lang"
	"braill/internal/notes"
	"braill/internal/phone"
	"braill/internal/qa"
	"braill/internal/reminder"
	"braill/internal/speech"
	"braill/internal/transcript"
	"braill/pkg/protocol"
)

// ErrNotRunning is returned for external commands sent while the session is
// not in its listening loop.
var ErrNotRunning = errors.New("assistant not running")

// EventSink receives the daemon's event stream. Emit must not block.
type EventSink interface {
	Emit(protocol.Event)
}

type nopSink struct{}

func (nopSink) Emit(protocol.Event) {}

// Config tunes the controller.
type Config struct {
	// ListenTimeout bounds one blocking listen; it is also the worst-case
	// latency for observing a stop or pause request.
	ListenTimeout time.Duration
	// LanguageAttempts is how many selection tries precede the English
	// fallback.
	LanguageAttempts int
	// DefaultLanguage is used when selection exhausts its attempts.
	DefaultLanguage lang.Lang
}

// DefaultConfig mirrors the behavior the assistant shipped with.
func DefaultConfig() Config {
	return Config{
		ListenTimeout:    8 * time.Second,
		LanguageAttempts: 3,
		DefaultLanguage:  lang.English,
	}
}

type command struct {
	name    protocol.CommandName
	contact string
	done    chan error
}

// Controller orchestrates one assistant session.
type Controller struct {
	cfg       Config
	listener  speech.Listener
	tracker   *speech.Tracker
	reminders *reminder.Store
	notes     *notes.Store
	contacts  *contacts.Registry
	phone     *phone.Client
	qa        qa.Answerer
	events    EventSink
	logger    *slog.Logger

	state stateVar
	cmds  chan command
	// stopped closes after the loop's final command drain; RunCommand waits
	// on it so a caller can never block on a loop that will not resume.
	stopped chan struct{}

	// speakMu serializes every use of the speech output: the loop, external
	// commands (already on the loop goroutine) and reminder announcements.
	speakMu sync.Mutex

	langMu   sync.RWMutex
	language lang.Lang

	cancelMu sync.Mutex
	cancel   context.CancelFunc
}

// New wires a controller. phoneClient may be nil (phone features disabled),
// events may be nil.
func New(cfg Config, listener speech.Listener, tracker *speech.Tracker,
	reminders *reminder.Store, noteStore *notes.Store, registry *contacts.Registry,
	phoneClient *phone.Client, answerer qa.Answerer, events EventSink,
	logger *slog.Logger) *Controller {

	if events == nil {
		events = nopSink{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.ListenTimeout <= 0 {
		cfg.ListenTimeout = DefaultConfig().ListenTimeout
	}
	if cfg.LanguageAttempts <= 0 {
		cfg.LanguageAttempts = DefaultConfig().LanguageAttempts
	}
	if cfg.DefaultLanguage == "" {
		cfg.DefaultLanguage = lang.English
	}

	return &Controller{
		cfg:       cfg,
		listener:  listener,
		tracker:   tracker,
		reminders: reminders,
		notes:     noteStore,
		contacts:  registry,
		phone:     phoneClient,
		qa:        answerer,
		events:    events,
		logger:    logger,
		language:  cfg.DefaultLanguage,
		cmds:      make(chan command, 16),
		stopped:   make(chan struct{}),
	}
}

// State returns the current conversation state.
func (c *Controller) State() State { return c.state.get() }

// Language returns the language selected for this session.
func (c *Controller) Language() lang.Lang {
	c.langMu.RLock()
	defer c.langMu.RUnlock()
	return c.language
}

func (c *Controller) setLanguage(l lang.Lang) {
	c.langMu.Lock()
	c.language = l
	c.langMu.Unlock()
}

// Stop requests a prompt shutdown of the session. It is safe from any
// goroutine; the loop observes it within one listen timeout.
func (c *Controller) Stop() {
	c.cancelMu.Lock()
	cancel := c.cancel
	c.cancelMu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// RunCommand submits an external command and waits for its completion. The
// command executes on the controller goroutine between listen cycles, so it
// never races the loop for the speech or phone collaborators.
func (c *Controller) RunCommand(ctx context.Context, name protocol.CommandName, contact string) error {
	if s := c.state.get(); s == StateStopped || s == StateIdle {
		return ErrNotRunning
	}

	cmd := command{name: name, contact: contact, done: make(chan error, 1)}
	select {
	case c.cmds <- cmd:
	case <-c.stopped:
		return ErrNotRunning
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-cmd.done:
		return err
	case <-c.stopped:
		// the loop shut down while the command was queued; the final drain
		// may still have answered it
		select {
		case err := <-cmd.done:
			return err
		default:
			return ErrNotRunning
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run drives the session until ctx is cancelled or an exit intent is routed.
func (c *Controller) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	c.cancelMu.Lock()
	c.cancel = cancel
	c.cancelMu.Unlock()
	defer cancel()

	c.emit(protocol.Event{Kind: protocol.EventStarted})
	defer func() {
		c.state.set(StateStopped)
		c.drainPending()
		close(c.stopped)
		c.emit(protocol.Event{Kind: protocol.EventStopped})
	}()

	c.state.set(StateSelectLanguage)
	c.selectLanguage(ctx)
	if ctx.Err() != nil {
		return
	}

	c.say(ctx, c.Language().Welcome())

	c.state.set(StateListening)
	for {
		c.runPendingCommands(ctx)

		if ctx.Err() != nil {
			c.say(context.Background(), c.Language().Stopping())
			return
		}

		text := c.hear(ctx)

		if ctx.Err() != nil {
			c.say(context.Background(), c.Language().Stopping())
			return
		}
		c.runPendingCommands(ctx)

		if text == "" {
			continue
		}

		it := intent.Route(text, c.contacts)
		if it.Kind == intent.None {
			// call/message keyword with no known contact: swallowed.
			continue
		}
		c.emit(protocol.Event{Kind: protocol.EventIntent, Command: it.Kind.String(), Text: text})

		if it.Kind == intent.Exit {
			c.say(ctx, c.Language().Goodbye())
			return
		}
		c.act(ctx, it)
	}
}

// hear performs one filtered listen. It returns "" on timeout, silence or a
// rejected transcript; all three keep the loop spinning silently.
func (c *Controller) hear(ctx context.Context) string {
	raw, err := c.listener.Listen(ctx, c.cfg.ListenTimeout)
	if err != nil {
		c.logger.Error("listen failed", "err", err)
		return ""
	}
	if raw == "" {
		return ""
	}

	if !transcript.Accept(raw, c.tracker.LastSpoken()) {
		c.logger.Debug("transcript rejected", "text", raw)
		return ""
	}

	c.logger.Info("heard", "text", raw)
	c.emit(protocol.Event{Kind: protocol.EventTranscript, Text: raw})
	return raw
}

// hearRaw listens without the echo filter, for language selection.
func (c *Controller) hearRaw(ctx context.Context) string {
	raw, err := c.listener.Listen(ctx, c.cfg.ListenTimeout)
	if err != nil {
		c.logger.Error("listen failed", "err", err)
		return ""
	}
	return raw
}

// say voices one line under the speak lock and records it for the echo
// filter. Speech failures are logged, never propagated.
func (c *Controller) say(ctx context.Context, text string) {
	c.speakMu.Lock()
	defer c.speakMu.Unlock()

	c.logger.Info("speaking", "text", text)
	if err := c.tracker.Speak(ctx, c.Language(), text); err != nil {
		c.logger.Error("speech output failed", "err", err)
	}
	c.emit(protocol.Event{Kind: protocol.EventSpoken, Text: text})
}

// AnnounceReminder speaks a due reminder. Called from the scheduler
// goroutine; the speak lock keeps it from talking over the loop.
func (c *Controller) AnnounceReminder(r reminder.Reminder) {
	c.say(context.Background(), c.Language().ReminderDue(r.Label))
}

func (c *Controller) selectLanguage(ctx context.Context) {
	c.say(ctx, lang.English.AskLanguage())

	for attempt := 0; attempt < c.cfg.LanguageAttempts; attempt++ {
		if ctx.Err() != nil {
			return
		}

		text := c.hearRaw(ctx)
		if text == "" {
			c.say(ctx, lang.English.TryAgain())
			continue
		}

		if l, ok := lang.DetectSelection(text); ok {
			c.setLanguage(l)
			c.say(ctx, l.SelectedLanguage())
			return
		}

		c.say(ctx, lang.English.AskLanguage())
	}

	c.setLanguage(c.cfg.DefaultLanguage)
	c.say(ctx, lang.English.DefaultingToEnglish())
}

// runPendingCommands is the suspension point of the pause protocol: every
// queued external command executes here, in order, while the loop is parked
// in command mode.
func (c *Controller) runPendingCommands(ctx context.Context) {
	for {
		select {
		case cmd := <-c.cmds:
			c.state.set(StateCommandMode)
			err := c.executeCommand(ctx, cmd)
			cmd.done <- err
			if err != nil {
				c.emit(protocol.Event{
					Kind:    protocol.EventCommandFailed,
					Command: string(cmd.name),
					Contact: cmd.contact,
					Err:     err.Error(),
				})
			} else {
				c.emit(protocol.Event{
					Kind:    protocol.EventCommandDone,
					Command: string(cmd.name),
					Contact: cmd.contact,
				})
			}
		default:
			if c.state.get() == StateCommandMode {
				c.state.set(StateListening)
			}
			return
		}
	}
}

func (c *Controller) executeCommand(ctx context.Context, cmd command) error {
	c.logger.Info("executing external command", "command", cmd.name, "contact", cmd.contact)

	switch cmd.name {
	case protocol.CmdStop:
		c.Stop()
		return nil
	case protocol.CmdEmergency:
		return c.emergency(ctx)
	case protocol.CmdAddReminder:
		return c.addReminder(ctx)
	case protocol.CmdSaveNote:
		return c.saveNote(ctx)
	case protocol.CmdReadNotes:
		return c.readNotes(ctx)
	case protocol.CmdCall:
		return c.callContact(ctx, cmd.contact)
	case protocol.CmdMessage:
		return c.sendMessage(ctx, cmd.contact)
	default:
		return fmt.Errorf("unknown command %q", cmd.name)
	}
}

// drainPending fails queued commands once the session is over, so no caller
// blocks on a loop that will never resume.
func (c *Controller) drainPending() {
	for {
		select {
		case cmd := <-c.cmds:
			cmd.done <- ErrNotRunning
		default:
			return
		}
	}
}

func (c *Controller) act(ctx context.Context, it intent.Intent) {
	var err error
	switch it.Kind {
	case intent.Emergency:
		err = c.emergency(ctx)
	case intent.SetReminder:
		err = c.addReminder(ctx)
	case intent.SaveNote:
		err = c.saveNote(ctx)
	case intent.ReadNotes:
		err = c.readNotes(ctx)
	case intent.ClearNotes:
		err = c.clearNotes(ctx)
	case intent.CallContact:
		err = c.callContact(ctx, it.Contact)
	case intent.SendMessage:
		err = c.sendMessage(ctx, it.Contact)
	case intent.PhoneTask:
		err = c.controlPhone(ctx, it.Text)
	case intent.AskAI:
		c.say(ctx, c.qa.Ask(ctx, it.Text, c.Language()))
	}
	if err != nil {
		c.logger.Error("action failed", "intent", it.Kind.String(), "err", err)
	}
}

func (c *Controller) emit(e protocol.Event) {
	e.Time = time.Now()
	c.events.Emit(e)
}
