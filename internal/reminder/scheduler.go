package reminder

import (
	"context"
	"log/slog"
	"time"
)

// DefaultInterval is the poll cadence. It must stay at or below one minute:
// the scheduler matches on "HH:MM" equality only, so a poll gap that skips
// the matching minute silently drops that day's firing.
const DefaultInterval = 30 * time.Second

// Announce speaks one due reminder. It runs on the scheduler goroutine.
type Announce func(r Reminder)

// Scheduler polls the store on a fixed interval and fires every due reminder
// exactly once per matching minute. Firing and persistence for all reminders
// due in one cycle are a single batch write.
type Scheduler struct {
	store    *Store
	announce Announce
	interval time.Duration
	now      func() time.Time
	logger   *slog.Logger
}

// Option adjusts a Scheduler.
type Option func(*Scheduler)

// WithInterval overrides the poll interval.
func WithInterval(d time.Duration) Option {
	return func(s *Scheduler) { s.interval = d }
}

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// NewScheduler creates a scheduler over store. announce must not be nil.
func NewScheduler(store *Store, announce Announce, logger *slog.Logger, opts ...Option) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Scheduler{
		store:    store,
		announce: announce,
		interval: DefaultInterval,
		now:      time.Now,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run polls until ctx is cancelled. It never returns an error to the caller;
// persistence failures are logged and the loop continues.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("reminder scheduler started", "interval", s.interval)
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("reminder scheduler stopped")
			return
		case <-ticker.C:
			s.Poll()
		}
	}
}

// Poll runs one scheduling cycle against the current clock minute.
func (s *Scheduler) Poll() {
	key := s.now().Format("15:04")

	due := s.store.Due(key)
	if len(due) == 0 {
		return
	}

	ids := make([]string, 0, len(due))
	for _, r := range due {
		s.logger.Info("reminder due", "label", r.Label, "time", key)
		s.announce(r)
		ids = append(ids, r.ID)
	}

	if err := s.store.MarkTriggered(ids, key); err != nil {
		s.logger.Error("failed to persist fired reminders", "err", err)
	}
}
