// Package reminder holds the medication reminder collection and the
// background scheduler that fires due reminders.
package reminder

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// Reminder is one scheduled announcement. LastTriggered holds the "HH:MM"
// value at which it last fired, or "" if it never fired; the store tracks no
// date, so the clock moving away from and back to that minute re-arms it.
type Reminder struct {
	ID            string `json:"id"`
	Label         string `json:"medicine"`
	Hour          int    `json:"hour"`
	Minute        int    `json:"minute"`
	Time          string `json:"time"`
	LastTriggered string `json:"last_triggered"`
}

// Key is the zero-padded "HH:MM" the scheduler compares against the clock.
func (r Reminder) Key() string {
	return fmt.Sprintf("%02d:%02d", r.Hour, r.Minute)
}

// Store owns the reminder collection. Both the conversation loop and the
// scheduler read-modify-write it, so every operation runs under one mutex and
// persists the whole collection as a snapshot before returning.
type Store struct {
	mu        sync.Mutex
	reminders []Reminder
	path      string
}

// NewStore creates a store persisted at path. An empty path keeps the store
// in memory only, which the tests use.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the persisted collection, if one exists. Entries written by
// older tooling carry only the "time" field; hour and minute are rebuilt
// from it so LastTriggered bookkeeping round-trips without loss.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return nil
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read reminders: %w", err)
	}
	var list []Reminder
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("decode reminders: %w", err)
	}
	for i := range list {
		if list[i].ID == "" {
			list[i].ID = uuid.NewString()
		}
		if list[i].Time != "" {
			fmt.Sscanf(list[i].Time, "%d:%d", &list[i].Hour, &list[i].Minute)
		}
		list[i].Time = list[i].Key()
	}
	s.reminders = list
	return nil
}

// List returns a copy of the collection in insertion order.
func (s *Store) List() []Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Reminder, len(s.reminders))
	copy(out, s.reminders)
	return out
}

// Add appends a reminder that has never fired and persists the collection.
func (s *Store) Add(label string, hour, minute int) (Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := Reminder{
		ID:     uuid.NewString(),
		Label:  label,
		Hour:   hour,
		Minute: minute,
	}
	r.Time = r.Key()
	s.reminders = append(s.reminders, r)

	if err := s.persistLocked(); err != nil {
		return Reminder{}, err
	}
	return r, nil
}

// Due returns the reminders matching key that have not yet fired at key.
func (s *Store) Due(key string) []Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()

	var due []Reminder
	for _, r := range s.reminders {
		if r.Key() == key && r.LastTriggered != key {
			due = append(due, r)
		}
	}
	return due
}

// MarkTriggered records one firing batch: every listed reminder gets its
// LastTriggered set to key, then the collection is persisted once.
func (s *Store) MarkTriggered(ids []string, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	marked := map[string]bool{}
	for _, id := range ids {
		marked[id] = true
	}
	for i := range s.reminders {
		if marked[s.reminders[i].ID] {
			s.reminders[i].LastTriggered = key
		}
	}
	return s.persistLocked()
}

// Remove deletes every reminder the predicate matches and reports how many.
func (s *Store) Remove(match func(Reminder) bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.reminders[:0]
	removed := 0
	for _, r := range s.reminders {
		if match(r) {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	s.reminders = kept

	if removed == 0 {
		return 0, nil
	}
	return removed, s.persistLocked()
}

func (s *Store) persistLocked() error {
	if s.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create reminder dir: %w", err)
	}
	list := s.reminders
	if list == nil {
		list = []Reminder{}
	}
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write reminders: %w", err)
	}
	return nil
}
