// Package notes stores voice notes: append-only except for bulk clear.
package notes

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// TimestampLayout matches the display form the dashboard shows, e.g.
// "January 2, 3:04 PM".
const TimestampLayout = "January 2, 3:04 PM"

// Note is one remembered item.
type Note struct {
	Time string `json:"time"`
	Text string `json:"text"`
}

// Store owns the note collection; all access is serialized and every mutation
// persists the full collection as a snapshot.
type Store struct {
	mu    sync.Mutex
	notes []Note
	path  string
	now   func() time.Time
}

// NewStore creates a store persisted at path; empty path keeps it in memory.
func NewStore(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// Load reads the persisted notes, if any.
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
		return fmt.Errorf("read notes: %w", err)
	}
	if err := json.Unmarshal(data, &s.notes); err != nil {
		return fmt.Errorf("decode notes: %w", err)
	}
	return nil
}

// List returns the notes oldest first.
func (s *Store) List() []Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Note, len(s.notes))
	copy(out, s.notes)
	return out
}

// Add appends a note stamped with the current time.
func (s *Store) Add(text string) (Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := Note{Time: s.now().Format(TimestampLayout), Text: text}
	s.notes = append(s.notes, n)
	if err := s.persistLocked(); err != nil {
		return Note{}, err
	}
	return n, nil
}

// Clear removes every note and reports how many were removed.
func (s *Store) Clear() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.notes)
	s.notes = nil
	return n, s.persistLocked()
}

func (s *Store) persistLocked() error {
	if s.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create notes dir: %w", err)
	}
	list := s.notes
	if list == nil {
		list = []Note{}
	}
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write notes: %w", err)
	}
	return nil
}
