// Package contacts keeps the quick-dial registry and the emergency contact.
// The registry preserves insertion order because intent routing scans names as
// substrings and the first registered match wins.
package contacts

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
)

// ErrUnknown is returned when a name is not in the registry.
var ErrUnknown = errors.New("contact not found")

// Contact is one quick-dial entry. Names are matched as raw substrings of
// utterances, so short names ("al") will false-positive inside other words.
type Contact struct {
	Name   string `json:"name"`
	Number string `json:"number"`
}

// Registry is the single owner of contact state; it is only mutated through
// Replace and SetEmergency, never from multiple places directly.
type Registry struct {
	mu        sync.RWMutex
	order     []string
	byName    map[string]string
	emergency Contact
	path      string
}

// NewRegistry creates a registry persisted at path. An empty path keeps the
// registry in memory only.
func NewRegistry(path string) *Registry {
	return &Registry{byName: map[string]string{}, path: path}
}

// Load reads the persisted contact list, if one exists.
func (r *Registry) Load() error {
	if r.path == "" {
		return nil
	}
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read contacts: %w", err)
	}
	var list []Contact
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("decode contacts: %w", err)
	}
	return r.Replace(list)
}

// Replace swaps the whole contact list and persists it.
func (r *Registry) Replace(list []Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.order = r.order[:0]
	r.byName = make(map[string]string, len(list))
	for _, c := range list {
		if c.Name == "" {
			continue
		}
		if _, dup := r.byName[c.Name]; !dup {
			r.order = append(r.order, c.Name)
		}
		r.byName[c.Name] = c.Number
	}

	return r.persistLocked()
}

// List returns the contacts in registration order.
func (r *Registry) List() []Contact {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Contact, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, Contact{Name: name, Number: r.byName[name]})
	}
	return out
}

// Lookup returns the number stored for name.
func (r *Registry) Lookup(name string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	number, ok := r.byName[name]
	if !ok {
		return "", ErrUnknown
	}
	return number, nil
}

// Match scans the utterance for a registered name, first registered wins.
// Matching is case-sensitive substring, as the transcripts arrive lowercased.
func (r *Registry) Match(text string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, name := range r.order {
		if strings.Contains(text, name) {
			return name, true
		}
	}
	return "", false
}

// SetEmergency sets the emergency contact.
func (r *Registry) SetEmergency(c Contact) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.emergency = c
}

// Emergency returns the emergency contact.
func (r *Registry) Emergency() Contact {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.emergency
}

func (r *Registry) persistLocked() error {
	if r.path == "" {
		return nil
	}
	list := make([]Contact, 0, len(r.order))
	for _, name := range r.order {
		list = append(list, Contact{Name: name, Number: r.byName[name]})
	}
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("write contacts: %w", err)
	}
	return nil
}
