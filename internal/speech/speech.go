// Package speech defines the contracts for the external speech engines and
// the last-spoken bookkeeping the echo filter needs. The engines themselves
// are opaque collaborators; this package only adapts them.
package speech

import (
	"context"
	"strings"
	"sync"
	"time"

	"braill/internal/lang"
)

// Listener captures one utterance. It returns "" when nothing intelligible
// was heard before the timeout; that is a normal outcome, not an error.
type Listener interface {
	Listen(ctx context.Context, timeout time.Duration) (string, error)
}

// Speaker voices one line in the given language.
type Speaker interface {
	Speak(ctx context.Context, l lang.Lang, text string) error
}

// Tracker wraps a Speaker and remembers the last spoken line, lowercased, so
// the transcript filter can recognize the assistant re-hearing itself.
type Tracker struct {
	mu      sync.RWMutex
	last    string
	speaker Speaker
}

// NewTracker wraps speaker.
func NewTracker(speaker Speaker) *Tracker {
	return &Tracker{speaker: speaker}
}

// Speak records text as last spoken before voicing it, so an echo arriving
// mid-playback is already filterable.
func (t *Tracker) Speak(ctx context.Context, l lang.Lang, text string) error {
	t.mu.Lock()
	t.last = strings.ToLower(text)
	t.mu.Unlock()

	return t.speaker.Speak(ctx, l, text)
}

// LastSpoken returns the most recent line, lowercased.
func (t *Tracker) LastSpoken() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.last
}
