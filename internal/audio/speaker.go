package audio

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"braill/internal/lang"
	"braill/internal/speech"
)

// Default ducking parameters. A 30% floor keeps quiet streams from being
// muted outright.
const (
	DefaultDuckFactor = 0.3
	DefaultFade       = 150 * time.Millisecond
)

// DuckingSpeaker wraps a speech.Speaker and ducks other playback for the
// duration of each spoken line. When the mixer is unreachable (no pactl, no
// PulseAudio) it logs once and degrades to plain speech.
type DuckingSpeaker struct {
	inner  speech.Speaker
	ducker *Ducker
	factor float64
	fade   time.Duration
	logger *slog.Logger

	warnOnce sync.Once
	disabled bool
}

// NewDuckingSpeaker wraps inner.
func NewDuckingSpeaker(inner speech.Speaker, ducker *Ducker, logger *slog.Logger) *DuckingSpeaker {
	if logger == nil {
		logger = slog.Default()
	}
	return &DuckingSpeaker{
		inner:  inner,
		ducker: ducker,
		factor: DefaultDuckFactor,
		fade:   DefaultFade,
		logger: logger,
	}
}

// Speak ducks, voices the line through the wrapped speaker and restores. The
// line is spoken even when ducking fails.
func (d *DuckingSpeaker) Speak(ctx context.Context, l lang.Lang, text string) error {
	if !d.disabled {
		if err := d.ducker.Duck(ctx, d.factor, d.fade); err != nil {
			d.warnOnce.Do(func() {
				d.logger.Warn("playback ducking unavailable", "err", err)
				d.disabled = true
			})
		} else {
			defer func() {
				if err := d.ducker.Restore(ctx, d.fade); err != nil {
					d.logger.Warn("restore playback volume failed", "err", err)
				}
			}()
		}
	}

	return d.inner.Speak(ctx, l, text)
}
