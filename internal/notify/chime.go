// Package notify plays the short chime that precedes a spoken reminder, so
// the user can tell an announcement is coming before the first word.
package notify

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
)

// Chime plays one sound file through the default output device. A nil *Chime
// or an empty path is silent, so callers never have to guard for it.
type Chime struct {
	path   string
	logger *slog.Logger

	initOnce sync.Once
	initErr  error
	format   beep.Format
}

// NewChime creates a chime for the mp3 file at path.
func NewChime(path string, logger *slog.Logger) *Chime {
	if logger == nil {
		logger = slog.Default()
	}
	return &Chime{path: path, logger: logger}
}

// Play voices the chime and blocks until it finishes. Failures are logged and
// swallowed; a missing sound file must never hold back the announcement.
func (c *Chime) Play() {
	if c == nil || c.path == "" {
		return
	}
	if err := c.play(); err != nil {
		c.logger.Warn("chime failed", "path", c.path, "err", err)
	}
}

func (c *Chime) play() error {
	f, err := os.Open(c.path)
	if err != nil {
		return err
	}
	defer f.Close()

	streamer, format, err := mp3.Decode(f)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	defer streamer.Close()

	// The speaker is initialized once with the first file's sample rate;
	// later files at another rate are resampled to it.
	c.initOnce.Do(func() {
		c.format = format
		c.initErr = speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10))
	})
	if c.initErr != nil {
		return fmt.Errorf("speaker init: %w", c.initErr)
	}

	var stream beep.Streamer = streamer
	if format.SampleRate != c.format.SampleRate {
		stream = beep.Resample(4, format.SampleRate, c.format.SampleRate, streamer)
	}

	done := make(chan struct{})
	speaker.Play(beep.Seq(stream, beep.Callback(func() {
		close(done)
	})))
	<-done
	return nil
}
