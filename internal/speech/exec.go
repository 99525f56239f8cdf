package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"braill/internal/lang"
)

// ExecListener captures speech by shelling out to a transcriber CLI (a
// whisper.cpp style binary that records from the default microphone, runs the
// model and prints the transcript). The bound on the recording comes from the
// timeout handed to Listen.
type ExecListener struct {
	Path string
	Args []string
}

// Listen runs the transcriber and returns its output, trimmed and lowercased.
// A timeout maps to an empty transcript so the loop can re-check for stop and
// pause requests instead of hanging.
func (e *ExecListener) Listen(ctx context.Context, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, e.Path, e.Args...)
	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", nil
		}
		return "", fmt.Errorf("transcriber: %w", err)
	}

	return strings.ToLower(strings.TrimSpace(out.String())), nil
}

var espeakVoices = map[lang.Lang]string{
	lang.English: "en",
	lang.Hindi:   "hi",
}

// ExecSpeaker voices text through an espeak-ng style CLI.
type ExecSpeaker struct {
	Path string
}

// Speak synthesizes text in the language's voice and blocks until playback
// finishes, keeping the collaborator strictly single-user.
func (e *ExecSpeaker) Speak(ctx context.Context, l lang.Lang, text string) error {
	if text == "" {
		return nil
	}

	voice, ok := espeakVoices[l]
	if !ok {
		voice = "en"
	}

	cmd := exec.CommandContext(ctx, e.Path, "-v", voice, text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("speak: %w", err)
	}
	return nil
}
