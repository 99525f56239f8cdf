// Package audio lowers other playback streams while the assistant speaks.
// Quieting music or a running TV both keeps the prompt audible and keeps the
// microphone from transcribing the playback as user speech.
package audio

import (
	"context"
	"fmt"
	"math"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
)

var percentRe = regexp.MustCompile(`(\d+)\s*%`)

// maxVolume guards against writing an amplified volume back to a stream.
const maxVolume = 150

type streamInfo struct {
	ID      int
	Volume  int
	AppName string
}

type fadeTarget struct {
	id       int
	from, to int
}

// Ducker fades down every playback stream except the assistant's own, then
// restores each stream to the volume it had before the duck.
type Ducker struct {
	mu          sync.Mutex
	active      bool
	selfNames   []string
	originalVol map[int]int
	minVolume   int
}

// NewDucker creates a ducker. selfNames are application.name values that are
// never touched, so the assistant does not duck its own speech output.
func NewDucker(selfNames []string, minVolume int) *Ducker {
	if minVolume < 0 {
		minVolume = 0
	}
	if minVolume > maxVolume {
		minVolume = maxVolume
	}
	return &Ducker{
		selfNames:   append([]string(nil), selfNames...),
		originalVol: make(map[int]int),
		minVolume:   minVolume,
	}
}

// Duck fades the other streams to factor times their current volume, bounded
// below by the configured minimum. Ducking while already active is a no-op,
// so overlapping announcements do not compound.
func (d *Ducker) Duck(ctx context.Context, factor float64, fade time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.active {
		return nil
	}

	streams, err := listStreams(ctx)
	if err != nil {
		return err
	}

	d.originalVol = make(map[int]int)
	var targets []fadeTarget
	for _, s := range streams {
		if d.isSelf(s) {
			continue
		}
		d.originalVol[s.ID] = s.Volume
		targets = append(targets, fadeTarget{
			id:   s.ID,
			from: s.Volume,
			to:   duckedVolume(s.Volume, factor, d.minVolume),
		})
	}

	if len(targets) > 0 {
		if err := fadeStreams(ctx, targets, fade); err != nil {
			return err
		}
	}
	d.active = true
	return nil
}

// Restore fades the ducked streams back to their pre-duck volumes. Streams
// that appeared during the duck keep whatever volume they chose.
func (d *Ducker) Restore(ctx context.Context, fade time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.active {
		return nil
	}

	streams, err := listStreams(ctx)
	if err != nil {
		return err
	}

	var targets []fadeTarget
	for _, s := range streams {
		if d.isSelf(s) {
			continue
		}
		orig, ok := d.originalVol[s.ID]
		if !ok {
			continue
		}
		targets = append(targets, fadeTarget{id: s.ID, from: s.Volume, to: orig})
	}

	if len(targets) > 0 {
		if err := fadeStreams(ctx, targets, fade); err != nil {
			return err
		}
	}
	d.originalVol = make(map[int]int)
	d.active = false
	return nil
}

func (d *Ducker) isSelf(s streamInfo) bool {
	for _, name := range d.selfNames {
		if s.AppName == name {
			return true
		}
	}
	return false
}

func duckedVolume(current int, factor float64, minVolume int) int {
	target := float64(current) * factor
	if target < float64(minVolume) {
		target = float64(minVolume)
	}
	if target > maxVolume {
		target = maxVolume
	}
	return int(math.Round(target))
}

// fadeStreams steps every target from its current volume to the goal over the
// fade duration. A zero duration jumps straight to the goal.
func fadeStreams(ctx context.Context, targets []fadeTarget, fade time.Duration) error {
	const minStep = 10 * time.Millisecond

	steps := int(fade / minStep)
	if steps < 1 {
		steps = 1
	}
	stepDuration := fade / time.Duration(steps)

	for i := 0; i <= steps; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		frac := float64(i) / float64(steps)
		for _, t := range targets {
			v := int(math.Round(float64(t.from) + float64(t.to-t.from)*frac))
			if err := setStreamVolume(ctx, t.id, v); err != nil {
				return fmt.Errorf("set volume id=%d: %w", t.id, err)
			}
		}
		if i < steps {
			time.Sleep(stepDuration)
		}
	}
	return nil
}

func listStreams(ctx context.Context) ([]streamInfo, error) {
	out, err := exec.CommandContext(ctx, "pactl", "list", "sink-inputs").Output()
	if err != nil {
		return nil, fmt.Errorf("pactl list sink-inputs: %w", err)
	}
	return parseSinkInputs(string(out)), nil
}

// parseSinkInputs pulls the id, first volume percentage and application name
// out of the pactl listing. Blocks missing both volume and name are skipped.
func parseSinkInputs(text string) []streamInfo {
	parts := strings.Split(text, "Sink Input #")
	if len(parts) <= 1 {
		return nil
	}

	var res []streamInfo
	for _, block := range parts[1:] {
		newline := strings.IndexByte(block, '\n')
		if newline <= 0 {
			continue
		}
		id, err := strconv.Atoi(strings.TrimSpace(block[:newline]))
		if err != nil {
			continue
		}

		s := streamInfo{ID: id}
		for _, line := range strings.Split(block[newline+1:], "\n") {
			line = strings.TrimSpace(line)

			if strings.HasPrefix(line, "Volume:") && s.Volume == 0 {
				if m := percentRe.FindStringSubmatch(line); len(m) >= 2 {
					if v, err := strconv.Atoi(m[1]); err == nil {
						s.Volume = v
					}
				}
			}
			if strings.HasPrefix(line, "application.name =") && s.AppName == "" {
				if idx := strings.Index(line, `"`); idx >= 0 {
					rest := line[idx+1:]
					if idx2 := strings.Index(rest, `"`); idx2 >= 0 {
						s.AppName = rest[:idx2]
					}
				}
			}
		}

		if s.Volume == 0 && s.AppName == "" {
			continue
		}
		res = append(res, s)
	}
	return res
}

func setStreamVolume(ctx context.Context, id, percent int) error {
	if percent < 0 {
		percent = 0
	}
	if percent > maxVolume {
		percent = maxVolume
	}
	return exec.CommandContext(ctx, "pactl",
		"set-sink-input-volume", strconv.Itoa(id), fmt.Sprintf("%d%%", percent)).Run()
}
