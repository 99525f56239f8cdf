// Package timeparse turns a spoken or typed time phrase into an hour:minute
// pair. The grammar is fixed: a digit pattern with an optional meridiem, or a
// spelled number from the bilingual table, adjusted by day-part keywords.
package timeparse

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"braill/internal/lang"
)

// ErrNoTime is returned when no hour can be derived from the phrase.
var ErrNoTime = errors.New("no time found in phrase")

// Clock is a wall-clock position within a day.
type Clock struct {
	Hour   int // 0..23
	Minute int // 0..59
}

// Key renders the zero-padded "HH:MM" form the reminder store keys on.
func (c Clock) Key() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Display renders the 12-hour form used in spoken confirmations.
func (c Clock) Display() string {
	h := c.Hour
	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
		if h > 12 {
			h -= 12
		}
	}
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d %s", h, c.Minute, suffix)
}

var timePattern = regexp.MustCompile(`(\d{1,4}):?(\d{2})?\s*(am|pm|a\.m\.|p\.m\.)?`)

// Parse derives a Clock from a phrase like "8:30 pm", "eight am", "800" or
// "seven in the evening".
//
// Without an explicit meridiem or a day-part keyword, hours 1 through 7 are
// assumed PM and 8 through 12 are left alone. Medication reminders cluster in
// daytime and evening hours; this is a heuristic, not a guarantee.
func Parse(text string) (Clock, error) {
	phrase := strings.ToLower(strings.TrimSpace(text))

	hour, minute, meridiem, ok := matchDigits(phrase)
	if !ok {
		hour, ok = matchSpelled(phrase)
		minute, meridiem = 0, ""
	}
	if !ok {
		return Clock{}, ErrNoTime
	}

	hour = normalize(hour, meridiem, phrase)

	if hour > 23 {
		return Clock{}, ErrNoTime
	}
	return Clock{Hour: hour, Minute: minute}, nil
}

func matchDigits(phrase string) (hour, minute int, meridiem string, ok bool) {
	m := timePattern.FindStringSubmatch(phrase)
	if m == nil || m[1] == "" {
		return 0, 0, "", false
	}

	hour, _ = strconv.Atoi(m[1])
	explicitMinute := m[2] != ""
	if explicitMinute {
		minute, _ = strconv.Atoi(m[2])
	}
	meridiem = m[3]

	// "800" or "1130" heard as a bare number: split into hour and minute.
	if !explicitMinute && hour > 12 {
		if digits := m[1]; len(digits) == 3 || len(digits) == 4 {
			hour, _ = strconv.Atoi(digits[:len(digits)-2])
			minute, _ = strconv.Atoi(digits[len(digits)-2:])
		}
	}

	// Defensive clamp, not a rejection.
	if minute > 59 {
		minute = 0
	}

	return hour, minute, meridiem, true
}

func matchSpelled(phrase string) (int, bool) {
	for _, word := range lang.NumberWordOrder {
		if strings.Contains(phrase, word) {
			return lang.NumberWords[word], true
		}
	}
	return 0, false
}

// normalize applies meridiem markers, day-part keywords and the daytime
// default, in that priority order. Hours above 12 are already unambiguous.
func normalize(hour int, meridiem, phrase string) int {
	switch {
	case strings.Contains(meridiem, "p"):
		if hour != 12 && hour <= 12 {
			hour += 12
		}
	case strings.Contains(meridiem, "a"):
		if hour == 12 {
			hour = 0
		}
	case hour <= 12:
		switch {
		case lang.ContainsAny(phrase, lang.EveningWords):
			if hour != 12 {
				hour += 12
			}
		case lang.ContainsAny(phrase, lang.MorningWords):
			if hour == 12 {
				hour = 0
			}
		default:
			if hour >= 1 && hour <= 7 {
				hour += 12
			}
		}
	}
	return hour
}
