package timeparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSpokenPhrases(t *testing.T) {
	cases := []struct {
		phrase string
		hour   int
		minute int
	}{
		{"eight am", 8, 0},
		{"two pm", 14, 0},
		{"twelve am", 0, 0},
		{"twelve pm", 12, 0},
		{"nine", 9, 0},
		{"five", 17, 0},
		{"seven in the evening", 19, 0},
		{"seven in the morning", 7, 0},
		{"eleven at night", 23, 0},
		{"twelve at night", 12, 0},
		{"8 pm", 20, 0},
		{"8:30 pm", 20, 30},
		{"12 am", 0, 0},
		{"12 pm", 12, 0},
		{"10:15", 10, 15},
		{"3:45", 15, 45},
		{"at 6", 18, 0},
		{"9 a.m.", 9, 0},
		{"9 p.m.", 21, 0},
		{"800", 8, 0},
		{"1130", 11, 30},
		{"1130 pm", 23, 30},
		{"14:30", 14, 30},
		{"आठ बजे सुबह", 8, 0},
		{"दो बजे शाम", 14, 0},
	}

	for _, tc := range cases {
		t.Run(tc.phrase, func(t *testing.T) {
			clock, err := Parse(tc.phrase)
			require.NoError(t, err)
			assert.Equal(t, tc.hour, clock.Hour, "hour for %q", tc.phrase)
			assert.Equal(t, tc.minute, clock.Minute, "minute for %q", tc.phrase)
		})
	}
}

func TestParseFailures(t *testing.T) {
	for _, phrase := range []string{"", "whenever", "soon", "later today"} {
		_, err := Parse(phrase)
		assert.ErrorIs(t, err, ErrNoTime, "phrase %q", phrase)
	}
}

func TestParseClampsBadMinute(t *testing.T) {
	clock, err := Parse("8:75")
	require.NoError(t, err)
	assert.Equal(t, 8, clock.Hour)
	assert.Equal(t, 0, clock.Minute)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "08:05", Clock{Hour: 8, Minute: 5}.Key())
	assert.Equal(t, "23:59", Clock{Hour: 23, Minute: 59}.Key())
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "8:00 AM", Clock{Hour: 8}.Display())
	assert.Equal(t, "8:30 PM", Clock{Hour: 20, Minute: 30}.Display())
	assert.Equal(t, "12:00 PM", Clock{Hour: 12}.Display())
	assert.Equal(t, "12:00 AM", Clock{Hour: 0}.Display())
}
