package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectSelection(t *testing.T) {
	cases := []struct {
		text string
		want Lang
		ok   bool
	}{
		{"english please", English, true},
		{"i would like hindi", Hindi, true},
		{"हिंदी", Hindi, true},
		{"इंग्लिश", English, true},
		{"french", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := DetectSelection(tc.text)
		assert.Equal(t, tc.ok, ok, "text %q", tc.text)
		assert.Equal(t, tc.want, got, "text %q", tc.text)
	}
}

func TestHasKeywordMatchesAcrossLanguages(t *testing.T) {
	assert.True(t, HasKeyword("please call mom", KindCall))
	assert.True(t, HasKeyword("मम्मी को कॉल करो", KindCall))
	assert.True(t, HasKeyword("set a reminder", KindReminder))
	assert.True(t, HasKeyword("मुझे दवा लेनी है", KindReminder))
	assert.False(t, HasKeyword("what time is it", KindExit))
}

func TestPickFollowsLanguage(t *testing.T) {
	assert.Equal(t, "Goodbye! Take care.", English.Goodbye())
	assert.Equal(t, "अलविदा! ध्यान रखिए।", Hindi.Goodbye())

	// Prompts without a translation read the same in both languages.
	assert.Equal(t, English.AskLanguage(), Hindi.AskLanguage())
}

func TestIsYes(t *testing.T) {
	assert.True(t, English.IsYes("yes please"))
	assert.True(t, Hindi.IsYes("हां"))
	assert.False(t, English.IsYes("no thanks"))
}

func TestNumberWordOrderIsLongestFirst(t *testing.T) {
	assert.Len(t, NumberWordOrder, len(NumberWords))
	for i := 1; i < len(NumberWordOrder); i++ {
		assert.GreaterOrEqual(t,
			len(NumberWordOrder[i-1]), len(NumberWordOrder[i]))
	}
}
