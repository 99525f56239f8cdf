// Package transcript decides whether a freshly transcribed utterance is
// genuine user input or an artifact: an echo of the assistant's own speech
// bleeding back through the open microphone, or garbage from silence.
package transcript

import (
	"strings"
	"unicode"

	"braill/internal/lang"
)

// Accept reports whether text should be treated as a user command.
// lastSpoken is the most recent line the assistant itself said, lowercased.
// The rules run in order and short-circuit; a rejected utterance is simply
// dropped, never surfaced as an error.
func Accept(text, lastSpoken string) bool {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < 3 {
		return false
	}

	lower := strings.ToLower(trimmed)

	if overlapsLastSpoken(lower, lastSpoken) {
		return false
	}

	if looksLikeNoise(trimmed) {
		return false
	}

	for _, phrase := range lang.EchoPhrases {
		if strings.Contains(lower, phrase) {
			return false
		}
	}

	if echoedQuestion(lower) {
		return false
	}

	return true
}

// overlapsLastSpoken applies the word-overlap echo heuristic: if more than
// half of the distinct words the assistant just said show up in the candidate,
// the candidate is the assistant re-hearing itself.
func overlapsLastSpoken(text, lastSpoken string) bool {
	if lastSpoken == "" || len(lastSpoken) <= 5 {
		return false
	}

	spoken := wordSet(lastSpoken)
	heard := wordSet(text)

	shared := 0
	for w := range spoken {
		if heard[w] {
			shared++
		}
	}

	return float64(shared) > float64(len(spoken))*0.5
}

// looksLikeNoise catches transcriptions of silence: three or fewer distinct
// characters where at least one is punctuation or a space ("...", "! !").
func looksLikeNoise(text string) bool {
	distinct := map[rune]bool{}
	for _, r := range text {
		distinct[r] = true
	}
	if len(distinct) > 3 {
		return false
	}
	for r := range distinct {
		if r == ' ' || unicode.IsPunct(r) {
			return true
		}
	}
	return false
}

// echoedQuestion flags longer utterances packed with interrogatives; the
// assistant's prompts are questions, the user's commands rarely are.
func echoedQuestion(text string) bool {
	words := strings.Fields(text)
	if len(words) <= 4 {
		return false
	}
	count := 0
	for _, w := range words {
		for _, q := range lang.Interrogatives {
			if w == q {
				count++
				break
			}
		}
	}
	return count >= 2
}

func wordSet(s string) map[string]bool {
	set := map[string]bool{}
	for _, w := range strings.Fields(s) {
		set[w] = true
	}
	return set
}
