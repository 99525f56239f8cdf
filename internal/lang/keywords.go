package lang

import "strings"

// KeywordKind names one routing vocabulary. Each language carries its own set
// for every kind; routing matches against the union so a user may mix
// languages mid-utterance, which the transcription engines produce routinely.
type KeywordKind int

const (
	KindExit KeywordKind = iota
	KindEmergency
	KindReminder
	KindNoteSave
	KindDemonstrative
	KindNotesRead
	KindNotesClear
	KindCall
	KindMessage
	KindPhoneTask
)

var keywords = map[Lang]map[KeywordKind][]string{
	English: {
		KindExit:          {"bye", "goodbye", "exit", "quit", "stop"},
		KindEmergency:     {"emergency", "help", "sos", "bachao"},
		KindReminder:      {"remind", "reminder", "medicine"},
		KindNoteSave:      {"remember", "note", "save"},
		KindDemonstrative: {"this", "that"},
		KindNotesRead:     {"read notes", "my notes"},
		KindNotesClear:    {"delete notes", "clear notes"},
		KindCall:          {"call"},
		KindMessage:       {"message", "text", "send"},
		KindPhoneTask: {
			"open", "search", "find", "navigate", "map", "whatsapp",
			"photo", "launch", "take me", "nearest", "hospital",
			"restaurant", "directions", "route", "location", "weather",
			"play", "video", "music", "book", "order",
		},
	},
	Hindi: {
		KindExit:          {"बाय", "अलविदा"},
		KindEmergency:     {"बचाओ", "मदद"},
		KindReminder:      {"दवा", "रिमाइंडर"},
		KindNoteSave:      {"याद", "नोट"},
		KindDemonstrative: {"यह", "वह"},
		KindNotesRead:     {"नोट्स", "यादें"},
		KindNotesClear:    {"नोट्स डिलीट"},
		KindCall:          {"कॉल"},
		KindMessage:       {"मैसेज", "भेजो"},
		KindPhoneTask: {
			"खोलो", "ढूंढो", "मुझे ले जाओ", "सबसे नज़दीक", "अस्पताल", "दिशा",
		},
	},
}

// Keywords returns the vocabulary for one kind across all languages.
func Keywords(kind KeywordKind) []string {
	var out []string
	for _, l := range All {
		out = append(out, keywords[l][kind]...)
	}
	return out
}

// HasKeyword reports whether text contains any keyword of the kind, in any
// language. Matching is plain substring, as the transcripts arrive lowercased.
func HasKeyword(text string, kind KeywordKind) bool {
	return containsAny(text, Keywords(kind))
}

// Interrogatives are the question words the echo filter counts.
var Interrogatives = []string{
	"what", "which", "when", "where", "how", "should", "would", "could",
}

// EchoPhrases are fragments of the assistant's own prompts. A transcript
// containing one of them is the assistant hearing itself.
var EchoPhrases = []string{
	"what would you like",
	"what medicine should",
	"emergency detected",
	"calling for help",
	"what time",
	"say the hour",
	"i didn't hear",
	"having trouble",
	"got it i'll remember",
	"remind you about",
	"beeping",
	"that's beeping",
}

// Day-part vocabularies for the time parser. The bare am/pm tokens stay in the
// lists even though the digit pattern usually consumes them first.
var (
	EveningWords = []string{"evening", "night", "pm", "शाम", "रात"}
	MorningWords = []string{"morning", "am", "सुबह"}
)

// NumberWords maps spelled hours to 1..12 across languages.
var NumberWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12,
	"एक": 1, "दो": 2, "तीन": 3, "चार": 4, "पांच": 5,
	"छह": 6, "सात": 7, "आठ": 8, "नौ": 9, "दस": 10,
}

// NumberWordOrder fixes the lookup order so longer words win over their
// substrings ("seven" before "even" is not a risk, but "ten" hides inside
// "often"; scanning longest-first keeps the match on the intended word).
var NumberWordOrder = func() []string {
	words := make([]string, 0, len(NumberWords))
	for w := range NumberWords {
		words = append(words, w)
	}
	// insertion sort by descending length, stable enough for a fixed table
	for i := 1; i < len(words); i++ {
		for j := i; j > 0 && len(words[j]) > len(words[j-1]); j-- {
			words[j], words[j-1] = words[j-1], words[j]
		}
	}
	return words
}()

func containsAny(text string, set []string) bool {
	for _, s := range set {
		if strings.Contains(text, s) {
			return true
		}
	}
	return false
}

// ContainsAny is the exported form used by the parser and router.
func ContainsAny(text string, set []string) bool { return containsAny(text, set) }
