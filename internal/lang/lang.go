// Package lang is the single interpretation-language resource: every keyword
// table, spoken phrase and spelled-number lookup for the supported languages
// lives here, so English and Hindi behavior stays symmetric by construction.
package lang

import "fmt"

type Lang string

const (
	English Lang = "en"
	Hindi   Lang = "hi"
)

// All lists the supported languages in selection order.
var All = []Lang{English, Hindi}

// DetectSelection classifies a language-selection utterance.
func DetectSelection(text string) (Lang, bool) {
	if containsAny(text, []string{"hindi", "हिंदी", "हिन्दी"}) {
		return Hindi, true
	}
	if containsAny(text, []string{"english", "इंग्लिश"}) {
		return English, true
	}
	return "", false
}

func (l Lang) pick(hi, en string) string {
	if l == Hindi {
		return hi
	}
	return en
}

// Prompts and confirmations spoken by the assistant. The English texts double
// as the echo-phrase source for the transcript filter, so changes here must be
// mirrored in EchoPhrases.

func (l Lang) AskLanguage() string {
	return "Please say Hindi or English."
}

func (l Lang) SelectedLanguage() string {
	return l.pick(
		"आपने हिंदी चुनी है। अब आप मुझसे हिंदी में बात कर सकते हैं।",
		"You have selected English. You can now speak to me in English.")
}

func (l Lang) DefaultingToEnglish() string { return "Defaulting to English." }

func (l Lang) Welcome() string {
	return l.pick(
		"नमस्ते। मैं Braill हूँ। मैं आपकी मदद के लिए हूं।",
		"Hello. I am Braill, your personal assistant. I'm here to help you, just tell me what you need me to do.")
}

func (l Lang) Goodbye() string {
	return l.pick("अलविदा! ध्यान रखिए।", "Goodbye! Take care.")
}

func (l Lang) Stopping() string {
	return l.pick("रुक रहा हूँ।", "Stopping now.")
}

func (l Lang) DidntHear() string {
	return l.pick("मुझे सुनाई नहीं दिया।", "I didn't hear that.")
}

func (l Lang) DidntHearAnything() string {
	return l.pick("कुछ सुनाई नहीं दिया।", "I didn't hear anything.")
}

func (l Lang) TryAgain() string {
	return "I didn't hear anything. Please try again."
}

func (l Lang) EmergencyDetected() string {
	return l.pick(
		"आपातकाल! सहायता के लिए कॉल किया जा रहा है।",
		"Emergency detected. Calling for help.")
}

func (l Lang) PhoneNotConnected() string {
	return l.pick("फोन कनेक्ट नहीं है।", "Phone not connected.")
}

func (l Lang) CallManually() string {
	return l.pick(
		"फोन कनेक्ट नहीं है। कृपया मैन्युअल रूप से कॉल करें।",
		"Phone not connected. Please call manually.")
}

func (l Lang) CallingNow() string {
	return l.pick("कॉल की जा रही है।", "Calling now.")
}

func (l Lang) TroubleCalling() string {
	return l.pick("कॉल करने में समस्या है।", "Having trouble calling.")
}

func (l Lang) AskMedicine() string {
	return l.pick(
		"कौन सी दवा के लिए रिमाइंडर सेट करना है?",
		"What medicine should I remind you about?")
}

func (l Lang) AskTime() string {
	return l.pick(
		"कितने बजे? जैसे आठ बजे सुबह या दो बजे शाम।",
		"What time? Say the hour like eight AM or two PM.")
}

func (l Lang) DidntHearTime() string {
	return l.pick("समय सुनाई नहीं दिया।", "I didn't hear the time.")
}

func (l Lang) TimeNotUnderstood() string {
	return l.pick(
		"समय समझ नहीं आया। कृपया फिर से कोशिश करें।",
		"Couldn't understand the time. Please try again.")
}

func (l Lang) ReminderSaveFailed() string {
	return l.pick(
		"मैं रिमाइंडर सेव नहीं कर पाया। कृपया बाद में फिर कोशिश कीजिए।",
		"I couldn't save that reminder. Please try again later.")
}

func (l Lang) ReminderSet(medicine, displayTime string) string {
	return l.pick(
		fmt.Sprintf("%s के लिए %s बजे रिमाइंडर सेट हो गया।", medicine, displayTime),
		fmt.Sprintf("Reminder set for %s at %s.", medicine, displayTime))
}

func (l Lang) ReminderDue(medicine string) string {
	return l.pick(
		fmt.Sprintf("%s लेने का समय हो गया है।", medicine),
		fmt.Sprintf("Time to take your %s.", medicine))
}

func (l Lang) AskNote() string {
	return l.pick("क्या याद रखना है?", "What would you like me to remember?")
}

func (l Lang) NoteSaved() string {
	return l.pick("याद रख लिया।", "Got it! I'll remember that.")
}

func (l Lang) NoNotes() string {
	return l.pick("कोई नोट नहीं है।", "No notes found.")
}

func (l Lang) OneNote(text string) string {
	return l.pick(
		fmt.Sprintf("एक नोट है: %s", text),
		fmt.Sprintf("You have one note: %s", text))
}

func (l Lang) NoteCount(n int) string {
	return l.pick(
		fmt.Sprintf("%d नोट्स हैं।", n),
		fmt.Sprintf("You have %d notes.", n))
}

func (l Lang) NoteItem(i int, text string) string {
	return l.pick(
		fmt.Sprintf("नोट %d: %s", i, text),
		fmt.Sprintf("Note %d: %s", i, text))
}

func (l Lang) NoNotesToClear() string {
	return l.pick("कोई नोट नहीं है।", "No notes to clear.")
}

func (l Lang) ConfirmClearNotes(n int) string {
	return l.pick(
		fmt.Sprintf("क्या आप %d नोट्स डिलीट करना चाहते हैं? हां या ना कहें।", n),
		fmt.Sprintf("Delete all %d notes? Say yes or no.", n))
}

func (l Lang) NotesCleared() string {
	return l.pick("सभी नोट्स डिलीट हो गए।", "All notes deleted.")
}

func (l Lang) KeepingNotes() string {
	return l.pick("ठीक है, नोट्स रखे जा रहे हैं।", "Okay, keeping your notes.")
}

func (l Lang) NoSuchContact(name string) string {
	return l.pick(
		fmt.Sprintf("मेरे पास %s का नंबर नहीं है।", name),
		fmt.Sprintf("I don't have %s in contacts.", name))
}

func (l Lang) NumberNotSet(name string) string {
	return l.pick(
		fmt.Sprintf("%s का नंबर सेट नहीं है।", name),
		fmt.Sprintf("%s's number is not set.", name))
}

func (l Lang) Calling(name string) string {
	return l.pick(
		fmt.Sprintf("%s को कॉल किया जा रहा है।", name),
		fmt.Sprintf("Calling %s.", name))
}

func (l Lang) CallFailed() string {
	return l.pick("कॉल नहीं हो पाई।", "Couldn't make the call.")
}

func (l Lang) AskMessage(name string) string {
	return l.pick(
		fmt.Sprintf("%s को क्या मैसेज भेजना है?", name),
		fmt.Sprintf("What message should I send to %s?", name))
}

func (l Lang) DidntHearMessage() string {
	return l.pick("मैसेज सुनाई नहीं दिया।", "I didn't hear the message.")
}

func (l Lang) MessageSent() string {
	return l.pick("मैसेज भेज दिया गया।", "Message sent.")
}

func (l Lang) MessageFailed() string {
	return l.pick("मैसेज नहीं भेजा जा सका।", "Couldn't send message.")
}

func (l Lang) DoingOnPhone() string {
	return l.pick("फोन पर कर रहा हूं।", "Doing that on your phone.")
}

func (l Lang) PhoneDone() string {
	return l.pick("हो गया।", "Done!")
}

func (l Lang) PhoneTrouble() string {
	return l.pick("समस्या आई।", "Had trouble doing that.")
}

func (l Lang) AnswerUnavailable() string {
	return l.pick(
		"मुझे समझ नहीं आया। कुछ और पूछिए।",
		"I'm not sure about that. Try asking something else.")
}

// IsYes reports whether an utterance is an affirmative reply.
func (l Lang) IsYes(text string) bool {
	return containsAny(text, []string{"yes", "हां", "हाँ"})
}
