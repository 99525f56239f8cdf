// Package intent maps an accepted utterance to one action. Classification is
// an ordered ladder of keyword predicates; the first rule that fires wins, so
// "emergency, call mom" is an emergency, never a call.
package intent

import (
	"braill/internal/contacts"
	"braill/internal/lang"
)

type Kind int

const (
	// None means no rule produced an action. The call/message rules return it
	// when their keyword matched but no registered contact name appeared in
	// the utterance; such utterances are swallowed silently, matching the
	// long-standing behavior front ends depend on.
	None Kind = iota
	Exit
	Emergency
	SetReminder
	SaveNote
	ReadNotes
	ClearNotes
	CallContact
	SendMessage
	PhoneTask
	AskAI
)

func (k Kind) String() string {
	switch k {
	case Exit:
		return "exit"
	case Emergency:
		return "emergency"
	case SetReminder:
		return "set_reminder"
	case SaveNote:
		return "save_note"
	case ReadNotes:
		return "read_notes"
	case ClearNotes:
		return "clear_notes"
	case CallContact:
		return "call_contact"
	case SendMessage:
		return "send_message"
	case PhoneTask:
		return "phone_task"
	case AskAI:
		return "ask_ai"
	default:
		return "none"
	}
}

// Intent is the routed action. Contact is set for CallContact/SendMessage;
// Text carries the full original utterance for PhoneTask and AskAI.
type Intent struct {
	Kind    Kind
	Contact string
	Text    string
}

// Route classifies one utterance against the keyword ladder.
func Route(text string, reg *contacts.Registry) Intent {
	switch {
	case lang.HasKeyword(text, lang.KindExit):
		return Intent{Kind: Exit}

	case lang.HasKeyword(text, lang.KindEmergency):
		return Intent{Kind: Emergency}

	case lang.HasKeyword(text, lang.KindReminder):
		return Intent{Kind: SetReminder}

	case lang.HasKeyword(text, lang.KindNoteSave) &&
		lang.HasKeyword(text, lang.KindDemonstrative):
		return Intent{Kind: SaveNote}

	case lang.HasKeyword(text, lang.KindNotesRead):
		return Intent{Kind: ReadNotes}

	case lang.HasKeyword(text, lang.KindNotesClear):
		return Intent{Kind: ClearNotes}

	case lang.HasKeyword(text, lang.KindCall):
		if name, ok := reg.Match(text); ok {
			return Intent{Kind: CallContact, Contact: name}
		}
		return Intent{Kind: None}

	case lang.HasKeyword(text, lang.KindMessage):
		if name, ok := reg.Match(text); ok {
			return Intent{Kind: SendMessage, Contact: name}
		}
		return Intent{Kind: None}

	case lang.HasKeyword(text, lang.KindPhoneTask):
		return Intent{Kind: PhoneTask, Text: text}

	default:
		return Intent{Kind: AskAI, Text: text}
	}
}
