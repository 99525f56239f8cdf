package assist

import (
	"context"
	"fmt"

	"braill/internal/contacts"
	"braill/pkg/protocol"
)

// Dispatch executes one front-end command against the session and renders
// the reply. Both control surfaces (unix socket and dashboard websocket) go
// through here so their behavior cannot drift apart.
func (s *Session) Dispatch(ctx context.Context, cmd protocol.Command) protocol.Reply {
	switch cmd.Name {
	case protocol.CmdStart:
		if err := s.Start(); err != nil {
			return protocol.Reply{Message: err.Error()}
		}
		return protocol.Reply{OK: true, Message: "assistant started"}

	case protocol.CmdStop:
		s.Stop()
		return protocol.Reply{OK: true, Message: "stop requested"}

	case protocol.CmdStatus:
		return protocol.Reply{OK: true, Message: s.State().String()}

	case protocol.CmdUpdateContacts:
		list := make([]contacts.Contact, 0, len(cmd.Contacts))
		for _, c := range cmd.Contacts {
			list = append(list, contacts.Contact{Name: c.Name, Number: c.Number})
		}
		if err := s.deps.Contacts.Replace(list); err != nil {
			return protocol.Reply{Message: err.Error()}
		}
		return protocol.Reply{OK: true, Message: fmt.Sprintf("%d contacts saved", len(list))}

	case protocol.CmdEmergency, protocol.CmdAddReminder, protocol.CmdSaveNote,
		protocol.CmdReadNotes, protocol.CmdCall, protocol.CmdMessage:
		if err := s.RunCommand(ctx, cmd.Name, cmd.Contact); err != nil {
			return protocol.Reply{Message: err.Error()}
		}
		return protocol.Reply{OK: true, Message: string(cmd.Name) + " completed"}

	default:
		return protocol.Reply{Message: fmt.Sprintf("unknown command %q", cmd.Name)}
	}
}
