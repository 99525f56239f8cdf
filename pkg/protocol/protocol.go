// Package protocol defines the JSON messages exchanged with front ends: the
// event stream the daemon publishes and the commands a dashboard or the
// control CLI may send at any time.
package protocol

import (
	"encoding/json"
	"time"
)

// EventKind tags one published event.
type EventKind string

const (
	EventStarted       EventKind = "started"
	EventStopped       EventKind = "stopped"
	EventTranscript    EventKind = "transcript"
	EventSpoken        EventKind = "spoken"
	EventIntent        EventKind = "intent"
	EventCommandDone   EventKind = "command_done"
	EventCommandFailed EventKind = "command_failed"
	EventError         EventKind = "error"
)

// Event is one item of the running event stream. Text carries the transcript
// or spoken line; Command and Contact identify the external command an
// outcome event refers to.
type Event struct {
	Kind    EventKind `json:"kind"`
	Text    string    `json:"text,omitempty"`
	Command string    `json:"command,omitempty"`
	Contact string    `json:"contact,omitempty"`
	Err     string    `json:"error,omitempty"`
	Time    time.Time `json:"time"`
}

// CommandName identifies an externally triggered action.
type CommandName string

const (
	CmdStart          CommandName = "start"
	CmdStop           CommandName = "stop"
	CmdEmergency      CommandName = "emergency"
	CmdAddReminder    CommandName = "reminder"
	CmdSaveNote       CommandName = "note"
	CmdReadNotes      CommandName = "read_notes"
	CmdCall           CommandName = "call"
	CmdMessage        CommandName = "message"
	CmdUpdateContacts CommandName = "update_contacts"
	CmdStatus         CommandName = "status"
)

// Command is one inbound front-end request. Contact is the target for call
// and message; Contacts is the full replacement list for update_contacts.
type Command struct {
	Name     CommandName      `json:"command"`
	Contact  string           `json:"contact,omitempty"`
	Contacts []ContactPayload `json:"contacts,omitempty"`
}

// ContactPayload mirrors the persisted contact entry.
type ContactPayload struct {
	Name   string `json:"name"`
	Number string `json:"number"`
}

// Reply answers a command on a request/response transport (the unix socket).
// The websocket surface reports outcomes through events instead.
type Reply struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

// Encode renders any protocol message as a JSON line.
func Encode(v any) ([]byte, error) {
	return json.Marshal(v)
}
