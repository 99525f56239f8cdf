package assist

import "sync/atomic"

// State is the conversation lifecycle position. Stopped is terminal.
type State int32

const (
	StateIdle State = iota
	StateSelectLanguage
	StateListening
	StateCommandMode
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateSelectLanguage:
		return "select_language"
	case StateListening:
		return "listening"
	case StateCommandMode:
		return "command_mode"
	case StateStopped:
		return "stopped"
	default:
		return "idle"
	}
}

// stateVar wraps the single ConversationState instance. Transitions are
// atomic so a front end polling status never observes a torn value.
type stateVar struct {
	v atomic.Int32
}

func (s *stateVar) get() State      { return State(s.v.Load()) }
func (s *stateVar) set(state State) { s.v.Store(int32(state)) }
