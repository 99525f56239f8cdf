package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"braill/internal/contacts"
)

func registry(t *testing.T) *contacts.Registry {
	t.Helper()
	reg := contacts.NewRegistry("")
	err := reg.Replace([]contacts.Contact{
		{Name: "mom", Number: "+15551230001"},
		{Name: "doctor", Number: "+15551230002"},
		{Name: "dad", Number: ""},
	})
	assert.NoError(t, err)
	return reg
}

func TestRoutePriorityOrder(t *testing.T) {
	reg := registry(t)

	cases := []struct {
		text string
		kind Kind
	}{
		{"goodbye now", Exit},
		{"emergency, call mom", Emergency}, // emergency outranks the call rule
		{"remind me about my medicine", SetReminder},
		{"remember this for me", SaveNote},
		{"read my notes please", ReadNotes},
		{"clear notes", ClearNotes},
		{"call mom", CallContact},
		{"send a message to doctor", SendMessage},
		{"open the weather app", PhoneTask},
		{"who was the first person on the moon", AskAI},
	}

	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			assert.Equal(t, tc.kind, Route(tc.text, reg).Kind)
		})
	}
}

func TestRouteSaveNoteNeedsDemonstrative(t *testing.T) {
	reg := registry(t)

	// "remember" alone is not a note request; it falls through the ladder
	it := Route("remember to water the plants", reg)
	assert.NotEqual(t, SaveNote, it.Kind)
}

func TestRouteExtractsContact(t *testing.T) {
	reg := registry(t)

	it := Route("please call mom right now", reg)
	assert.Equal(t, CallContact, it.Kind)
	assert.Equal(t, "mom", it.Contact)

	it = Route("text doctor i am running late", reg)
	assert.Equal(t, SendMessage, it.Kind)
	assert.Equal(t, "doctor", it.Contact)
}

func TestRouteContactInsertionOrderWins(t *testing.T) {
	reg := registry(t)

	it := Route("call mom and dad", reg)
	assert.Equal(t, "mom", it.Contact)
}

func TestRouteSilentSwallowWithoutContact(t *testing.T) {
	reg := registry(t)

	// "call" with no recognized name produces no action at all
	assert.Equal(t, None, Route("call the pharmacy", reg).Kind)
	assert.Equal(t, None, Route("send a message to uncle joe", reg).Kind)
}

func TestRouteCarriesFullUtterance(t *testing.T) {
	reg := registry(t)

	it := Route("navigate to the nearest hospital", reg)
	assert.Equal(t, PhoneTask, it.Kind)
	assert.Equal(t, "navigate to the nearest hospital", it.Text)

	it = Route("is it going to rain tomorrow", reg)
	assert.Equal(t, AskAI, it.Kind)
	assert.Equal(t, "is it going to rain tomorrow", it.Text)
}

func TestRouteHindiKeywords(t *testing.T) {
	reg := registry(t)

	assert.Equal(t, Emergency, Route("मदद चाहिए", reg).Kind)
	assert.Equal(t, SetReminder, Route("दवा का समय बताओ", reg).Kind)
	assert.Equal(t, Exit, Route("अलविदा", reg).Kind)
}
