package contacts

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaceAndLookup(t *testing.T) {
	reg := NewRegistry("")
	require.NoError(t, reg.Replace([]Contact{
		{Name: "mom", Number: "+15551230001"},
		{Name: "doctor", Number: ""},
	}))

	number, err := reg.Lookup("mom")
	require.NoError(t, err)
	assert.Equal(t, "+15551230001", number)

	number, err = reg.Lookup("doctor")
	require.NoError(t, err)
	assert.Empty(t, number, "registered contact may have no number yet")

	_, err = reg.Lookup("uncle")
	assert.ErrorIs(t, err, ErrUnknown)
}

func TestMatchInsertionOrder(t *testing.T) {
	reg := NewRegistry("")
	require.NoError(t, reg.Replace([]Contact{
		{Name: "dad", Number: "1"},
		{Name: "mom", Number: "2"},
	}))

	name, ok := reg.Match("call mom and dad")
	require.True(t, ok)
	assert.Equal(t, "dad", name, "first registered name wins")

	_, ok = reg.Match("call the pharmacy")
	assert.False(t, ok)
}

func TestMatchIsSubstring(t *testing.T) {
	reg := NewRegistry("")
	require.NoError(t, reg.Replace([]Contact{{Name: "mo", Number: "1"}}))

	// short names false-positive inside other words; the behavior is pinned
	name, ok := reg.Match("call tomorrow")
	assert.True(t, ok)
	assert.Equal(t, "mo", name)
}

func TestReplacePersistsAndLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.json")

	reg := NewRegistry(path)
	require.NoError(t, reg.Replace([]Contact{{Name: "mom", Number: "+1555"}}))

	reloaded := NewRegistry(path)
	require.NoError(t, reloaded.Load())

	list := reloaded.List()
	require.Len(t, list, 1)
	assert.Equal(t, Contact{Name: "mom", Number: "+1555"}, list[0])
}

func TestEmergencyContact(t *testing.T) {
	reg := NewRegistry("")
	assert.Empty(t, reg.Emergency().Number)

	reg.SetEmergency(Contact{Name: "wife", Number: "+1999"})
	assert.Equal(t, "+1999", reg.Emergency().Number)
}
