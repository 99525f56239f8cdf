package notes

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAndList(t *testing.T) {
	s := NewStore("")
	s.now = func() time.Time {
		return time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC)
	}

	n, err := s.Add("the plumber comes on friday")
	require.NoError(t, err)
	assert.Equal(t, "March 5, 2:30 PM", n.Time)

	list := s.List()
	require.Len(t, list, 1)
	assert.Equal(t, "the plumber comes on friday", list[0].Text)
}

func TestClear(t *testing.T) {
	s := NewStore("")
	s.Add("one")
	s.Add("two")

	removed, err := s.Clear()
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.Empty(t, s.List())
}

func TestPersistenceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.json")

	s := NewStore(path)
	_, err := s.Add("take the blue pill box on trips")
	require.NoError(t, err)

	reloaded := NewStore(path)
	require.NoError(t, reloaded.Load())

	list := reloaded.List()
	require.Len(t, list, 1)
	assert.Equal(t, "take the blue pill box on trips", list[0].Text)
	assert.NotEmpty(t, list[0].Time, "timestamp must round-trip")
}
