package reminder

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingAnnouncer struct {
	mu    sync.Mutex
	fired []string
}

func (r *recordingAnnouncer) announce(rem Reminder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fired = append(r.fired, rem.Label)
}

func (r *recordingAnnouncer) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.fired)
}

func at(hour, minute int) func() time.Time {
	return func() time.Time {
		return time.Date(2024, 3, 1, hour, minute, 0, 0, time.UTC)
	}
}

func TestPollFiresOncePerMinute(t *testing.T) {
	store := NewStore("")
	_, err := store.Add("aspirin", 8, 0)
	require.NoError(t, err)

	rec := &recordingAnnouncer{}
	clock := at(8, 0)
	sched := NewScheduler(store, rec.announce, nil, WithClock(func() time.Time { return clock() }))

	sched.Poll()
	assert.Equal(t, 1, rec.count(), "fires at the matching minute")

	// a second poll within the same minute is idempotent
	sched.Poll()
	assert.Equal(t, 1, rec.count())
}

func TestPollRearmsNextDay(t *testing.T) {
	store := NewStore("")
	_, err := store.Add("aspirin", 8, 0)
	require.NoError(t, err)

	rec := &recordingAnnouncer{}
	var now func() time.Time
	sched := NewScheduler(store, rec.announce, nil, WithClock(func() time.Time { return now() }))

	now = at(8, 0)
	sched.Poll()
	sched.Poll()
	require.Equal(t, 1, rec.count())

	// clock moves past the minute: nothing fires, the reminder re-arms
	now = at(8, 1)
	sched.Poll()
	require.Equal(t, 1, rec.count())

	// next day's 08:00
	now = at(8, 0)
	sched.Poll()
	assert.Equal(t, 2, rec.count())
}

func TestPollSkippedMinuteIsMissed(t *testing.T) {
	// the scheduler matches on minute equality only: if polling skips the
	// matching minute entirely, that day's occurrence is dropped
	store := NewStore("")
	_, err := store.Add("aspirin", 8, 0)
	require.NoError(t, err)

	rec := &recordingAnnouncer{}
	var now func() time.Time
	sched := NewScheduler(store, rec.announce, nil, WithClock(func() time.Time { return now() }))

	now = at(7, 59)
	sched.Poll()
	now = at(8, 1)
	sched.Poll()

	assert.Zero(t, rec.count())
}

func TestPollFiresBatchTogether(t *testing.T) {
	store := NewStore("")
	store.Add("aspirin", 8, 0)
	store.Add("insulin", 8, 0)
	store.Add("vitamin", 12, 0)

	rec := &recordingAnnouncer{}
	sched := NewScheduler(store, rec.announce, nil, WithClock(at(8, 0)))

	sched.Poll()
	assert.ElementsMatch(t, []string{"aspirin", "insulin"}, rec.fired)

	for _, r := range store.List() {
		if r.Label == "vitamin" {
			assert.Empty(t, r.LastTriggered)
		} else {
			assert.Equal(t, "08:00", r.LastTriggered)
		}
	}
}
