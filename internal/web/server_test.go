package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"braill/internal/assist"
	"braill/internal/contacts"
	"braill/internal/notes"
	"braill/internal/reminder"
)

type webFixture struct {
	srv       *Server
	reminders *reminder.Store
	notes     *notes.Store
	contacts  *contacts.Registry
	envFile   string
	profile   string
}

func newWebFixture(t *testing.T) *webFixture {
	t.Helper()
	dir := t.TempDir()

	reminders := reminder.NewStore(filepath.Join(dir, "reminders.json"))
	noteStore := notes.NewStore(filepath.Join(dir, "notes.json"))
	registry := contacts.NewRegistry(filepath.Join(dir, "contacts.json"))

	session := assist.NewSession(assist.Config{}, time.Minute, assist.Deps{
		Reminders: reminders,
		Notes:     noteStore,
		Contacts:  registry,
	})

	envFile := filepath.Join(dir, ".env")
	profile := filepath.Join(dir, "profile.json")
	srv := NewServer(session, reminders, noteStore, registry, envFile, profile, nil)

	return &webFixture{
		srv:       srv,
		reminders: reminders,
		notes:     noteStore,
		contacts:  registry,
		envFile:   envFile,
		profile:   profile,
	}
}

func (f *webFixture) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.srv.engine.ServeHTTP(w, req)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fields))
	return w, fields
}

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}

func TestStatusWhileStopped(t *testing.T) {
	f := newWebFixture(t)

	w, fields := f.do(t, http.MethodGet, "/api/status", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `false`, string(fields["running"]))
	assert.JSONEq(t, `"idle"`, string(fields["state"]))
}

func TestRemindersListAndDelete(t *testing.T) {
	f := newWebFixture(t)
	_, err := f.reminders.Add("aspirin", 8, 0)
	require.NoError(t, err)
	_, err = f.reminders.Add("insulin", 20, 30)
	require.NoError(t, err)

	w, fields := f.do(t, http.MethodGet, "/api/reminders", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var list []reminder.Reminder
	require.NoError(t, json.Unmarshal(fields["reminders"], &list))
	require.Len(t, list, 2)
	assert.Equal(t, "aspirin", list[0].Label)
	assert.Equal(t, "08:00", list[0].Time)

	w, fields = f.do(t, http.MethodPost, "/api/reminders/delete",
		map[string]string{"time": "08:00", "medicine": "aspirin"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `1`, string(fields["removed"]))
	assert.Len(t, f.reminders.List(), 1)
}

func TestDeleteReminderRejectsBadBody(t *testing.T) {
	f := newWebFixture(t)

	w, fields := f.do(t, http.MethodPost, "/api/reminders/delete",
		map[string]string{"time": "08:00"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `false`, string(fields["success"]))
}

func TestNotesAndContactsEndpoints(t *testing.T) {
	f := newWebFixture(t)
	_, err := f.notes.Add("the keys are in the drawer")
	require.NoError(t, err)
	require.NoError(t, f.contacts.Replace([]contacts.Contact{
		{Name: "mom", Number: "+15551230001"},
	}))

	w, fields := f.do(t, http.MethodGet, "/api/notes", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var noteList []notes.Note
	require.NoError(t, json.Unmarshal(fields["notes"], &noteList))
	require.Len(t, noteList, 1)
	assert.Equal(t, "the keys are in the drawer", noteList[0].Text)

	w, fields = f.do(t, http.MethodGet, "/api/contacts", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var contactList []contacts.Contact
	require.NoError(t, json.Unmarshal(fields["contacts"], &contactList))
	require.Len(t, contactList, 1)
	assert.Equal(t, "mom", contactList[0].Name)
}

func TestSaveProfileSetsEmergencyContact(t *testing.T) {
	f := newWebFixture(t)

	w, _ := f.do(t, http.MethodPost, "/api/profile", Profile{
		Name:            "Asha",
		EmergencyName:   "Ravi",
		EmergencyNumber: "+15559990000",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	em := f.contacts.Emergency()
	assert.Equal(t, "Ravi", em.Name)
	assert.Equal(t, "+15559990000", em.Number)

	var saved Profile
	data := readFile(t, f.profile)
	require.NoError(t, json.Unmarshal(data, &saved))
	assert.Equal(t, "Asha", saved.Name)
}

func TestProfileRoundTripsAcrossRestart(t *testing.T) {
	f := newWebFixture(t)

	w, _ := f.do(t, http.MethodPost, "/api/profile", Profile{
		Name:            "Asha",
		EmergencyName:   "Ravi",
		EmergencyNumber: "+15559990000",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// a restarted daemon reloads the profile and reseeds the registry
	prof, err := LoadProfile(f.profile)
	require.NoError(t, err)

	fresh := contacts.NewRegistry("")
	if prof.EmergencyNumber != "" {
		fresh.SetEmergency(contacts.Contact{Name: prof.EmergencyName, Number: prof.EmergencyNumber})
	}

	em := fresh.Emergency()
	assert.Equal(t, "Ravi", em.Name)
	assert.Equal(t, "+15559990000", em.Number)
}

func TestLoadProfileMissingFileIsEmpty(t *testing.T) {
	prof, err := LoadProfile(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Equal(t, Profile{}, prof)
}

func TestSaveConfigWritesEnvFile(t *testing.T) {
	f := newWebFixture(t)

	w, _ := f.do(t, http.MethodPost, "/api/config", map[string]string{
		"ai_key":        "sk-test",
		"mobilerun_key": "mr-test",
		"device_id":     "dev-1",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	env := string(readFile(t, f.envFile))
	assert.Contains(t, env, "OPENAI_API_KEY=sk-test")
	assert.Contains(t, env, "MOBILERUN_KEY=mr-test")
	assert.Contains(t, env, "DEVICE_ID=dev-1")
}
