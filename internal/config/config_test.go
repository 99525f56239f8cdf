package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingFilesRunOnDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("MOBILERUN_KEY", "")
	t.Setenv("DEVICE_ID", "")

	cfg, err := Load(filepath.Join(dir, "absent.yaml"), filepath.Join(dir, "absent.env"))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 8*time.Second, cfg.ListenTimeout)
	assert.Equal(t, 30*time.Second, cfg.PollInterval)
}

func TestYAMLOverridesAndEnvSecrets(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "braill.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(
		"data_dir: /var/lib/braill\n"+
			"default_language: hi\n"+
			"listen_timeout: 5s\n"+
			"web_addr: 0.0.0.0:8080\n"), 0o644))

	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath,
		[]byte("OPENAI_API_KEY=sk-from-file\n"), 0o600))
	// godotenv only fills keys absent from the environment, so the key must
	// be truly unset for the file value to win.
	t.Setenv("OPENAI_API_KEY", "")
	os.Unsetenv("OPENAI_API_KEY")
	t.Setenv("MOBILERUN_KEY", "mr-from-env")
	t.Setenv("DEVICE_ID", "")

	cfg, err := Load(yamlPath, envPath)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/braill", cfg.DataDir)
	assert.Equal(t, "hi", cfg.DefaultLanguage)
	assert.Equal(t, 5*time.Second, cfg.ListenTimeout)
	assert.Equal(t, "0.0.0.0:8080", cfg.WebAddr)
	// unset keys keep their defaults
	assert.Equal(t, "reminders.json", cfg.ReminderFile)

	assert.Equal(t, "sk-from-file", cfg.AIKey)
	assert.Equal(t, "mr-from-env", cfg.PhoneKey)
}

func TestPollIntervalAboveOneMinuteIsRejected(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "braill.yaml")
	require.NoError(t, os.WriteFile(yamlPath,
		[]byte("poll_interval: 5m\n"), 0o644))

	_, err := Load(yamlPath, "")
	assert.Error(t, err)
}

func TestPathHelpers(t *testing.T) {
	cfg := Default()
	cfg.DataDir = "/data"

	assert.Equal(t, "/data/reminders.json", cfg.ReminderPath())
	assert.Equal(t, "/data/notes.json", cfg.NotesPath())
	assert.Equal(t, "/data/contacts.json", cfg.ContactsPath())
	assert.Equal(t, "/data/chime.mp3", cfg.ChimePath())

	cfg.ChimeFile = ""
	assert.Equal(t, "", cfg.ChimePath())
}

func TestSaveSecrets(t *testing.T) {
	envPath := filepath.Join(t.TempDir(), ".env")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("MOBILERUN_KEY", "")
	t.Setenv("DEVICE_ID", "")

	require.NoError(t, SaveSecrets(envPath, "sk-1", "mr-1", "dev-1"))

	data, err := os.ReadFile(envPath)
	require.NoError(t, err)
	assert.Equal(t, "OPENAI_API_KEY=sk-1\nMOBILERUN_KEY=mr-1\nDEVICE_ID=dev-1\n", string(data))
	assert.Equal(t, "sk-1", os.Getenv("OPENAI_API_KEY"))
}
