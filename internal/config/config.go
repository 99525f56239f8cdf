// Package config loads the daemon configuration: a YAML file for paths and
// tuning, with secrets overlaid from the environment (optionally via a .env
// file).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the full daemon configuration. Every field has a usable default;
// a missing config file is not an error.
type Config struct {
	// DataDir holds the persisted collections (reminders, notes, contacts).
	DataDir string `yaml:"data_dir"`

	ReminderFile string `yaml:"reminder_file"`
	NotesFile    string `yaml:"notes_file"`
	ContactsFile string `yaml:"contacts_file"`

	// DefaultLanguage is used when language selection exhausts its attempts.
	DefaultLanguage string `yaml:"default_language"`

	ListenTimeout time.Duration `yaml:"listen_timeout"`
	PollInterval  time.Duration `yaml:"poll_interval"`

	WebAddr    string `yaml:"web_addr"`
	SocketPath string `yaml:"socket_path"`

	// ProxyAddr, when set, routes the Q&A backend through a SOCKS5 proxy.
	ProxyAddr    string        `yaml:"proxy_addr"`
	ProxyTimeout time.Duration `yaml:"proxy_timeout"`

	// TranscriberPath and SpeakerPath are the external speech engine CLIs.
	TranscriberPath string   `yaml:"transcriber_path"`
	TranscriberArgs []string `yaml:"transcriber_args"`
	SpeakerPath     string   `yaml:"speaker_path"`

	// ChimeFile is the sound played before a reminder announcement,
	// resolved inside DataDir. Empty disables the chime.
	ChimeFile string `yaml:"chime_file"`

	// DuckPlayback lowers other audio streams while the assistant speaks.
	DuckPlayback  bool `yaml:"duck_playback"`
	DuckMinVolume int  `yaml:"duck_min_volume"`

	PhoneBaseURL string `yaml:"phone_base_url"`

	// Secrets, environment only.
	AIKey       string `yaml:"-"`
	PhoneKey    string `yaml:"-"`
	PhoneDevice string `yaml:"-"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DataDir:         ".",
		ReminderFile:    "reminders.json",
		NotesFile:       "notes.json",
		ContactsFile:    "contacts.json",
		DefaultLanguage: "en",
		ListenTimeout:   8 * time.Second,
		PollInterval:    30 * time.Second,
		WebAddr:         "127.0.0.1:5000",
		SocketPath:      "/tmp/braill.sock",
		ProxyTimeout:    2 * time.Minute,
		TranscriberPath: "whisper-listen",
		SpeakerPath:     "espeak-ng",
		ChimeFile:       "chime.mp3",
		DuckPlayback:    true,
		DuckMinVolume:   20,
		PhoneBaseURL:    "https://api.mobilerun.dev",
	}
}

// Load reads the YAML file at path (skipped when empty or missing), loads the
// env file (same), then overlays secrets from the environment.
func Load(path, envFile string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// run on defaults
		case err != nil:
			return cfg, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if envFile != "" {
		// missing .env is fine; the environment may already be populated
		_ = godotenv.Load(envFile)
	}

	cfg.AIKey = os.Getenv("OPENAI_API_KEY")
	cfg.PhoneKey = os.Getenv("MOBILERUN_KEY")
	cfg.PhoneDevice = os.Getenv("DEVICE_ID")

	if cfg.PollInterval > time.Minute {
		return cfg, fmt.Errorf("poll_interval %s exceeds one minute; reminders would skip their firing minute", cfg.PollInterval)
	}

	return cfg, nil
}

// ReminderPath resolves the reminder file inside DataDir.
func (c Config) ReminderPath() string { return filepath.Join(c.DataDir, c.ReminderFile) }

// NotesPath resolves the notes file inside DataDir.
func (c Config) NotesPath() string { return filepath.Join(c.DataDir, c.NotesFile) }

// ContactsPath resolves the contacts file inside DataDir.
func (c Config) ContactsPath() string { return filepath.Join(c.DataDir, c.ContactsFile) }

// ChimePath resolves the reminder chime inside DataDir; empty when disabled.
func (c Config) ChimePath() string {
	if c.ChimeFile == "" {
		return ""
	}
	return filepath.Join(c.DataDir, c.ChimeFile)
}

// SaveSecrets rewrites the env file with dashboard-provided keys, matching
// the layout the web front end has always written.
func SaveSecrets(envFile, aiKey, phoneKey, deviceID string) error {
	content := fmt.Sprintf("OPENAI_API_KEY=%s\nMOBILERUN_KEY=%s\nDEVICE_ID=%s\n", aiKey, phoneKey, deviceID)
	if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
		return fmt.Errorf("write env file: %w", err)
	}
	os.Setenv("OPENAI_API_KEY", aiKey)
	os.Setenv("MOBILERUN_KEY", phoneKey)
	os.Setenv("DEVICE_ID", deviceID)
	return nil
}
