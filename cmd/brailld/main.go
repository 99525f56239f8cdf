package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	cli "github.com/spf13/pflag"

	"github.com/lmittmann/tint"
	log "log/slog"

	"github.com/openai/openai-go/v3/option"

	"braill/internal/assist"
	"braill/internal/audio"
	"braill/internal/config"
	"braill/internal/contacts"
	"braill/internal/ipc"
	"braill/internal/lang"
	"braill/internal/notes"
	"braill/internal/notify"
	"braill/internal/phone"
	"braill/internal/proxy"
	"braill/internal/qa"
	"braill/internal/reminder"
	"braill/internal/speech"
	"braill/internal/web"
	"braill/pkg/protocol"
)

var logLevelMap = map[string]log.Level{
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
}

func main() {
	configFile := cli.StringP("config", "c", "braill.yaml", "Config file path")
	envFile := cli.StringP("env", "e", ".env", "Env file path")
	logLevel := cli.StringP("log", "l", "info", "Log level")
	addr := cli.StringP("addr", "a", "", "Dashboard listen address (overrides config)")
	autostart := cli.BoolP("start", "s", false, "Start the assistant session immediately")
	cli.Parse()

	log.SetDefault(log.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level: logLevelMap[*logLevel],
	})))

	log.Info("Booting up")

	godotenv.Load(*envFile)
	cfg, err := config.Load(*configFile, *envFile)
	if err != nil {
		log.Error("Failed to load config", "err", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.WebAddr = *addr
	}

	reminders := reminder.NewStore(cfg.ReminderPath())
	if err := reminders.Load(); err != nil {
		log.Error("Failed to load reminders", "err", err)
		os.Exit(1)
	}
	noteStore := notes.NewStore(cfg.NotesPath())
	if err := noteStore.Load(); err != nil {
		log.Error("Failed to load notes", "err", err)
		os.Exit(1)
	}
	registry := contacts.NewRegistry(cfg.ContactsPath())
	if err := registry.Load(); err != nil {
		log.Error("Failed to load contacts", "err", err)
		os.Exit(1)
	}

	profilePath := "user_profile.json"
	prof, err := web.LoadProfile(profilePath)
	if err != nil {
		log.Error("Failed to load profile", "err", err)
		os.Exit(1)
	}
	if prof.EmergencyNumber != "" {
		registry.SetEmergency(contacts.Contact{Name: prof.EmergencyName, Number: prof.EmergencyNumber})
	}

	log.Debug("Loaded stores")

	var qaOpts []option.RequestOption
	if cfg.ProxyAddr != "" {
		httpClient, err := proxy.NewSocksClient(cfg.ProxyAddr, cfg.ProxyTimeout)
		if err != nil {
			log.Error("Failed to dial socks proxy", "proxy", cfg.ProxyAddr, "err", err)
			os.Exit(1)
		}
		qaOpts = append(qaOpts, option.WithHTTPClient(httpClient))
		log.Debug("Loaded proxy")
	}

	// The qa and phone clients are rebuilt from the environment on every
	// session start, so keys saved through the dashboard apply to the next
	// start without a daemon restart.
	refresh := func(d *assist.Deps) {
		aiKey := os.Getenv("OPENAI_API_KEY")
		d.QA = qa.New(aiKey, log.Default(), qaOpts...)
		if aiKey == "" {
			log.Warn("OPENAI_API_KEY not set, answers limited to the offline fallback set")
		}

		phoneKey, device := os.Getenv("MOBILERUN_KEY"), os.Getenv("DEVICE_ID")
		if phoneKey != "" && device != "" {
			d.Phone = phone.New(cfg.PhoneBaseURL, phoneKey, device, nil)
			log.Info("Phone connected")
		} else {
			d.Phone = nil
			log.Warn("Phone not connected, phone features disabled")
		}
	}

	var speaker speech.Speaker = &speech.ExecSpeaker{Path: cfg.SpeakerPath}
	if cfg.DuckPlayback {
		ducker := audio.NewDucker([]string{cfg.SpeakerPath}, cfg.DuckMinVolume)
		speaker = audio.NewDuckingSpeaker(speaker, ducker, log.Default())
	}
	tracker := speech.NewTracker(speaker)
	listener := &speech.ExecListener{Path: cfg.TranscriberPath, Args: cfg.TranscriberArgs}

	chime := notify.NewChime(cfg.ChimePath(), log.Default())

	session := assist.NewSession(assist.Config{
		ListenTimeout:   cfg.ListenTimeout,
		DefaultLanguage: lang.Lang(cfg.DefaultLanguage),
	}, cfg.PollInterval, assist.Deps{
		Listener:  listener,
		Tracker:   tracker,
		Reminders: reminders,
		Notes:     noteStore,
		Contacts:  registry,
		Chime:     chime,
		Logger:    log.Default(),
		Refresh:   refresh,
	})

	webSrv := web.NewServer(session, reminders, noteStore, registry,
		*envFile, profilePath, log.Default())
	session.SetEvents(webSrv.Events())

	ipcSrv, err := ipc.StartServer(cfg.SocketPath, func(cmd protocol.Command) protocol.Reply {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		return session.Dispatch(ctx, cmd)
	})
	if err != nil {
		log.Error("Failed ipc server", "err", err)
		os.Exit(1)
	}
	defer ipcSrv.Close()

	go func() {
		log.Info("Dashboard listening", "addr", cfg.WebAddr)
		if err := webSrv.Start(cfg.WebAddr); err != nil && err != http.ErrServerClosed {
			log.Error("Dashboard server failed", "err", err)
		}
	}()

	if *autostart {
		if err := session.Start(); err != nil {
			log.Error("Failed to start assistant", "err", err)
			os.Exit(1)
		}
	}

	log.Info("Boot up - successful")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Info("Shutting down")
	session.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := webSrv.Shutdown(ctx); err != nil {
		log.Error("Dashboard shutdown failed", "err", err)
	}
}
