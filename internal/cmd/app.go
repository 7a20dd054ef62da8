package cmd

import (
	"os"

	"github.com/authway/adminctl/internal/api"
	"github.com/authway/adminctl/internal/config"
	"github.com/authway/adminctl/internal/log"
	"github.com/authway/adminctl/internal/session"
	"github.com/authway/adminctl/internal/store"
)

// app is one command invocation's wiring: configuration, logger, the
// encrypted store, the API client, and the session manager. Commands build
// it in RunE and pass it down; nothing here is a package global.
type app struct {
	cfg     *config.Config
	logger  *log.Logger
	store   *store.Store
	client  *api.Client
	session *session.Manager
}

// newApp loads configuration, opens the store, and restores any persisted
// session. Global flags override config file and environment values.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flagAPIURL != "" {
		cfg.APIURL = flagAPIURL
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}

	logger := log.New(log.Config{
		Level:  log.ParseLevel(cfg.LogLevel),
		Format: log.ParseFormat(cfg.LogFormat),
		Output: log.OutputStderr(),
	})
	log.SetDefaultLogger(logger)

	if err := os.MkdirAll(cfg.StateDir, 0o700); err != nil {
		return nil, err
	}
	st, err := store.Open(cfg.StateDir)
	if err != nil {
		return nil, err
	}

	client := api.NewClient(cfg.APIURL, st,
		api.WithTimeout(cfg.Timeout),
		api.WithLogger(logger))
	sess := session.NewManager(client, st, logger)
	sess.Restore()

	return &app{
		cfg:     cfg,
		logger:  logger,
		store:   st,
		client:  client,
		session: sess,
	}, nil
}

// newAuthedApp is newApp plus a fast local check that a session exists.
func newAuthedApp() (*app, error) {
	a, err := newApp()
	if err != nil {
		return nil, err
	}
	if err := a.session.RequireAuth(); err != nil {
		return nil, err
	}
	return a, nil
}
