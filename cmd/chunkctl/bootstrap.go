package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/custodia-labs/chunkctl/internal/adapters/driven/backend"
	"github.com/custodia-labs/chunkctl/internal/adapters/driven/config/file"
	"github.com/custodia-labs/chunkctl/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/chunkctl/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/chunkctl/internal/adapters/driving/cli"
	"github.com/custodia-labs/chunkctl/internal/core/domain"
	"github.com/custodia-labs/chunkctl/internal/core/ports/driven"
	"github.com/custodia-labs/chunkctl/internal/core/services"
	"github.com/custodia-labs/chunkctl/internal/logger"
)

// Environment overrides, applied over the config file and under flags.
const (
	envBackendURL   = "CHUNKCTL_BACKEND_URL"
	envRefreshDelay = "CHUNKCTL_REFRESH_DELAY"
)

// bootstrap wires the driven adapters into the core services.
func bootstrap(opts cli.Options) (*cli.Services, error) {
	logger.Section("Bootstrap")

	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	logger.Debug("Config file: %s", configStore.Path())

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if err := applyOverrides(settings, opts, os.Getenv); err != nil {
		return nil, err
	}

	client, err := backend.NewClient(backend.Config{
		BaseURL:   settings.Backend.URL,
		Timeout:   settings.Backend.Timeout,
		RateLimit: settings.Backend.RateLimit,
		UserAgent: "chunkctl/" + opts.Version,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create backend client: %w", err)
	}
	logger.Debug("Backend: %s", client.BaseURL())

	session := services.NewSession(client, settings.Editor.RefreshDelay)
	session.SetDefaultAction(settings.Editor.DefaultAction)
	if opts.Context != nil {
		session.WithContext(opts.Context)
	}

	var closers []func() error
	var history driven.HistoryStore = memory.NewHistoryStore()
	if settings.History.Enabled {
		store, err := sqlite.NewStore(dataDir(opts.ConfigDir))
		if err != nil {
			logger.Warn("Edit history unavailable, keeping it in memory: %v", err)
		} else {
			logger.Debug("History database: %s", store.Path())
			history = store.HistoryStore()
			closers = append(closers, store.Close)
		}
	}
	session.SetHistoryStore(history)

	return &cli.Services{
		Session:  session,
		History:  services.NewHistoryService(history),
		Settings: settingsService,
		Snapshot: services.NewSnapshotService(client),
		Close: func() error {
			session.Close()
			var errs []error
			for _, c := range closers {
				errs = append(errs, c())
			}
			return errors.Join(errs...)
		},
	}, nil
}

// applyOverrides layers the environment and then flags over settings.
func applyOverrides(settings *domain.Settings, opts cli.Options, getenv func(string) string) error {
	if v := getenv(envBackendURL); v != "" {
		settings.Backend.URL = v
	}
	if v := getenv(envRefreshDelay); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, envRefreshDelay, err)
		}
		settings.Editor.RefreshDelay = d
	}
	if opts.BackendURL != "" {
		settings.Backend.URL = opts.BackendURL
	}
	return settings.Validate()
}

// dataDir returns the history directory for configDir; empty selects the default.
func dataDir(configDir string) string {
	if configDir == "" {
		return ""
	}
	return filepath.Join(configDir, "data")
}
