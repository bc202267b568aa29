package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/chunkctl/internal/core/domain"
	"github.com/custodia-labs/chunkctl/internal/core/ports/driven"
	"github.com/custodia-labs/chunkctl/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyBackendURL          = "backend.url"
	KeyBackendTimeout      = "backend.timeout"
	KeyBackendRateLimit    = "backend.rate_limit"
	KeyEditorRefreshDelay  = "editor.refresh_delay"
	KeyEditorDefaultAction = "editor.default_action"
	KeyHistoryEnabled      = "history.enabled"
)

var settingKeys = []string{
	KeyBackendURL,
	KeyBackendTimeout,
	KeyBackendRateLimit,
	KeyEditorRefreshDelay,
	KeyEditorDefaultAction,
	KeyHistoryEnabled,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
// Missing or malformed values fall back to defaults.
func (s *SettingsService) Get() (*domain.Settings, error) {
	if s.configStore == nil {
		return nil, domain.ErrNotImplemented
	}
	defaults := domain.DefaultSettings()

	settings := &domain.Settings{
		Backend: domain.BackendSettings{
			URL:       s.getString(KeyBackendURL, defaults.Backend.URL),
			Timeout:   s.getDuration(KeyBackendTimeout, defaults.Backend.Timeout),
			RateLimit: s.getFloat(KeyBackendRateLimit, defaults.Backend.RateLimit),
		},
		Editor: domain.EditorSettings{
			RefreshDelay:  s.getDuration(KeyEditorRefreshDelay, defaults.Editor.RefreshDelay),
			DefaultAction: s.getAction(defaults.Editor.DefaultAction),
		},
		History: domain.HistorySettings{
			Enabled: s.getBool(KeyHistoryEnabled, defaults.History.Enabled),
		},
	}

	return settings, nil
}

// Save validates and persists application settings.
func (s *SettingsService) Save(settings *domain.Settings) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	if err := s.configStore.Set(KeyBackendURL, settings.Backend.URL); err != nil {
		return fmt.Errorf("save backend url: %w", err)
	}
	if err := s.configStore.Set(KeyBackendTimeout, settings.Backend.Timeout.String()); err != nil {
		return fmt.Errorf("save backend timeout: %w", err)
	}
	if err := s.configStore.Set(KeyBackendRateLimit, settings.Backend.RateLimit); err != nil {
		return fmt.Errorf("save backend rate_limit: %w", err)
	}
	if err := s.configStore.Set(KeyEditorRefreshDelay, settings.Editor.RefreshDelay.String()); err != nil {
		return fmt.Errorf("save editor refresh_delay: %w", err)
	}
	if err := s.configStore.Set(KeyEditorDefaultAction, settings.Editor.DefaultAction.String()); err != nil {
		return fmt.Errorf("save editor default_action: %w", err)
	}
	if err := s.configStore.Set(KeyHistoryEnabled, settings.History.Enabled); err != nil {
		return fmt.Errorf("save history enabled: %w", err)
	}

	return nil
}

// Set parses value for a single key and persists the result.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	value = strings.TrimSpace(value)
	switch key {
	case KeyBackendURL:
		settings.Backend.URL = strings.TrimRight(value, "/")
	case KeyBackendTimeout:
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
		}
		settings.Backend.Timeout = d
	case KeyBackendRateLimit:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
		}
		settings.Backend.RateLimit = f
	case KeyEditorRefreshDelay:
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
		}
		settings.Editor.RefreshDelay = d
	case KeyEditorDefaultAction:
		action, err := domain.ParseEditAction(value)
		if err != nil {
			return err
		}
		settings.Editor.DefaultAction = action
	case KeyHistoryEnabled:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
		}
		settings.History.Enabled = b
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	return s.Save(settings)
}

// Keys returns the settable keys in display order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingKeys))
	copy(keys, settingKeys)
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

func (s *SettingsService) getString(key, defaultVal string) string {
	if val := s.configStore.GetString(key); val != "" {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	raw := s.configStore.GetString(key)
	if raw == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return defaultVal
	}
	return d
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	val, ok := s.configStore.Get(key)
	if !ok {
		return defaultVal
	}
	if b, ok := val.(bool); ok {
		return b
	}
	return defaultVal
}

func (s *SettingsService) getAction(defaultVal domain.EditAction) domain.EditAction {
	action, err := domain.ParseEditAction(s.configStore.GetString(KeyEditorDefaultAction))
	if err != nil {
		return defaultVal
	}
	return action
}
