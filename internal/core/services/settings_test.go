package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chunkctl/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/chunkctl/internal/core/domain"
)

func TestSettingsService_NilStore(t *testing.T) {
	service := NewSettingsService(nil)

	_, err := service.Get()
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
	assert.ErrorIs(t, service.Save(&domain.Settings{}), domain.ErrNotImplemented)
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), *settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set(KeyBackendURL, "http://qdrant-gw:8080")
	_ = store.Set(KeyBackendTimeout, "5s")
	_ = store.Set(KeyBackendRateLimit, 2.5)
	_ = store.Set(KeyEditorRefreshDelay, "250ms")
	_ = store.Set(KeyEditorDefaultAction, "append")
	_ = store.Set(KeyHistoryEnabled, false)
	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, "http://qdrant-gw:8080", settings.Backend.URL)
	assert.Equal(t, 5*time.Second, settings.Backend.Timeout)
	assert.Equal(t, 2.5, settings.Backend.RateLimit)
	assert.Equal(t, 250*time.Millisecond, settings.Editor.RefreshDelay)
	assert.Equal(t, domain.ActionAppend, settings.Editor.DefaultAction)
	assert.False(t, settings.History.Enabled)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set(KeyEditorRefreshDelay, "soon")
	_ = store.Set(KeyEditorDefaultAction, "merge")
	_ = store.Set(KeyHistoryEnabled, "yes")
	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	defaults := domain.DefaultSettings()
	assert.Equal(t, defaults.Editor.RefreshDelay, settings.Editor.RefreshDelay)
	assert.Equal(t, defaults.Editor.DefaultAction, settings.Editor.DefaultAction)
	assert.Equal(t, defaults.History.Enabled, settings.History.Enabled)
}

func TestSettingsService_SaveRoundTrip(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)
	want := domain.DefaultSettings()
	want.Backend.URL = "https://chunks.example.com"
	want.Backend.Timeout = 3 * time.Second
	want.Editor.RefreshDelay = 0

	require.NoError(t, service.Save(&want))
	got, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, want, *got)
	assert.Equal(t, "3s", store.GetString(KeyBackendTimeout))
}

func TestSettingsService_Save_Invalid(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)
	bad := domain.DefaultSettings()
	bad.Backend.URL = "localhost:8000"

	err := service.Save(&bad)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, ok := store.Get(KeyBackendURL)
	assert.False(t, ok)
}

func TestSettingsService_Set(t *testing.T) {
	tests := []struct {
		key   string
		value string
		check func(t *testing.T, s *domain.Settings)
	}{
		{KeyBackendURL, "http://example.com:9000/", func(t *testing.T, s *domain.Settings) {
			assert.Equal(t, "http://example.com:9000", s.Backend.URL)
		}},
		{KeyBackendTimeout, "10s", func(t *testing.T, s *domain.Settings) {
			assert.Equal(t, 10*time.Second, s.Backend.Timeout)
		}},
		{KeyBackendRateLimit, "4", func(t *testing.T, s *domain.Settings) {
			assert.Equal(t, 4.0, s.Backend.RateLimit)
		}},
		{KeyEditorRefreshDelay, "2s", func(t *testing.T, s *domain.Settings) {
			assert.Equal(t, 2*time.Second, s.Editor.RefreshDelay)
		}},
		{KeyEditorDefaultAction, "append", func(t *testing.T, s *domain.Settings) {
			assert.Equal(t, domain.ActionAppend, s.Editor.DefaultAction)
		}},
		{KeyHistoryEnabled, "false", func(t *testing.T, s *domain.Settings) {
			assert.False(t, s.History.Enabled)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			service := NewSettingsService(memory.NewConfigStore())

			require.NoError(t, service.Set(tt.key, tt.value))

			settings, err := service.Get()
			require.NoError(t, err)
			tt.check(t, settings)
		})
	}
}

func TestSettingsService_Set_Rejects(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	assert.ErrorIs(t, service.Set("nope", "x"), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.Set(KeyBackendTimeout, "later"), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.Set(KeyBackendRateLimit, "-1"), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.Set(KeyEditorDefaultAction, "merge"), domain.ErrUnknownAction)
	assert.ErrorIs(t, service.Set(KeyHistoryEnabled, "maybe"), domain.ErrInvalidInput)
}

func TestSettingsService_Keys(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	keys := service.Keys()
	keys[0] = "mutated"

	assert.Equal(t, KeyBackendURL, service.Keys()[0])
	assert.Len(t, service.Keys(), 6)
}
