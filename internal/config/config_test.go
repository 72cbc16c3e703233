package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	os.Unsetenv("PROTOIR_GAME_VERSION")
	os.Unsetenv("PROTOIR_CACHE_DSN")
	os.Unsetenv("PROTOIR_PROTOCOL_NUMBER")
	os.Unsetenv("PROTOIR_FIXTURE_PATH")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, DefaultCacheDSN, cfg.CacheDSN)
	require.Empty(t, cfg.GameVersion)
	require.Zero(t, cfg.ProtocolNumber)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PROTOIR_GAME_VERSION", "1.20.1")
	t.Setenv("PROTOIR_PROTOCOL_NUMBER", "765")
	t.Setenv("PROTOIR_CACHE_DSN", "custom.db")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "1.20.1", cfg.GameVersion)
	require.Equal(t, 765, cfg.ProtocolNumber)
	require.Equal(t, "custom.db", cfg.CacheDSN)
}

func TestLoadBadProtocolNumber(t *testing.T) {
	t.Setenv("PROTOIR_PROTOCOL_NUMBER", "not-a-number")
	_, err := Load()
	require.Error(t, err)
}
