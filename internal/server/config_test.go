package server

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	require.NoError(t, config.Validate())
	require.Equal(t, "websocket", config.Transport)
	require.Equal(t, 100*time.Millisecond, config.SyncInterval.Std())
}

func TestLoadConfig(t *testing.T) {
	t.Run("overrides keep defaults for unset fields", func(t *testing.T) {
		config, err := LoadConfig(strings.NewReader(`
addr: "0.0.0.0:9000"
transport: quic
sync_interval: 250ms
`))
		require.NoError(t, err)
		require.Equal(t, "0.0.0.0:9000", config.Addr)
		require.Equal(t, "quic", config.Transport)
		require.Equal(t, 250*time.Millisecond, config.SyncInterval.Std())
		// Untouched fields keep their defaults.
		require.Equal(t, DefaultConfig().MaxSessions, config.MaxSessions)
		require.Equal(t, DefaultConfig().ReadTimeout, config.ReadTimeout)
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		_, err := LoadConfig(strings.NewReader("addr: [not a string"))
		require.Error(t, err)
	})

	t.Run("rejects invalid values", func(t *testing.T) {
		_, err := LoadConfig(strings.NewReader("transport: carrier-pigeon"))
		require.Error(t, err)
	})
}

func TestLoadConfigFile_EmptyPath(t *testing.T) {
	config, err := LoadConfigFile("")
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), config)
}

func TestConfig_Validate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty addr", func(c *Config) { c.Addr = "" }},
		{"unknown transport", func(c *Config) { c.Transport = "tcp" }},
		{"zero sync interval", func(c *Config) { c.SyncInterval = 0 }},
		{"negative session cap", func(c *Config) { c.MaxSessions = -1 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			config := DefaultConfig()
			tc.mutate(&config)
			require.Error(t, config.Validate())
		})
	}
}
