package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"UNIMART_CONFIG", "PORT", "DB_DRIVER", "DB_DSN", "LOG_FILE", "LOG_LEVEL",
		"CAMPUS_DOMAIN", "AUTH_MODE", "TEMPLATES_DIR", "TICKER_INTERVAL"} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, Defaults(), cfg)
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "unimart.yaml")
	body := "port: \"9090\"\nauth_mode: password\nticker_interval: 5s\ncampus_domain: \"@uni.test\"\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	clearEnv(t)
	t.Setenv("UNIMART_CONFIG", path)
	t.Setenv("PORT", "7070")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "7070", cfg.Port, "env wins over file")
	require.Equal(t, "password", cfg.AuthMode)
	require.Equal(t, 5*time.Second, cfg.TickerInterval)
	require.Equal(t, "@uni.test", cfg.CampusDomain)
	require.Equal(t, "sqlite", cfg.DBDriver)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "driver", env: map[string]string{"DB_DRIVER": "postgres"}},
		{name: "auth_mode", env: map[string]string{"AUTH_MODE": "oauth"}},
		{name: "domain", env: map[string]string{"CAMPUS_DOMAIN": "uni.test"}},
		{name: "ticker", env: map[string]string{"TICKER_INTERVAL": "soon"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
		})
	}
}
