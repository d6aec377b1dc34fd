package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"passkey_login_delay":  "250ms",
		"ceremony_timeout":     int64(5 * time.Second),
		"platform_credentials": false,
		"step_up_threshold":    99.5,
		"language":             "lv",
		"log_format":           "json",
	})

	t.Run("loads from flags", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := defaults()
		parseJson(cfg)

		assert.Equal(t, 250*time.Millisecond, cfg.PasskeyLoginDelay)
		assert.Equal(t, 5*time.Second, cfg.CeremonyTimeout)
		assert.False(t, cfg.PlatformCredentials)
		assert.Equal(t, 99.5, cfg.StepUpThreshold)
		assert.Equal(t, "lv", cfg.Language)
		assert.Equal(t, "json", cfg.LogFormat)
	})

	t.Run("absent keys keep earlier values", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", pathFlag}

		cfg := defaults()
		parseJson(cfg)

		assert.Equal(t, time.Second, cfg.PasskeyRegistrationDelay)
		assert.Equal(t, "EUR", cfg.Currency)
		assert.Equal(t, ":memory:", cfg.MetricsDSN)
	})

	t.Run("no flags → no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := defaults()
		parseJson(cfg)

		assert.Equal(t, defaults(), cfg)
	})

	t.Run("missing file → panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", filepath.Join(dir, "nope.json")}

		require.Panics(t, func() { parseJson(defaults()) })
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-config", bad}

		require.Panics(t, func() { parseJson(defaults()) })
	})
}
