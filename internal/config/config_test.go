package config

import (
	"os"
	"testing"
	"time"

	"github.com/dmitrijs2005/passkeylab/internal/ceremony"
	"github.com/dmitrijs2005/passkeylab/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, ceremony.DefaultDelays(), c.Delays())
	assert.Equal(t, 30*time.Second, c.CeremonyTimeout)
	assert.True(t, c.PlatformCredentials)
	assert.False(t, c.RejectStepUp)
	assert.Equal(t, 150.0, c.StepUpThreshold)
	assert.Equal(t, "EUR", c.Currency)
	assert.Equal(t, "en", c.Language)
	assert.Equal(t, ":memory:", c.MetricsDSN)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "text", c.LogFormat)
	require.NoError(t, c.Validate())
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, defaults(), cfg)
}

func TestLoadConfig_Precedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, "", "", map[string]any{
		"step_up_threshold": 500,
		"currency":          "USD",
		"log_level":         "debug",
	})
	t.Setenv("PASSKEYLAB_CURRENCY", "GBP")
	t.Setenv("PASSKEYLAB_LOG_LEVEL", "warn")
	os.Args = []string{"testbin", "-c", path, "-l", "error"}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 500.0, cfg.StepUpThreshold, "json over defaults")
	assert.Equal(t, "GBP", cfg.Currency, "env over json")
	assert.Equal(t, "error", cfg.LogLevel, "flags over env")
}

func TestLoadConfig_InvalidEnv(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}
	t.Setenv("PASSKEYLAB_STEP_UP_THRESHOLD", "lots")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestLoadConfig_InvalidResult(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin", "-t=-1"}

	_, err := LoadConfig()
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestParseEnv(t *testing.T) {
	t.Setenv("PASSKEYLAB_PLATFORM_CREDENTIALS", "false")
	t.Setenv("PASSKEYLAB_PASSKEY_LOGIN_DELAY", "250ms")

	c := defaults()
	require.NoError(t, parseEnv(c))

	assert.False(t, c.PlatformCredentials)
	assert.Equal(t, 250*time.Millisecond, c.PasskeyLoginDelay)
	assert.Equal(t, time.Second, c.PasskeyRegistrationDelay, "unset variables keep their value")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "zero threshold", mutate: func(c *Config) { c.StepUpThreshold = 0 }},
		{name: "negative threshold", mutate: func(c *Config) { c.StepUpThreshold = -1 }, wantErr: true},
		{name: "negative delay", mutate: func(c *Config) { c.PasskeyLoginDelay = -time.Second }, wantErr: true},
		{name: "bad currency", mutate: func(c *Config) { c.Currency = "XXXX" }, wantErr: true},
		{name: "bad language", mutate: func(c *Config) { c.Language = "not a tag!" }, wantErr: true},
		{name: "empty dsn", mutate: func(c *Config) { c.MetricsDSN = "" }, wantErr: true},
		{name: "bad level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: true},
		{name: "json format", mutate: func(c *Config) { c.LogFormat = "json" }},
		{name: "bad format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := defaults()
			tt.mutate(c)

			err := c.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, common.ErrValidation)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestCurrencyAndLanguage(t *testing.T) {
	c := defaults()
	c.Currency = "USD"
	c.Language = "de-DE"

	u, err := c.CurrencyUnit()
	require.NoError(t, err)
	assert.Equal(t, currency.USD, u)

	tag, err := c.LanguageTag()
	require.NoError(t, err)
	assert.Equal(t, language.MustParse("de-DE"), tag)
}
