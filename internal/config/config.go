package config

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/dmitrijs2005/passkeylab/internal/ceremony"
	"github.com/dmitrijs2005/passkeylab/internal/common"
	"github.com/dmitrijs2005/passkeylab/internal/conversion"
	"github.com/dmitrijs2005/passkeylab/internal/logging"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

// Config holds runtime settings for the PasskeyLab CLI.
type Config struct {
	PasskeyRegistrationDelay  time.Duration `env:"PASSKEYLAB_PASSKEY_REGISTRATION_DELAY"`
	PasswordRegistrationDelay time.Duration `env:"PASSKEYLAB_PASSWORD_REGISTRATION_DELAY"`
	PasskeyLoginDelay         time.Duration `env:"PASSKEYLAB_PASSKEY_LOGIN_DELAY"`
	StepUpAnnouncementDelay   time.Duration `env:"PASSKEYLAB_STEP_UP_ANNOUNCEMENT_DELAY"`
	StepUpVerificationDelay   time.Duration `env:"PASSKEYLAB_STEP_UP_VERIFICATION_DELAY"`
	// CeremonyTimeout bounds each ceremony; zero means no limit.
	CeremonyTimeout time.Duration `env:"PASSKEYLAB_CEREMONY_TIMEOUT"`

	PlatformCredentials bool    `env:"PASSKEYLAB_PLATFORM_CREDENTIALS"`
	RejectStepUp        bool    `env:"PASSKEYLAB_REJECT_STEP_UP"`
	StepUpThreshold     float64 `env:"PASSKEYLAB_STEP_UP_THRESHOLD"`

	Currency string `env:"PASSKEYLAB_CURRENCY"`
	Language string `env:"PASSKEYLAB_LANGUAGE"`

	MetricsDSN string `env:"PASSKEYLAB_METRICS_DSN"`

	LogLevel  string `env:"PASSKEYLAB_LOG_LEVEL"`
	LogFormat string `env:"PASSKEYLAB_LOG_FORMAT"`
}

// LoadDefaults populates c with the latencies and limits of the demo.
func (c *Config) LoadDefaults() {
	d := ceremony.DefaultDelays()
	c.PasskeyRegistrationDelay = d.PasskeyRegistration
	c.PasswordRegistrationDelay = d.PasswordRegistration
	c.PasskeyLoginDelay = d.PasskeyAssertion
	c.StepUpAnnouncementDelay = d.StepUpAnnouncement
	c.StepUpVerificationDelay = d.StepUpVerification
	c.CeremonyTimeout = 30 * time.Second

	c.PlatformCredentials = true
	c.RejectStepUp = false
	c.StepUpThreshold = common.DefaultStepUpThreshold

	c.Currency = "EUR"
	c.Language = "en"
	c.MetricsDSN = conversion.MemoryDSN
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// LoadConfig builds a Config from defaults, the JSON file, the environment
// and flags, in that order, and validates the result.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	parseFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Delays returns the ceremony latencies.
func (c *Config) Delays() ceremony.Delays {
	return ceremony.Delays{
		PasskeyRegistration:  c.PasskeyRegistrationDelay,
		PasswordRegistration: c.PasswordRegistrationDelay,
		PasskeyAssertion:     c.PasskeyLoginDelay,
		StepUpAnnouncement:   c.StepUpAnnouncementDelay,
		StepUpVerification:   c.StepUpVerificationDelay,
	}
}

// CurrencyUnit parses Currency as an ISO 4217 code.
func (c *Config) CurrencyUnit() (currency.Unit, error) {
	u, err := currency.ParseISO(c.Currency)
	if err != nil {
		return currency.Unit{}, fmt.Errorf("currency %q: %w", c.Currency, err)
	}
	return u, nil
}

// LanguageTag parses Language as a BCP 47 tag.
func (c *Config) LanguageTag() (language.Tag, error) {
	tag, err := language.Parse(c.Language)
	if err != nil {
		return language.Und, fmt.Errorf("language %q: %w", c.Language, err)
	}
	return tag, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	for name, d := range map[string]time.Duration{
		"passkey registration delay":  c.PasskeyRegistrationDelay,
		"password registration delay": c.PasswordRegistrationDelay,
		"passkey login delay":         c.PasskeyLoginDelay,
		"step-up announcement delay":  c.StepUpAnnouncementDelay,
		"step-up verification delay":  c.StepUpVerificationDelay,
		"ceremony timeout":            c.CeremonyTimeout,
	} {
		if d < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative", name))
		}
	}

	if math.IsNaN(c.StepUpThreshold) || math.IsInf(c.StepUpThreshold, 0) || c.StepUpThreshold < 0 {
		errs = append(errs, fmt.Errorf("step-up threshold must be a non-negative number, got %v", c.StepUpThreshold))
	}
	if _, err := c.CurrencyUnit(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.LanguageTag(); err != nil {
		errs = append(errs, err)
	}
	if c.MetricsDSN == "" {
		errs = append(errs, errors.New("metrics DSN must not be empty"))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("log format must be text or json, got %q", c.LogFormat))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", common.ErrValidation, err)
	}
	return nil
}
