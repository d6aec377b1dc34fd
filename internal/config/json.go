package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/passkeylab/internal/flagx"
	"github.com/dmitrijs2005/passkeylab/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields tell an absent key apart from a zero value.
type JsonConfig struct {
	PasskeyRegistrationDelay  *timex.Duration `json:"passkey_registration_delay"`
	PasswordRegistrationDelay *timex.Duration `json:"password_registration_delay"`
	PasskeyLoginDelay         *timex.Duration `json:"passkey_login_delay"`
	StepUpAnnouncementDelay   *timex.Duration `json:"step_up_announcement_delay"`
	StepUpVerificationDelay   *timex.Duration `json:"step_up_verification_delay"`
	CeremonyTimeout           *timex.Duration `json:"ceremony_timeout"`

	PlatformCredentials *bool    `json:"platform_credentials"`
	RejectStepUp        *bool    `json:"reject_step_up"`
	StepUpThreshold     *float64 `json:"step_up_threshold"`

	Currency   *string `json:"currency"`
	Language   *string `json:"language"`
	MetricsDSN *string `json:"metrics_dsn"`
	LogLevel   *string `json:"log_level"`
	LogFormat  *string `json:"log_format"`
}

// parseJson overlays cfg with the JSON file named by -c or -config. Without
// the flag it does nothing. Read and unmarshal errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFileFlag()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	jc.apply(cfg)
}

func (jc *JsonConfig) apply(cfg *Config) {
	setDuration(&cfg.PasskeyRegistrationDelay, jc.PasskeyRegistrationDelay)
	setDuration(&cfg.PasswordRegistrationDelay, jc.PasswordRegistrationDelay)
	setDuration(&cfg.PasskeyLoginDelay, jc.PasskeyLoginDelay)
	setDuration(&cfg.StepUpAnnouncementDelay, jc.StepUpAnnouncementDelay)
	setDuration(&cfg.StepUpVerificationDelay, jc.StepUpVerificationDelay)
	setDuration(&cfg.CeremonyTimeout, jc.CeremonyTimeout)

	set(&cfg.PlatformCredentials, jc.PlatformCredentials)
	set(&cfg.RejectStepUp, jc.RejectStepUp)
	set(&cfg.StepUpThreshold, jc.StepUpThreshold)
	set(&cfg.Currency, jc.Currency)
	set(&cfg.Language, jc.Language)
	set(&cfg.MetricsDSN, jc.MetricsDSN)
	set(&cfg.LogLevel, jc.LogLevel)
	set(&cfg.LogFormat, jc.LogFormat)
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func setDuration(dst *time.Duration, src *timex.Duration) {
	if src != nil {
		*dst = src.Duration
	}
}
