// Package config loads runtime configuration for the PasskeyLab CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables prefixed with PASSKEYLAB_ (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-t float    step-up threshold; larger amounts require step-up
//	-p bool     whether the platform exposes a credential API (use -p=false)
//	-x bool     make every step-up verification fail
//	-q bool     run ceremonies without simulated latency
//	-m string   SQLite DSN for conversion metrics
//	-l string   log level: debug, info, warn, error
//
// # JSON schema
//
// Durations use timex.Duration, so they can be strings like "800ms" or
// integer nanoseconds. Absent keys keep their earlier value:
//
//	{
//	  "passkey_registration_delay": "1s",
//	  "password_registration_delay": "2s",
//	  "passkey_login_delay": "800ms",
//	  "step_up_announcement_delay": "1.2s",
//	  "step_up_verification_delay": "1s",
//	  "ceremony_timeout": "30s",
//	  "platform_credentials": true,
//	  "reject_step_up": false,
//	  "step_up_threshold": 150,
//	  "currency": "EUR",
//	  "language": "en",
//	  "metrics_dsn": ":memory:",
//	  "log_level": "info",
//	  "log_format": "text"
//	}
package config
