// Package common defines shared constants and sentinel errors used across
// the session, conversion and transaction layers of PasskeyLab. Callers
// should use errors.Is to match these values.
package common

import "errors"

var (
	// Input errors. The user corrects the input; no state is mutated.
	ErrValidation    = errors.New("validation error")
	ErrInvalidAmount = errors.New("invalid amount")

	// Ceremony errors.
	ErrPlatformUnsupported = errors.New("platform credential API not available")
	ErrCredentialNotFound  = errors.New("user not found or no passkey registered")
	ErrStepUpFailed        = errors.New("step-up authentication failed")
	ErrCeremonyTimeout     = errors.New("ceremony timed out")

	// Session flow control.
	ErrCeremonyInProgress = errors.New("another ceremony is in progress")
	ErrInvalidTransition  = errors.New("invalid view transition")
)
