package ceremony

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/passkeylab/internal/common"
	"github.com/dmitrijs2005/passkeylab/internal/logging"
)

// Kind identifies a ceremony.
type Kind string

const (
	PasskeyRegistration  Kind = "passkey_registration"
	PasswordRegistration Kind = "password_registration"
	PasskeyAssertion     Kind = "passkey_assertion"
	StepUpAnnouncement   Kind = "step_up_announcement"
	StepUpVerification   Kind = "step_up_verification"
)

// ErrRejected is returned by a ceremony the authenticator declined.
var ErrRejected = errors.New("ceremony rejected by authenticator")

// Performer runs a ceremony to completion or failure.
type Performer interface {
	Perform(ctx context.Context, kind Kind) error
}

// Platform reports whether the host exposes a platform credential API.
type Platform interface {
	CredentialsAvailable() bool
}

// StaticPlatform is a Platform with a fixed answer.
type StaticPlatform bool

func (p StaticPlatform) CredentialsAvailable() bool { return bool(p) }

// Delays holds the simulated latency of every ceremony kind.
type Delays struct {
	PasskeyRegistration  time.Duration
	PasswordRegistration time.Duration
	PasskeyAssertion     time.Duration
	StepUpAnnouncement   time.Duration
	StepUpVerification   time.Duration
}

// DefaultDelays returns the demo latencies.
func DefaultDelays() Delays {
	return Delays{
		PasskeyRegistration:  1000 * time.Millisecond,
		PasswordRegistration: 2000 * time.Millisecond,
		PasskeyAssertion:     800 * time.Millisecond,
		StepUpAnnouncement:   1200 * time.Millisecond,
		StepUpVerification:   1000 * time.Millisecond,
	}
}

// For returns the latency configured for kind. Unknown kinds take no time.
func (d Delays) For(kind Kind) time.Duration {
	switch kind {
	case PasskeyRegistration:
		return d.PasskeyRegistration
	case PasswordRegistration:
		return d.PasswordRegistration
	case PasskeyAssertion:
		return d.PasskeyAssertion
	case StepUpAnnouncement:
		return d.StepUpAnnouncement
	case StepUpVerification:
		return d.StepUpVerification
	}
	return 0
}

// Simulated performs ceremonies by waiting out their latency.
type Simulated struct {
	delays   Delays
	timeout  time.Duration
	rejected map[Kind]bool
	logger   logging.Logger
}

// NewSimulated builds a Simulated performer. A zero timeout disables the
// per-ceremony deadline; rejected kinds fail with ErrRejected once their
// latency has elapsed.
func NewSimulated(delays Delays, timeout time.Duration, logger logging.Logger, rejected ...Kind) *Simulated {
	if logger == nil {
		logger = logging.Discard()
	}
	r := make(map[Kind]bool, len(rejected))
	for _, k := range rejected {
		r[k] = true
	}
	return &Simulated{delays: delays, timeout: timeout, rejected: r, logger: logger}
}

func (s *Simulated) Perform(ctx context.Context, kind Kind) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	delay := s.delays.For(kind)
	s.logger.Debug(ctx, "ceremony started", "kind", kind, "latency", delay)

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
		err := ctx.Err()
		if errors.Is(err, context.DeadlineExceeded) {
			err = common.ErrCeremonyTimeout
		}
		s.logger.Warn(ctx, "ceremony aborted", "kind", kind, "error", err)
		return fmt.Errorf("%s: %w", kind, err)
	}

	if s.rejected[kind] {
		s.logger.Info(ctx, "ceremony rejected", "kind", kind)
		return fmt.Errorf("%s: %w", kind, ErrRejected)
	}

	s.logger.Debug(ctx, "ceremony finished", "kind", kind)
	return nil
}
