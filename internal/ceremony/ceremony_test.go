package ceremony

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/passkeylab/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shortDelays() Delays {
	return Delays{
		PasskeyRegistration:  time.Millisecond,
		PasswordRegistration: 2 * time.Millisecond,
		PasskeyAssertion:     time.Millisecond,
		StepUpAnnouncement:   time.Millisecond,
		StepUpVerification:   time.Millisecond,
	}
}

func TestDelays_For(t *testing.T) {
	d := DefaultDelays()

	assert.Equal(t, time.Second, d.For(PasskeyRegistration))
	assert.Equal(t, 2*time.Second, d.For(PasswordRegistration))
	assert.Equal(t, 800*time.Millisecond, d.For(PasskeyAssertion))
	assert.Equal(t, 1200*time.Millisecond, d.For(StepUpAnnouncement))
	assert.Equal(t, time.Second, d.For(StepUpVerification))
	assert.Zero(t, d.For(Kind("unknown")))
}

func TestSimulated_CompletesAfterDelay(t *testing.T) {
	s := NewSimulated(shortDelays(), 0, nil)

	start := time.Now()
	require.NoError(t, s.Perform(context.Background(), PasswordRegistration))
	assert.GreaterOrEqual(t, time.Since(start), 2*time.Millisecond)
}

func TestSimulated_ContextCanceled(t *testing.T) {
	d := shortDelays()
	d.PasskeyAssertion = time.Hour
	s := NewSimulated(d, 0, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Perform(ctx, PasskeyAssertion)
	require.ErrorIs(t, err, context.Canceled)
}

func TestSimulated_TimeoutIsFailure(t *testing.T) {
	d := shortDelays()
	d.StepUpVerification = time.Hour
	s := NewSimulated(d, 5*time.Millisecond, nil)

	err := s.Perform(context.Background(), StepUpVerification)
	require.ErrorIs(t, err, common.ErrCeremonyTimeout)
}

func TestSimulated_RejectedKinds(t *testing.T) {
	s := NewSimulated(shortDelays(), 0, nil, StepUpVerification)

	require.NoError(t, s.Perform(context.Background(), StepUpAnnouncement))
	require.ErrorIs(t, s.Perform(context.Background(), StepUpVerification), ErrRejected)
}

func TestStaticPlatform(t *testing.T) {
	assert.True(t, StaticPlatform(true).CredentialsAvailable())
	assert.False(t, StaticPlatform(false).CredentialsAvailable())
}
