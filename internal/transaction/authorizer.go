package transaction

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/dmitrijs2005/passkeylab/internal/ceremony"
	"github.com/dmitrijs2005/passkeylab/internal/common"
	"github.com/dmitrijs2005/passkeylab/internal/logging"
	"github.com/dmitrijs2005/passkeylab/internal/notify"
)

type Status string

const (
	Approved Status = "approved"
	Declined Status = "declined"
)

type Reason string

const (
	ReasonNone         Reason = ""
	ReasonStepUpFailed Reason = "step_up_failed"
)

// Decision is the outcome of one authorization.
type Decision struct {
	Amount float64
	StepUp bool
	Status Status
	Reason Reason
}

type Authorizer struct {
	threshold  float64
	ceremonies ceremony.Performer
	events     notify.Sink
	logger     logging.Logger

	mu   sync.Mutex
	busy bool
}

func NewAuthorizer(threshold float64, ceremonies ceremony.Performer, events notify.Sink, logger logging.Logger) *Authorizer {
	if events == nil {
		events = notify.Discard
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Authorizer{threshold: threshold, ceremonies: ceremonies, events: events, logger: logger}
}

// Threshold is the largest amount approved without step-up.
func (a *Authorizer) Threshold() float64 {
	return a.threshold
}

func (a *Authorizer) RequiresStepUp(amount float64) bool {
	return amount > a.threshold
}

// ParseAmount reads a non-negative decimal amount.
func ParseAmount(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("%w: please enter a valid amount", common.ErrInvalidAmount)
	}
	// ParseFloat also takes hex floats and digit separators.
	if strings.ContainsAny(s, "_xX") {
		return 0, fmt.Errorf("%w: %q is not a decimal number", common.ErrInvalidAmount, s)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", common.ErrInvalidAmount, s)
	}
	if err := checkAmount(v); err != nil {
		return 0, err
	}
	return v, nil
}

func checkAmount(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: amount must be finite", common.ErrInvalidAmount)
	}
	if v < 0 {
		return fmt.Errorf("%w: amount must not be negative", common.ErrInvalidAmount)
	}
	return nil
}

// Authorize parses raw and authorizes the resulting amount.
func (a *Authorizer) Authorize(ctx context.Context, raw string) (Decision, error) {
	amount, err := ParseAmount(raw)
	if err != nil {
		return a.fail(ctx, err)
	}
	return a.AuthorizeAmount(ctx, amount)
}

// AuthorizeAmount applies the step-up rule to an already parsed amount.
func (a *Authorizer) AuthorizeAmount(ctx context.Context, amount float64) (Decision, error) {
	if err := checkAmount(amount); err != nil {
		return a.fail(ctx, err)
	}

	if err := a.acquire(); err != nil {
		return a.fail(ctx, err)
	}
	defer a.release()

	if !a.RequiresStepUp(amount) {
		return a.approve(ctx, amount, false), nil
	}

	a.logger.Info(ctx, "step-up required", "amount", amount, "threshold", a.threshold)

	if err := a.ceremonies.Perform(ctx, ceremony.StepUpAnnouncement); err != nil {
		return a.decline(ctx, amount, err)
	}
	a.events.Emit(ctx, notify.Event{
		Kind:      notify.StepUpRequired,
		Outcome:   notify.OutcomeSuccess,
		Operation: notify.OpTransaction,
		Amount:    amount,
		StepUp:    true,
	})

	if err := a.ceremonies.Perform(ctx, ceremony.StepUpVerification); err != nil {
		return a.decline(ctx, amount, err)
	}

	return a.approve(ctx, amount, true), nil
}

func (a *Authorizer) approve(ctx context.Context, amount float64, stepUp bool) Decision {
	a.logger.Info(ctx, "transaction approved", "amount", amount, "step_up", stepUp)
	a.events.Emit(ctx, notify.Event{
		Kind:      notify.TransactionApproved,
		Outcome:   notify.OutcomeSuccess,
		Operation: notify.OpTransaction,
		Amount:    amount,
		StepUp:    stepUp,
	})
	return Decision{Amount: amount, StepUp: stepUp, Status: Approved}
}

func (a *Authorizer) decline(ctx context.Context, amount float64, cause error) (Decision, error) {
	err := fmt.Errorf("%w: %w", common.ErrStepUpFailed, cause)
	a.logger.Warn(ctx, "transaction declined", "amount", amount, "error", err)
	a.events.Emit(ctx, notify.Event{
		Kind:      notify.TransactionDeclined,
		Outcome:   notify.OutcomeStepUpFailed,
		Operation: notify.OpTransaction,
		Amount:    amount,
		StepUp:    true,
		Err:       err,
	})
	return Decision{Amount: amount, StepUp: true, Status: Declined, Reason: ReasonStepUpFailed}, err
}

func (a *Authorizer) fail(ctx context.Context, err error) (Decision, error) {
	a.logger.Warn(ctx, "transaction rejected", "error", err)
	a.events.Emit(ctx, notify.Failure(notify.OpTransaction, err))
	return Decision{}, err
}

func (a *Authorizer) acquire() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.busy {
		return common.ErrCeremonyInProgress
	}
	a.busy = true
	return nil
}

func (a *Authorizer) release() {
	a.mu.Lock()
	a.busy = false
	a.mu.Unlock()
}
