// Package notify carries outcomes from the core to the presentation layer.
//
// The session controller and the transaction authorizer emit Event values to
// a Sink. They never format text themselves; Console is the adapter that
// turns events into the toast-style lines shown by the CLI.
package notify

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/passkeylab/internal/common"
)

// Kind says what happened.
type Kind string

const (
	RegistrationSucceeded Kind = "registration_succeeded"
	LoginSucceeded        Kind = "login_succeeded"
	ConversionTracked     Kind = "conversion_tracked"
	SignedOut             Kind = "signed_out"
	StepUpRequired        Kind = "step_up_required"
	TransactionApproved   Kind = "transaction_approved"
	TransactionDeclined   Kind = "transaction_declined"
	OperationFailed       Kind = "operation_failed"
)

// Outcome is the result class the presentation layer renders.
type Outcome string

const (
	OutcomeSuccess             Outcome = "success"
	OutcomeValidationError     Outcome = "validationError"
	OutcomeNotFound            Outcome = "notFoundError"
	OutcomePlatformUnsupported Outcome = "platformUnsupportedError"
	OutcomeInvalidAmount       Outcome = "invalidAmountError"
	OutcomeStepUpFailed        Outcome = "stepUpFailed"
	OutcomeBusy                Outcome = "busy"
	OutcomeTimeout             Outcome = "timeout"
	OutcomeInternal            Outcome = "internal"
)

// Operation names the user action an event belongs to.
type Operation string

const (
	OpRegistration Operation = "registration"
	OpLogin        Operation = "login"
	OpNavigation   Operation = "navigation"
	OpTransaction  Operation = "transaction"
)

// Event is a single outcome with the parameters needed to render it.
// Fields that do not apply to Kind are left zero.
type Event struct {
	Kind      Kind
	Outcome   Outcome
	Operation Operation
	Username  string
	Flow      string
	Duration  time.Duration
	Amount    float64
	StepUp    bool
	Err       error
}

// Failure builds an OperationFailed event for err.
func Failure(op Operation, err error) Event {
	return Event{Kind: OperationFailed, Outcome: OutcomeOf(err), Operation: op, Err: err}
}

// OutcomeOf classifies err. A nil error is a success.
func OutcomeOf(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, common.ErrValidation):
		return OutcomeValidationError
	case errors.Is(err, common.ErrCredentialNotFound):
		return OutcomeNotFound
	case errors.Is(err, common.ErrPlatformUnsupported):
		return OutcomePlatformUnsupported
	case errors.Is(err, common.ErrInvalidAmount):
		return OutcomeInvalidAmount
	case errors.Is(err, common.ErrStepUpFailed):
		return OutcomeStepUpFailed
	case errors.Is(err, common.ErrCeremonyInProgress):
		return OutcomeBusy
	case errors.Is(err, common.ErrCeremonyTimeout), errors.Is(err, context.DeadlineExceeded):
		return OutcomeTimeout
	}
	return OutcomeInternal
}

// Sink receives events.
type Sink interface {
	Emit(ctx context.Context, e Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, e Event)

func (f SinkFunc) Emit(ctx context.Context, e Event) { f(ctx, e) }

// Discard drops every event.
var Discard Sink = SinkFunc(func(context.Context, Event) {})

// Fanout forwards each event to all sinks in order.
type Fanout []Sink

func (f Fanout) Emit(ctx context.Context, e Event) {
	for _, s := range f {
		s.Emit(ctx, e)
	}
}

// Recorder keeps emitted events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Emit(_ context.Context, e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

// Events returns a copy of everything recorded so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Kinds returns the kinds of the recorded events, in order.
func (r *Recorder) Kinds() []Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := make([]Kind, len(r.events))
	for i, e := range r.events {
		kinds[i] = e.Kind
	}
	return kinds
}

// Reset forgets all recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}
