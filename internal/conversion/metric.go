// Package conversion measures how long authentication flows take.
//
// A Tracker holds at most one open metric. Start opens it, Complete closes
// it and appends it to the history kept by a Store. Starting a new flow while
// one is open discards the open metric without recording it: the last start
// wins. Completing with nothing open is a silent no-op.
package conversion

import (
	"context"
	"fmt"
	"time"
)

// Flow is the authentication method being measured.
type Flow string

const (
	FlowPasskey  Flow = "passkey"
	FlowPassword Flow = "password"
)

// Flows lists every known flow in display order.
var Flows = []Flow{FlowPasskey, FlowPassword}

// ParseFlow validates s as a Flow.
func ParseFlow(s string) (Flow, error) {
	switch f := Flow(s); f {
	case FlowPasskey, FlowPassword:
		return f, nil
	}
	return "", fmt.Errorf("unknown flow %q", s)
}

func (f Flow) String() string { return string(f) }

// Metric is one timed flow. FinishedAt and Duration are set only once the
// metric is completed.
type Metric struct {
	Flow       Flow
	StartedAt  time.Time
	FinishedAt time.Time
	Duration   time.Duration
	Completed  bool
}

// DurationMs is the measured duration in whole milliseconds.
func (m Metric) DurationMs() int64 {
	return m.Duration.Milliseconds()
}

// Store keeps completed metrics in completion order.
type Store interface {
	Append(ctx context.Context, m Metric) error
	// Average returns the mean duration of metrics for flow, or 0 if there are none.
	Average(ctx context.Context, flow Flow) (time.Duration, error)
	List(ctx context.Context) ([]Metric, error)
}
