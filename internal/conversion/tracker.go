package conversion

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/passkeylab/internal/clock"
	"github.com/dmitrijs2005/passkeylab/internal/logging"
)

// Tracker times authentication flows.
type Tracker struct {
	mu     sync.Mutex
	clock  clock.Clock
	store  Store
	logger logging.Logger
	open   *Metric
}

// NewTracker returns a Tracker reading time from c and recording into store.
func NewTracker(c clock.Clock, store Store, logger logging.Logger) *Tracker {
	if c == nil {
		c = clock.System()
	}
	if store == nil {
		store = NewMemoryStore()
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Tracker{clock: c, store: store, logger: logger}
}

// Start opens a metric for flow, replacing any metric that is still open.
func (t *Tracker) Start(ctx context.Context, flow Flow) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.open != nil {
		t.logger.Debug(ctx, "discarding open conversion metric",
			"flow", t.open.Flow, "started_at", t.open.StartedAt)
	}
	t.open = &Metric{Flow: flow, StartedAt: t.clock.Now()}
}

// Complete closes the open metric and records it. It returns (nil, nil)
// when nothing is open. If the store fails the metric stays open.
func (t *Tracker) Complete(ctx context.Context) (*Metric, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.open == nil {
		return nil, nil
	}

	m := *t.open
	m.FinishedAt = t.clock.Now()
	m.Duration = m.FinishedAt.Sub(m.StartedAt)
	m.Completed = true

	if err := t.store.Append(ctx, m); err != nil {
		return nil, fmt.Errorf("record conversion metric: %w", err)
	}
	t.open = nil

	t.logger.Info(ctx, "conversion tracked", "flow", m.Flow, "duration_ms", m.DurationMs())
	return &m, nil
}

// Open returns the open metric, if any.
func (t *Tracker) Open() (Metric, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.open == nil {
		return Metric{}, false
	}
	return *t.open, true
}

// AverageDuration is the mean duration of completed metrics for flow; 0 when
// none were recorded.
func (t *Tracker) AverageDuration(ctx context.Context, flow Flow) (time.Duration, error) {
	return t.store.Average(ctx, flow)
}

// History returns completed metrics in completion order.
func (t *Tracker) History(ctx context.Context) ([]Metric, error) {
	return t.store.List(ctx)
}
