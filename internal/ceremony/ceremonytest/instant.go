// Package ceremonytest provides a ceremony.Performer that completes
// immediately, for tests.
package ceremonytest

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/passkeylab/internal/ceremony"
)

// Instant records every ceremony it is asked to perform and returns the
// failure registered for that kind, if any.
type Instant struct {
	mu       sync.Mutex
	failures map[ceremony.Kind]error
	calls    []ceremony.Kind
	hook     func(ceremony.Kind)
}

func New() *Instant {
	return &Instant{failures: make(map[ceremony.Kind]error)}
}

// Fail makes every later ceremony of kind return err. A nil err clears it.
func (i *Instant) Fail(kind ceremony.Kind, err error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if err == nil {
		delete(i.failures, kind)
		return
	}
	i.failures[kind] = err
}

// OnPerform registers fn to run inside each ceremony, e.g. to advance a
// manual clock by the latency the ceremony would have taken.
func (i *Instant) OnPerform(fn func(ceremony.Kind)) {
	i.mu.Lock()
	i.hook = fn
	i.mu.Unlock()
}

// Calls returns the kinds performed so far, in order.
func (i *Instant) Calls() []ceremony.Kind {
	i.mu.Lock()
	defer i.mu.Unlock()
	return append([]ceremony.Kind(nil), i.calls...)
}

func (i *Instant) Perform(ctx context.Context, kind ceremony.Kind) error {
	i.mu.Lock()
	i.calls = append(i.calls, kind)
	hook := i.hook
	err := i.failures[kind]
	i.mu.Unlock()

	if hook != nil {
		hook(kind)
	}
	if err != nil {
		return err
	}
	return ctx.Err()
}
