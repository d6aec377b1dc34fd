package conversion

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a slice-backed Store.
type MemoryStore struct {
	mu      sync.RWMutex
	metrics []Metric
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(_ context.Context, m Metric) error {
	s.mu.Lock()
	s.metrics = append(s.metrics, m)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Average(_ context.Context, flow Flow) (time.Duration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		sum time.Duration
		n   int
	)
	for _, m := range s.metrics {
		if m.Flow == flow && m.Completed {
			sum += m.Duration
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return sum / time.Duration(n), nil
}

func (s *MemoryStore) List(_ context.Context) ([]Metric, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Metric(nil), s.metrics...), nil
}
