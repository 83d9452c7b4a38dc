package submission

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"time"
)

var errSimulated = errors.New("simulated network failure")

// Simulator stands in for the backend round trip: it waits Latency and
// fails with probability FailureRate.
type Simulator struct {
	Latency     time.Duration
	FailureRate float64

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewSimulator(latency time.Duration, failureRate float64, seed uint64) *Simulator {
	return &Simulator{
		Latency:     latency,
		FailureRate: failureRate,
		rnd:         rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// RoundTrip blocks for the configured latency or until ctx is done.
func (s *Simulator) RoundTrip(ctx context.Context) error {
	if s.Latency > 0 {
		t := time.NewTimer(s.Latency)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	} else if err := ctx.Err(); err != nil {
		return err
	}

	if s.FailureRate <= 0 {
		return nil
	}
	s.mu.Lock()
	roll := s.rnd.Float64()
	s.mu.Unlock()
	if roll < s.FailureRate {
		return errSimulated
	}
	return nil
}
