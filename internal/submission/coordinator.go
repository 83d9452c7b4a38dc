package submission

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/emilythestrangee/stackit/backend/internal/logging"
	"github.com/emilythestrangee/stackit/backend/internal/metrics"
)

// RoundTripper is the network leg of a submit.
type RoundTripper interface {
	RoundTrip(ctx context.Context) error
}

// Coordinator tracks which forms are submitting.
type Coordinator struct {
	transport RoundTripper
	logger    *slog.Logger
	metrics   *metrics.Metrics

	mu       sync.Mutex
	inflight map[Key]struct{}
}

func NewCoordinator(transport RoundTripper, logger *slog.Logger, m *metrics.Metrics) *Coordinator {
	return &Coordinator{
		transport: transport,
		logger:    logging.Resolve(logger).With("module", "submission"),
		metrics:   m,
		inflight:  make(map[Key]struct{}),
	}
}

// State reports whether key is currently submitting.
func (c *Coordinator) State(key Key) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.inflight[key]; ok {
		return Submitting
	}
	return Idle
}

// Submit drives one submit of the form identified by key. A second submit
// while one is in flight fails with ErrSubmitInFlight; validate runs before
// the form enters Submitting; commit runs only after a successful round
// trip. Whatever happens the form is Idle again when Submit returns.
func (c *Coordinator) Submit(ctx context.Context, key Key, validate func() error, commit func(context.Context) error) error {
	start := time.Now()
	form := string(key.Kind)

	c.mu.Lock()
	if _, busy := c.inflight[key]; busy {
		c.mu.Unlock()
		c.metrics.Submission(form, "busy", time.Since(start))
		return ErrSubmitInFlight
	}
	if validate != nil {
		if err := validate(); err != nil {
			c.mu.Unlock()
			c.metrics.Submission(form, "invalid", time.Since(start))
			c.logger.InfoContext(ctx, "submission rejected",
				"event", "submission_invalid",
				"form", key.Form(),
				"viewer", key.Viewer,
				"reason", err.Error(),
			)
			return err
		}
	}
	c.inflight[key] = struct{}{}
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.inflight, key)
		c.mu.Unlock()
	}()

	err := c.transport.RoundTrip(ctx)
	if err == nil && commit != nil {
		err = commit(ctx)
	}
	if err != nil {
		c.metrics.Submission(form, "failure", time.Since(start))
		c.logger.WarnContext(ctx, "submission failed",
			"event", "submission_failed",
			"form", key.Form(),
			"viewer", key.Viewer,
			"error", err,
		)
		return &FailureError{Kind: key.Kind, Cause: err}
	}

	c.metrics.Submission(form, "success", time.Since(start))
	c.logger.InfoContext(ctx, "submission succeeded",
		"event", "submission_succeeded",
		"form", key.Form(),
		"viewer", key.Viewer,
		"duration", time.Since(start),
	)
	return nil
}
