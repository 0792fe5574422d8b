package entity

import (
	"log/slog"
	"time"
)

// Observer receives the outcome of every governed mutation. Implemented
// by pkg/observability for metrics; the default discards everything.
type Observer interface {
	MutationApplied(field string)
	MutationRejected(field string, err error)
}

type nopObserver struct{}

func (nopObserver) MutationApplied(string)         {}
func (nopObserver) MutationRejected(string, error) {}

// Option configures an entity at construction time.
type Option func(*InfraConfig)

// WithClock overrides the wall-clock source used by timestamp hooks.
// Intended for tests; the default is time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *InfraConfig) {
		if now != nil {
			c.now = now
		}
	}
}

// WithObserver registers a mutation observer.
func WithObserver(o Observer) Option {
	return func(c *InfraConfig) {
		if o != nil {
			c.observer = o
		}
	}
}

// WithLogger sets a structured logger for mutation tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *InfraConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Configure re-applies options to an existing entity. Useful after
// deserialization, which restores state but not clock, observer, or
// logger wiring.
func (c *InfraConfig) Configure(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}
