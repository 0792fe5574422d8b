package espalier

import (
	"log/slog"
	"time"

	"github.com/aretw0/espalier/pkg/entity"
)

// Version is the released version of the espalier module.
const Version = "0.3.0"

// Entity is the governed configuration aggregate. See pkg/entity for
// the full mutation API.
type Entity = entity.InfraConfig

// Params carries the initial field values for New.
type Params = entity.Params

// Option configures a new entity.
type Option = entity.Option

// New constructs a ready entity, firing all post-init hooks. It is a
// thin alias for entity.New so small consumers only import the root
// package.
func New(p Params, opts ...Option) (*Entity, error) {
	return entity.New(p, opts...)
}

// NewFromMap constructs an entity from a field-name → value mapping.
func NewFromMap(values map[string]any, opts ...Option) (*Entity, error) {
	return entity.NewFromMap(values, opts...)
}

// WithClock overrides the wall-clock source used by timestamp hooks.
func WithClock(now func() time.Time) Option { return entity.WithClock(now) }

// WithLogger sets a structured logger for mutation tracing.
func WithLogger(logger *slog.Logger) Option { return entity.WithLogger(logger) }
