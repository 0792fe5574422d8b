package entity

import (
	"fmt"
	"maps"
	"slices"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/hooks"
)

// Set writes a new value to a governed field. The sequence is fixed:
// mutability check, typed assignment, then the field's post-update hooks
// in registration order against the post-write state. If a hook rejects,
// the write is rolled back in full before the error is returned, so the
// entity never observably violates its invariants between calls.
func (c *InfraConfig) Set(field string, value any) error {
	meta, ok := fieldRegistry.Field(field)
	if !ok {
		return &domain.UnknownFieldError{Field: field}
	}

	if meta.Mutability == hooks.ImmutableAfterInit && c.assigned[field] {
		err := &domain.ImmutableFieldError{Field: field, Value: value}
		c.reject(field, err)
		return err
	}

	write := fieldWriters[field]
	snap := c.snapshot()

	if err := write(c, value); err != nil {
		// Typed assignment failed before any state changed.
		err = fmt.Errorf("cannot assign field %q: %w", field, err)
		c.reject(field, err)
		return err
	}

	for _, h := range fieldRegistry.HooksFor(field, hooks.PostUpdate) {
		if err := h.Fire(c); err != nil {
			c.restore(snap)
			c.reject(field, err)
			return err
		}
	}

	c.observer.MutationApplied(field)
	c.logger.Debug("field updated", "instance_id", c.instanceID, "field", field)
	return nil
}

// SetStatus is shorthand for Set(FieldStatus, status).
func (c *InfraConfig) SetStatus(status domain.Status) error {
	return c.Set(FieldStatus, status)
}

func (c *InfraConfig) reject(field string, err error) {
	c.observer.MutationRejected(field, err)
	c.logger.Debug("mutation rejected", "instance_id", c.instanceID, "field", field, "err", err)
}

// snapshot captures the entity state a rejected write must restore.
// Slices and maps that hooks or writers mutate are cloned; the wiring
// (clock, observer, logger) is carried through untouched.
func (c *InfraConfig) snapshot() InfraConfig {
	snap := *c
	snap.statusUpdates = slices.Clone(c.statusUpdates)
	snap.features = maps.Clone(c.features)
	return snap
}

func (c *InfraConfig) restore(snap InfraConfig) {
	*c = snap
}
