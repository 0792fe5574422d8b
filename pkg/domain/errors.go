package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEntityNotFound is returned when an instance ID cannot be found in a store.
var ErrEntityNotFound = errors.New("entity not found")

// ImmutableFieldError reports a write to a field that was already
// finalized as immutable. The entity is left untouched.
type ImmutableFieldError struct {
	Field string
	Value any
}

func (e *ImmutableFieldError) Error() string {
	return fmt.Sprintf("field %q is immutable after initialization (attempted value: %v)", e.Field, e.Value)
}

// InvariantError reports a guarded condition that held after a write or
// at construction completion. Fields names the fields involved.
type InvariantError struct {
	Fields  []string
	Message string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violated on [%s]: %s", strings.Join(e.Fields, ", "), e.Message)
}

// ConstructionError wraps the first violation encountered while firing
// post-init hooks. The entity never escapes to the caller.
type ConstructionError struct {
	Err error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("entity construction failed: %v", e.Err)
}

func (e *ConstructionError) Unwrap() error {
	return e.Err
}

// UnknownFieldError reports an update addressed to a field that is not
// registered on the entity.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field %q", e.Field)
}
