// Package ports declares the boundary interfaces of the entity layer
// and reusable contract tests for their adapters.
package ports

import (
	"context"

	"github.com/aretw0/espalier/pkg/entity"
)

// EntityStore persists governed entities between workflow stages. An
// entity is keyed by its instance ID.
type EntityStore interface {
	// Save persists the entity's full state, including its status
	// history.
	Save(ctx context.Context, cfg *entity.InfraConfig) error

	// Load retrieves an entity by instance ID.
	// Returns domain.ErrEntityNotFound if it does not exist.
	Load(ctx context.Context, instanceID string) (*entity.InfraConfig, error)

	// List returns the instance IDs of all stored entities.
	List(ctx context.Context) ([]string, error)

	// Delete removes an entity. Deleting a missing entity is not an
	// error.
	Delete(ctx context.Context, instanceID string) error
}
