// Package memory provides an in-memory EntityStore, mainly for tests
// and ephemeral workflows.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/entity"
)

// Store implements ports.EntityStore backed by a map. Entities are
// stored serialized so callers never share mutable state with the
// store.
type Store struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{entries: make(map[string][]byte)}
}

// Save persists a deep copy of the entity.
func (s *Store) Save(ctx context.Context, cfg *entity.InfraConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling entity: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[cfg.InstanceID()] = data
	return nil
}

// Load retrieves an entity by instance ID.
func (s *Store) Load(ctx context.Context, instanceID string) (*entity.InfraConfig, error) {
	s.mu.RLock()
	data, ok := s.entries[instanceID]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("instance %q: %w", instanceID, domain.ErrEntityNotFound)
	}

	var cfg entity.InfraConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling entity %q: %w", instanceID, err)
	}
	return &cfg, nil
}

// List returns all stored instance IDs.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.entries))
	for id := range s.entries {
		ids = append(ids, id)
	}
	return ids, nil
}

// Delete removes an entity; missing IDs are a no-op.
func (s *Store) Delete(ctx context.Context, instanceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, instanceID)
	return nil
}
