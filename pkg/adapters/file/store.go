// Package file provides a filesystem EntityStore, storing one JSON
// document per instance.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/entity"
)

// Store implements ports.EntityStore using the local filesystem.
type Store struct {
	BasePath string
}

// New creates a Store rooted at basePath. If basePath is empty it
// defaults to ".espalier/instances".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".espalier", "instances")
	}
	return &Store{BasePath: basePath}
}

func (s *Store) path(instanceID string) string {
	return filepath.Join(s.BasePath, instanceID+".json")
}

// Save persists the entity atomically: write to a temp file in the same
// directory, fsync, then rename over the destination.
func (s *Store) Save(ctx context.Context, cfg *entity.InfraConfig) error {
	if cfg.InstanceID() == "" {
		return fmt.Errorf("instance ID cannot be empty")
	}

	if err := os.MkdirAll(s.BasePath, 0o755); err != nil {
		return fmt.Errorf("ensuring store directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling entity: %w", err)
	}

	// Temp file in the same directory so the rename stays on one
	// filesystem.
	tmp, err := os.CreateTemp(s.BasePath, "tmp-"+cfg.InstanceID()+"-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath) // no-op once renamed
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path(cfg.InstanceID())); err != nil {
		return fmt.Errorf("renaming into place: %w", err)
	}
	return nil
}

// Load reads and revalidates an entity document.
func (s *Store) Load(ctx context.Context, instanceID string) (*entity.InfraConfig, error) {
	data, err := os.ReadFile(s.path(instanceID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("instance %q: %w", instanceID, domain.ErrEntityNotFound)
		}
		return nil, fmt.Errorf("reading entity file: %w", err)
	}

	var cfg entity.InfraConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling entity %q: %w", instanceID, err)
	}
	return &cfg, nil
}

// List returns the instance IDs of all stored documents.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading store directory: %w", err)
	}

	var ids []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") || strings.HasPrefix(name, "tmp-") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	return ids, nil
}

// Delete removes an entity document; missing files are a no-op.
func (s *Store) Delete(ctx context.Context, instanceID string) error {
	err := os.Remove(s.path(instanceID))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing entity file: %w", err)
	}
	return nil
}
