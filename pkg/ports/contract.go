package ports

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/entity"
)

// RunEntityStoreContract verifies an adapter against the EntityStore
// semantics. Adapter test suites call this with a freshly initialized,
// empty store.
func RunEntityStoreContract(t *testing.T, store EntityStore) {
	t.Helper()
	ctx := context.Background()

	newEntity := func(t *testing.T, id string) *entity.InfraConfig {
		t.Helper()
		cfg, err := entity.New(entity.Params{
			InstanceID:       id,
			Role:             domain.RolePublisher,
			Status:           domain.StatusPending,
			GameType:         domain.GameTypeLift,
			NumPIDContainers: 2,
			NumMPCContainers: 4,
		})
		if err != nil {
			t.Fatalf("constructing fixture entity: %v", err)
		}
		return cfg
	}

	t.Run("SaveAndLoad", func(t *testing.T) {
		cfg := newEntity(t, "contract-1")
		if err := cfg.SetStatus(domain.StatusRunning); err != nil {
			t.Fatalf("status update: %v", err)
		}

		if err := store.Save(ctx, cfg); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		loaded, err := store.Load(ctx, "contract-1")
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if loaded.InstanceID() != "contract-1" {
			t.Errorf("instance ID = %q", loaded.InstanceID())
		}
		if loaded.Status() != domain.StatusRunning {
			t.Errorf("status = %q, want RUNNING", loaded.Status())
		}
		if len(loaded.StatusUpdates()) != 2 {
			t.Errorf("history length = %d, want 2", len(loaded.StatusUpdates()))
		}
	})

	t.Run("LoadedEntityStaysGoverned", func(t *testing.T) {
		cfg := newEntity(t, "contract-governed")
		if err := store.Save(ctx, cfg); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		loaded, err := store.Load(ctx, "contract-governed")
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}

		var ferr *domain.ImmutableFieldError
		if err := loaded.Set(entity.FieldInstanceID, "renamed"); !errors.As(err, &ferr) {
			t.Errorf("expected ImmutableFieldError after load, got %v", err)
		}
	})

	t.Run("LoadMissing", func(t *testing.T) {
		_, err := store.Load(ctx, "contract-missing")
		if !errors.Is(err, domain.ErrEntityNotFound) {
			t.Errorf("expected ErrEntityNotFound, got %v", err)
		}
	})

	t.Run("List", func(t *testing.T) {
		if err := store.Save(ctx, newEntity(t, "contract-list-a")); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if err := store.Save(ctx, newEntity(t, "contract-list-b")); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		ids, err := store.List(ctx)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		lookup := make(map[string]bool, len(ids))
		for _, id := range ids {
			lookup[id] = true
		}
		if !lookup["contract-list-a"] || !lookup["contract-list-b"] {
			t.Errorf("List missing saved IDs: %v", ids)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := store.Save(ctx, newEntity(t, "contract-del")); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if err := store.Delete(ctx, "contract-del"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, err := store.Load(ctx, "contract-del"); !errors.Is(err, domain.ErrEntityNotFound) {
			t.Errorf("expected ErrEntityNotFound after delete, got %v", err)
		}
		// Deleting again is a no-op.
		if err := store.Delete(ctx, "contract-del"); err != nil {
			t.Errorf("second Delete errored: %v", err)
		}
	})

	t.Run("SaveOverwrites", func(t *testing.T) {
		cfg := newEntity(t, "contract-overwrite")
		if err := store.Save(ctx, cfg); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if err := cfg.SetStatus(domain.StatusCompleted); err != nil {
			t.Fatalf("status update: %v", err)
		}
		if err := store.Save(ctx, cfg); err != nil {
			t.Fatalf("second Save failed: %v", err)
		}

		loaded, err := store.Load(ctx, "contract-overwrite")
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if loaded.Status() != domain.StatusCompleted {
			t.Errorf("status = %q, want COMPLETED", loaded.Status())
		}
	})
}
