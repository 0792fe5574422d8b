package espalier_test

import (
	"errors"
	"testing"

	espalier "github.com/aretw0/espalier"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/entity"
)

func TestFacade_NewAndMutate(t *testing.T) {
	cfg, err := espalier.New(espalier.Params{
		InstanceID:       "facade-1",
		Role:             domain.RolePartner,
		Status:           domain.StatusPending,
		GameType:         domain.GameTypeAttribution,
		NumPIDContainers: 1,
		NumMPCContainers: 3,
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := cfg.SetStatus(domain.StatusRunning); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}
	if got := len(cfg.StatusUpdates()); got != 2 {
		t.Errorf("history length = %d, want 2", got)
	}

	var verr *domain.InvariantError
	if err := cfg.Set(entity.FieldNumPIDContainers, 4); !errors.As(err, &verr) {
		t.Errorf("expected InvariantError, got %v", err)
	}
}

func TestFacade_NewFromMap(t *testing.T) {
	cfg, err := espalier.NewFromMap(map[string]any{
		"instance_id":        "facade-map",
		"num_pid_containers": 1,
		"num_mpc_containers": 1,
	})
	if err != nil {
		t.Fatalf("NewFromMap failed: %v", err)
	}
	if cfg.Status() != domain.StatusCreated {
		t.Errorf("default status = %s, want CREATED", cfg.Status())
	}
}
