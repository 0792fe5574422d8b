package entity_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/entity"
)

func TestRoundTrip_PreservesStateAndHistory(t *testing.T) {
	p := validParams()
	p.Features = []domain.Feature{"bolt_e2e", "pcf2"}
	p.PCEConfig = &domain.PCEConfig{Region: "us-west-2", ClusterName: "pce-1"}

	c, err := entity.New(p, entity.WithClock(steppedClock(5000)))
	require.NoError(t, err)
	require.NoError(t, c.SetStatus(domain.StatusRunning))
	require.NoError(t, c.SetStatus(domain.StatusCompleted))

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var restored entity.InfraConfig
	require.NoError(t, json.Unmarshal(data, &restored))

	require.Equal(t, c.InstanceID(), restored.InstanceID())
	require.Equal(t, c.Role(), restored.Role())
	require.Equal(t, c.Status(), restored.Status())
	require.Equal(t, c.StatusUpdateTS(), restored.StatusUpdateTS())
	require.Equal(t, c.GameType(), restored.GameType())
	require.Equal(t, c.NumPIDContainers(), restored.NumPIDContainers())
	require.Equal(t, c.NumMPCContainers(), restored.NumMPCContainers())
	require.Equal(t, c.Tier(), restored.Tier())
	require.Equal(t, c.Features(), restored.Features())
	require.Equal(t, c.PCEConfig(), restored.PCEConfig())
	require.Equal(t, c.CreationTS(), restored.CreationTS())
	require.Equal(t, c.StatusUpdates(), restored.StatusUpdates())
}

func TestRoundTrip_RestoredEntityStaysGoverned(t *testing.T) {
	c, err := entity.New(validParams())
	require.NoError(t, err)

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var restored entity.InfraConfig
	require.NoError(t, json.Unmarshal(data, &restored))

	// Immutability survives the round trip.
	var ferr *domain.ImmutableFieldError
	require.ErrorAs(t, restored.Set(entity.FieldGameType, "ATTRIBUTION"), &ferr)

	// So do cross-field invariants.
	var verr *domain.InvariantError
	require.ErrorAs(t, restored.Set(entity.FieldNumPIDContainers, 99), &verr)

	// And the derived-state hook keeps appending.
	require.NoError(t, restored.SetStatus(domain.StatusRunning))
	require.Len(t, restored.StatusUpdates(), 2)
}

func TestUnmarshal_RejectsInvalidPersistedState(t *testing.T) {
	raw := []byte(`{
		"instance_id": "corrupt-1",
		"role": "PUBLISHER",
		"status": "PENDING",
		"num_pid_containers": 9,
		"num_mpc_containers": 2,
		"status_updates": []
	}`)

	var restored entity.InfraConfig
	err := json.Unmarshal(raw, &restored)

	var cerr *domain.ConstructionError
	require.ErrorAs(t, err, &cerr)
}

func TestUnmarshal_DoesNotReplayDerivedStateHooks(t *testing.T) {
	c, err := entity.New(validParams(), entity.WithClock(steppedClock(7000)))
	require.NoError(t, err)
	require.NoError(t, c.SetStatus(domain.StatusRunning))
	history := c.StatusUpdates()

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var restored entity.InfraConfig
	require.NoError(t, json.Unmarshal(data, &restored))

	// Loading must not add entries or touch status_update_ts.
	require.Equal(t, history, restored.StatusUpdates())
	require.Equal(t, c.StatusUpdateTS(), restored.StatusUpdateTS())
}
