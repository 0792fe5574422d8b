package entity_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/entity"
)

// steppedClock returns a deterministic clock that advances by one second
// per call.
func steppedClock(start int64) func() time.Time {
	t := start - 1
	return func() time.Time {
		t++
		return time.Unix(t, 0).UTC()
	}
}

func validParams() entity.Params {
	return entity.Params{
		InstanceID:              "instance-123",
		Role:                    domain.RolePublisher,
		Status:                  domain.StatusPending,
		GameType:                domain.GameTypeLift,
		NumPIDContainers:        2,
		NumMPCContainers:        5,
		NumFilesPerMPCContainer: 4,
		Tier:                    "canary",
	}
}

func TestNew_AppliesDefaults(t *testing.T) {
	before := time.Now().UTC().Unix()
	c, err := entity.New(entity.Params{
		InstanceID:       "instance-defaults",
		Role:             domain.RolePartner,
		GameType:         domain.GameTypeAttribution,
		NumPIDContainers: 1,
		NumMPCContainers: 1,
	})
	require.NoError(t, err)

	require.Equal(t, domain.StatusCreated, c.Status())
	require.Equal(t, entity.DefaultStageFlow, c.StageFlow())
	require.Equal(t, 1, c.Concurrency())
	require.GreaterOrEqual(t, c.CreationTS(), before)
}

func TestNew_RequiresInstanceID(t *testing.T) {
	_, err := entity.New(entity.Params{})
	require.Error(t, err)
}

func TestNew_InitialStatusHistoryEntry(t *testing.T) {
	c, err := entity.New(validParams(), entity.WithClock(steppedClock(1000)))
	require.NoError(t, err)

	updates := c.StatusUpdates()
	require.Len(t, updates, 1)
	require.Equal(t, domain.StatusPending, updates[0].Status)
	require.Equal(t, updates[0].Timestamp, c.StatusUpdateTS())
}

func TestNew_ContainerInvariantFailsConstruction(t *testing.T) {
	p := validParams()
	p.NumPIDContainers = 6
	p.NumMPCContainers = 5

	c, err := entity.New(p)
	require.Nil(t, c, "no partially constructed entity may escape")

	var cerr *domain.ConstructionError
	require.ErrorAs(t, err, &cerr)
	var verr *domain.InvariantError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Message, "num_pid_containers=6")
	require.Contains(t, verr.Message, "num_mpc_containers=5")
}

func TestNew_EqualContainerCountsSucceed(t *testing.T) {
	p := validParams()
	p.NumPIDContainers = 5
	p.NumMPCContainers = 5
	_, err := entity.New(p)
	require.NoError(t, err)
}

func TestSet_ImmutableFieldRejected(t *testing.T) {
	c, err := entity.New(validParams())
	require.NoError(t, err)

	for _, field := range []string{
		entity.FieldInstanceID,
		entity.FieldGameType,
		entity.FieldTier,
		entity.FieldCreationTS,
	} {
		err := c.Set(field, "other")
		var ferr *domain.ImmutableFieldError
		require.ErrorAs(t, err, &ferr, "field %s", field)
		require.Equal(t, field, ferr.Field)
	}

	// Idempotent rejection: values unchanged after repeated attempts.
	require.Equal(t, "instance-123", c.InstanceID())
	require.Equal(t, domain.GameTypeLift, c.GameType())
	require.Equal(t, "canary", c.Tier())

	err = c.Set(entity.FieldInstanceID, "other")
	require.Error(t, err)
	require.Equal(t, "instance-123", c.InstanceID())
}

func TestSet_StatusAppendsHistory(t *testing.T) {
	c, err := entity.New(validParams(), entity.WithClock(steppedClock(2000)))
	require.NoError(t, err)

	require.NoError(t, c.SetStatus(domain.StatusRunning))
	require.NoError(t, c.SetStatus(domain.StatusCompleted))

	updates := c.StatusUpdates()
	require.Len(t, updates, 3)
	require.Equal(t, domain.StatusPending, updates[0].Status)
	require.Equal(t, domain.StatusRunning, updates[1].Status)
	require.Equal(t, domain.StatusCompleted, updates[2].Status)

	// Timestamps are monotonically non-decreasing and the last one is
	// the entity's status_update_ts.
	for i := 1; i < len(updates); i++ {
		require.GreaterOrEqual(t, updates[i].Timestamp, updates[i-1].Timestamp)
	}
	require.Equal(t, updates[2].Timestamp, c.StatusUpdateTS())
	require.Equal(t, domain.StatusCompleted, c.Status())
}

func TestStatusUpdates_ReturnsCopy(t *testing.T) {
	c, err := entity.New(validParams())
	require.NoError(t, err)

	updates := c.StatusUpdates()
	updates[0].Status = domain.StatusFailed

	require.Equal(t, domain.StatusPending, c.StatusUpdates()[0].Status)
}

func TestSet_ContainerInvariantRollsBack(t *testing.T) {
	// countA=2, countB=5 constructs fine.
	c, err := entity.New(validParams())
	require.NoError(t, err)

	// countA=6 > countB=5 must fail and leave countA at 2.
	err = c.Set(entity.FieldNumPIDContainers, 6)
	var verr *domain.InvariantError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Message, "num_pid_containers=6")
	require.Contains(t, verr.Message, "num_mpc_containers=5")
	require.Equal(t, 2, c.NumPIDContainers())

	// Lowering countB below countA fails on the countB side too.
	err = c.Set(entity.FieldNumMPCContainers, 1)
	require.ErrorAs(t, err, &verr)
	require.Equal(t, 5, c.NumMPCContainers())
}

func TestSet_ValidContainerUpdateApplies(t *testing.T) {
	c, err := entity.New(validParams())
	require.NoError(t, err)

	require.NoError(t, c.Set(entity.FieldNumPIDContainers, 5))
	require.Equal(t, 5, c.NumPIDContainers())

	require.NoError(t, c.Set(entity.FieldNumMPCContainers, 8))
	require.Equal(t, 8, c.NumMPCContainers())
}

func TestSet_UnknownField(t *testing.T) {
	c, err := entity.New(validParams())
	require.NoError(t, err)

	err = c.Set("no_such_field", 1)
	var uerr *domain.UnknownFieldError
	require.ErrorAs(t, err, &uerr)
}

func TestSet_TypeMismatchLeavesStateUnchanged(t *testing.T) {
	c, err := entity.New(validParams())
	require.NoError(t, err)

	require.Error(t, c.Set(entity.FieldNumPIDContainers, "three"))
	require.Equal(t, 2, c.NumPIDContainers())
	require.Len(t, c.StatusUpdates(), 1)
}

// countingObserver tallies mutation outcomes per field.
type countingObserver struct {
	applied  map[string]int
	rejected map[string]int
}

func newCountingObserver() *countingObserver {
	return &countingObserver{applied: map[string]int{}, rejected: map[string]int{}}
}

func (o *countingObserver) MutationApplied(field string) { o.applied[field]++ }
func (o *countingObserver) MutationRejected(field string, _ error) {
	o.rejected[field]++
}

func TestSet_InvariantCheckFiresOncePerCall(t *testing.T) {
	obs := newCountingObserver()
	c, err := entity.New(validParams(), entity.WithObserver(obs))
	require.NoError(t, err)

	require.Error(t, c.Set(entity.FieldNumMPCContainers, 1))
	require.Equal(t, 1, obs.rejected[entity.FieldNumMPCContainers])
	require.Equal(t, 0, obs.applied[entity.FieldNumMPCContainers])

	require.NoError(t, c.Set(entity.FieldNumMPCContainers, 9))
	require.Equal(t, 1, obs.applied[entity.FieldNumMPCContainers])
}

func TestNewFromMap(t *testing.T) {
	c, err := entity.NewFromMap(map[string]any{
		"instance_id":        "from-map-1",
		"role":               "PARTNER",
		"status":             "PENDING",
		"game_type":          "ATTRIBUTION",
		"num_pid_containers": 3,
		"num_mpc_containers": 4,
		"tier":               "latest",
	})
	require.NoError(t, err)
	require.Equal(t, "from-map-1", c.InstanceID())
	require.Equal(t, domain.RolePartner, c.Role())
	require.Equal(t, 3, c.NumPIDContainers())
}

func TestNewFromMap_UnknownKeyRejected(t *testing.T) {
	_, err := entity.NewFromMap(map[string]any{
		"instance_id": "from-map-2",
		"num_pid_cnt": 3,
	})
	require.Error(t, err)
}

func TestNewFromMap_InvariantStillEnforced(t *testing.T) {
	_, err := entity.NewFromMap(map[string]any{
		"instance_id":        "from-map-3",
		"num_pid_containers": 9,
		"num_mpc_containers": 2,
	})
	var cerr *domain.ConstructionError
	require.ErrorAs(t, err, &cerr)
}

func TestFeatures_SortedAndQueryable(t *testing.T) {
	p := validParams()
	p.Features = []domain.Feature{"zeta", "alpha"}
	c, err := entity.New(p)
	require.NoError(t, err)

	require.Equal(t, []domain.Feature{"alpha", "zeta"}, c.Features())
	require.True(t, c.HasFeature("alpha"))
	require.False(t, c.HasFeature("omega"))
}

func TestIsImmutable(t *testing.T) {
	if !entity.IsImmutable(entity.FieldInstanceID) {
		t.Error("instance_id should be immutable")
	}
	if entity.IsImmutable(entity.FieldStatus) {
		t.Error("status should be mutable")
	}
}

func TestFields_DeclarationOrderStartsWithIdentity(t *testing.T) {
	fields := entity.Fields()
	require.Equal(t, entity.FieldInstanceID, fields[0])
	require.Contains(t, fields, entity.FieldStatus)
	require.Contains(t, fields, entity.FieldConcurrency)
}

func TestConstructionError_Unwraps(t *testing.T) {
	p := validParams()
	p.NumPIDContainers = 10
	_, err := entity.New(p)

	var verr *domain.InvariantError
	require.True(t, errors.As(err, &verr))
}
