package entity

import (
	"log/slog"
	"sort"
	"time"

	"github.com/aretw0/espalier/pkg/domain"
)

// Field names as used by the registry, Set, and serialization.
const (
	FieldInstanceID              = "instance_id"
	FieldRole                    = "role"
	FieldStatus                  = "status"
	FieldStatusUpdateTS          = "status_update_ts"
	FieldGameType                = "game_type"
	FieldNumPIDContainers        = "num_pid_containers"
	FieldNumMPCContainers        = "num_mpc_containers"
	FieldNumFilesPerMPCContainer = "num_files_per_mpc_container"
	FieldStatusUpdates           = "status_updates"
	FieldTier                    = "tier"
	FieldFeatures                = "pcs_features"
	FieldPCEConfig               = "pce_config"
	FieldStageFlow               = "stage_flow"
	FieldRetryCounter            = "retry_counter"
	FieldCreationTS              = "creation_ts"
	FieldEndTS                   = "end_ts"
	FieldConcurrency             = "mpc_compute_concurrency"
)

// InfraConfig is the infra-side metadata of a private computation
// instance. Fields are unexported; all external mutation goes through
// Set so the mutability and hook machinery cannot be bypassed.
type InfraConfig struct {
	instanceID              string
	role                    domain.Role
	status                  domain.Status
	statusUpdateTS          int64
	gameType                domain.GameType
	numPIDContainers        int
	numMPCContainers        int
	numFilesPerMPCContainer int
	statusUpdates           []domain.StatusUpdate
	tier                    string
	features                map[domain.Feature]struct{}
	pceConfig               *domain.PCEConfig
	stageFlow               string
	retryCounter            int
	creationTS              int64
	endTS                   int64
	concurrency             int

	// assigned tracks fields that already carry an initialized value;
	// immutable fields with an entry here reject further writes.
	assigned map[string]bool

	now      func() time.Time
	observer Observer
	logger   *slog.Logger
}

// InstanceID returns the unique identifier of this instance.
func (c *InfraConfig) InstanceID() string { return c.instanceID }

// Role reports whether this instance belongs to the publisher or partner.
func (c *InfraConfig) Role() domain.Role { return c.role }

// Status returns the current lifecycle status.
func (c *InfraConfig) Status() domain.Status { return c.status }

// StatusUpdateTS returns the UTC epoch seconds of the last status
// transition. It is owned by the status hook and refreshed on every
// status write.
func (c *InfraConfig) StatusUpdateTS() int64 { return c.statusUpdateTS }

// GameType returns the product variant this instance runs.
func (c *InfraConfig) GameType() domain.GameType { return c.gameType }

// NumPIDContainers returns the container count of the PID stage.
func (c *InfraConfig) NumPIDContainers() int { return c.numPIDContainers }

// NumMPCContainers returns the container count of the MPC stage.
func (c *InfraConfig) NumMPCContainers() int { return c.numMPCContainers }

// NumFilesPerMPCContainer returns the per-container file count.
func (c *InfraConfig) NumFilesPerMPCContainer() int { return c.numFilesPerMPCContainer }

// StatusUpdates returns a copy of the append-only status history, oldest
// first. Mutating the returned slice does not affect the entity.
func (c *InfraConfig) StatusUpdates() []domain.StatusUpdate {
	out := make([]domain.StatusUpdate, len(c.statusUpdates))
	copy(out, c.statusUpdates)
	return out
}

// Tier returns the release binary tier (rc, canary, latest).
func (c *InfraConfig) Tier() string { return c.tier }

// Features returns the enabled feature flags, sorted.
func (c *InfraConfig) Features() []domain.Feature {
	out := make([]domain.Feature, 0, len(c.features))
	for f := range c.features {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// HasFeature reports whether a feature flag is enabled.
func (c *InfraConfig) HasFeature(f domain.Feature) bool {
	_, ok := c.features[f]
	return ok
}

// PCEConfig returns the provisioning environment config, or nil.
func (c *InfraConfig) PCEConfig() *domain.PCEConfig { return c.pceConfig }

// StageFlow returns the name of the stage flow driving this instance.
func (c *InfraConfig) StageFlow() string { return c.stageFlow }

// RetryCounter returns how many times the current stage was retried.
func (c *InfraConfig) RetryCounter() int { return c.retryCounter }

// CreationTS returns the UTC epoch seconds the instance was created at.
func (c *InfraConfig) CreationTS() int64 { return c.creationTS }

// EndTS returns the UTC epoch seconds the run finished at, or zero.
func (c *InfraConfig) EndTS() int64 { return c.endTS }

// Concurrency returns the per-container thread count of the MPC compute
// stage.
func (c *InfraConfig) Concurrency() int { return c.concurrency }
