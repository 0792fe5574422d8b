package entity

import (
	"encoding/json"
	"time"

	"github.com/aretw0/espalier/internal/logging"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/hooks"
)

// persistedConfig is the wire shape of an InfraConfig. Field names
// match the registry keys.
type persistedConfig struct {
	InstanceID              string                `json:"instance_id"`
	Role                    domain.Role           `json:"role"`
	Status                  domain.Status         `json:"status"`
	StatusUpdateTS          int64                 `json:"status_update_ts"`
	GameType                domain.GameType       `json:"game_type"`
	NumPIDContainers        int                   `json:"num_pid_containers"`
	NumMPCContainers        int                   `json:"num_mpc_containers"`
	NumFilesPerMPCContainer int                   `json:"num_files_per_mpc_container"`
	StatusUpdates           []domain.StatusUpdate `json:"status_updates"`
	Tier                    string                `json:"tier,omitempty"`
	Features                []domain.Feature      `json:"pcs_features,omitempty"`
	PCEConfig               *domain.PCEConfig     `json:"pce_config,omitempty"`
	StageFlow               string                `json:"stage_flow"`
	RetryCounter            int                   `json:"retry_counter"`
	CreationTS              int64                 `json:"creation_ts"`
	EndTS                   int64                 `json:"end_ts"`
	Concurrency             int                   `json:"mpc_compute_concurrency"`
}

// MarshalJSON serializes the full entity state, including the complete
// status history.
func (c *InfraConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(persistedConfig{
		InstanceID:              c.instanceID,
		Role:                    c.role,
		Status:                  c.status,
		StatusUpdateTS:          c.statusUpdateTS,
		GameType:                c.gameType,
		NumPIDContainers:        c.numPIDContainers,
		NumMPCContainers:        c.numMPCContainers,
		NumFilesPerMPCContainer: c.numFilesPerMPCContainer,
		StatusUpdates:           c.StatusUpdates(),
		Tier:                    c.tier,
		Features:                c.Features(),
		PCEConfig:               c.pceConfig,
		StageFlow:               c.stageFlow,
		RetryCounter:            c.retryCounter,
		CreationTS:              c.creationTS,
		EndTS:                   c.endTS,
		Concurrency:             c.concurrency,
	})
}

// UnmarshalJSON restores a previously serialized entity. Derived-state
// hooks do not re-run (the history is restored verbatim), but every
// validation hook is re-checked so corrupt or hand-edited data cannot
// produce a ready entity in an invalid state. Clock, observer, and
// logger wiring fall back to defaults; use Configure to re-attach them.
func (c *InfraConfig) UnmarshalJSON(data []byte) error {
	var p persistedConfig
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	c.instanceID = p.InstanceID
	c.role = p.Role
	c.status = p.Status
	c.statusUpdateTS = p.StatusUpdateTS
	c.gameType = p.GameType
	c.numPIDContainers = p.NumPIDContainers
	c.numMPCContainers = p.NumMPCContainers
	c.numFilesPerMPCContainer = p.NumFilesPerMPCContainer
	c.statusUpdates = p.StatusUpdates
	c.tier = p.Tier
	c.features = make(map[domain.Feature]struct{}, len(p.Features))
	for _, f := range p.Features {
		c.features[f] = struct{}{}
	}
	c.pceConfig = p.PCEConfig
	c.stageFlow = p.StageFlow
	c.retryCounter = p.RetryCounter
	c.creationTS = p.CreationTS
	c.endTS = p.EndTS
	c.concurrency = p.Concurrency

	c.assigned = make(map[string]bool, len(fieldRegistry.Fields()))
	for _, field := range fieldRegistry.Fields() {
		c.assigned[field] = true
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.observer == nil {
		c.observer = nopObserver{}
	}
	if c.logger == nil {
		c.logger = logging.NewNop()
	}

	for _, field := range fieldRegistry.Fields() {
		for _, h := range fieldRegistry.HooksFor(field, hooks.PostInit) {
			if h.Kind() != hooks.KindValidation {
				continue
			}
			if err := h.Fire(c); err != nil {
				return &domain.ConstructionError{Err: err}
			}
		}
	}
	return nil
}
