package entity

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/espalier/internal/logging"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/hooks"
)

// DefaultStageFlow is the stage flow assigned when none is supplied.
const DefaultStageFlow = "private_computation"

// Params carries the initial field values for a new InfraConfig.
// Zero values are replaced by declared defaults where one exists.
type Params struct {
	InstanceID              string            `mapstructure:"instance_id"`
	Role                    domain.Role       `mapstructure:"role"`
	Status                  domain.Status     `mapstructure:"status"`
	GameType                domain.GameType   `mapstructure:"game_type"`
	NumPIDContainers        int               `mapstructure:"num_pid_containers"`
	NumMPCContainers        int               `mapstructure:"num_mpc_containers"`
	NumFilesPerMPCContainer int               `mapstructure:"num_files_per_mpc_container"`
	Tier                    string            `mapstructure:"tier"`
	Features                []domain.Feature  `mapstructure:"pcs_features"`
	PCEConfig               *domain.PCEConfig `mapstructure:"pce_config"`
	StageFlow               string            `mapstructure:"stage_flow"`
	RetryCounter            int               `mapstructure:"retry_counter"`
	CreationTS              int64             `mapstructure:"creation_ts"`
	EndTS                   int64             `mapstructure:"end_ts"`
	Concurrency             int               `mapstructure:"mpc_compute_concurrency"`
}

// New constructs a ready InfraConfig. All fields are assigned first
// without firing update hooks; post-init hooks then run in field
// declaration order. If any hook rejects, New returns a
// *domain.ConstructionError and no entity escapes.
func New(p Params, opts ...Option) (*InfraConfig, error) {
	if p.InstanceID == "" {
		return nil, fmt.Errorf("instance_id is required")
	}

	c := &InfraConfig{
		assigned: make(map[string]bool, len(fieldRegistry.Fields())),
		now:      time.Now,
		observer: nopObserver{},
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	// Declared defaults for omitted fields.
	if p.Status == "" {
		p.Status = domain.StatusCreated
	}
	if p.StageFlow == "" {
		p.StageFlow = DefaultStageFlow
	}
	if p.Concurrency == 0 {
		p.Concurrency = 1
	}
	if p.CreationTS == 0 {
		p.CreationTS = c.now().UTC().Unix()
	}

	// Constructing phase: plain writes only.
	c.instanceID = p.InstanceID
	c.role = p.Role
	c.status = p.Status
	c.gameType = p.GameType
	c.numPIDContainers = p.NumPIDContainers
	c.numMPCContainers = p.NumMPCContainers
	c.numFilesPerMPCContainer = p.NumFilesPerMPCContainer
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

	for _, field := range fieldRegistry.Fields() {
		c.assigned[field] = true
	}

	if err := c.fireInit(); err != nil {
		c.logger.Debug("construction rejected", "instance_id", p.InstanceID, "err", err)
		return nil, &domain.ConstructionError{Err: err}
	}

	c.logger.Debug("entity constructed", "instance_id", c.instanceID, "status", c.status)
	return c, nil
}

// NewFromMap constructs an entity from a field-name → value mapping,
// decoded into Params via mapstructure. Unknown keys are rejected so a
// typo cannot silently drop a field.
func NewFromMap(values map[string]any, opts ...Option) (*InfraConfig, error) {
	var p Params
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &p,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("building decoder: %w", err)
	}
	if err := dec.Decode(values); err != nil {
		return nil, fmt.Errorf("decoding construction values: %w", err)
	}
	return New(p, opts...)
}

// fireInit runs all post-init hooks in field declaration order and
// stops at the first rejection.
func (c *InfraConfig) fireInit() error {
	for _, field := range fieldRegistry.Fields() {
		for _, h := range fieldRegistry.HooksFor(field, hooks.PostInit) {
			if err := h.Fire(c); err != nil {
				return err
			}
		}
	}
	return nil
}
