package entity

import (
	"fmt"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/hooks"
)

// statusHistoryHook refreshes status_update_ts from the wall clock and
// appends the (status, ts) pair to the history. It runs strictly after
// the new status value is visible on the entity: once at construction
// (producing the initial history entry) and on every status update.
var statusHistoryHook = hooks.NewUpdate("status-history", nil,
	func(c *InfraConfig) {
		c.statusUpdateTS = c.now().UTC().Unix()
		c.statusUpdates = append(c.statusUpdates, domain.StatusUpdate{
			Status:    c.status,
			Timestamp: c.statusUpdateTS,
		})
	},
	hooks.PostInit, hooks.PostUpdate,
)

// containerCountHook rejects any state where the PID stage would use
// more containers than the MPC stage. Bound to both count fields so the
// check re-fires whenever either side changes.
var containerCountHook = hooks.NewValidation("container-count",
	func(c *InfraConfig) bool {
		return c.assigned[FieldNumPIDContainers] &&
			c.assigned[FieldNumMPCContainers] &&
			c.numPIDContainers > c.numMPCContainers
	},
	func(c *InfraConfig) error {
		return &domain.InvariantError{
			Fields: []string{FieldNumPIDContainers, FieldNumMPCContainers},
			Message: fmt.Sprintf(
				"num_pid_containers must be less than or equal to num_mpc_containers (received num_pid_containers=%d, num_mpc_containers=%d)",
				c.numPIDContainers, c.numMPCContainers),
		}
	},
	hooks.PostInit, hooks.PostUpdate,
)

// fieldRegistry is the declarative metadata of InfraConfig, assembled
// once at package load. Registration order is the post-init dispatch
// order.
var fieldRegistry = newFieldRegistry()

func newFieldRegistry() *hooks.Registry[*InfraConfig] {
	r := hooks.NewRegistry[*InfraConfig]()
	r.Register(FieldInstanceID, hooks.ImmutableAfterInit)
	r.Register(FieldRole, hooks.Mutable)
	r.Register(FieldStatus, hooks.Mutable, statusHistoryHook)
	r.Register(FieldStatusUpdateTS, hooks.Mutable)
	r.Register(FieldGameType, hooks.ImmutableAfterInit)
	r.Register(FieldNumPIDContainers, hooks.Mutable, containerCountHook)
	r.Register(FieldNumMPCContainers, hooks.Mutable, containerCountHook)
	r.Register(FieldNumFilesPerMPCContainer, hooks.Mutable)
	r.Register(FieldStatusUpdates, hooks.Mutable)
	r.Register(FieldTier, hooks.ImmutableAfterInit)
	r.Register(FieldFeatures, hooks.Mutable)
	r.Register(FieldPCEConfig, hooks.Mutable)
	r.Register(FieldStageFlow, hooks.Mutable)
	r.Register(FieldRetryCounter, hooks.Mutable)
	r.Register(FieldCreationTS, hooks.ImmutableAfterInit)
	r.Register(FieldEndTS, hooks.Mutable)
	r.Register(FieldConcurrency, hooks.Mutable)
	return r
}

// Fields returns the entity's field names in declaration order.
func Fields() []string {
	return fieldRegistry.Fields()
}

// IsImmutable reports whether a field rejects writes once initialized.
func IsImmutable(field string) bool {
	meta, ok := fieldRegistry.Field(field)
	return ok && meta.Mutability == hooks.ImmutableAfterInit
}
