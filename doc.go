/*
Package espalier is an entity-mutation and invariant-enforcement layer
for the long-lived configuration objects of a multi-stage computation
workflow.

A governed entity accumulates state over its lifetime: role, status,
container counts, timestamps, and an append-only history of status
transitions. Espalier's job is the mutation-control mechanism around
that data: fields marked immutable reject writes after construction,
declarative hooks fire whenever specific fields change, and no entity
can reach or persist a state that violates its registered cross-field
invariants.

# Concept

Field metadata is declared once, at type-definition time, in a registry
that maps each field to a mutability class and an ordered hook list.
Hooks are stateless descriptors bound to lifecycle triggers: post-init
hooks fire once after construction, post-update hooks fire after each
field write. A hook either validates (and rejects by returning a typed
error) or performs a recorded derived-state update, such as refreshing
the status timestamp and appending to the history log.

A rejected update is rolled back in full, so a live entity never
observably violates its invariants between calls; a rejected
construction never returns an entity at all.

# Usage

	cfg, err := espalier.New(espalier.Params{
		InstanceID:       "instance-123",
		Role:             domain.RolePublisher,
		Status:           domain.StatusPending,
		GameType:         domain.GameTypeLift,
		NumPIDContainers: 2,
		NumMPCContainers: 5,
	})
	if err != nil {
		log.Fatal(err)
	}

	// Governed write: fires the status hook, appends to the history.
	if err := cfg.Set(entity.FieldStatus, domain.StatusRunning); err != nil {
		log.Fatal(err)
	}

	// Rejected: num_pid_containers may not exceed num_mpc_containers.
	err = cfg.Set(entity.FieldNumPIDContainers, 6)

Entities serialize to JSON and round-trip through the stores in
pkg/adapters (memory, file, redis) without losing history or
governance.

Single-entity operations are synchronous and must be externally
serialized if an entity is shared across goroutines; independent
entities share no state.
*/
package espalier
