/*
Package entity implements the governed configuration aggregate of a
private computation instance: an InfraConfig whose fields are subject to
mutability enforcement and declarative hook dispatch.

Lifecycle: New assigns every field (supplied or defaulted) without firing
update hooks, then fires all post-init hooks in field declaration order.
If any hook rejects, construction fails atomically and no entity escapes.
Once ready, every external write goes through Set, which enforces the
field's mutability class, applies the value, and fires the field's
post-update hooks against the post-write state. A rejected write is
rolled back in full, so a ready entity never observably violates its
cross-field invariants between calls.

Entities are not safe for concurrent mutation; callers sharing one
instance must serialize writes.
*/
package entity
