/*
Package hooks implements the declarative mutation-control metadata used by
governed entities: lifecycle triggers, reusable hook descriptors, and a
per-type field registry mapping field names to a mutability class and an
ordered hook list.

A Registry is built once at package-definition time for each governed
type. Hook descriptors are stateless and may be shared across several
field registrations; duplicate registration of the same hook and trigger
on a field is a programming error and panics during setup.
*/
package hooks
