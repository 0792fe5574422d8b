/*
Package domain contains the shared value types of the Espalier entity layer:
role, game-type and status enumerations, the append-only status history
entry, the plain product configuration aggregates, and the typed errors
surfaced by mutability enforcement and invariant hooks.

Types here carry no behavior beyond serialization. The governed aggregate
that owns them lives in pkg/entity.
*/
package domain
