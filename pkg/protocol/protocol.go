// Package protocol picks the PID matching protocol variant for a run.
// All functions are stateless input→output helpers consumed by the
// owning workflow.
package protocol

// PID identifies a private-ID matching protocol variant.
type PID string

const (
	// UnionPID is the single-key union protocol.
	UnionPID PID = "UNION_PID"
	// UnionPIDMultikey matches on multiple identifier columns but only
	// supports a single shard.
	UnionPIDMultikey PID = "UNION_PID_MULTIKEY"
)

// Default is the protocol used when multikey matching is unavailable.
const Default = UnionPID

// MultikeyMaxColumnCount is the identifier-column ceiling of the
// multikey protocol.
const MultikeyMaxColumnCount = 6

// FromShards selects the protocol for a run. Multikey matching only
// works single-sharded, so it is chosen exactly when one PID container
// is used and the feature is enabled.
func FromShards(numPIDContainers int, multikeyEnabled bool) PID {
	if numPIDContainers == 1 && multikeyEnabled {
		return UnionPIDMultikey
	}
	return Default
}

// MaxIDColumnCount returns the maximum number of identifier columns the
// given protocol can match on.
func MaxIDColumnCount(p PID) int {
	if p == UnionPIDMultikey {
		return MultikeyMaxColumnCount
	}
	return 1
}

// UseRowNumbers reports whether the row-numbering argument is
// effectively enabled: requested by the caller and supported by the
// chosen protocol (multikey does not support it).
func UseRowNumbers(useRowNumbers bool, p PID) bool {
	return useRowNumbers && p != UnionPIDMultikey
}
