package domain

// Role identifies which side of a computation an entity belongs to.
type Role string

const (
	RolePublisher Role = "PUBLISHER"
	RolePartner   Role = "PARTNER"
)

// GameType identifies the product variant a computation runs.
type GameType string

const (
	GameTypeLift        GameType = "LIFT"
	GameTypeAttribution GameType = "ATTRIBUTION"
)

// Status is the coarse lifecycle stage of a computation instance.
type Status string

const (
	StatusUnknown   Status = "UNKNOWN"
	StatusCreated   Status = "CREATED"
	StatusPending   Status = "PENDING"
	StatusRunning   Status = "RUNNING"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
	StatusTimedOut  Status = "TIMED_OUT"
)

// Feature is an opt-in capability flag attached to an instance.
type Feature string

// StatusUpdate is one entry of the append-only status history.
// The timestamp is UTC epoch seconds, stamped by the status hook at the
// moment the transition became visible.
type StatusUpdate struct {
	Status    Status `json:"status"`
	Timestamp int64  `json:"status_update_ts"`
}
