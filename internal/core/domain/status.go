package domain

// Status is the soft-delete flag shared by users, restaurants, reviews and
// review comments. Nothing is ever hard deleted; only this value moves.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

// Valid reports whether s is ACTIVE or INACTIVE.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// IsActive treats an empty status as active, which is how the API reports
// records created before the status field existed.
func (s Status) IsActive() bool {
	return s == "" || s == StatusActive
}

// CanTransitionTo reports whether a soft delete or restore from s to next is
// meaningful. Setting the status it already has is rejected.
func (s Status) CanTransitionTo(next Status) bool {
	if !next.Valid() {
		return false
	}
	return s.IsActive() != (next == StatusActive)
}

// Entity is implemented by every record the views keep in local collections.
type Entity interface {
	EntityID() string
	EntityStatus() Status
}
