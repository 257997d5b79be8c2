package domain

// Status is the lifecycle stage of a complaint
type Status string

const (
	StatusSubmitted  Status = "submitted"
	StatusAssigned   Status = "assigned"
	StatusInProgress Status = "in-progress"
	StatusResolved   Status = "resolved"
	StatusOverdue    Status = "overdue"
)

// InitialStatus is the status of every new complaint
const InitialStatus = StatusSubmitted

// Statuses lists every defined status
var Statuses = []Status{
	StatusSubmitted,
	StatusAssigned,
	StatusInProgress,
	StatusResolved,
	StatusOverdue,
}

func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsTerminal reports whether s ends the normal lifecycle
func (s Status) IsTerminal() bool {
	return s == StatusResolved
}

// CanTransition reports whether a status update from -> to is permitted.
// Any move between defined statuses is allowed, including re-applying the
// current one, except marking a terminal complaint overdue.
func CanTransition(from, to Status) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	return !(from.IsTerminal() && to == StatusOverdue)
}

// AssignStatus is the status assign forces regardless of the current one.
// It is not subject to CanTransition.
const AssignStatus = StatusAssigned
