package domain

// Operation names a guarded service action
type Operation string

const (
	OpCreateComplaint Operation = "complaint.create"
	OpListComplaints  Operation = "complaint.list"
	OpGetComplaint    Operation = "complaint.get"
	OpUpdateStatus    Operation = "complaint.update_status"
	OpAssignComplaint Operation = "complaint.assign"
	OpDeleteComplaint Operation = "complaint.delete"
	OpDashboardStats  Operation = "complaint.stats"
	OpSubmitFeedback  Operation = "feedback.submit"
	OpListFeedback    Operation = "feedback.list"
	OpFeedbackStats   Operation = "feedback.stats"
)

// Scope is the set of records an allowed operation may touch
type Scope int

const (
	// ScopeNone means the operation is denied
	ScopeNone Scope = iota
	// ScopeOwn restricts the operation to records owned by the caller
	ScopeOwn
	// ScopeAll grants the operation over every record
	ScopeAll
)

// policy grants each role a scope per operation. Delete and feedback are
// owner-scoped for wardens too, so a warden gets NotFound there, never Forbidden.
var policy = map[Operation]map[Role]Scope{
	OpCreateComplaint: {RoleStudent: ScopeOwn},
	OpListComplaints:  {RoleStudent: ScopeOwn, RoleWarden: ScopeAll},
	OpGetComplaint:    {RoleStudent: ScopeOwn, RoleWarden: ScopeAll},
	OpUpdateStatus:    {RoleWarden: ScopeAll},
	OpAssignComplaint: {RoleWarden: ScopeAll},
	OpDeleteComplaint: {RoleStudent: ScopeOwn, RoleWarden: ScopeOwn},
	OpDashboardStats:  {RoleStudent: ScopeOwn, RoleWarden: ScopeAll},
	OpSubmitFeedback:  {RoleStudent: ScopeOwn, RoleWarden: ScopeOwn},
	OpListFeedback:    {RoleStudent: ScopeAll, RoleWarden: ScopeAll},
	OpFeedbackStats:   {RoleWarden: ScopeAll},
}

// Authorize returns the scope granted to role for op, or a Forbidden error
func Authorize(op Operation, role Role) (Scope, error) {
	scope := policy[op][role]
	if scope != ScopeNone {
		return scope, nil
	}
	_, wardenOK := policy[op][RoleWarden]
	_, studentOK := policy[op][RoleStudent]
	switch {
	case wardenOK && !studentOK:
		return ScopeNone, ErrWardenOnly
	case studentOK && !wardenOK:
		return ScopeNone, ErrStudentOnly
	}
	return ScopeNone, ErrForbidden
}

// OwnerFilter returns the owner id a scoped query must match, zero for ScopeAll
func (s Scope) OwnerFilter(caller Identity) uint {
	if s == ScopeOwn {
		return caller.ID
	}
	return 0
}
