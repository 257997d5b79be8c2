package domain

import "time"

// Role represents user role in the system
type Role string

const (
	RoleStudent Role = "student"
	RoleWarden  Role = "warden"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleWarden
}

// Category is the facility area a complaint is filed against
type Category string

const (
	CategoryElectrical Category = "Electrical"
	CategoryPlumbing   Category = "Plumbing"
	CategoryFurniture  Category = "Furniture"
	CategoryCleaning   Category = "Cleaning"
	CategoryOther      Category = "Other"
)

// Categories lists every accepted category
var Categories = []Category{
	CategoryElectrical,
	CategoryPlumbing,
	CategoryFurniture,
	CategoryCleaning,
	CategoryOther,
}

func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// Urgency is the severity tier of a complaint
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// DefaultAssignUrgency is applied by assign when no urgency is given
const DefaultAssignUrgency = UrgencyMedium

func (u Urgency) Valid() bool {
	return u == UrgencyLow || u == UrgencyMedium || u == UrgencyHigh
}

// Identity is the caller as described by verified token claims
type Identity struct {
	ID         uint
	Email      string
	Role       Role
	FullName   string
	HostelName string
	RoomNumber string
}

// ComplaintFilter narrows complaint listings. Empty fields are ignored.
type ComplaintFilter struct {
	Status   Status
	Category Category
	Urgency  Urgency
	// OwnerID restricts results to one submitter when non-zero
	OwnerID uint
}

// DashboardStats is the per-status complaint breakdown
type DashboardStats struct {
	Total      int64 `json:"total"`
	Submitted  int64 `json:"submitted"`
	InProgress int64 `json:"inProgress"`
	Resolved   int64 `json:"resolved"`
	Overdue    int64 `json:"overdue"`
}

// Rating bounds and the thresholds counted as positive / negative feedback
const (
	MinRating      = 1
	MaxRating      = 5
	PositiveRating = 4
	NegativeRating = 2
)

// FeedbackStats summarises every feedback row
type FeedbackStats struct {
	AverageRating    string `json:"averageRating"`
	TotalFeedback    int64  `json:"totalFeedback"`
	PositiveFeedback int64  `json:"positiveFeedback"`
	NegativeFeedback int64  `json:"negativeFeedback"`
}

// Assignment carries the fields set together by assign
type Assignment struct {
	AssignedTo string
	Urgency    Urgency
	Deadline   *time.Time
}

// deadlineLayouts are the accepted deadline formats, tried in order
var deadlineLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDeadline accepts a date (YYYY-MM-DD), a datetime-local value or RFC3339.
// An empty string clears the deadline.
func ParseDeadline(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range deadlineLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return &t, nil
		}
	}
	return nil, ErrInvalidDeadline
}
