package domain

import (
	"errors"
	"fmt"
)

// Error classes. Handlers map these to HTTP statuses.
var (
	ErrValidation         = errors.New("validation error")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("resource not found")
	ErrConflict           = errors.New("conflict")
)

// Token errors
var (
	ErrTokenExpired = fmt.Errorf("%w: token expired", ErrInvalidToken)
)

// User errors
var (
	ErrUserNotFound = fmt.Errorf("%w: user not found", ErrNotFound)
	ErrEmailTaken   = fmt.Errorf("%w: user already exists with this email", ErrConflict)
	ErrRoleMismatch = fmt.Errorf("%w: invalid credentials for this role", ErrInvalidCredentials)
	ErrInvalidRole  = fmt.Errorf("%w: role must be student or warden", ErrValidation)
	ErrWardenOnly   = fmt.Errorf("%w: access denied, warden only", ErrForbidden)
	ErrStudentOnly  = fmt.Errorf("%w: access denied, student only", ErrForbidden)
)

// Complaint errors
var (
	ErrComplaintNotFound = fmt.Errorf("%w: complaint not found", ErrNotFound)
	ErrInvalidCategory   = fmt.Errorf("%w: invalid category", ErrValidation)
	ErrInvalidUrgency    = fmt.Errorf("%w: invalid urgency level", ErrValidation)
	ErrInvalidStatus     = fmt.Errorf("%w: invalid status", ErrValidation)
	ErrInvalidTransition = fmt.Errorf("%w: status transition not allowed", ErrValidation)
	ErrAssigneeRequired  = fmt.Errorf("%w: assignee is required", ErrValidation)
	ErrInvalidDeadline   = fmt.Errorf("%w: deadline must be YYYY-MM-DD or RFC3339", ErrValidation)
)

// Feedback errors
var (
	ErrInvalidRating  = fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	ErrFeedbackExists = fmt.Errorf("%w: feedback already submitted for this complaint", ErrConflict)
)
