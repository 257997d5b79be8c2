package repositories

import (
	"context"

	"hostelcare/internal/adapters/persistence/models"
	"hostelcare/internal/core/domain"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// ComplaintRepository defines complaint repository interface.
// OwnerID on filters and the ownerID arguments restrict a statement to one
// submitter when non-zero.
type ComplaintRepository interface {
	Create(ctx context.Context, complaint *models.Complaint) error
	GetByID(ctx context.Context, id uint, ownerID uint) (*models.Complaint, error)
	List(ctx context.Context, filter domain.ComplaintFilter) ([]*models.Complaint, error)
	UpdateStatus(ctx context.Context, id uint, status domain.Status) (int64, error)
	Assign(ctx context.Context, id uint, assignment domain.Assignment) (int64, error)
	Delete(ctx context.Context, id uint, ownerID uint) (int64, error)
	CountByStatus(ctx context.Context, ownerID uint) ([]models.StatusCount, error)
}

// FeedbackRepository defines feedback repository interface
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *models.Feedback) error
	Exists(ctx context.Context, complaintID, userID uint) (bool, error)
	ListByComplaint(ctx context.Context, complaintID uint) ([]*models.FeedbackWithUser, error)
	Aggregate(ctx context.Context) (*models.FeedbackAggregate, error)
}
