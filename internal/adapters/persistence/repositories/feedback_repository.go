package repositories

import (
	"context"

	"hostelcare/internal/adapters/persistence/models"
	"hostelcare/internal/core/domain"

	"gorm.io/gorm"
)

// feedbackRepository implements FeedbackRepository interface
type feedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository creates a new feedback repository
func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

// Create inserts a feedback row
func (r *feedbackRepository) Create(ctx context.Context, feedback *models.Feedback) error {
	return r.db.WithContext(ctx).Create(feedback).Error
}

// Exists checks whether userID already left feedback on complaintID
func (r *feedbackRepository) Exists(ctx context.Context, complaintID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Feedback{}).
		Where("complaint_id = ? AND user_id = ?", complaintID, userID).
		Count(&count).Error
	return count > 0, err
}

// ListByComplaint returns feedback for a complaint joined with submitter names
func (r *feedbackRepository) ListByComplaint(ctx context.Context, complaintID uint) ([]*models.FeedbackWithUser, error) {
	var rows []*models.FeedbackWithUser
	err := r.db.WithContext(ctx).
		Table("feedback").
		Select("feedback.id, feedback.complaint_id, feedback.user_id, feedback.rating, feedback.comment, feedback.created_at, users.full_name").
		Joins("JOIN users ON users.id = feedback.user_id").
		Where("feedback.complaint_id = ?", complaintID).
		Order("feedback.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

// Aggregate summarises every feedback row
func (r *feedbackRepository) Aggregate(ctx context.Context) (*models.FeedbackAggregate, error) {
	var agg models.FeedbackAggregate
	err := r.db.WithContext(ctx).
		Model(&models.Feedback{}).
		Select(`AVG(rating) AS average_rating,
			COUNT(*) AS total_feedback,
			COUNT(CASE WHEN rating >= ? THEN 1 END) AS positive_feedback,
			COUNT(CASE WHEN rating <= ? THEN 1 END) AS negative_feedback`,
			domain.PositiveRating, domain.NegativeRating).
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}
	return &agg, nil
}
