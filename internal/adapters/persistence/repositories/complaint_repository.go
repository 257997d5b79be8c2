package repositories

import (
	"context"

	"hostelcare/internal/adapters/persistence/models"
	"hostelcare/internal/core/domain"

	"gorm.io/gorm"
)

// complaintRepository implements ComplaintRepository interface
type complaintRepository struct {
	db *gorm.DB
}

// NewComplaintRepository creates a new complaint repository
func NewComplaintRepository(db *gorm.DB) ComplaintRepository {
	return &complaintRepository{db: db}
}

// Create inserts a complaint
func (r *complaintRepository) Create(ctx context.Context, complaint *models.Complaint) error {
	return r.db.WithContext(ctx).Create(complaint).Error
}

// GetByID gets a complaint by ID, optionally restricted to one owner
func (r *complaintRepository) GetByID(ctx context.Context, id uint, ownerID uint) (*models.Complaint, error) {
	var complaint models.Complaint
	query := r.db.WithContext(ctx).Where("id = ?", id)
	if ownerID != 0 {
		query = query.Where("user_id = ?", ownerID)
	}
	if err := query.First(&complaint).Error; err != nil {
		return nil, err
	}
	return &complaint, nil
}

// List returns complaints matching filter, newest first
func (r *complaintRepository) List(ctx context.Context, filter domain.ComplaintFilter) ([]*models.Complaint, error) {
	var complaints []*models.Complaint

	query := r.db.WithContext(ctx).Model(&models.Complaint{})
	if filter.OwnerID != 0 {
		query = query.Where("user_id = ?", filter.OwnerID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Urgency != "" {
		query = query.Where("urgency = ?", filter.Urgency)
	}

	err := query.Order("created_at DESC").Order("id DESC").Find(&complaints).Error
	return complaints, err
}

// UpdateStatus sets status and refreshes updated_at. Returns rows matched.
func (r *complaintRepository) UpdateStatus(ctx context.Context, id uint, status domain.Status) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Complaint{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		})
	return result.RowsAffected, result.Error
}

// Assign writes the assignment fields together and forces the assigned status
func (r *complaintRepository) Assign(ctx context.Context, id uint, assignment domain.Assignment) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Complaint{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"assigned_to": assignment.AssignedTo,
			"urgency":     assignment.Urgency,
			"deadline":    assignment.Deadline,
			"status":      domain.AssignStatus,
			"updated_at":  gorm.Expr("CURRENT_TIMESTAMP"),
		})
	return result.RowsAffected, result.Error
}

// Delete removes a complaint, optionally restricted to one owner
func (r *complaintRepository) Delete(ctx context.Context, id uint, ownerID uint) (int64, error) {
	query := r.db.WithContext(ctx).Where("id = ?", id)
	if ownerID != 0 {
		query = query.Where("user_id = ?", ownerID)
	}
	result := query.Delete(&models.Complaint{})
	return result.RowsAffected, result.Error
}

// CountByStatus groups complaint counts by status
func (r *complaintRepository) CountByStatus(ctx context.Context, ownerID uint) ([]models.StatusCount, error) {
	var counts []models.StatusCount

	query := r.db.WithContext(ctx).
		Model(&models.Complaint{}).
		Select("status, COUNT(*) AS count")
	if ownerID != 0 {
		query = query.Where("user_id = ?", ownerID)
	}

	err := query.Group("status").Scan(&counts).Error
	return counts, err
}
