package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"hostelcare/internal/adapters/persistence/models"
	"hostelcare/internal/adapters/persistence/repositories"
	"hostelcare/internal/core/domain"
)

// ComplaintService handles the complaint lifecycle
type ComplaintService struct {
	complaintRepo repositories.ComplaintRepository
	userRepo      repositories.UserRepository
}

// NewComplaintService creates a new complaint service
func NewComplaintService(
	complaintRepo repositories.ComplaintRepository,
	userRepo repositories.UserRepository,
) *ComplaintService {
	return &ComplaintService{
		complaintRepo: complaintRepo,
		userRepo:      userRepo,
	}
}

// CreateComplaintInput represents create complaint input
type CreateComplaintInput struct {
	Title       string
	Category    domain.Category
	Description string
	Location    string
	Urgency     domain.Urgency
	ImagePath   *string
}

// AssignInput represents assign input. Empty Urgency means the default,
// empty Deadline clears it.
type AssignInput struct {
	AssignedTo string
	Urgency    domain.Urgency
	Deadline   string
}

// Create files a complaint for the caller.
// Submitter name and room are captured now and never refreshed.
func (s *ComplaintService) Create(ctx context.Context, caller domain.Identity, input *CreateComplaintInput) (*models.Complaint, error) {
	if _, err := domain.Authorize(domain.OpCreateComplaint, caller.Role); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	location := strings.TrimSpace(input.Location)

	switch {
	case title == "":
		return nil, fmt.Errorf("%w: title is required", domain.ErrValidation)
	case !input.Category.Valid():
		return nil, domain.ErrInvalidCategory
	case description == "":
		return nil, fmt.Errorf("%w: description is required", domain.ErrValidation)
	case location == "":
		return nil, fmt.Errorf("%w: location is required", domain.ErrValidation)
	case !input.Urgency.Valid():
		return nil, domain.ErrInvalidUrgency
	}

	owner, err := s.userRepo.GetByID(ctx, caller.ID)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	complaint := &models.Complaint{
		UserID:      owner.ID,
		Title:       title,
		Category:    input.Category,
		Description: description,
		Location:    location,
		Urgency:     input.Urgency,
		ImagePath:   input.ImagePath,
		StudentName: owner.FullName,
		RoomNumber:  owner.RoomNumber,
		Status:      domain.InitialStatus,
	}

	if err := s.complaintRepo.Create(ctx, complaint); err != nil {
		return nil, err
	}

	log.Printf("✅ Complaint created: #%d by user %d (%s/%s)", complaint.ID, owner.ID, complaint.Category, complaint.Urgency)
	return complaint, nil
}

// List returns complaints visible to caller, newest first
func (s *ComplaintService) List(ctx context.Context, caller domain.Identity, filter domain.ComplaintFilter) ([]*models.Complaint, error) {
	scope, err := domain.Authorize(domain.OpListComplaints, caller.Role)
	if err != nil {
		return nil, err
	}

	filter.OwnerID = scope.OwnerFilter(caller)
	return s.complaintRepo.List(ctx, filter)
}

// GetByID returns one complaint. Students get NotFound for other users' rows.
func (s *ComplaintService) GetByID(ctx context.Context, caller domain.Identity, id uint) (*models.Complaint, error) {
	scope, err := domain.Authorize(domain.OpGetComplaint, caller.Role)
	if err != nil {
		return nil, err
	}
	return s.find(ctx, id, scope.OwnerFilter(caller))
}

// FindOwned returns the complaint only if ownerID filed it
func (s *ComplaintService) FindOwned(ctx context.Context, ownerID, id uint) (*models.Complaint, error) {
	return s.find(ctx, id, ownerID)
}

// UpdateStatus moves a complaint to status
func (s *ComplaintService) UpdateStatus(ctx context.Context, caller domain.Identity, id uint, status domain.Status) (*models.Complaint, error) {
	if _, err := domain.Authorize(domain.OpUpdateStatus, caller.Role); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	current, err := s.find(ctx, id, 0)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransition(current.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, current.Status, status)
	}

	affected, err := s.complaintRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, domain.ErrComplaintNotFound
	}

	log.Printf("✅ Complaint #%d status: %s -> %s (by user %d)", id, current.Status, status, caller.ID)
	return s.find(ctx, id, 0)
}

// Assign dispatches a complaint. Status is forced to assigned from any state.
func (s *ComplaintService) Assign(ctx context.Context, caller domain.Identity, id uint, input *AssignInput) (*models.Complaint, error) {
	if _, err := domain.Authorize(domain.OpAssignComplaint, caller.Role); err != nil {
		return nil, err
	}

	assignee := strings.TrimSpace(input.AssignedTo)
	if assignee == "" {
		return nil, domain.ErrAssigneeRequired
	}

	urgency := input.Urgency
	if urgency == "" {
		urgency = domain.DefaultAssignUrgency
	}
	if !urgency.Valid() {
		return nil, domain.ErrInvalidUrgency
	}

	deadline, err := domain.ParseDeadline(strings.TrimSpace(input.Deadline))
	if err != nil {
		return nil, err
	}

	affected, err := s.complaintRepo.Assign(ctx, id, domain.Assignment{
		AssignedTo: assignee,
		Urgency:    urgency,
		Deadline:   deadline,
	})
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, domain.ErrComplaintNotFound
	}

	log.Printf("✅ Complaint #%d assigned to %s (by user %d)", id, assignee, caller.ID)
	return s.find(ctx, id, 0)
}

// Delete removes a caller-owned complaint and returns the removed row
func (s *ComplaintService) Delete(ctx context.Context, caller domain.Identity, id uint) (*models.Complaint, error) {
	scope, err := domain.Authorize(domain.OpDeleteComplaint, caller.Role)
	if err != nil {
		return nil, err
	}
	ownerID := scope.OwnerFilter(caller)

	complaint, err := s.find(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	affected, err := s.complaintRepo.Delete(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, domain.ErrComplaintNotFound
	}

	log.Printf("✅ Complaint #%d deleted by user %d", id, caller.ID)
	return complaint, nil
}

// DashboardStats counts complaints per status within the caller's scope.
// InProgress covers both assigned and in-progress.
func (s *ComplaintService) DashboardStats(ctx context.Context, caller domain.Identity) (*domain.DashboardStats, error) {
	scope, err := domain.Authorize(domain.OpDashboardStats, caller.Role)
	if err != nil {
		return nil, err
	}

	counts, err := s.complaintRepo.CountByStatus(ctx, scope.OwnerFilter(caller))
	if err != nil {
		return nil, err
	}

	stats := &domain.DashboardStats{}
	for _, row := range counts {
		stats.Total += row.Count
		switch row.Status {
		case domain.StatusSubmitted:
			stats.Submitted += row.Count
		case domain.StatusAssigned, domain.StatusInProgress:
			stats.InProgress += row.Count
		case domain.StatusResolved:
			stats.Resolved += row.Count
		case domain.StatusOverdue:
			stats.Overdue += row.Count
		}
	}
	return stats, nil
}

func (s *ComplaintService) find(ctx context.Context, id, ownerID uint) (*models.Complaint, error) {
	complaint, err := s.complaintRepo.GetByID(ctx, id, ownerID)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrComplaintNotFound
		}
		return nil, err
	}
	return complaint, nil
}
