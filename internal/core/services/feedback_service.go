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

// ComplaintFinder resolves complaints owned by a user
type ComplaintFinder interface {
	FindOwned(ctx context.Context, ownerID, id uint) (*models.Complaint, error)
}

// FeedbackService handles feedback on complaints
type FeedbackService struct {
	feedbackRepo repositories.FeedbackRepository
	complaints   ComplaintFinder
}

// NewFeedbackService creates a new feedback service
func NewFeedbackService(feedbackRepo repositories.FeedbackRepository, complaints ComplaintFinder) *FeedbackService {
	return &FeedbackService{
		feedbackRepo: feedbackRepo,
		complaints:   complaints,
	}
}

// SubmitFeedbackInput represents submit feedback input
type SubmitFeedbackInput struct {
	ComplaintID uint
	Rating      int
	Comment     string
}

// Submit records the caller's rating of one of their complaints.
// The complaint does not have to be resolved.
func (s *FeedbackService) Submit(ctx context.Context, caller domain.Identity, input *SubmitFeedbackInput) (*models.Feedback, error) {
	if _, err := domain.Authorize(domain.OpSubmitFeedback, caller.Role); err != nil {
		return nil, err
	}
	if input.ComplaintID == 0 {
		return nil, fmt.Errorf("%w: valid complaint ID is required", domain.ErrValidation)
	}
	if input.Rating < domain.MinRating || input.Rating > domain.MaxRating {
		return nil, domain.ErrInvalidRating
	}

	// 1. Complaint must exist and belong to caller
	if _, err := s.complaints.FindOwned(ctx, caller.ID, input.ComplaintID); err != nil {
		return nil, err
	}

	// 2. One feedback per complaint and user
	exists, err := s.feedbackRepo.Exists(ctx, input.ComplaintID, caller.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrFeedbackExists
	}

	feedback := &models.Feedback{
		ComplaintID: input.ComplaintID,
		UserID:      caller.ID,
		Rating:      input.Rating,
		Comment:     optional(strings.TrimSpace(input.Comment)),
	}

	if err := s.feedbackRepo.Create(ctx, feedback); err != nil {
		// The unique index catches submissions racing past the existence check
		if isDuplicateKey(err) {
			return nil, domain.ErrFeedbackExists
		}
		return nil, err
	}

	log.Printf("✅ Feedback submitted: complaint #%d rating %d (by user %d)", feedback.ComplaintID, feedback.Rating, caller.ID)
	return feedback, nil
}

// ListForComplaint returns all feedback on a complaint with submitter names
func (s *FeedbackService) ListForComplaint(ctx context.Context, caller domain.Identity, complaintID uint) ([]*models.FeedbackWithUser, error) {
	if _, err := domain.Authorize(domain.OpListFeedback, caller.Role); err != nil {
		return nil, err
	}
	return s.feedbackRepo.ListByComplaint(ctx, complaintID)
}

// AverageStats summarises ratings across all feedback
func (s *FeedbackService) AverageStats(ctx context.Context, caller domain.Identity) (*domain.FeedbackStats, error) {
	if _, err := domain.Authorize(domain.OpFeedbackStats, caller.Role); err != nil {
		return nil, err
	}

	agg, err := s.feedbackRepo.Aggregate(ctx)
	if err != nil {
		return nil, err
	}

	average := 0.0
	if agg.AverageRating != nil {
		average = *agg.AverageRating
	}

	return &domain.FeedbackStats{
		AverageRating:    fmt.Sprintf("%.2f", average),
		TotalFeedback:    agg.TotalFeedback,
		PositiveFeedback: agg.PositiveFeedback,
		NegativeFeedback: agg.NegativeFeedback,
	}, nil
}
