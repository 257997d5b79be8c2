package handlers

import (
	"hostelcare/internal/adapters/http/middleware"
	"hostelcare/internal/adapters/persistence/models"
	"hostelcare/internal/core/services"
	"hostelcare/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// FeedbackHandler handles feedback endpoints
type FeedbackHandler struct {
	feedbackService FeedbackUseCase
}

// NewFeedbackHandler creates a new feedback handler
func NewFeedbackHandler(feedbackService FeedbackUseCase) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

// SubmitFeedbackRequest represents submit feedback body.
// complaintId and rating may be sent as numbers or numeric strings.
type SubmitFeedbackRequest struct {
	ComplaintID flexInt `json:"complaintId" swaggertype:"integer"`
	Rating      flexInt `json:"rating" swaggertype:"integer"`
	Comment     string  `json:"comment"`
}

// Submit handles feedback submission
// @Summary Submit feedback
// @Description Rate one of your own complaints (1-5). One feedback per complaint.
// @Tags Feedback
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SubmitFeedbackRequest true "Feedback"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /feedback [post]
func (h *FeedbackHandler) Submit(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req SubmitFeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	complaintID := 0
	if req.ComplaintID.Set && req.ComplaintID.Value > 0 {
		complaintID = req.ComplaintID.Value
	}

	feedback, err := h.feedbackService.Submit(c.Context(), identity, &services.SubmitFeedbackInput{
		ComplaintID: uint(complaintID),
		Rating:      req.Rating.Value,
		Comment:     req.Comment,
	})
	if err != nil {
		return fail(c, err, "submitting feedback")
	}

	return response.Created(c, "Feedback submitted successfully", fiber.Map{
		"feedback": feedback,
	})
}

// ListForComplaint handles listing feedback on a complaint
// @Summary List complaint feedback
// @Tags Feedback
// @Produce json
// @Security BearerAuth
// @Param complaintId path int true "Complaint ID"
// @Success 200 {object} map[string]interface{}
// @Router /feedback/{complaintId} [get]
func (h *FeedbackHandler) ListForComplaint(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	feedback := []*models.FeedbackWithUser{}
	if id, ok := idParam(c, "complaintId"); ok {
		rows, err := h.feedbackService.ListForComplaint(c.Context(), identity, id)
		if err != nil {
			return fail(c, err, "fetching feedback")
		}
		if rows != nil {
			feedback = rows
		}
	}

	return response.Success(c, "", fiber.Map{
		"feedback": feedback,
		"count":    len(feedback),
	})
}

// AverageStats handles rating statistics (warden only)
// @Summary Feedback statistics
// @Tags Feedback
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.FeedbackStats
// @Failure 403 {object} response.Response
// @Router /feedback/stats/average [get]
func (h *FeedbackHandler) AverageStats(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	stats, err := h.feedbackService.AverageStats(c.Context(), identity)
	if err != nil {
		return fail(c, err, "fetching feedback statistics")
	}

	return response.Success(c, "", fiber.Map{
		"averageRating":    stats.AverageRating,
		"totalFeedback":    stats.TotalFeedback,
		"positiveFeedback": stats.PositiveFeedback,
		"negativeFeedback": stats.NegativeFeedback,
	})
}
