package handlers

import (
	"errors"
	"log"
	"path"

	"hostelcare/internal/adapters/http/middleware"
	"hostelcare/internal/adapters/persistence/models"
	"hostelcare/internal/core/domain"
	"hostelcare/internal/core/services"
	"hostelcare/internal/pkg/response"
	"hostelcare/internal/pkg/upload"
	"hostelcare/internal/pkg/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

// ComplaintHandler handles complaint endpoints
type ComplaintHandler struct {
	complaintService ComplaintUseCase
	uploads          *upload.Store
}

// NewComplaintHandler creates a new complaint handler
func NewComplaintHandler(complaintService ComplaintUseCase, uploads *upload.Store) *ComplaintHandler {
	return &ComplaintHandler{
		complaintService: complaintService,
		uploads:          uploads,
	}
}

// CreateComplaintRequest represents the multipart create form
type CreateComplaintRequest struct {
	Title       string `form:"title" validate:"required"`
	Category    string `form:"category" validate:"required,oneof=Electrical Plumbing Furniture Cleaning Other"`
	Description string `form:"description" validate:"required"`
	Location    string `form:"location" validate:"required"`
	Urgency     string `form:"urgency" validate:"required,oneof=low medium high"`
}

// UpdateStatusRequest represents status update body
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// AssignRequest represents assign body
type AssignRequest struct {
	AssignedTo string `json:"assignedTo"`
	Urgency    string `json:"urgency"`
	Deadline   string `json:"deadline"`
}

// Create handles complaint creation
// @Summary Create complaint
// @Description File a maintenance complaint with an optional image (jpeg/png/gif, max 5MB)
// @Tags Complaints
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param category formData string true "Electrical, Plumbing, Furniture, Cleaning or Other"
// @Param description formData string true "Description"
// @Param location formData string true "Location"
// @Param urgency formData string true "low, medium or high"
// @Param image formData file false "Image"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} response.Response
// @Router /complaints [post]
func (h *ComplaintHandler) Create(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	// Role is checked before the form is read or anything is written to disk
	if _, err := domain.Authorize(domain.OpCreateComplaint, identity.Role); err != nil {
		return fail(c, err, "creating complaint")
	}

	var req CreateComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if errs := validate.Struct(req); errs != nil {
		return response.ValidationFailed(c, errs)
	}

	filename, err := h.saveImage(c)
	if err != nil {
		switch {
		case errors.Is(err, upload.ErrFileTooLarge):
			return response.BadRequest(c, "Image must be 5MB or smaller")
		case errors.Is(err, upload.ErrUnsupportedType):
			return response.BadRequest(c, "Only image files are allowed!")
		default:
			return fail(c, err, "saving image")
		}
	}

	input := &services.CreateComplaintInput{
		Title:       req.Title,
		Category:    domain.Category(req.Category),
		Description: req.Description,
		Location:    req.Location,
		Urgency:     domain.Urgency(req.Urgency),
	}
	if filename != "" {
		publicPath := h.uploads.PublicPath(filename)
		input.ImagePath = &publicPath
	}

	complaint, err := h.complaintService.Create(c.Context(), identity, input)
	if err != nil {
		h.removeImage(filename)
		return fail(c, err, "creating complaint")
	}

	return response.Created(c, "Complaint created successfully", fiber.Map{
		"complaint": complaint,
	})
}

// List handles listing complaints
// @Summary List complaints
// @Description Students see their own complaints, wardens see all. Newest first.
// @Tags Complaints
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Param category query string false "Category filter"
// @Param urgency query string false "Urgency filter"
// @Success 200 {object} map[string]interface{}
// @Router /complaints [get]
func (h *ComplaintHandler) List(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	complaints, err := h.complaintService.List(c.Context(), identity, domain.ComplaintFilter{
		Status:   domain.Status(c.Query("status")),
		Category: domain.Category(c.Query("category")),
		Urgency:  domain.Urgency(c.Query("urgency")),
	})
	if err != nil {
		return fail(c, err, "fetching complaints")
	}
	if complaints == nil {
		complaints = []*models.Complaint{}
	}

	return response.Success(c, "", fiber.Map{
		"complaints": complaints,
		"count":      len(complaints),
	})
}

// GetByID handles fetching one complaint
// @Summary Get complaint
// @Tags Complaints
// @Produce json
// @Security BearerAuth
// @Param id path int true "Complaint ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.Response
// @Router /complaints/{id} [get]
func (h *ComplaintHandler) GetByID(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, ok := idParam(c, "id")
	if !ok {
		return fail(c, domain.ErrComplaintNotFound, "fetching complaint")
	}

	complaint, err := h.complaintService.GetByID(c.Context(), identity, id)
	if err != nil {
		return fail(c, err, "fetching complaint")
	}

	return response.Success(c, "", fiber.Map{
		"complaint": complaint,
	})
}

// UpdateStatus handles status changes (warden only)
// @Summary Update complaint status
// @Tags Complaints
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Complaint ID"
// @Param body body UpdateStatusRequest true "New status"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /complaints/{id}/status [put]
func (h *ComplaintHandler) UpdateStatus(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	if _, err := domain.Authorize(domain.OpUpdateStatus, identity.Role); err != nil {
		return fail(c, err, "updating complaint")
	}

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	id, _ := idParam(c, "id")

	complaint, err := h.complaintService.UpdateStatus(c.Context(), identity, id, domain.Status(req.Status))
	if err != nil {
		return fail(c, err, "updating complaint")
	}

	return response.Success(c, "Complaint status updated successfully", fiber.Map{
		"complaint": complaint,
	})
}

// Assign handles assigning a complaint to a team (warden only)
// @Summary Assign complaint
// @Description Set assignee, urgency (default medium) and deadline; status becomes assigned
// @Tags Complaints
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Complaint ID"
// @Param body body AssignRequest true "Assignment"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /complaints/{id}/assign [put]
func (h *ComplaintHandler) Assign(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	if _, err := domain.Authorize(domain.OpAssignComplaint, identity.Role); err != nil {
		return fail(c, err, "assigning complaint")
	}

	var req AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	id, _ := idParam(c, "id")

	complaint, err := h.complaintService.Assign(c.Context(), identity, id, &services.AssignInput{
		AssignedTo: req.AssignedTo,
		Urgency:    domain.Urgency(req.Urgency),
		Deadline:   req.Deadline,
	})
	if err != nil {
		return fail(c, err, "assigning complaint")
	}

	return response.Success(c, "Complaint assigned successfully", fiber.Map{
		"complaint": complaint,
	})
}

// Delete handles deleting the caller's own complaint
// @Summary Delete complaint
// @Tags Complaints
// @Produce json
// @Security BearerAuth
// @Param id path int true "Complaint ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.Response
// @Router /complaints/{id} [delete]
func (h *ComplaintHandler) Delete(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, _ := idParam(c, "id")

	complaint, err := h.complaintService.Delete(c.Context(), identity, id)
	if err != nil {
		return fail(c, err, "deleting complaint")
	}

	if complaint.ImagePath != nil {
		h.removeImage(path.Base(*complaint.ImagePath))
	}

	return response.Success(c, "Complaint deleted successfully", nil)
}

// DashboardStats handles per-status counts
// @Summary Complaint dashboard statistics
// @Description Own complaints for students, all complaints for wardens
// @Tags Complaints
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.DashboardStats
// @Router /complaints/stats/dashboard [get]
func (h *ComplaintHandler) DashboardStats(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	stats, err := h.complaintService.DashboardStats(c.Context(), identity)
	if err != nil {
		return fail(c, err, "fetching statistics")
	}

	return response.Success(c, "", fiber.Map{
		"total":      stats.Total,
		"submitted":  stats.Submitted,
		"inProgress": stats.InProgress,
		"resolved":   stats.Resolved,
		"overdue":    stats.Overdue,
	})
}

// saveImage stores the optional "image" form file and returns its filename
func (h *ComplaintHandler) saveImage(c *fiber.Ctx) (string, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, fasthttp.ErrMissingFile) || errors.Is(err, fasthttp.ErrNoMultipartForm) {
			return "", nil
		}
		return "", err
	}

	if err := h.uploads.Validate(fh); err != nil {
		return "", err
	}

	filename := h.uploads.NewFilename(fh.Filename)
	if err := c.SaveFile(fh, h.uploads.DiskPath(filename)); err != nil {
		return "", err
	}
	return filename, nil
}

func (h *ComplaintHandler) removeImage(filename string) {
	if filename == "" {
		return
	}
	if err := h.uploads.Remove(filename); err != nil {
		log.Printf("⚠️ Failed to remove image %s: %v", filename, err)
	}
}
