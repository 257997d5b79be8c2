package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"hostelcare/internal/adapters/persistence/models"
	"hostelcare/internal/core/domain"
	"hostelcare/internal/core/services"
	"hostelcare/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthUseCase is the part of services.AuthService used over HTTP
type AuthUseCase interface {
	Register(ctx context.Context, input *services.RegisterInput) (*services.AuthResponse, error)
	Login(ctx context.Context, input *services.LoginInput) (*services.AuthResponse, error)
	GetUserByID(ctx context.Context, userID uint) (*models.User, error)
}

// ComplaintUseCase is the part of services.ComplaintService used over HTTP
type ComplaintUseCase interface {
	Create(ctx context.Context, caller domain.Identity, input *services.CreateComplaintInput) (*models.Complaint, error)
	List(ctx context.Context, caller domain.Identity, filter domain.ComplaintFilter) ([]*models.Complaint, error)
	GetByID(ctx context.Context, caller domain.Identity, id uint) (*models.Complaint, error)
	UpdateStatus(ctx context.Context, caller domain.Identity, id uint, status domain.Status) (*models.Complaint, error)
	Assign(ctx context.Context, caller domain.Identity, id uint, input *services.AssignInput) (*models.Complaint, error)
	Delete(ctx context.Context, caller domain.Identity, id uint) (*models.Complaint, error)
	DashboardStats(ctx context.Context, caller domain.Identity) (*domain.DashboardStats, error)
}

// FeedbackUseCase is the part of services.FeedbackService used over HTTP
type FeedbackUseCase interface {
	Submit(ctx context.Context, caller domain.Identity, input *services.SubmitFeedbackInput) (*models.Feedback, error)
	ListForComplaint(ctx context.Context, caller domain.Identity, complaintID uint) ([]*models.FeedbackWithUser, error)
	AverageStats(ctx context.Context, caller domain.Identity) (*domain.FeedbackStats, error)
}

// fail maps a service error to an HTTP response
func fail(c *fiber.Ctx, err error, action string) error {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrConflict):
		return response.BadRequest(c, errorMessage(err))
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrInvalidToken):
		return response.Unauthorized(c, errorMessage(err))
	case errors.Is(err, domain.ErrForbidden):
		return response.Forbidden(c, errorMessage(err))
	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, errorMessage(err))
	default:
		log.Printf("❌ %s error: %v", action, err)
		return response.InternalServerError(c, "Server error while "+action)
	}
}

// errorMessage strips the error class prefix and capitalises the detail,
// e.g. "resource not found: complaint not found" -> "Complaint not found".
func errorMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, ": "); i >= 0 {
		msg = msg[i+2:]
	}
	r, size := utf8.DecodeRuneInString(msg)
	if r == utf8.RuneError {
		return msg
	}
	return string(unicode.ToUpper(r)) + msg[size:]
}

// idParam parses a positive numeric route parameter
func idParam(c *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// flexInt accepts a JSON number or a numeric string
type flexInt struct {
	Value int
	Set   bool
}

func (f *flexInt) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return err
		}
		f.Value, f.Set = n, true
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	f.Value, f.Set = n, true
	return nil
}

func userBody(u *models.UserResponse) fiber.Map {
	return fiber.Map{
		"id":         u.ID,
		"fullName":   u.FullName,
		"email":      u.Email,
		"role":       u.Role,
		"hostelName": u.HostelName,
		"roomNumber": u.RoomNumber,
	}
}
