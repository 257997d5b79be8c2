package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"hostelcare/internal/adapters/http/middleware"
	"hostelcare/internal/adapters/persistence/models"
	"hostelcare/internal/core/domain"
	"hostelcare/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

type mockAuthUseCase struct {
	RegisterFunc    func(ctx context.Context, input *services.RegisterInput) (*services.AuthResponse, error)
	LoginFunc       func(ctx context.Context, input *services.LoginInput) (*services.AuthResponse, error)
	GetUserByIDFunc func(ctx context.Context, userID uint) (*models.User, error)
}

func (m *mockAuthUseCase) Register(ctx context.Context, input *services.RegisterInput) (*services.AuthResponse, error) {
	return m.RegisterFunc(ctx, input)
}

func (m *mockAuthUseCase) Login(ctx context.Context, input *services.LoginInput) (*services.AuthResponse, error) {
	return m.LoginFunc(ctx, input)
}

func (m *mockAuthUseCase) GetUserByID(ctx context.Context, userID uint) (*models.User, error) {
	return m.GetUserByIDFunc(ctx, userID)
}

type mockComplaintUseCase struct {
	CreateFunc         func(ctx context.Context, caller domain.Identity, input *services.CreateComplaintInput) (*models.Complaint, error)
	ListFunc           func(ctx context.Context, caller domain.Identity, filter domain.ComplaintFilter) ([]*models.Complaint, error)
	GetByIDFunc        func(ctx context.Context, caller domain.Identity, id uint) (*models.Complaint, error)
	UpdateStatusFunc   func(ctx context.Context, caller domain.Identity, id uint, status domain.Status) (*models.Complaint, error)
	AssignFunc         func(ctx context.Context, caller domain.Identity, id uint, input *services.AssignInput) (*models.Complaint, error)
	DeleteFunc         func(ctx context.Context, caller domain.Identity, id uint) (*models.Complaint, error)
	DashboardStatsFunc func(ctx context.Context, caller domain.Identity) (*domain.DashboardStats, error)
}

func (m *mockComplaintUseCase) Create(ctx context.Context, caller domain.Identity, input *services.CreateComplaintInput) (*models.Complaint, error) {
	return m.CreateFunc(ctx, caller, input)
}

func (m *mockComplaintUseCase) List(ctx context.Context, caller domain.Identity, filter domain.ComplaintFilter) ([]*models.Complaint, error) {
	return m.ListFunc(ctx, caller, filter)
}

func (m *mockComplaintUseCase) GetByID(ctx context.Context, caller domain.Identity, id uint) (*models.Complaint, error) {
	return m.GetByIDFunc(ctx, caller, id)
}

func (m *mockComplaintUseCase) UpdateStatus(ctx context.Context, caller domain.Identity, id uint, status domain.Status) (*models.Complaint, error) {
	return m.UpdateStatusFunc(ctx, caller, id, status)
}

func (m *mockComplaintUseCase) Assign(ctx context.Context, caller domain.Identity, id uint, input *services.AssignInput) (*models.Complaint, error) {
	return m.AssignFunc(ctx, caller, id, input)
}

func (m *mockComplaintUseCase) Delete(ctx context.Context, caller domain.Identity, id uint) (*models.Complaint, error) {
	return m.DeleteFunc(ctx, caller, id)
}

func (m *mockComplaintUseCase) DashboardStats(ctx context.Context, caller domain.Identity) (*domain.DashboardStats, error) {
	return m.DashboardStatsFunc(ctx, caller)
}

type mockFeedbackUseCase struct {
	SubmitFunc           func(ctx context.Context, caller domain.Identity, input *services.SubmitFeedbackInput) (*models.Feedback, error)
	ListForComplaintFunc func(ctx context.Context, caller domain.Identity, complaintID uint) ([]*models.FeedbackWithUser, error)
	AverageStatsFunc     func(ctx context.Context, caller domain.Identity) (*domain.FeedbackStats, error)
}

func (m *mockFeedbackUseCase) Submit(ctx context.Context, caller domain.Identity, input *services.SubmitFeedbackInput) (*models.Feedback, error) {
	return m.SubmitFunc(ctx, caller, input)
}

func (m *mockFeedbackUseCase) ListForComplaint(ctx context.Context, caller domain.Identity, complaintID uint) ([]*models.FeedbackWithUser, error) {
	return m.ListForComplaintFunc(ctx, caller, complaintID)
}

func (m *mockFeedbackUseCase) AverageStats(ctx context.Context, caller domain.Identity) (*domain.FeedbackStats, error) {
	return m.AverageStatsFunc(ctx, caller)
}

var (
	student = domain.Identity{ID: 7, Email: "asha@hostel.edu", Role: domain.RoleStudent, FullName: "Asha Rao"}
	warden  = domain.Identity{ID: 1, Email: "warden@hostel.edu", Role: domain.RoleWarden, FullName: "Ward Smith"}
)

// as injects caller the way AuthMiddleware would
func as(caller domain.Identity) fiber.Handler {
	return func(c *fiber.Ctx) error {
		middleware.SetIdentity(c, caller)
		return c.Next()
	}
}

func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: middleware.CustomErrorHandler})
}

// doJSON runs req against app and decodes the JSON body
func doJSON(t *testing.T, app *fiber.App, req *http.Request) (int, map[string]interface{}) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	body := map[string]interface{}{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &body), string(raw))
	}
	return resp.StatusCode, body
}
