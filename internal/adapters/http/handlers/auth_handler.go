package handlers

import (
	"strings"

	"hostelcare/internal/adapters/http/middleware"
	"hostelcare/internal/core/domain"
	"hostelcare/internal/core/services"
	"hostelcare/internal/pkg/response"
	"hostelcare/internal/pkg/validate"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService AuthUseCase
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthUseCase) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// SignupRequest represents registration request body
type SignupRequest struct {
	FullName   string `json:"fullName" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	Role       string `json:"role" validate:"required,oneof=student warden"`
	HostelName string `json:"hostelName"`
	RoomNumber string `json:"roomNumber"`
}

// LoginRequest represents login request body
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"omitempty,oneof=student warden"`
}

// Signup handles user registration
// @Summary Register new user
// @Description Register a student or warden account and return a session token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body SignupRequest true "Registration data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} response.Response
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.TrimSpace(req.Email)
	if errs := validate.Struct(req); errs != nil {
		return response.ValidationFailed(c, errs)
	}

	result, err := h.authService.Register(c.Context(), &services.RegisterInput{
		FullName:   req.FullName,
		Email:      req.Email,
		Password:   req.Password,
		Role:       domain.Role(req.Role),
		HostelName: req.HostelName,
		RoomNumber: req.RoomNumber,
	})
	if err != nil {
		return fail(c, err, "signup")
	}

	return response.Created(c, "User registered successfully", fiber.Map{
		"token": result.Token,
		"user":  result.User,
	})
}

// Login handles user login
// @Summary Login user
// @Description Authenticate with email and password, optionally asserting a role
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.Email = strings.TrimSpace(req.Email)
	if errs := validate.Struct(req); errs != nil {
		return response.ValidationFailed(c, errs)
	}

	result, err := h.authService.Login(c.Context(), &services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		return fail(c, err, "login")
	}

	return response.Success(c, "Login successful", fiber.Map{
		"token": result.Token,
		"user":  result.User,
	})
}

// Me returns the current user info
// @Summary Get current user
// @Description Re-read the authenticated user from storage
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	user, err := h.authService.GetUserByID(c.Context(), identity.ID)
	if err != nil {
		return fail(c, err, "fetching user")
	}

	return response.Success(c, "", userBody(user.ToResponse()))
}
