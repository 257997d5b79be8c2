package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"hostelcare/internal/adapters/persistence/models"
	"hostelcare/internal/adapters/persistence/repositories"
	"hostelcare/internal/core/domain"
	"hostelcare/internal/pkg/jwt"
	"hostelcare/internal/pkg/password"
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo repositories.UserRepository
	tokens   *jwt.Manager
	hashCost int
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repositories.UserRepository, tokens *jwt.Manager) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		hashCost: password.DefaultCost,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	FullName   string
	Email      string
	Password   string
	Role       domain.Role
	HostelName string
	RoomNumber string
}

// LoginInput represents login input. Role is optional.
type LoginInput struct {
	Email    string
	Password string
	Role     domain.Role
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User  *models.UserResponse `json:"user"`
	Token string               `json:"token"`
}

// Register registers a new user
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*AuthResponse, error) {
	email := NormalizeEmail(input.Email)
	fullName := strings.TrimSpace(input.FullName)

	if fullName == "" {
		return nil, fmt.Errorf("%w: full name is required", domain.ErrValidation)
	}
	if !input.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}
	if !password.ValidatePassword(input.Password) {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, password.MinLength)
	}

	// 1. Check if email already exists
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailTaken
	}

	// 2. Hash password
	hashedPassword, err := password.HashWithCost(input.Password, s.hashCost)
	if err != nil {
		return nil, err
	}

	// 3. Create user
	user := &models.User{
		FullName:   fullName,
		Email:      email,
		Password:   hashedPassword,
		Role:       input.Role,
		HostelName: optional(input.HostelName),
		RoomNumber: optional(input.RoomNumber),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Lost a race with a concurrent signup for the same email
		if isDuplicateKey(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}

	// 4. Generate token
	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ User registered: %s (role: %s)", user.Email, user.Role)

	return &AuthResponse{
		User:  user.ToResponse(),
		Token: token,
	}, nil
}

// Login authenticates a user
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	// 1. Find user by email
	user, err := s.userRepo.GetByEmail(ctx, NormalizeEmail(input.Email))
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	// 2. Check requested role
	if input.Role != "" && user.Role != input.Role {
		return nil, domain.ErrRoleMismatch
	}

	// 3. Verify password
	if !password.Verify(input.Password, user.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	// 4. Generate token
	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ User logged in: %s", user.Email)

	return &AuthResponse{
		User:  user.ToResponse(),
		Token: token,
	}, nil
}

// Verify validates a bearer token and returns the identity it carries
func (s *AuthService) Verify(token string) (domain.Identity, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Identity{}, domain.ErrTokenExpired
		}
		return domain.Identity{}, domain.ErrInvalidToken
	}

	role := domain.Role(claims.Role)
	if claims.UserID == 0 || !role.Valid() {
		return domain.Identity{}, domain.ErrInvalidToken
	}

	return domain.Identity{
		ID:         claims.UserID,
		Email:      claims.Email,
		Role:       role,
		FullName:   claims.FullName,
		HostelName: claims.HostelName,
		RoomNumber: claims.RoomNumber,
	}, nil
}

// GetUserByID re-reads a user from storage
func (s *AuthService) GetUserByID(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// generateToken signs a session token for user
func (s *AuthService) generateToken(user *models.User) (string, error) {
	return s.tokens.Generate(jwt.Claims{
		UserID:     user.ID,
		Email:      user.Email,
		Role:       string(user.Role),
		FullName:   user.FullName,
		HostelName: deref(user.HostelName),
		RoomNumber: deref(user.RoomNumber),
	})
}

// NormalizeEmail trims and lowercases an email for storage and lookup
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
