package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("token is invalid")
)

// Issuer is stamped on every token
const Issuer = "hostelcare"

// Claims represents the JWT claims
type Claims struct {
	UserID     uint   `json:"id"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	FullName   string `json:"fullName"`
	HostelName string `json:"hostelName,omitempty"`
	RoomNumber string `json:"roomNumber,omitempty"`
	jwt.RegisteredClaims
}

// Manager signs and validates session tokens with one secret
type Manager struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

// NewManager creates a token manager
func NewManager(secret string, expiry time.Duration) *Manager {
	return &Manager{
		secret: []byte(secret),
		expiry: expiry,
		now:    time.Now,
	}
}

// Generate signs a new token for claims, filling the registered claims.
// The same claims at the same instant always yield the same token.
func (m *Manager) Generate(claims Claims) (string, error) {
	now := m.now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		Issuer:    Issuer,
		Subject:   claims.Email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Validate validates a token and returns its claims
func (m *Manager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now), jwt.WithIssuer(Issuer))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrTokenInvalid
}
