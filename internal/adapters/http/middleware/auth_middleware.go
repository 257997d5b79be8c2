package middleware

import (
	"errors"
	"strings"

	"hostelcare/internal/core/domain"
	"hostelcare/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// identityKey is the fiber.Locals key holding the caller identity
const identityKey = "identity"

// TokenVerifier turns a bearer token into a caller identity
type TokenVerifier interface {
	Verify(token string) (domain.Identity, error)
}

// AuthMiddleware creates authentication middleware
func AuthMiddleware(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Read Authorization header
		accessToken := bearerToken(c.Get(fiber.HeaderAuthorization))

		// 2. No token found
		if accessToken == "" {
			return response.Unauthorized(c, "No token, authorization denied")
		}

		// 3. Validate token
		identity, err := verifier.Verify(accessToken)
		if err != nil {
			if errors.Is(err, domain.ErrTokenExpired) {
				return response.Unauthorized(c, "Token has expired")
			}
			return response.Unauthorized(c, "Token is not valid")
		}

		// 4. Set caller in context
		c.Locals(identityKey, identity)

		return c.Next()
	}
}

// CurrentIdentity returns the caller set by AuthMiddleware
func CurrentIdentity(c *fiber.Ctx) (domain.Identity, bool) {
	identity, ok := c.Locals(identityKey).(domain.Identity)
	return identity, ok
}

// SetIdentity stores identity on the request context
func SetIdentity(c *fiber.Ctx, identity domain.Identity) {
	c.Locals(identityKey, identity)
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
