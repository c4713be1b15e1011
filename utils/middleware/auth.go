package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/saikumarp/eapcet-predictor/utils/auth"
	"github.com/saikumarp/eapcet-predictor/utils/response"
)

const claimsContextKey = "auth_claims"

// AuthMiddleware handles JWT authentication for the admin surface. There is
// no user table: the only principal is the dataset administrator whose
// credentials live in the environment.
type AuthMiddleware struct {
	jwtManager *auth.JWTManager
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(jwtManager *auth.JWTManager) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
	}
}

// RequireAdmin is middleware that requires a valid admin token
func (m *AuthMiddleware) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get token from Authorization header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "Missing authorization token")
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return response.Unauthorized(c, "Invalid authorization format")
		}

		claims, err := m.jwtManager.ValidateToken(parts[1])
		if err != nil {
			if err == auth.ErrExpiredToken {
				return response.Unauthorized(c, "Token has expired")
			}
			return response.Unauthorized(c, "Invalid token")
		}

		if claims.Role != "admin" {
			return response.Forbidden(c, "Administrator access required")
		}

		c.Locals(claimsContextKey, claims)
		return c.Next()
	}
}

// GetClaims returns the validated claims stored by RequireAdmin
func GetClaims(c *fiber.Ctx) (*auth.Claims, bool) {
	claims, ok := c.Locals(claimsContextKey).(*auth.Claims)
	return claims, ok
}
