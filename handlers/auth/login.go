package auth

import (
	"crypto/subtle"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/saikumarp/eapcet-predictor/config"
	"github.com/saikumarp/eapcet-predictor/utils/auth"
	"github.com/saikumarp/eapcet-predictor/utils/response"
	"github.com/saikumarp/eapcet-predictor/utils/validation"
)

// AuthHandler issues admin tokens. There is no user table: the single admin
// principal is configured through the environment.
type AuthHandler struct {
	env        *config.EnviornmentVariable
	jwtManager *auth.JWTManager
	validator  *validation.Validator
	expiry     time.Duration
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(env *config.EnviornmentVariable, jwtManager *auth.JWTManager, expiry time.Duration) *AuthHandler {
	return &AuthHandler{
		env:        env,
		jwtManager: jwtManager,
		validator:  validation.NewValidator(),
		expiry:     expiry,
	}
}

// LoginRequest represents an admin login request
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginResponse represents a successful login response
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"` // in seconds
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	if h.env.ADMIN_EMAIL == "" || h.env.ADMIN_PASSWORD_HASH == "" {
		return response.ServiceUnavailable(c, "Admin login is not configured")
	}

	emailMatch := subtle.ConstantTimeCompare([]byte(req.Email), []byte(h.env.ADMIN_EMAIL)) == 1
	if err := auth.VerifyPassword(h.env.ADMIN_PASSWORD_HASH, req.Password); err != nil || !emailMatch {
		return response.Unauthorized(c, "Invalid email or password")
	}

	accessToken, _, err := h.jwtManager.GenerateToken(h.env.ADMIN_EMAIL, "admin")
	if err != nil {
		return response.InternalServerError(c, "Failed to generate access token")
	}

	return response.Success(c, LoginResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int(h.expiry.Seconds()),
	})
}
