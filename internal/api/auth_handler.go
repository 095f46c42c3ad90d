package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/ninthhouse/arcana-api/internal/api/shared"
	"github.com/ninthhouse/arcana-api/internal/config"
	"github.com/ninthhouse/arcana-api/internal/service/auth"
)

// AuthHandler handles authentication-related API requests. The API serves a
// single operator whose bcrypt password hash lives in configuration; a
// successful login yields a bearer token for the protected routes.
type AuthHandler struct {
	authConfig       *config.AuthConfig
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	validator        *validator.Validate
	operatorID       uuid.UUID
	logger           *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
// The operator ID is minted once per process; tokens from a previous process
// remain valid since validation checks only the signature and expiry.
func NewAuthHandler(
	authConfig *config.AuthConfig,
	jwtService auth.JWTService,
	passwordVerifier auth.PasswordVerifier,
	logger *slog.Logger,
) *AuthHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for AuthHandler")
	}

	return &AuthHandler{
		authConfig:       authConfig,
		jwtService:       jwtService,
		passwordVerifier: passwordVerifier,
		validator:        validator.New(),
		operatorID:       uuid.New(),
		logger:           logger.With(slog.String("component", "auth_handler")),
	}
}

// Login handles the /auth/login endpoint.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	// Parse request
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	// Validate request
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	// Verify password using the injected verifier
	if err := h.passwordVerifier.Compare(h.authConfig.OperatorPasswordHash, req.Password); err != nil {
		h.logger.Warn("operator login rejected")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	// Generate token
	token, err := h.jwtService.GenerateToken(r.Context(), h.operatorID)
	if err != nil {
		h.logger.Error("failed to generate token", "error", err)
		shared.RespondWithError(
			w,
			r,
			http.StatusInternalServerError,
			"Failed to generate authentication token",
		)
		return
	}

	expiresAt := time.Now().
		Add(time.Duration(h.authConfig.TokenLifetimeMinutes) * time.Minute).
		UTC().
		Format(time.RFC3339)

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		OperatorID:  h.operatorID,
		AccessToken: token,
		ExpiresAt:   expiresAt,
	})
}
