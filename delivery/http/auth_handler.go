package http

import (
	"encoding/json"
	"net/http"

	"github.com/kindaboxs/meetboxs/contracts"
	"github.com/kindaboxs/meetboxs/pkg/api"
	"github.com/kindaboxs/meetboxs/pkg/logger"
	"github.com/kindaboxs/meetboxs/pkg/validator"
	"github.com/kindaboxs/meetboxs/usecase"
)

// AuthHandler handles HTTP requests for authentication operations
type AuthHandler struct {
	// AuthUseCase contains business logic for authentication operations
	AuthUseCase usecase.AuthUseCase
	// Logger is used for logging operations within the handler
	Logger logger.LoggerInterface
	// API provides standardized API response patterns
	API api.Api
}

// NewAuthHandler creates a new instance of AuthHandler
func NewAuthHandler(authUseCase usecase.AuthUseCase, appLogger logger.LoggerInterface) *AuthHandler {
	return &AuthHandler{
		AuthUseCase: authUseCase,
		Logger:      appLogger,
		API:         api.New(),
	}
}

// RegisterHandler handles HTTP requests for account creation
// It expects a JSON payload with name, email and matching passwords
// Returns a 201 status code with a token pair on success
// Returns a 409 status code when the email is already registered
// Returns a 422 status code for validation errors
func (h *AuthHandler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	h.Logger.InfoContext(ctx, "Register handler called")

	var req contracts.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.ErrorContext(ctx, "Failed to decode register request", "error", err)
		h.API.BadRequest(ctx, w, "Invalid request body")
		return
	}

	if errs := validator.ValidateStruct(&req); errs != nil {
		h.Logger.WarnContext(ctx, "Validation failed for register request", "errors", errs)
		h.API.ValidationError(ctx, w, convertValidationErrors(errs))
		return
	}

	response, err := h.AuthUseCase.Register(ctx, &req)
	if err != nil {
		h.Logger.WarnContext(ctx, "Registration failed", "email", req.Email, "error", err)
		respondError(ctx, w, h.API, h.Logger, err)
		return
	}

	h.Logger.InfoContext(ctx, "Registration successful", "email", req.Email)
	h.API.Created(ctx, w, response)
}

// LoginHandler handles HTTP requests for user login
// It expects a JSON payload with email and password in the request body
// Returns a 200 status code with access and refresh tokens on success
// Returns a 401 status code for invalid credentials
func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	h.Logger.InfoContext(ctx, "Login handler called")

	var req contracts.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.ErrorContext(ctx, "Failed to decode login request", "error", err)
		h.API.BadRequest(ctx, w, "Invalid request body")
		return
	}

	if errs := validator.ValidateStruct(&req); errs != nil {
		h.Logger.WarnContext(ctx, "Validation failed for login request", "errors", errs)
		h.API.ValidationError(ctx, w, convertValidationErrors(errs))
		return
	}

	response, err := h.AuthUseCase.Login(ctx, &req)
	if err != nil {
		h.Logger.WarnContext(ctx, "Login failed", "email", req.Email, "error", err)
		respondError(ctx, w, h.API, h.Logger, err)
		return
	}

	h.Logger.InfoContext(ctx, "Login successful")
	h.API.Success(ctx, w, response)
}

// RefreshHandler handles HTTP requests for token refresh
// It expects a JSON payload with refresh_token in the request body
// Returns a 200 status code with a new token pair on success
// Returns a 401 status code for an invalid or rotated refresh token
func (h *AuthHandler) RefreshHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	h.Logger.InfoContext(ctx, "Refresh token handler called")

	var req contracts.RefreshTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.ErrorContext(ctx, "Failed to decode refresh request", "error", err)
		h.API.BadRequest(ctx, w, "Invalid request body")
		return
	}

	if errs := validator.ValidateStruct(&req); errs != nil {
		h.Logger.WarnContext(ctx, "Validation failed for refresh request", "errors", errs)
		h.API.ValidationError(ctx, w, convertValidationErrors(errs))
		return
	}

	response, err := h.AuthUseCase.Refresh(ctx, &req)
	if err != nil {
		h.Logger.WarnContext(ctx, "Token refresh failed", "error", err)
		respondError(ctx, w, h.API, h.Logger, err)
		return
	}

	h.Logger.InfoContext(ctx, "Token refresh successful")
	h.API.Success(ctx, w, response)
}

// ProfileHandler handles HTTP requests for the authenticated user's profile
// Returns a 200 status code with user profile data on success
func (h *AuthHandler) ProfileHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	h.Logger.InfoContext(ctx, "Profile handler called")

	response, err := h.AuthUseCase.Profile(ctx, CallerID(ctx))
	if err != nil {
		h.Logger.WarnContext(ctx, "Profile retrieval failed", "error", err)
		respondError(ctx, w, h.API, h.Logger, err)
		return
	}

	h.Logger.InfoContext(ctx, "Profile retrieved successfully")
	h.API.Success(ctx, w, response)
}
