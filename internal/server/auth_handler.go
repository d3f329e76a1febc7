// Package server provides the HTTP REST API for the counselling service.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/aura/counsel/internal/types"
)

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	userService *UserService
	jwtService  *JWTService
	validator   *validator.Validate
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(userService *UserService, jwtService *JWTService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		jwtService:  jwtService,
		validator:   validator.New(),
	}
}

// Signup handles password-based registration requests.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req types.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		http.Error(w, extractValidationErrors(err), http.StatusBadRequest)
		return
	}

	user, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		http.Error(w, err.Error(), HTTPStatus(err))
		return
	}

	h.respondWithToken(w, http.StatusCreated, "User created successfully", user)
}

// Login handles password-based login requests.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		http.Error(w, extractValidationErrors(err), http.StatusBadRequest)
		return
	}

	user, err := h.userService.Login(r.Context(), &req)
	if err != nil {
		http.Error(w, err.Error(), HTTPStatus(err))
		return
	}

	h.respondWithToken(w, http.StatusOK, "Login successful", user)
}

// OAuth handles the Google sign-in pass-through. An unknown email creates the
// account; a known google account logs in; a known password account is
// rejected.
func (h *AuthHandler) OAuth(w http.ResponseWriter, r *http.Request) {
	var req types.OAuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		http.Error(w, extractValidationErrors(err), http.StatusBadRequest)
		return
	}

	user, created, err := h.userService.OAuth(r.Context(), &req)
	if err != nil {
		http.Error(w, err.Error(), HTTPStatus(err))
		return
	}

	status := http.StatusOK
	message := "Login successful"
	if created {
		status = http.StatusCreated
		message = "User created successfully"
	}
	h.respondWithToken(w, status, message, user)
}

// UpdatePasswordWithUserID handles password update requests with an explicit user ID.
func (h *AuthHandler) UpdatePasswordWithUserID(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	var req struct {
		CurrentPassword string `json:"current_password" validate:"required"`
		NewPassword     string `json:"new_password" validate:"required,min=6"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		http.Error(w, extractValidationErrors(err), http.StatusBadRequest)
		return
	}

	if err := h.userService.UpdatePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		http.Error(w, err.Error(), HTTPStatus(err))
		return
	}

	response := map[string]string{
		"message": "Password updated successfully",
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		// Log error but response already sent
		return
	}
}

// respondWithToken signs a token for the user and writes the auth envelope.
func (h *AuthHandler) respondWithToken(w http.ResponseWriter, status int, message string, user *types.User) {
	token, err := h.jwtService.GenerateToken(user.ID)
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	response := types.AuthResponse{
		Message: message,
		User:    user,
		Token:   token,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		// Log error but response already sent
		return
	}
}

// extractValidationErrors extracts validation error messages from validator errors.
func extractValidationErrors(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		if len(validationErrors) > 0 {
			// Return first validation error for simplicity
			ve := validationErrors[0]
			return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
		}
	}
	return "validation error: invalid request"
}
