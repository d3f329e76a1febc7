// Package server provides the HTTP REST API for the counselling service.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/aura/counsel/internal/analysis"
	"github.com/aura/counsel/internal/fetch"
	"github.com/aura/counsel/internal/recommend"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrAuthMethodMismatch indicates the account exists but was created through a
// different sign-in flow. The message names the flow the account actually
// uses, matching what the frontend displays.
type ErrAuthMethodMismatch struct {
	Message string
}

func (e *ErrAuthMethodMismatch) Error() string {
	return e.Message
}

// ErrUserNotFound indicates user was not found
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrPasswordMismatch indicates current password is incorrect
type ErrPasswordMismatch struct{}

func (e *ErrPasswordMismatch) Error() string {
	return "current password is incorrect"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrEmailAlreadyExists, *ErrAuthMethodMismatch:
		return http.StatusConflict
	case *ErrInvalidCredentials, *ErrPasswordMismatch:
		return http.StatusUnauthorized
	case *ErrUserNotFound:
		return http.StatusNotFound
	case *ErrValidation:
		return http.StatusBadRequest
	}

	var reqErr *recommend.RequestError
	if errors.As(err, &reqErr) {
		return http.StatusBadRequest
	}

	// Upstream failures: the analysis provider or an official page we proxy.
	var transportErr *analysis.TransportError
	var protocolErr *analysis.ProtocolError
	var fetchErr *fetch.Error
	if errors.As(err, &transportErr) || errors.As(err, &protocolErr) || errors.As(err, &fetchErr) {
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}
