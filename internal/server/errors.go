// Package server provides the HTTP REST API for the talent screener.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/talent-screener/internal/lifecycle"
	"github.com/jonathan/talent-screener/internal/schemas"
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

// ErrUserNotFound indicates user was not found
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrForbidden indicates the authenticated actor may not perform the action
type ErrForbidden struct {
	Action string
}

func (e *ErrForbidden) Error() string {
	return fmt.Sprintf("forbidden: %s", e.Action)
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
	var schemaErr *schemas.ValidationError
	if errors.As(err, &schemaErr) {
		return http.StatusBadRequest
	}

	switch err.(type) {
	case *ErrEmailAlreadyExists:
		return http.StatusConflict
	case *ErrInvalidCredentials:
		return http.StatusUnauthorized
	case *ErrForbidden:
		return http.StatusForbidden
	case *ErrUserNotFound, *lifecycle.NotFoundError:
		return http.StatusNotFound
	case *ErrValidation, *lifecycle.InvalidStatusError:
		return http.StatusBadRequest
	case *lifecycle.InvalidTransitionError:
		return http.StatusUnprocessableEntity
	case *lifecycle.DuplicateApplicationError, *lifecycle.JobNotOpenError, *lifecycle.ConcurrentUpdateError:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
