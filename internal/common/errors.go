package common

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound           = errors.New("requested resource not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("unauthorized access")
	ErrForbidden          = errors.New("forbidden access")
	ErrBadRequest         = errors.New("bad request")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrValidation         = errors.New("validation failed")
	ErrInternalServer     = errors.New("internal server error")
)

// ValidationError names the offending field and the rule it violated, so
// clients get a structured reason instead of ad hoc per-field messages.
type ValidationError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Rule)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func NewValidationError(field, rule string) error {
	return &ValidationError{Field: field, Rule: rule}
}

// HTTPStatusFromError maps domain errors to HTTP status codes.
func HTTPStatusFromError(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrInvalidCredentials) || errors.Is(err, ErrUnauthorized) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrForbidden) {
		return http.StatusForbidden
	}
	if errors.Is(err, ErrBadRequest) || errors.Is(err, ErrValidation) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrDuplicateEmail) {
		return http.StatusConflict
	}

	// Unique constraint violations that escaped the repository layer.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			return http.StatusConflict
		}
	}

	return http.StatusInternalServerError
}

// Errorf creates a new error with formatting, useful for wrapping.
func Errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
