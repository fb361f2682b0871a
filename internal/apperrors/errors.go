package apperrors

import (
	"errors"
	"net/http"
)

// Sentinel errors shared by every bounded context. Callers wrap them with
// fmt.Errorf("...: %w", ErrX) and handlers classify with errors.Is.
var (
	ErrValidation        = errors.New("validation failed")
	ErrUnauthenticated   = errors.New("authentication required")
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrDependency        = errors.New("dependency unavailable")
)

// Code is the machine readable error code returned in API error bodies.
type Code string

const (
	CodeValidationFailed  Code = "VALIDATION_FAILED"
	CodeUnauthorized      Code = "UNAUTHORIZED"
	CodeForbidden         Code = "FORBIDDEN"
	CodeNotFound          Code = "NOT_FOUND"
	CodeInvalidTransition Code = "INVALID_TRANSITION"
	CodeDependency        Code = "DEPENDENCY_ERROR"
	CodeInternal          Code = "INTERNAL_ERROR"
)

// Classify maps an error chain onto an HTTP status and error code.
func Classify(err error) (int, Code) {
	switch {
	case err == nil:
		return http.StatusOK, ""
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest, CodeValidationFailed
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized, CodeUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, CodeForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, ErrInvalidTransition):
		return http.StatusConflict, CodeInvalidTransition
	case errors.Is(err, ErrDependency):
		return http.StatusBadGateway, CodeDependency
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

// IsRetryable reports whether the caller may retry the failed operation unchanged.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrDependency)
}
