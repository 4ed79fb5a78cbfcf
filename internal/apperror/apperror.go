// Package apperror defines the application error taxonomy shared by the
// services, the HTTP layer and the client gateway. Every error carries a
// kind (mapped to an HTTP status) and optionally an application code and a
// human-readable detail line.
package apperror

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

var (
	ErrValidation = errors.New("validation error")
	ErrAuth       = errors.New("authentication error")
	ErrForbidden  = errors.New("forbidden")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrInternal   = errors.New("internal error")
)

// Application error codes surfaced to clients in the "code" field.
const (
	CodeUserNotFound    = "USER_NOT_FOUND"
	CodeInvalidPassword = "INVALID_PASSWORD"
	CodeNetworkError    = "NETWORK_ERROR"
)

type AppError struct {
	Kind    error  // one of the sentinel errors above
	Code    string // optional application code
	Message string // short error label, rendered as "error"
	Detail  string // optional human-readable detail, rendered as "message"
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Kind
}

// Status maps the error kind to its HTTP status code.
func (e *AppError) Status() int {
	switch e.Kind {
	case ErrValidation:
		return fiber.StatusBadRequest
	case ErrAuth:
		return fiber.StatusUnauthorized
	case ErrForbidden:
		return fiber.StatusForbidden
	case ErrNotFound:
		return fiber.StatusNotFound
	case ErrConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func Validation(message string) *AppError {
	return &AppError{Kind: ErrValidation, Message: message}
}

func Auth(message string) *AppError {
	return &AppError{Kind: ErrAuth, Message: message}
}

func AuthCode(code, message, detail string) *AppError {
	return &AppError{Kind: ErrAuth, Code: code, Message: message, Detail: detail}
}

func Forbidden(message string) *AppError {
	return &AppError{Kind: ErrForbidden, Message: message}
}

func NotFound(message string) *AppError {
	return &AppError{Kind: ErrNotFound, Message: message}
}

func NotFoundCode(code, message, detail string) *AppError {
	return &AppError{Kind: ErrNotFound, Code: code, Message: message, Detail: detail}
}

func Conflict(message string) *AppError {
	return &AppError{Kind: ErrConflict, Message: message}
}

func Internal(err error) *AppError {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	return &AppError{Kind: ErrInternal, Message: "internal server error", Detail: detail}
}
