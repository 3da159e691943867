package errors

import (
	"errors"
	"fmt"
)

const (
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeNotFound      = "NOT_FOUND"
	CodeValidation    = "VALIDATION_ERROR"
	CodeMissingField  = "MISSING_FIELD"
	CodeDuplicate     = "DUPLICATE_EMAIL"
	CodeInvalidToken  = "INVALID_TOKEN"
	CodeQuotaExceeded = "QUOTA_EXCEEDED"
	CodeInternal      = "INTERNAL"
)

// Kind is the coarse taxonomy the transport layer maps to status codes.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "internal"
	}
}

var (
	ErrInvalidCredentials = NewAppError(CodeUnauthorized, "invalid email or password", nil)
	ErrUnauthorized       = NewAppError(CodeUnauthorized, "unauthorized access", nil)

	ErrMissingField   = NewAppError(CodeMissingField, "required field is missing", nil)
	ErrInvalidToken   = NewAppError(CodeInvalidToken, "reset link is invalid or has expired", nil)
	ErrQuotaExceeded  = NewAppError(CodeQuotaExceeded, "collection quota exceeded", nil)
	ErrInternalServer = NewAppError(CodeInternal, "internal server error", nil)
)

type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Kind collapses the error code into the transport taxonomy.
func (e *AppError) Kind() Kind {
	switch e.Code {
	case CodeUnauthorized:
		return KindUnauthorized
	case CodeNotFound:
		return KindNotFound
	case CodeValidation, CodeMissingField, CodeDuplicate, CodeInvalidToken, CodeQuotaExceeded:
		return KindValidation
	default:
		return KindInternal
	}
}

func NewAppError(code, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Validation builds a validation error carrying a caller-facing message.
func Validation(message string, err error) *AppError {
	return NewAppError(CodeValidation, message, err)
}

// KindOf reports the taxonomy kind of err. Errors that are not an *AppError
// anywhere in their chain are internal.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind()
	}
	return KindInternal
}

// CodeOf returns the code of the first *AppError in the chain, or CodeInternal.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}
