// AngelaMos | 2026
// errors.go

package core

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrInvalidInput = errors.New("invalid input")
)

// AppError is an error that already knows how it should be rendered to
// the client. Message is always safe to expose.
type AppError struct {
	Code       string
	Message    string
	StatusCode int
	Err        error
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

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: status,
		Err:        err,
	}
}

func NotFoundError(resource string) *AppError {
	return NewAppError(
		http.StatusNotFound,
		"NOT_FOUND",
		fmt.Sprintf("%s not found", resource),
		ErrNotFound,
	)
}

func BadRequestError(message string) *AppError {
	return NewAppError(
		http.StatusBadRequest,
		"BAD_REQUEST",
		message,
		ErrInvalidInput,
	)
}

func DuplicateError(field string) *AppError {
	return NewAppError(
		http.StatusConflict,
		"DUPLICATE",
		fmt.Sprintf("%s already exists", field),
		ErrDuplicateKey,
	)
}

func InternalError(err error) *AppError {
	return NewAppError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"an internal error occurred",
		err,
	)
}
