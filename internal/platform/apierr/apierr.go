package apierr

import (
	"errors"
	"fmt"
	"net/http"

	apperrors "github.com/yungbote/thorbis-backend/internal/pkg/errors"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// From classifies err into an HTTP status and code. Unknown errors are 500s.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return New(http.StatusBadRequest, "validation_error", err)
	case errors.Is(err, apperrors.ErrUnauthorized):
		return New(http.StatusForbidden, "not_enrolled", err)
	case errors.Is(err, apperrors.ErrNotFound):
		return New(http.StatusNotFound, "not_found", err)
	case errors.Is(err, apperrors.ErrStorage):
		return New(http.StatusInternalServerError, "storage_error", err)
	default:
		return New(http.StatusInternalServerError, "internal_error", err)
	}
}
