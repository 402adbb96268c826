// FILE: internal/pkg/apperrors/errors.go
package apperrors

import "errors"

// Sentinel classes matched by the HTTP error middleware. Services wrap
// them with a human-readable message via the constructors below.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

type appError struct {
	class error
	msg   string
}

func (e *appError) Error() string { return e.msg }
func (e *appError) Unwrap() error { return e.class }

func InvalidInput(msg string) error { return &appError{class: ErrInvalidInput, msg: msg} }
func Unauthorized(msg string) error { return &appError{class: ErrUnauthorized, msg: msg} }
func Forbidden(msg string) error    { return &appError{class: ErrForbidden, msg: msg} }
func NotFound(msg string) error     { return &appError{class: ErrNotFound, msg: msg} }
func Conflict(msg string) error     { return &appError{class: ErrConflict, msg: msg} }
