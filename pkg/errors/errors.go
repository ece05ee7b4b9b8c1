// Package errors defines the coded errors shared by the treelayout library,
// CLI and render service.
//
// Every failure that crosses a package boundary carries a [Code]. The CLI
// prints the code with the message; the render service maps it to an HTTP
// status with [HTTPStatus] and returns it in the JSON error body.
//
// The layouter itself reports two codes: IO_FAILURE when the artifact cannot
// be persisted and DRAWER_FAILURE when the drawer rejects a call. The
// INVALID_* codes cover option and input validation.
//
//	err := errors.New(errors.ErrCodeInvalidStyle, "unknown style %q", name)
//	if errors.Is(err, errors.ErrCodeInvalidStyle) {
//	    ...
//	}
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a machine-readable error category.
type Code string

const (
	ErrCodeIOFailure     Code = "IO_FAILURE"
	ErrCodeDrawerFailure Code = "DRAWER_FAILURE"

	ErrCodeInvalidInput       Code = "INVALID_INPUT"
	ErrCodeInvalidFormat      Code = "INVALID_FORMAT"
	ErrCodeInvalidStyle       Code = "INVALID_STYLE"
	ErrCodeInvalidDrawer      Code = "INVALID_DRAWER"
	ErrCodeInvalidOrientation Code = "INVALID_ORIENTATION"
	ErrCodeInvalidPath        Code = "INVALID_PATH"

	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// statusByCode lists every code whose HTTP status is not 500.
var statusByCode = map[Code]int{
	ErrCodeInvalidInput:       http.StatusBadRequest,
	ErrCodeInvalidFormat:      http.StatusBadRequest,
	ErrCodeInvalidStyle:       http.StatusBadRequest,
	ErrCodeInvalidDrawer:      http.StatusBadRequest,
	ErrCodeInvalidOrientation: http.StatusBadRequest,
	ErrCodeInvalidPath:        http.StatusBadRequest,
	ErrCodeFileNotFound:       http.StatusNotFound,
	ErrCodeUnsupported:        http.StatusNotImplemented,
}

// HTTPStatus returns the status the render service answers with.
func (c Code) HTTPStatus() int {
	if s, ok := statusByCode[c]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// Error is a coded error. Drawer names the drawer for DRAWER_FAILURE.
type Error struct {
	Code    Code
	Message string
	Drawer  string
	Cause   error
}

// Error formats as "CODE: [drawer drawer: ]message[: cause]".
func (e *Error) Error() string {
	s := string(e.Code) + ": " + e.text()
	if e.Cause != nil {
		s += ": " + e.Cause.Error()
	}
	return s
}

func (e *Error) text() string {
	if e.Drawer != "" {
		return e.Drawer + " drawer: " + e.Message
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// Is lets errors.Is match on a code template: a target *Error with only
// Code set matches any *Error with that code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Message == "" && t.Drawer == "" && t.Cause == nil && t.Code == e.Code
}

// New returns an *Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is New with a cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// WrapDrawer returns a DRAWER_FAILURE naming the drawer that failed.
func WrapDrawer(drawer string, cause error, format string, args ...any) *Error {
	e := Wrap(ErrCodeDrawerFailure, cause, format, args...)
	e.Drawer = drawer
	return e
}

// Is reports whether any coded error in err's chain has code.
func Is(err error, code Code) bool {
	return errors.Is(err, &Error{Code: code})
}

// GetCode returns the code of the outermost coded error in err's chain, or
// "" if there is none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message without code or cause, falling back to
// err.Error() for uncoded errors.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.text()
	}
	return err.Error()
}

// HTTPStatus maps err's code to a status; uncoded errors are 500.
func HTTPStatus(err error) int {
	return GetCode(err).HTTPStatus()
}
