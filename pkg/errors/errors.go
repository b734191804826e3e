package errors

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes reported by codeplex. The first five are the failure kinds a
// provisioning run can surface; the rest cover callers and internals.
const (
	ErrNotFound   ErrorCode = "NOT_FOUND"
	ErrConfig     ErrorCode = "CONFIG"
	ErrConflict   ErrorCode = "CONFLICT"
	ErrPermission ErrorCode = "PERMISSION"
	ErrIO         ErrorCode = "IO"

	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrUnknown      ErrorCode = "UNKNOWN"
)

// Error is a structured error with code and details
type Error struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is an *Error carrying the same code
func (e *Error) Is(target error) bool {
	var targetErr *Error
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new Error with the given code and message
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new Error with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error. Returns nil when err is nil.
func Wrap(err error, code ErrorCode, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// FromFS classifies a filesystem error into a coded error. An error that
// already carries a code is returned unchanged.
func FromFS(err error, op, path string) error {
	if err == nil {
		return nil
	}
	var coded *Error
	if errors.As(err, &coded) {
		return err
	}

	code := ErrIO
	switch {
	case errors.Is(err, fs.ErrNotExist):
		code = ErrNotFound
	case errors.Is(err, fs.ErrPermission):
		code = ErrPermission
	case errors.Is(err, fs.ErrExist):
		code = ErrConflict
	}
	return Wrapf(err, code, "%s %s", op, path).WithDetail("path", path)
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if it has none
func GetErrorCode(err error) ErrorCode {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if it has none
func GetErrorDetails(err error) map[string]interface{} {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Details
	}
	return nil
}
