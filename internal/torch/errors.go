package torch

import (
	"errors"
	"fmt"
)

// Error codes for torch operations.
const (
	ErrCodeNoFlash     = "NO_FLASH"
	ErrCodeNotFound    = "NOT_FOUND"
	ErrCodeReadFailed  = "READ_FAILED"
	ErrCodeWriteFailed = "WRITE_FAILED"
)

// Error is a torch failure carrying a machine-readable code.
type Error struct {
	Code    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// Code extracts the torch error code from err, or "" if there is none.
func Code(err error) string {
	var te *Error
	if errors.As(err, &te) {
		return te.Code
	}
	return ""
}
