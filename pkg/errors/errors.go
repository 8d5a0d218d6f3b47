package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Scan errors - fatal to a scan call
	ErrScanRootMissing ErrorCode = "SCAN_ROOT_MISSING"
	ErrScanRootInvalid ErrorCode = "SCAN_ROOT_INVALID"

	// Configuration errors - surfaced before evaluation begins
	ErrConfigLoad    ErrorCode = "CONFIG_LOAD"
	ErrConfigInvalid ErrorCode = "CONFIG_INVALID"

	// Pattern errors - a malformed rule pattern, reported once
	ErrPatternInvalid ErrorCode = "PATTERN_INVALID"

	// Guard errors - safety rejections, a normal skip outcome
	ErrGuardRejected ErrorCode = "GUARD_REJECTED"

	// Operation errors - localized to one file's outcome
	ErrOpFailed   ErrorCode = "OP_FAILED"
	ErrOpTimeout  ErrorCode = "OP_TIMEOUT"
	ErrOpConflict ErrorCode = "OP_CONFLICT"

	// Scheduler errors
	ErrJobNotFound ErrorCode = "JOB_NOT_FOUND"
	ErrJobInvalid  ErrorCode = "JOB_INVALID"
)

// ScourError represents a structured error with code and details
type ScourError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ScourError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ScourError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *ScourError) Is(target error) bool {
	var targetErr *ScourError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ScourError with the given code and message
func New(code ErrorCode, message string) *ScourError {
	return &ScourError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ScourError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ScourError {
	return &ScourError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a ScourError
func Wrap(err error, code ErrorCode, message string) *ScourError {
	if err == nil {
		return nil
	}
	return &ScourError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ScourError {
	if err == nil {
		return nil
	}
	return &ScourError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *ScourError) WithDetail(key string, value interface{}) *ScourError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var scourErr *ScourError
	if errors.As(err, &scourErr) {
		return scourErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a ScourError
func GetErrorCode(err error) ErrorCode {
	var scourErr *ScourError
	if errors.As(err, &scourErr) {
		return scourErr.Code
	}
	return ErrUnknown
}
