package errors

import (
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeInvalidArgument ErrorType = "INVALID_ARGUMENT"
	ErrTypeEmptyInput      ErrorType = "EMPTY_INPUT"
	ErrTypeDivisionByZero  ErrorType = "DIVISION_BY_ZERO"
	ErrTypeIO              ErrorType = "IO"
	ErrTypeNoData          ErrorType = "NO_DATA"
	ErrTypeNotFound        ErrorType = "NOT_FOUND"
	ErrTypeValidation      ErrorType = "VALIDATION"
)

// Sentinels for errors.Is. Any *AppError of the same Type matches.
var (
	ErrInvalidArgument = &AppError{Type: ErrTypeInvalidArgument, Message: "invalid argument"}
	ErrEmptyInput      = &AppError{Type: ErrTypeEmptyInput, Message: "empty input"}
	ErrDivisionByZero  = &AppError{Type: ErrTypeDivisionByZero, Message: "division by zero"}
	ErrIO              = &AppError{Type: ErrTypeIO, Message: "i/o failure"}
	ErrNoData          = &AppError{Type: ErrTypeNoData, Message: "no sales data generated"}
	ErrNotFound        = &AppError{Type: ErrTypeNotFound, Message: "not found"}
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an AppError of the same type.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Type == e.Type
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewInvalidArgumentError reports bad operation parameters
func NewInvalidArgumentError(format string, args ...interface{}) *AppError {
	return NewAppError(ErrTypeInvalidArgument, fmt.Sprintf(format, args...), nil)
}

// NewEmptyInputError reports an operation that needs at least one value
func NewEmptyInputError(operation string) *AppError {
	return NewAppError(ErrTypeEmptyInput, fmt.Sprintf("%s requires at least one value", operation), nil)
}

// NewDivisionByZeroError reports a zero prior-day value during growth computation
func NewDivisionByZeroError(day int) *AppError {
	return NewAppError(ErrTypeDivisionByZero,
		fmt.Sprintf("growth rate for day %d: previous day sales is zero", day), nil).
		WithContext("day", day)
}

// NewIOError wraps a failed read or write
func NewIOError(message string, cause error) *AppError {
	return NewAppError(ErrTypeIO, message, cause)
}

// NewNoDataError reports a view requested before any series was generated
func NewNoDataError() *AppError {
	return NewAppError(ErrTypeNoData, "Please generate sales data first.", nil)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	return NewAppError(ErrTypeNotFound, fmt.Sprintf("%s not found", resource), nil)
}
