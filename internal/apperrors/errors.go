package apperrors

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrorType represents different types of errors
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeExternal   ErrorType = "external_api"
	ErrorTypeInternal   ErrorType = "internal"
)

// AppError represents an application error with additional context
type AppError struct {
	Type     ErrorType
	Code     string
	Message  string
	Internal error
	Context  map[string]interface{}
	Source   string
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (internal: %v)", e.Type, e.Message, e.Internal)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the internal error
func (e *AppError) Unwrap() error {
	return e.Internal
}

// Is matches AppErrors by type and code, so sentinel errors work with
// errors.Is even when wrapped with request context.
func (e *AppError) Is(target error) bool {
	if t, ok := target.(*AppError); ok {
		return e.Type == t.Type && e.Code == t.Code
	}
	return errors.Is(e.Internal, target)
}

// WithContext returns a copy of the error with an extra context value.
// Copying keeps the predefined sentinels immutable.
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	clone := *e
	clone.Context = make(map[string]interface{}, len(e.Context)+1)
	for k, v := range e.Context {
		clone.Context[k] = v
	}
	clone.Context[key] = value
	return &clone
}

// LogFields returns structured logging fields
func (e *AppError) LogFields() []interface{} {
	fields := []interface{}{
		"error_type", e.Type,
		"error_code", e.Code,
		"error_message", e.Message,
		"source", e.Source,
	}

	if e.Internal != nil {
		fields = append(fields, "internal_error", e.Internal.Error())
	}

	for k, v := range e.Context {
		fields = append(fields, k, v)
	}

	return fields
}

// New creates a new AppError
func New(errorType ErrorType, code, message string) *AppError {
	_, file, line, _ := runtime.Caller(1)

	return &AppError{
		Type:    errorType,
		Code:    code,
		Message: message,
		Source:  fmt.Sprintf("%s:%d", file, line),
	}
}

// Wrap wraps an existing error into AppError
func Wrap(err error, errorType ErrorType, code, message string) *AppError {
	_, file, line, _ := runtime.Caller(1)

	return &AppError{
		Type:     errorType,
		Code:     code,
		Message:  message,
		Internal: err,
		Source:   fmt.Sprintf("%s:%d", file, line),
	}
}

// Predefined errors covering every failure the ingestion pipeline and the
// conversation flow distinguish. REJECTED_INPUT and DATE_NOT_FOUND are
// handled with a specific user-facing message; everything else falls
// through to the generic failure reply.
var (
	ErrMalformedSource       = New(ErrorTypeValidation, "MALFORMED_SOURCE", "Report URL carries no date token")
	ErrEmptyOrMalformedTable = New(ErrorTypeValidation, "EMPTY_OR_MALFORMED_TABLE", "Report body is not a parseable table")
	ErrRejectedInput         = New(ErrorTypeValidation, "REJECTED_INPUT", "Input failed report URL checks")
	ErrDateNotFound          = New(ErrorTypeExternal, "DATE_NOT_FOUND", "Report date is absent from the sheet")
	ErrTransportFailure      = New(ErrorTypeExternal, "TRANSPORT_FAILURE", "Remote service call failed")
)
