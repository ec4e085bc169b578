package errors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
)

// ErrorType represents different types of errors
type ErrorType string

const (
	ErrorTypeValidation       ErrorType = "validation"
	ErrorTypeNotRegistered    ErrorType = "not_registered"
	ErrorTypeUnknownReference ErrorType = "unknown_reference"
	ErrorTypeDatabase         ErrorType = "database"
	ErrorTypeTransport        ErrorType = "transport"
	ErrorTypeInternal         ErrorType = "internal"
)

// AppError represents an application error with additional context
type AppError struct {
	Type     ErrorType
	Message  string
	Code     string
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

// Is checks if the error matches the target
func (e *AppError) Is(target error) bool {
	if t, ok := target.(*AppError); ok {
		return e.Type == t.Type && e.Code == t.Code
	}
	return errors.Is(e.Internal, target)
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
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
	source := fmt.Sprintf("%s:%d", file, line)

	return &AppError{
		Type:    errorType,
		Code:    code,
		Message: message,
		Source:  source,
		Context: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error into AppError
func Wrap(err error, errorType ErrorType, code, message string) *AppError {
	_, file, line, _ := runtime.Caller(1)
	source := fmt.Sprintf("%s:%d", file, line)

	return &AppError{
		Type:     errorType,
		Code:     code,
		Message:  message,
		Internal: err,
		Source:   source,
		Context:  make(map[string]interface{}),
	}
}

// Handler provides error handling strategies
type Handler struct {
	logger *slog.Logger
}

// NewHandler creates a new error handler
func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{logger: logger}
}

// Handle processes an error according to its type
func (h *Handler) Handle(ctx context.Context, err error) {
	if err == nil {
		return
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		h.handleAppError(ctx, appErr)
	} else {
		h.logger.ErrorContext(ctx, "Unhandled error", "error", err.Error())
	}
}

// handleAppError handles AppError instances
func (h *Handler) handleAppError(ctx context.Context, err *AppError) {
	switch err.Type {
	case ErrorTypeValidation, ErrorTypeNotRegistered, ErrorTypeUnknownReference:
		// Recovered within the turn with a user-facing reply.
		h.logger.WarnContext(ctx, "Recoverable error", err.LogFields()...)
	case ErrorTypeTransport:
		// Delivery is best effort, the domain mutation already committed.
		h.logger.ErrorContext(ctx, "Transport error", err.LogFields()...)
	case ErrorTypeDatabase, ErrorTypeInternal:
		h.logger.ErrorContext(ctx, "Critical error", err.LogFields()...)
	default:
		h.logger.ErrorContext(ctx, "Unknown error type", err.LogFields()...)
	}
}

// Predefined errors
var (
	ErrNotRegistered = New(ErrorTypeNotRegistered, "NOT_REGISTERED", "User is not registered")
	ErrUnknownCat    = New(ErrorTypeUnknownReference, "UNKNOWN_CAT", "Cat does not exist or belongs to another user")
	ErrNoCatSelected = New(ErrorTypeUnknownReference, "NO_CAT_SELECTED", "No cat is currently selected")
	ErrNotNumeric    = New(ErrorTypeValidation, "NOT_NUMERIC", "Input is not a number")
	ErrNotPositive   = New(ErrorTypeValidation, "NOT_POSITIVE", "Input must be a positive number")
	ErrEmptyName     = New(ErrorTypeValidation, "EMPTY_NAME", "Cat name must not be empty")
	ErrNoActiveFlow  = New(ErrorTypeInternal, "NO_ACTIVE_FLOW", "No registration flow in progress")
)

// Convenience functions for common errors
func NewValidationError(message string) *AppError {
	return New(ErrorTypeValidation, "VALIDATION", message)
}

func NewDatabaseError(err error) *AppError {
	return Wrap(err, ErrorTypeDatabase, "DB_ERROR", "Database operation failed")
}

func NewTransportError(err error) *AppError {
	return Wrap(err, ErrorTypeTransport, "TRANSPORT", "Failed to deliver outbound message")
}

func NewInternalError(err error) *AppError {
	return Wrap(err, ErrorTypeInternal, "INTERNAL", "Internal error")
}
