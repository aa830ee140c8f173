package core

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions.
// These can be used with errors.Is() for error type checking.
var (
	// ErrNotInitialized indicates the gate-report directory doesn't exist
	ErrNotInitialized = errors.New("gate-report directory not found. Run 'gate-report init' first")

	// ErrBadRequest indicates the server answered a web service call with an
	// error status or a response the caller cannot use
	ErrBadRequest = errors.New("server rejected the request")

	// ErrServerUnreachable indicates the server could not be contacted at all
	ErrServerUnreachable = errors.New("server unreachable")

	// ErrCheckFailed indicates the project's quality gate evaluated to failed
	ErrCheckFailed = errors.New("quality gate check failed")
)

// badRequestError wraps ErrBadRequest with the operation and HTTP status that
// produced it. Callers match it with errors.Is(err, ErrBadRequest).
func badRequestError(op string, status int, body string) error {
	if body == "" {
		return fmt.Errorf("%s: %w: status %d", op, ErrBadRequest, status)
	}
	return fmt.Errorf("%s: %w: status %d: %s", op, ErrBadRequest, status, body)
}

// unreachableError wraps ErrServerUnreachable with the operation and the
// underlying transport failure.
func unreachableError(op string, cause error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrServerUnreachable, cause)
}

// UnknownQualityGateError indicates the project references a quality gate key
// that the server's gate list does not contain.
type UnknownQualityGateError struct {
	Key string
}

// NewUnknownQualityGateError creates an UnknownQualityGateError for the given gate key.
func NewUnknownQualityGateError(key string) *UnknownQualityGateError {
	return &UnknownQualityGateError{Key: key}
}

func (e *UnknownQualityGateError) Error() string {
	return fmt.Sprintf("Error: quality gate '%s' was not found on the server\n"+
		"Context: The project is assigned gate key '%s' but the server's gate list does not include it.\n"+
		"Fix: Run 'gate-report gates' to see the gates the server defines, or check the project's gate assignment.",
		e.Key, e.Key)
}

// IsUnknownQualityGate checks if an error is an UnknownQualityGateError.
func IsUnknownQualityGate(err error) bool {
	var target *UnknownQualityGateError
	return errors.As(err, &target)
}

// ConfigValidationError indicates a configuration field that is missing or malformed.
type ConfigValidationError struct {
	Field   string
	Message string
}

// NewConfigValidationError creates a ConfigValidationError for the given field.
func NewConfigValidationError(field, message string) *ConfigValidationError {
	return &ConfigValidationError{Field: field, Message: message}
}

func (e *ConfigValidationError) Error() string {
	return fmt.Sprintf("Error: invalid configuration\n"+
		"Context: %s: %s\n"+
		"Fix: Edit %s or re-run 'gate-report init'.",
		e.Field, e.Message, ConfigPath)
}

// IsConfigValidation checks if an error is a ConfigValidationError.
func IsConfigValidation(err error) bool {
	var target *ConfigValidationError
	return errors.As(err, &target)
}

// RunNotFoundError indicates a history lookup for a run ID that was never recorded.
type RunNotFoundError struct {
	ID string
}

// NewRunNotFoundError creates a RunNotFoundError for the given run ID.
func NewRunNotFoundError(id string) *RunNotFoundError {
	return &RunNotFoundError{ID: id}
}

func (e *RunNotFoundError) Error() string {
	return fmt.Sprintf("Error: run '%s' not found\n"+
		"Context: The run history database has no run with that ID.\n"+
		"Fix: Run 'gate-report history' to list recorded runs.",
		e.ID)
}

// IsRunNotFound checks if an error is a RunNotFoundError.
func IsRunNotFound(err error) bool {
	var target *RunNotFoundError
	return errors.As(err, &target)
}
