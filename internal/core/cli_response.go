package core

import (
	"encoding/json"
	"errors"
	"os"
)

// CLIResponse is the structured JSON output for scriptable commands.
//
// Schema:
//
//	{
//	  "success": true|false,
//	  "data": { ... },          // Command-specific payload (omitted on error)
//	  "error": {                 // Present only on failure
//	    "code": "UNKNOWN_GATE",
//	    "message": "Human-readable description"
//	  }
//	}
type CLIResponse struct {
	Success bool            `json:"success"`
	Data    interface{}     `json:"data,omitempty"`
	Error   *CLIErrorDetail `json:"error,omitempty"`
}

// CLIErrorDetail contains machine-readable error code and human-readable message.
type CLIErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CLI exit codes. CI pipelines key off these, so the mapping is stable:
// a failed gate is distinguishable from a broken network without parsing output.
const (
	ExitSuccess          = 0
	ExitGeneralError     = 1
	ExitCheckFailed      = 2
	ExitInvalidArguments = 3
	ExitConfigError      = 4
	ExitNetworkError     = 5
)

// CLI error codes for structured JSON error responses.
const (
	ErrCodeCheckFailed       = "CHECK_FAILED"
	ErrCodeUnknownGate       = "UNKNOWN_GATE"
	ErrCodeBadRequest        = "BAD_REQUEST"
	ErrCodeServerUnreachable = "SERVER_UNREACHABLE"
	ErrCodeInvalidArguments  = "INVALID_ARGUMENTS"
	ErrCodeNotInitialized    = "NOT_INITIALIZED"
	ErrCodeConfigError       = "CONFIG_ERROR"
	ErrCodeRunNotFound       = "RUN_NOT_FOUND"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// EmitCLISuccess writes a successful CLIResponse as JSON to stdout.
func EmitCLISuccess(data interface{}) {
	resp := CLIResponse{Success: true, Data: data}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(resp) //nolint:errcheck
}

// EmitCLIError writes an error CLIResponse as JSON to stdout.
// Returns the exit code for the caller to use with os.Exit.
func EmitCLIError(code string, message string, exitCode int) int {
	resp := CLIResponse{
		Success: false,
		Error:   &CLIErrorDetail{Code: code, Message: message},
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(resp) //nolint:errcheck
	return exitCode
}

// CLIExitCodeForError maps the error taxonomy to CLI exit codes.
func CLIExitCodeForError(err error) int {
	switch {
	case errors.Is(err, ErrCheckFailed):
		return ExitCheckFailed
	case errors.Is(err, ErrNotInitialized), IsConfigValidation(err):
		return ExitConfigError
	case errors.Is(err, ErrServerUnreachable):
		return ExitNetworkError
	default:
		return ExitGeneralError
	}
}

// CLIErrorCodeForError maps the error taxonomy to CLI error code strings.
func CLIErrorCodeForError(err error) string {
	switch {
	case errors.Is(err, ErrCheckFailed):
		return ErrCodeCheckFailed
	case IsUnknownQualityGate(err):
		return ErrCodeUnknownGate
	case errors.Is(err, ErrBadRequest):
		return ErrCodeBadRequest
	case errors.Is(err, ErrServerUnreachable):
		return ErrCodeServerUnreachable
	case errors.Is(err, ErrNotInitialized):
		return ErrCodeNotInitialized
	case IsConfigValidation(err):
		return ErrCodeConfigError
	case IsRunNotFound(err):
		return ErrCodeRunNotFound
	default:
		return ErrCodeInternalError
	}
}
