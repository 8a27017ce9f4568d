package errors

import "fmt"

// ErrorCode represents a waymenu error code.
type ErrorCode string

const (
	ErrUnknownApplication ErrorCode = "UNKNOWN_APPLICATION" // launch
	ErrSpawn              ErrorCode = "SPAWN"               // launch
	ErrIO                 ErrorCode = "IO"                  // launch output stream, menu input
	ErrInvalidMenu        ErrorCode = "INVALID_MENU"        // menu input
	ErrInternal           ErrorCode = "INTERNAL"
)

// WaymenuError represents a structured error with code, message and details.
type WaymenuError struct {
	Code    ErrorCode
	Message string
	Details map[string]any
	Cause   error
}

// Error implements the error interface.
func (e *WaymenuError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *WaymenuError) Unwrap() error {
	return e.Cause
}

// NewUnknownApplication creates an error for an application id the registry cannot resolve.
func NewUnknownApplication(id string) *WaymenuError {
	return &WaymenuError{
		Code:    ErrUnknownApplication,
		Message: fmt.Sprintf("unknown application: %s", id),
		Details: map[string]any{"id": id},
	}
}

// NewSpawn creates an error for a process that could not be started.
func NewSpawn(program string, cause error) *WaymenuError {
	msg := fmt.Sprintf("failed to start %s", program)
	if cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, cause)
	}
	return &WaymenuError{
		Code:    ErrSpawn,
		Message: msg,
		Details: map[string]any{"program": program},
		Cause:   cause,
	}
}

// NewIO creates an error for a failed read or write on a mandatory stream.
func NewIO(what string, cause error) *WaymenuError {
	msg := what
	if cause != nil {
		msg = fmt.Sprintf("%s: %v", what, cause)
	}
	return &WaymenuError{
		Code:    ErrIO,
		Message: msg,
		Cause:   cause,
	}
}

// NewInvalidMenu creates an error for menu definitions that cannot be turned into entries.
func NewInvalidMenu(msg string) *WaymenuError {
	return &WaymenuError{
		Code:    ErrInvalidMenu,
		Message: msg,
	}
}

// NewInvalidMenuItem creates an INVALID_MENU error pointing at one definition.
func NewInvalidMenuItem(index int, label, reason string) *WaymenuError {
	return &WaymenuError{
		Code:    ErrInvalidMenu,
		Message: fmt.Sprintf("menu item %d (%q): %s", index, label, reason),
		Details: map[string]any{"index": index, "label": label},
	}
}

// NewInternal creates an error for unexpected internal failures.
func NewInternal(err error) *WaymenuError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &WaymenuError{
		Code:    ErrInternal,
		Message: msg,
		Cause:   err,
	}
}

// Is checks if an error is a WaymenuError with the given code.
func Is(err error, code ErrorCode) bool {
	if wErr, ok := err.(*WaymenuError); ok {
		return wErr.Code == code
	}
	return false
}
