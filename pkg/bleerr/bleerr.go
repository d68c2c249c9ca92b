package bleerr

import (
	"errors"
	"fmt"
)

// Code classifies a connection subsystem failure.
type Code uint8

const (
	// CodeNone indicates no error.
	CodeNone Code = iota

	// CodePermissionDenied indicates a required platform permission was
	// never granted.
	CodePermissionDenied

	// CodePermissionRevoked indicates a permission was revoked while an
	// operation was in flight.
	CodePermissionRevoked

	// CodePairingFailed indicates the platform bonding flow failed or was
	// cancelled.
	CodePairingFailed

	// CodeConnectionTimeout indicates the connection phase exceeded its
	// deadline.
	CodeConnectionTimeout

	// CodeConnectionFailed indicates the raw link could not be established.
	CodeConnectionFailed

	// CodeGattError indicates a service discovery or transfer-size
	// negotiation failure.
	CodeGattError

	// CodeReconnectionFailed indicates a reconnection attempt failed.
	CodeReconnectionFailed

	// CodeReconnectionSetupFailed indicates the reconnection scheduler
	// could not be started.
	CodeReconnectionSetupFailed

	// CodeInvalidState indicates an operation was rejected by the state
	// transition table.
	CodeInvalidState

	// CodeUnsupported indicates the platform lacks a required capability.
	CodeUnsupported
)

// String returns the code name.
func (c Code) String() string {
	switch c {
	case CodeNone:
		return "NONE"
	case CodePermissionDenied:
		return "PERMISSION_DENIED"
	case CodePermissionRevoked:
		return "PERMISSION_REVOKED"
	case CodePairingFailed:
		return "PAIRING_FAILED"
	case CodeConnectionTimeout:
		return "CONNECTION_TIMEOUT"
	case CodeConnectionFailed:
		return "CONNECTION_FAILED"
	case CodeGattError:
		return "GATT_ERROR"
	case CodeReconnectionFailed:
		return "RECONNECTION_FAILED"
	case CodeReconnectionSetupFailed:
		return "RECONNECTION_SETUP_FAILED"
	case CodeInvalidState:
		return "INVALID_STATE"
	case CodeUnsupported:
		return "UNSUPPORTED"
	default:
		return "UNKNOWN"
	}
}

// Error is a classified connection subsystem error.
type Error struct {
	// Code classifies the failure.
	Code Code

	// Message is a one-line human-readable description.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a classified error without an underlying cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a classified error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a classified error wrapping an underlying cause.
// Returns nil if cause is nil.
func Wrap(code Code, message string, cause error) *Error {
	if cause == nil {
		return nil
	}
	return &Error{Code: code, Message: message, Cause: cause}
}

// CodeOf extracts the classification from err.
// Returns CodeNone for nil and CodeConnectionFailed for unclassified errors.
func CodeOf(err error) Code {
	if err == nil {
		return CodeNone
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeConnectionFailed
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	return CodeOf(err) == code
}
