package log

import (
	"time"
)

// Event represents a connection log event.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// ConnectionID uniquely identifies the connection attempt (UUID).
	ConnectionID string `cbor:"2,keyasint"`

	// DeviceID is the target peripheral identifier.
	DeviceID string `cbor:"3,keyasint,omitempty"`

	// Category classifies the event type.
	Category Category `cbor:"4,keyasint"`

	// Type-specific payload (one of these will be set).
	StateChange *StateChangeEvent `cbor:"5,keyasint,omitempty"` // State machine transitions
	Phase       *PhaseEvent       `cbor:"6,keyasint,omitempty"` // Link/session phases
	Reconnect   *ReconnectEvent   `cbor:"7,keyasint,omitempty"` // Reconnection scheduling
	Radio       *RadioEvent       `cbor:"8,keyasint,omitempty"` // Adapter power changes
	Error       *ErrorEventData   `cbor:"9,keyasint,omitempty"` // Errors at any layer
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryState is a state machine transition.
	CategoryState Category = 0
	// CategoryPhase is a link/session phase event.
	CategoryPhase Category = 1
	// CategoryReconnect is a reconnection scheduling event.
	CategoryReconnect Category = 2
	// CategoryRadio is an adapter power change.
	CategoryRadio Category = 3
	// CategoryError is an error event.
	CategoryError Category = 4
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryState:
		return "STATE"
	case CategoryPhase:
		return "PHASE"
	case CategoryReconnect:
		return "RECONNECT"
	case CategoryRadio:
		return "RADIO"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// StateChangeEvent captures a state machine transition.
// States are recorded by name to keep log files self-describing.
type StateChangeEvent struct {
	Old string `cbor:"1,keyasint"`
	New string `cbor:"2,keyasint"`
}

// PhaseEvent captures a link/session phase outcome.
type PhaseEvent struct {
	// Name is the phase name: "link", "discovery", "negotiation".
	Name string `cbor:"1,keyasint"`

	// Status is the platform status name for the phase outcome.
	Status string `cbor:"2,keyasint,omitempty"`

	// MTU is the granted transfer size (negotiation phase only).
	MTU int `cbor:"3,keyasint,omitempty"`
}

// ReconnectEvent captures a reconnection scheduling decision.
type ReconnectEvent struct {
	// Attempt is the 1-based attempt number.
	Attempt int `cbor:"1,keyasint"`

	// DelayMs is the computed delay before the attempt, in milliseconds.
	DelayMs int64 `cbor:"2,keyasint"`

	// Immediate marks an attempt fired without waiting (radio re-enable).
	Immediate bool `cbor:"3,keyasint,omitempty"`
}

// RadioEvent captures an adapter power change.
type RadioEvent struct {
	Enabled bool `cbor:"1,keyasint"`
}

// ErrorEventData captures an error with its classification.
type ErrorEventData struct {
	Code    string `cbor:"1,keyasint"`
	Message string `cbor:"2,keyasint"`
}

// NewStateEvent creates a state transition event.
func NewStateEvent(connectionID, deviceID, old, new string) Event {
	return Event{
		Timestamp:    time.Now(),
		ConnectionID: connectionID,
		DeviceID:     deviceID,
		Category:     CategoryState,
		StateChange:  &StateChangeEvent{Old: old, New: new},
	}
}

// NewPhaseEvent creates a link/session phase event.
func NewPhaseEvent(connectionID, deviceID, name, status string, mtu int) Event {
	return Event{
		Timestamp:    time.Now(),
		ConnectionID: connectionID,
		DeviceID:     deviceID,
		Category:     CategoryPhase,
		Phase:        &PhaseEvent{Name: name, Status: status, MTU: mtu},
	}
}

// NewReconnectEvent creates a reconnection scheduling event.
func NewReconnectEvent(connectionID, deviceID string, attempt int, delay time.Duration, immediate bool) Event {
	return Event{
		Timestamp:    time.Now(),
		ConnectionID: connectionID,
		DeviceID:     deviceID,
		Category:     CategoryReconnect,
		Reconnect:    &ReconnectEvent{Attempt: attempt, DelayMs: delay.Milliseconds(), Immediate: immediate},
	}
}

// NewRadioEvent creates an adapter power change event.
func NewRadioEvent(connectionID string, enabled bool) Event {
	return Event{
		Timestamp:    time.Now(),
		ConnectionID: connectionID,
		Category:     CategoryRadio,
		Radio:        &RadioEvent{Enabled: enabled},
	}
}

// NewErrorEvent creates an error event.
func NewErrorEvent(connectionID, deviceID, code, message string) Event {
	return Event{
		Timestamp:    time.Now(),
		ConnectionID: connectionID,
		DeviceID:     deviceID,
		Category:     CategoryError,
		Error:        &ErrorEventData{Code: code, Message: message},
	}
}
