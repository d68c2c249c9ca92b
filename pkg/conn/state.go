package conn

import (
	"time"

	"github.com/blelink-protocol/blelink-go/pkg/bleerr"
)

// State represents the connection state.
type State uint8

const (
	// StateIdle indicates no connection activity.
	StateIdle State = iota

	// StateScanning indicates device discovery is in progress.
	StateScanning

	// StateConnecting indicates a link attempt is in progress.
	StateConnecting

	// StatePairing indicates the platform bonding flow is in progress.
	StatePairing

	// StateConnected indicates a ready link with discovered services and a
	// negotiated transfer size.
	StateConnected

	// StateDisconnected indicates a previously active connection has ended.
	StateDisconnected

	// StateReconnecting indicates automatic reconnection is in progress.
	StateReconnecting

	// StateError indicates a failure that requires acknowledgement.
	StateError
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateScanning:
		return "SCANNING"
	case StateConnecting:
		return "CONNECTING"
	case StatePairing:
		return "PAIRING"
	case StateConnected:
		return "CONNECTED"
	case StateDisconnected:
		return "DISCONNECTED"
	case StateReconnecting:
		return "RECONNECTING"
	case StateError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// transitions is the static adjacency table. A requested transition not
// listed here is rejected without mutating state. Same-state transitions
// are always accepted as no-ops.
var transitions = map[State][]State{
	StateIdle:         {StateScanning, StateConnecting},
	StateScanning:     {StateIdle, StateConnecting},
	StateConnecting:   {StatePairing, StateConnected, StateDisconnected, StateError},
	StatePairing:      {StateConnected, StateDisconnected, StateError},
	StateConnected:    {StateDisconnected, StateReconnecting, StateError},
	StateDisconnected: {StateIdle, StateConnecting, StateReconnecting},
	StateReconnecting: {StateConnecting, StateConnected, StateDisconnected, StateError},
	StateError:        {StateIdle, StateDisconnected},
}

// CanTransition reports whether the table permits moving from one state
// to another.
func CanTransition(from, to State) bool {
	if from == to {
		return true
	}
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ErrorDetail describes the failure that put the machine into the error
// state. It is present exactly while the machine is in StateError.
type ErrorDetail struct {
	Code    bleerr.Code
	Message string
	Cause   error
}

// Transition is the payload delivered to observers on every applied
// state change. ErrorCode and ErrorMessage are set only when the new
// state is StateError.
type Transition struct {
	Old          State
	New          State
	Timestamp    time.Time
	DeviceID     string
	ErrorCode    bleerr.Code
	ErrorMessage string
}

// Observer receives transition notifications. Observers are notified
// synchronously, in registration order, on the machine's run loop; a
// panicking observer is logged and never blocks the others.
type Observer interface {
	StateChanged(t Transition)
}

// ObserverFunc adapts a function to the Observer interface. Register a
// pointer to it so the same pointer can be passed to UnregisterObserver.
type ObserverFunc func(t Transition)

// StateChanged implements Observer.
func (f *ObserverFunc) StateChanged(t Transition) {
	(*f)(t)
}
