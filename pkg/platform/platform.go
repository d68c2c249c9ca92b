package platform

import (
	"context"
	"time"
)

// LinkHandler receives asynchronous link events from a Central.
type LinkHandler interface {
	// LinkUp is called when the raw link becomes active.
	LinkUp(deviceID string)

	// LinkDown is called when the link drops. The status classifies the
	// drop; see Status.Expected.
	LinkDown(deviceID string, status Status)

	// ServicesDiscovered is called when service discovery completes.
	ServicesDiscovered(deviceID string, status Status)

	// MTUChanged is called when transfer-size negotiation completes.
	// mtu carries the granted size; on failure it is unspecified.
	MTUChanged(deviceID string, mtu int, status Status)
}

// Central is the raw GATT surface for a single peripheral link.
//
// All operations are asynchronous: they return an error only for immediate
// submission failures, and report outcomes through the registered
// LinkHandler.
type Central interface {
	// SetLinkHandler registers the event handler. Must be called before
	// Connect.
	SetLinkHandler(h LinkHandler)

	// Connect opens a link to the device. With persistent set, the
	// platform transparently re-establishes the radio link after first
	// contact.
	Connect(deviceID string, persistent bool) error

	// Disconnect requests a clean link teardown. Completion arrives as a
	// LinkDown event with StatusLocalTerminated.
	Disconnect(deviceID string) error

	// Close releases the native link object. Safe to call without an
	// open link.
	Close(deviceID string) error

	// DiscoverServices starts service discovery on an active link.
	DiscoverServices(deviceID string) error

	// RequestMTU starts transfer-size negotiation on an active link.
	RequestMTU(deviceID string, mtu int) error
}

// BondHandler receives asynchronous bonding events from a Bonder.
type BondHandler interface {
	// BondStateChanged is called on every bond state change.
	BondStateChanged(deviceID string, state BondState)

	// BondRetry is called when the platform surfaces an intermediate
	// bonding retry. attempt is 1-based.
	BondRetry(deviceID string, attempt int)
}

// Bonder is the platform bonding surface.
type Bonder interface {
	// SetBondHandler registers the event handler. Must be called before
	// CreateBond.
	SetBondHandler(h BondHandler)

	// BondState returns the current bond state for the device.
	BondState(deviceID string) (BondState, error)

	// CreateBond starts the platform bonding flow. Outcome arrives via
	// BondStateChanged (Bonded on success, BondNone on failure).
	CreateBond(deviceID string) error

	// CancelBond aborts an in-flight bonding flow. No-op if none is
	// active.
	CancelBond(deviceID string) error
}

// PermissionChecker reports whether the process holds the platform
// permissions BLE operations require.
type PermissionChecker interface {
	// HasConnectPermission reports whether connecting to peripherals is
	// currently permitted. Checked at each operation boundary; a false
	// result mid-operation means the permission was revoked.
	HasConnectPermission() bool
}

// RadioWatcher exposes adapter power state and low-power-mode signals.
type RadioWatcher interface {
	// RadioEnabled reports whether the adapter is powered on.
	RadioEnabled() bool

	// PowerSaveActive reports whether the platform is in a device-idle /
	// low-power state.
	PowerSaveActive() bool

	// SubscribeRadio registers fn for radio on/off broadcasts and returns
	// a cancel function. fn may be invoked from a platform goroutine.
	SubscribeRadio(fn func(enabled bool)) (cancel func())
}

// Advertisement is a scan result candidate. Scanning itself is outside this
// subsystem; the interface exists so callers can plug a discovery provider
// into demo tooling.
type Advertisement struct {
	DeviceID string
	Name     string
	RSSI     int
}

// Scanner discovers nearby peripherals.
type Scanner interface {
	// Scan collects advertisements until the timeout or ctx cancellation.
	Scan(ctx context.Context, timeout time.Duration) ([]Advertisement, error)
}

// DeviceRef identifies the device to reconnect to across restarts.
type DeviceRef struct {
	DeviceID    string `json:"device_id"`
	DisplayName string `json:"display_name,omitempty"`
}

// Store persists the last-known device reference.
type Store interface {
	// Save stores the reference, replacing any previous one.
	Save(ref DeviceRef) error

	// Clear removes the stored reference. No-op if none is stored.
	Clear() error

	// Load returns the stored reference, or nil if none is stored.
	Load() (*DeviceRef, error)
}
