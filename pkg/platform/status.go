package platform

// ATT transfer-size constants.
const (
	// DefaultATTMTU is the minimum MTU every BLE link supports.
	DefaultATTMTU = 23

	// MaxRequestedMTU is the transfer size requested during negotiation.
	// The platform may grant less.
	MaxRequestedMTU = 512
)

// Status is a GATT/HCI status code reported with link events.
type Status uint8

// Status codes. Values follow the Bluetooth Core HCI error code assignment
// plus the conventional GATT_FAILURE value.
const (
	// StatusSuccess indicates the operation completed normally.
	StatusSuccess Status = 0x00

	// StatusConnectionTimeout indicates the supervision timeout expired.
	StatusConnectionTimeout Status = 0x08

	// StatusRemoteTerminated indicates the peripheral closed the link.
	StatusRemoteTerminated Status = 0x13

	// StatusLocalTerminated indicates the local host closed the link.
	// A drop with this status is an expected disconnect.
	StatusLocalTerminated Status = 0x16

	// StatusFailure is the catch-all GATT failure code.
	StatusFailure Status = 0x85
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "SUCCESS"
	case StatusConnectionTimeout:
		return "CONNECTION_TIMEOUT"
	case StatusRemoteTerminated:
		return "REMOTE_TERMINATED"
	case StatusLocalTerminated:
		return "LOCAL_TERMINATED"
	case StatusFailure:
		return "FAILURE"
	default:
		return "UNKNOWN"
	}
}

// Expected reports whether a link drop with this status was a clean local
// disconnect rather than an unexpected loss.
func (s Status) Expected() bool {
	return s == StatusLocalTerminated
}

// BondState is the platform bond state for a device.
type BondState uint8

const (
	// BondNone indicates no bond exists.
	BondNone BondState = iota

	// Bonding indicates a bonding flow is in progress.
	Bonding

	// Bonded indicates a bond exists.
	Bonded
)

// String returns the bond state name.
func (b BondState) String() string {
	switch b {
	case BondNone:
		return "NONE"
	case Bonding:
		return "BONDING"
	case Bonded:
		return "BONDED"
	default:
		return "UNKNOWN"
	}
}
