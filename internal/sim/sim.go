// Package sim provides an in-process simulated BLE platform backend.
//
// The Adapter implements every platform collaborator interface against a
// set of scripted peripherals, with configurable latencies and failure
// injection. It backs the interactive demo and the integration tests; no
// radio hardware is involved.
package sim

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/blelink-protocol/blelink-go/pkg/platform"
)

// Adapter errors.
var (
	ErrUnknownDevice = errors.New("sim: unknown device")
	ErrRadioOff      = errors.New("sim: radio disabled")
)

// Peripheral is a scripted simulated device.
type Peripheral struct {
	ID   string
	Name string
	RSSI int

	// Bonded marks the device as already bonded at startup.
	Bonded bool

	// GrantMTU is the transfer size granted on negotiation. Zero grants
	// the requested size.
	GrantMTU int

	// Latency delays every asynchronous event delivery.
	Latency time.Duration

	// FailConnect makes link establishment fail silently (no LinkUp, the
	// caller's timeout fires).
	FailConnect bool

	// FailPairing makes the bonding flow report failure.
	FailPairing bool

	// FailDiscovery makes service discovery report a GATT failure.
	FailDiscovery bool
}

// Adapter simulates the platform BLE surface for a set of peripherals.
type Adapter struct {
	mu sync.Mutex

	peripherals map[string]*Peripheral
	linkHandler platform.LinkHandler
	bondHandler platform.BondHandler

	bonded map[string]bool
	linked map[string]bool

	radioEnabled bool
	powerSave    bool
	permission   bool
	radioSubs    []func(bool)
}

// NewAdapter creates a simulated adapter with the radio on and connect
// permission granted.
func NewAdapter(peripherals ...*Peripheral) *Adapter {
	a := &Adapter{
		peripherals:  make(map[string]*Peripheral),
		bonded:       make(map[string]bool),
		linked:       make(map[string]bool),
		radioEnabled: true,
		permission:   true,
	}
	for _, p := range peripherals {
		a.peripherals[p.ID] = p
		if p.Bonded {
			a.bonded[p.ID] = true
		}
	}
	return a
}

// AddPeripheral registers an additional scripted device.
func (a *Adapter) AddPeripheral(p *Peripheral) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.peripherals[p.ID] = p
	if p.Bonded {
		a.bonded[p.ID] = true
	}
}

func (a *Adapter) device(deviceID string) (*Peripheral, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	p, ok := a.peripherals[deviceID]
	if !ok {
		return nil, ErrUnknownDevice
	}
	return p, nil
}

// after schedules fn on a fresh goroutine following the device latency.
func (a *Adapter) after(p *Peripheral, fn func()) {
	if p.Latency <= 0 {
		go fn()
		return
	}
	time.AfterFunc(p.Latency, fn)
}

// --- platform.Central ---

func (a *Adapter) SetLinkHandler(h platform.LinkHandler) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.linkHandler = h
}

func (a *Adapter) Connect(deviceID string, persistent bool) error {
	p, err := a.device(deviceID)
	if err != nil {
		return err
	}

	a.mu.Lock()
	enabled := a.radioEnabled
	h := a.linkHandler
	a.mu.Unlock()
	if !enabled {
		return ErrRadioOff
	}
	if p.FailConnect {
		// The link never comes up; the caller's timeout handles it.
		return nil
	}

	a.after(p, func() {
		a.mu.Lock()
		a.linked[deviceID] = true
		a.mu.Unlock()
		h.LinkUp(deviceID)
	})
	return nil
}

func (a *Adapter) Disconnect(deviceID string) error {
	p, err := a.device(deviceID)
	if err != nil {
		return err
	}

	a.mu.Lock()
	h := a.linkHandler
	a.mu.Unlock()

	a.after(p, func() {
		a.mu.Lock()
		delete(a.linked, deviceID)
		a.mu.Unlock()
		h.LinkDown(deviceID, platform.StatusLocalTerminated)
	})
	return nil
}

func (a *Adapter) Close(deviceID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.linked, deviceID)
	return nil
}

func (a *Adapter) DiscoverServices(deviceID string) error {
	p, err := a.device(deviceID)
	if err != nil {
		return err
	}

	a.mu.Lock()
	h := a.linkHandler
	a.mu.Unlock()

	a.after(p, func() {
		if p.FailDiscovery {
			h.ServicesDiscovered(deviceID, platform.StatusFailure)
			return
		}
		h.ServicesDiscovered(deviceID, platform.StatusSuccess)
	})
	return nil
}

func (a *Adapter) RequestMTU(deviceID string, mtu int) error {
	p, err := a.device(deviceID)
	if err != nil {
		return err
	}

	a.mu.Lock()
	h := a.linkHandler
	a.mu.Unlock()

	granted := p.GrantMTU
	if granted <= 0 || granted > mtu {
		granted = mtu
	}
	a.after(p, func() {
		h.MTUChanged(deviceID, granted, platform.StatusSuccess)
	})
	return nil
}

// DropLink simulates an unexpected remote termination of an active link.
func (a *Adapter) DropLink(deviceID string) {
	a.mu.Lock()
	h := a.linkHandler
	linked := a.linked[deviceID]
	delete(a.linked, deviceID)
	a.mu.Unlock()

	if linked && h != nil {
		h.LinkDown(deviceID, platform.StatusRemoteTerminated)
	}
}

// Linked reports whether the simulated link is up.
func (a *Adapter) Linked(deviceID string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.linked[deviceID]
}

// --- platform.Bonder ---

func (a *Adapter) SetBondHandler(h platform.BondHandler) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.bondHandler = h
}

func (a *Adapter) BondState(deviceID string) (platform.BondState, error) {
	if _, err := a.device(deviceID); err != nil {
		return platform.BondNone, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.bonded[deviceID] {
		return platform.Bonded, nil
	}
	return platform.BondNone, nil
}

func (a *Adapter) CreateBond(deviceID string) error {
	p, err := a.device(deviceID)
	if err != nil {
		return err
	}

	a.mu.Lock()
	h := a.bondHandler
	a.mu.Unlock()

	a.after(p, func() {
		if p.FailPairing {
			h.BondStateChanged(deviceID, platform.BondNone)
			return
		}
		a.mu.Lock()
		a.bonded[deviceID] = true
		a.mu.Unlock()
		h.BondStateChanged(deviceID, platform.Bonded)
	})
	return nil
}

func (a *Adapter) CancelBond(deviceID string) error {
	return nil
}

// --- platform.PermissionChecker ---

func (a *Adapter) HasConnectPermission() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.permission
}

// SetPermission grants or revokes the connect permission.
func (a *Adapter) SetPermission(granted bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.permission = granted
}

// --- platform.RadioWatcher ---

func (a *Adapter) RadioEnabled() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.radioEnabled
}

func (a *Adapter) PowerSaveActive() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.powerSave
}

func (a *Adapter) SubscribeRadio(fn func(enabled bool)) func() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.radioSubs = append(a.radioSubs, fn)
	idx := len(a.radioSubs) - 1
	return func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		a.radioSubs[idx] = nil
	}
}

// SetRadio powers the simulated adapter on or off and broadcasts the
// change. Powering off drops any active link.
func (a *Adapter) SetRadio(enabled bool) {
	a.mu.Lock()
	a.radioEnabled = enabled
	subs := append(([]func(bool))(nil), a.radioSubs...)
	h := a.linkHandler
	var dropped []string
	if !enabled {
		for id := range a.linked {
			dropped = append(dropped, id)
			delete(a.linked, id)
		}
	}
	a.mu.Unlock()

	for _, id := range dropped {
		if h != nil {
			h.LinkDown(id, platform.StatusFailure)
		}
	}
	for _, fn := range subs {
		if fn != nil {
			fn(enabled)
		}
	}
}

// SetPowerSave toggles the simulated low-power state.
func (a *Adapter) SetPowerSave(active bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.powerSave = active
}

// --- platform.Scanner ---

func (a *Adapter) Scan(ctx context.Context, timeout time.Duration) ([]platform.Advertisement, error) {
	a.mu.Lock()
	enabled := a.radioEnabled
	ads := make([]platform.Advertisement, 0, len(a.peripherals))
	for _, p := range a.peripherals {
		ads = append(ads, platform.Advertisement{DeviceID: p.ID, Name: p.Name, RSSI: p.RSSI})
	}
	a.mu.Unlock()

	if !enabled {
		return nil, ErrRadioOff
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	return ads, nil
}

var (
	_ platform.Central           = (*Adapter)(nil)
	_ platform.Bonder            = (*Adapter)(nil)
	_ platform.PermissionChecker = (*Adapter)(nil)
	_ platform.RadioWatcher      = (*Adapter)(nil)
	_ platform.Scanner           = (*Adapter)(nil)
)
