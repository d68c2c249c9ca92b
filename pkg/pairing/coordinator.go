package pairing

import (
	"errors"
	"sync"
	"time"

	"github.com/blelink-protocol/blelink-go/pkg/log"
	"github.com/blelink-protocol/blelink-go/pkg/platform"
)

// Pairing errors.
var (
	ErrPairingInProgress = errors.New("pairing already in progress")
	ErrPairingCancelled  = errors.New("pairing cancelled")
	ErrPairingTimeout    = errors.New("pairing timeout")
	ErrBondingFailed     = errors.New("platform bonding failed")
)

// DefaultPairingTimeout bounds the platform bonding flow, which can hang
// indefinitely when the peripheral never answers the pairing request.
const DefaultPairingTimeout = 30 * time.Second

// Callbacks receive the outcome of a pairing flow.
// OnRetry may fire zero or more times before a terminal callback; exactly
// one of OnSuccess or OnFailed fires per Start.
type Callbacks struct {
	// OnRetry is called when the platform surfaces an intermediate
	// bonding retry. attempt is 1-based. May be nil.
	OnRetry func(attempt int)

	// OnSuccess is called once the device is bonded.
	OnSuccess func()

	// OnFailed is called on bonding failure, timeout, or cancellation.
	OnFailed func(reason error)
}

// Coordinator drives the platform bonding flow for one device at a time.
type Coordinator struct {
	mu sync.Mutex

	bonder  platform.Bonder
	logger  log.Logger
	timeout time.Duration

	// Active flow; deviceID is empty when idle.
	deviceID  string
	callbacks Callbacks
	timer     *time.Timer

	// generation invalidates stale timer callbacks after cancel/success.
	generation uint64
}

// NewCoordinator creates a pairing coordinator on top of the platform
// bonder. logger may be nil.
func NewCoordinator(bonder platform.Bonder, logger log.Logger) *Coordinator {
	c := &Coordinator{
		bonder:  bonder,
		logger:  log.OrNoop(logger),
		timeout: DefaultPairingTimeout,
	}
	bonder.SetBondHandler(c)
	return c
}

// SetTimeout overrides the pairing timeout. Must be called before Start.
func (c *Coordinator) SetTimeout(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if d > 0 {
		c.timeout = d
	}
}

// CheckBondState returns the platform bond state for the device.
func (c *Coordinator) CheckBondState(deviceID string) (platform.BondState, error) {
	return c.bonder.BondState(deviceID)
}

// Start begins a pairing flow for the device.
//
// If the device is already bonded, OnSuccess fires synchronously before
// Start returns. Otherwise the platform flow is started and the outcome
// arrives later via the callbacks. Only one flow may be active at a time.
func (c *Coordinator) Start(deviceID string, cb Callbacks) error {
	c.mu.Lock()
	if c.deviceID != "" {
		c.mu.Unlock()
		return ErrPairingInProgress
	}

	state, err := c.bonder.BondState(deviceID)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	if state == platform.Bonded {
		c.mu.Unlock()
		if cb.OnSuccess != nil {
			cb.OnSuccess()
		}
		return nil
	}

	c.deviceID = deviceID
	c.callbacks = cb
	c.generation++
	gen := c.generation

	if err := c.bonder.CreateBond(deviceID); err != nil {
		c.deviceID = ""
		c.callbacks = Callbacks{}
		c.mu.Unlock()
		return err
	}

	c.timer = time.AfterFunc(c.timeout, func() { c.onTimeout(gen) })
	c.mu.Unlock()

	c.logger.Log(log.NewPhaseEvent("", deviceID, "pairing", "STARTED", 0))
	return nil
}

// Cancel aborts an in-flight pairing flow. The flow's OnFailed callback
// fires with ErrPairingCancelled. Idempotent if no pairing is active.
func (c *Coordinator) Cancel() {
	c.finish(0, ErrPairingCancelled, true)
}

// Active reports whether a pairing flow is in progress.
func (c *Coordinator) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deviceID != ""
}

// onTimeout fires when the bonding flow exceeds its deadline.
// A stale timer (cancelled or superseded flow) is a no-op because finish
// checks the generation.
func (c *Coordinator) onTimeout(gen uint64) {
	c.finish(gen, ErrPairingTimeout, true)
}

// finish terminates the active flow. gen of 0 matches any generation.
// cancelBond asks the platform to abort its flow; failures there are
// swallowed since the flow is over either way.
func (c *Coordinator) finish(gen uint64, reason error, cancelBond bool) {
	c.mu.Lock()
	if c.deviceID == "" || (gen != 0 && gen != c.generation) {
		c.mu.Unlock()
		return
	}

	deviceID := c.deviceID
	cb := c.callbacks
	c.deviceID = ""
	c.callbacks = Callbacks{}
	c.generation++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mu.Unlock()

	if cancelBond {
		_ = c.bonder.CancelBond(deviceID)
	}

	if reason == nil {
		c.logger.Log(log.NewPhaseEvent("", deviceID, "pairing", "SUCCESS", 0))
		if cb.OnSuccess != nil {
			cb.OnSuccess()
		}
		return
	}

	c.logger.Log(log.NewErrorEvent("", deviceID, "PAIRING_FAILED", reason.Error()))
	if cb.OnFailed != nil {
		cb.OnFailed(reason)
	}
}

// BondStateChanged implements platform.BondHandler.
func (c *Coordinator) BondStateChanged(deviceID string, state platform.BondState) {
	c.mu.Lock()
	if c.deviceID != deviceID {
		c.mu.Unlock()
		return
	}
	gen := c.generation
	c.mu.Unlock()

	switch state {
	case platform.Bonded:
		c.finish(gen, nil, false)
	case platform.BondNone:
		c.finish(gen, ErrBondingFailed, false)
	case platform.Bonding:
		// In progress; nothing to do.
	}
}

// BondRetry implements platform.BondHandler.
func (c *Coordinator) BondRetry(deviceID string, attempt int) {
	c.mu.Lock()
	if c.deviceID != deviceID {
		c.mu.Unlock()
		return
	}
	cb := c.callbacks
	c.mu.Unlock()

	c.logger.Log(log.NewPhaseEvent("", deviceID, "pairing", "RETRY", 0))
	if cb.OnRetry != nil {
		cb.OnRetry(attempt)
	}
}

// Compile-time check: *Coordinator implements platform.BondHandler.
var _ platform.BondHandler = (*Coordinator)(nil)
