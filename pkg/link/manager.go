package link

import (
	"errors"
	"sync"
	"time"

	"github.com/blelink-protocol/blelink-go/pkg/bleerr"
	"github.com/blelink-protocol/blelink-go/pkg/log"
	"github.com/blelink-protocol/blelink-go/pkg/platform"
)

// Link errors.
var (
	ErrLinkTimeout      = errors.New("link establishment timeout")
	ErrDiscoveryTimeout = errors.New("service discovery timeout")
	ErrNoLink           = errors.New("no link in progress")
)

// Default per-phase timeouts.
const (
	// DefaultLinkTimeout bounds raw link establishment.
	DefaultLinkTimeout = 30 * time.Second

	// DefaultDiscoveryTimeout bounds service discovery.
	DefaultDiscoveryTimeout = 10 * time.Second
)

// Phase names used in error reports and log events.
const (
	PhaseLink        = "link"
	PhaseDiscovery   = "discovery"
	PhaseNegotiation = "negotiation"
)

// phase is the manager's internal position in the connect sequence.
type phase uint8

const (
	phaseIdle phase = iota
	phaseConnecting
	phaseDiscovering
	phaseNegotiating
	phaseReady
)

// Events receive the manager's upward notifications.
// All callbacks are optional.
type Events struct {
	// OnConnected fires when the raw link becomes active.
	OnConnected func(deviceID string)

	// OnServicesDiscovered fires when discovery completes successfully.
	OnServicesDiscovered func(deviceID string)

	// OnMTUNegotiated fires with the granted transfer size. Negotiation
	// failure is non-fatal; the default minimum is reported instead.
	OnMTUNegotiated func(deviceID string, mtu int)

	// OnReady fires once link, discovery, and negotiation are all done.
	// The session carries the negotiated transfer size.
	OnReady func(session *Session)

	// OnDisconnected fires when the link drops. expected is true for a
	// clean, locally-requested disconnect.
	OnDisconnected func(deviceID string, expected bool)

	// OnError fires when a phase fails. phase is one of the Phase
	// constants; err carries a bleerr classification.
	OnError func(phase string, err error)
}

// Manager owns the raw BLE link for one device at a time and drives the
// connect, discover, negotiate sequence.
type Manager struct {
	mu sync.Mutex

	central platform.Central
	logger  log.Logger
	events  Events

	linkTimeout      time.Duration
	discoveryTimeout time.Duration
	mtuTarget        int

	session *Session
	phase   phase

	// closing marks a locally-requested disconnect so the eventual link
	// drop is classified as expected.
	closing bool

	// generation invalidates stale timer callbacks.
	generation uint64
	linkTimer  *time.Timer
	discTimer  *time.Timer
}

// NewManager creates a link manager on top of the platform central.
// logger may be nil.
func NewManager(central platform.Central, events Events, logger log.Logger) *Manager {
	m := &Manager{
		central:          central,
		logger:           log.OrNoop(logger),
		events:           events,
		linkTimeout:      DefaultLinkTimeout,
		discoveryTimeout: DefaultDiscoveryTimeout,
		mtuTarget:        platform.MaxRequestedMTU,
	}
	central.SetLinkHandler(m)
	return m
}

// SetTimeouts overrides the per-phase timeouts. Zero values keep the
// current setting. Must be called before Connect.
func (m *Manager) SetTimeouts(link, discovery time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if link > 0 {
		m.linkTimeout = link
	}
	if discovery > 0 {
		m.discoveryTimeout = discovery
	}
}

// SetMTUTarget overrides the requested transfer size.
func (m *Manager) SetMTUTarget(mtu int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if mtu >= platform.DefaultATTMTU {
		m.mtuTarget = mtu
	}
}

// Connect opens a link to the device and starts the phase sequence.
//
// If a link object already exists it is torn down first. With persistent
// set, the platform handles radio-level reconnection transparently once
// the link is first established.
func (m *Manager) Connect(deviceID string, persistent bool) error {
	m.mu.Lock()

	// Idempotent cleanup of any previous link before opening a new one.
	if m.session != nil {
		stale := m.session.DeviceID
		m.resetLocked()
		m.mu.Unlock()
		_ = m.central.Close(stale)
		m.mu.Lock()
	}

	session := newSession(deviceID)
	m.session = session
	m.phase = phaseConnecting
	m.closing = false
	m.generation++
	gen := m.generation
	m.linkTimer = time.AfterFunc(m.linkTimeout, func() { m.onLinkTimeout(gen) })
	m.mu.Unlock()

	m.logger.Log(log.NewPhaseEvent(session.ID, deviceID, PhaseLink, "STARTED", 0))

	if err := m.central.Connect(deviceID, persistent); err != nil {
		m.Close()
		return bleerr.Wrap(bleerr.CodeConnectionFailed, "failed to start link", err)
	}
	return nil
}

// Disconnect requests a clean link teardown. The final cleanup (close)
// happens when the platform reports the link down, never before.
func (m *Manager) Disconnect() error {
	m.mu.Lock()
	if m.session == nil {
		m.mu.Unlock()
		return ErrNoLink
	}
	deviceID := m.session.DeviceID
	m.closing = true
	m.stopTimersLocked()
	m.mu.Unlock()

	return m.central.Disconnect(deviceID)
}

// Close releases the native link object and resets all internal state.
//
// Safe to call multiple times. State is reset even if the underlying
// release fails, so a failed release never leaves the manager stuck
// believing it still owns a resource.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.session == nil {
		m.mu.Unlock()
		return
	}
	deviceID := m.session.DeviceID
	m.resetLocked()
	m.mu.Unlock()

	// Release failures are logged and swallowed; the state reset above
	// already happened.
	if err := m.central.Close(deviceID); err != nil {
		m.logger.Log(log.NewErrorEvent("", deviceID, bleerr.CodeConnectionFailed.String(),
			"native link release failed: "+err.Error()))
	}
}

// Session returns the current session, or nil if no link is in progress.
func (m *Manager) Session() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

// resetLocked clears link state and stops timers. Caller holds m.mu.
func (m *Manager) resetLocked() {
	m.stopTimersLocked()
	m.session = nil
	m.phase = phaseIdle
	m.closing = false
	m.generation++
}

// stopTimersLocked cancels any pending phase timers. Caller holds m.mu.
func (m *Manager) stopTimersLocked() {
	if m.linkTimer != nil {
		m.linkTimer.Stop()
		m.linkTimer = nil
	}
	if m.discTimer != nil {
		m.discTimer.Stop()
		m.discTimer = nil
	}
}

// onLinkTimeout fires when link establishment exceeds its deadline.
func (m *Manager) onLinkTimeout(gen uint64) {
	m.mu.Lock()
	if m.session == nil || gen != m.generation || m.phase != phaseConnecting {
		m.mu.Unlock()
		return
	}
	session := m.session
	m.mu.Unlock()

	m.logger.Log(log.NewErrorEvent(session.ID, session.DeviceID,
		bleerr.CodeConnectionFailed.String(), ErrLinkTimeout.Error()))

	// Timed-out links are force-closed; there is nothing to disconnect.
	m.Close()

	if m.events.OnError != nil {
		m.events.OnError(PhaseLink, bleerr.Wrap(bleerr.CodeConnectionFailed,
			"link establishment timed out", ErrLinkTimeout))
	}
}

// onDiscoveryTimeout fires when service discovery exceeds its deadline.
func (m *Manager) onDiscoveryTimeout(gen uint64) {
	m.mu.Lock()
	if m.session == nil || gen != m.generation || m.phase != phaseDiscovering {
		m.mu.Unlock()
		return
	}
	session := m.session
	m.mu.Unlock()

	m.logger.Log(log.NewErrorEvent(session.ID, session.DeviceID,
		bleerr.CodeGattError.String(), ErrDiscoveryTimeout.Error()))

	// Issue a disconnect and let the LinkDown event complete the
	// disconnect-then-close sequence. Never close before disconnect.
	_ = m.central.Disconnect(session.DeviceID)

	if m.events.OnError != nil {
		m.events.OnError(PhaseDiscovery, bleerr.Wrap(bleerr.CodeGattError,
			"service discovery timed out", ErrDiscoveryTimeout))
	}
}

// LinkUp implements platform.LinkHandler.
// The active link immediately triggers service discovery.
func (m *Manager) LinkUp(deviceID string) {
	m.mu.Lock()
	if m.session == nil || m.session.DeviceID != deviceID || m.phase != phaseConnecting {
		m.mu.Unlock()
		return
	}
	session := m.session
	if m.linkTimer != nil {
		m.linkTimer.Stop()
		m.linkTimer = nil
	}
	m.phase = phaseDiscovering
	gen := m.generation
	m.discTimer = time.AfterFunc(m.discoveryTimeout, func() { m.onDiscoveryTimeout(gen) })
	m.mu.Unlock()

	m.logger.Log(log.NewPhaseEvent(session.ID, deviceID, PhaseLink, platform.StatusSuccess.String(), 0))
	if m.events.OnConnected != nil {
		m.events.OnConnected(deviceID)
	}

	if err := m.central.DiscoverServices(deviceID); err != nil {
		// Treat a submission failure like a discovery failure: report,
		// then disconnect cleanly.
		m.failDiscovery(session, bleerr.Wrap(bleerr.CodeGattError,
			"failed to start service discovery", err))
	}
}

// ServicesDiscovered implements platform.LinkHandler.
// Successful discovery immediately triggers transfer-size negotiation.
func (m *Manager) ServicesDiscovered(deviceID string, status platform.Status) {
	m.mu.Lock()
	if m.session == nil || m.session.DeviceID != deviceID || m.phase != phaseDiscovering {
		m.mu.Unlock()
		return
	}
	session := m.session
	if m.discTimer != nil {
		m.discTimer.Stop()
		m.discTimer = nil
	}
	if status != platform.StatusSuccess {
		m.mu.Unlock()
		m.failDiscovery(session, bleerr.Newf(bleerr.CodeGattError,
			"service discovery failed with status %s", status))
		return
	}
	m.phase = phaseNegotiating
	mtuTarget := m.mtuTarget
	m.mu.Unlock()

	session.setDiscovered()
	m.logger.Log(log.NewPhaseEvent(session.ID, deviceID, PhaseDiscovery, status.String(), 0))
	if m.events.OnServicesDiscovered != nil {
		m.events.OnServicesDiscovered(deviceID)
	}

	if err := m.central.RequestMTU(deviceID, mtuTarget); err != nil {
		// Negotiation is best-effort; fall back to the default minimum
		// and complete the sequence.
		m.MTUChanged(deviceID, 0, platform.StatusFailure)
	}
}

// MTUChanged implements platform.LinkHandler.
// The sequence completes here whether negotiation succeeded or not.
func (m *Manager) MTUChanged(deviceID string, mtu int, status platform.Status) {
	m.mu.Lock()
	if m.session == nil || m.session.DeviceID != deviceID || m.phase != phaseNegotiating {
		m.mu.Unlock()
		return
	}
	session := m.session
	m.phase = phaseReady
	m.mu.Unlock()

	if status == platform.StatusSuccess && mtu >= platform.DefaultATTMTU {
		session.setMTU(mtu)
	}
	granted := session.MTU()

	m.logger.Log(log.NewPhaseEvent(session.ID, deviceID, PhaseNegotiation, status.String(), granted))
	if m.events.OnMTUNegotiated != nil {
		m.events.OnMTUNegotiated(deviceID, granted)
	}
	if m.events.OnReady != nil {
		m.events.OnReady(session)
	}
}

// LinkDown implements platform.LinkHandler.
// Completes the disconnect-then-close sequence and classifies the drop.
func (m *Manager) LinkDown(deviceID string, status platform.Status) {
	m.mu.Lock()
	if m.session == nil || m.session.DeviceID != deviceID {
		m.mu.Unlock()
		return
	}
	session := m.session
	expected := m.closing || status.Expected()
	m.resetLocked()
	m.mu.Unlock()

	m.logger.Log(log.NewPhaseEvent(session.ID, deviceID, PhaseLink, status.String(), 0))

	// Close after disconnect, releasing the native object.
	if err := m.central.Close(deviceID); err != nil {
		m.logger.Log(log.NewErrorEvent(session.ID, deviceID,
			bleerr.CodeConnectionFailed.String(),
			"native link release failed: "+err.Error()))
	}

	if m.events.OnDisconnected != nil {
		m.events.OnDisconnected(deviceID, expected)
	}
}

// failDiscovery reports a discovery failure and starts a clean disconnect.
func (m *Manager) failDiscovery(session *Session, err error) {
	m.mu.Lock()
	if m.discTimer != nil {
		m.discTimer.Stop()
		m.discTimer = nil
	}
	m.mu.Unlock()

	m.logger.Log(log.NewErrorEvent(session.ID, session.DeviceID,
		bleerr.CodeOf(err).String(), err.Error()))

	_ = m.central.Disconnect(session.DeviceID)

	if m.events.OnError != nil {
		m.events.OnError(PhaseDiscovery, err)
	}
}

// Compile-time check: *Manager implements platform.LinkHandler.
var _ platform.LinkHandler = (*Manager)(nil)
