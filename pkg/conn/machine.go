package conn

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/blelink-protocol/blelink-go/pkg/bleerr"
	"github.com/blelink-protocol/blelink-go/pkg/config"
	"github.com/blelink-protocol/blelink-go/pkg/link"
	"github.com/blelink-protocol/blelink-go/pkg/log"
	"github.com/blelink-protocol/blelink-go/pkg/pairing"
	"github.com/blelink-protocol/blelink-go/pkg/platform"
	"github.com/blelink-protocol/blelink-go/pkg/reconnect"
)

// Machine errors.
var (
	ErrNotStarted = errors.New("machine not started")
	ErrStopped    = errors.New("machine stopped")
)

// ResultFunc receives the outcome of a Connect call: the ready session on
// success, or the failure reason. It is decoupled from the observer
// stream; observers additionally see the same outcome as a transition.
type ResultFunc func(session *link.Session, err error)

// Deps carries the platform collaborators the machine composes.
// Central, Bonder, and Radio are required. Permissions may be nil, in
// which case every permission check passes. Store may be nil, in which
// case no device reference is persisted. Logger may be nil.
type Deps struct {
	Central     platform.Central
	Bonder      platform.Bonder
	Permissions platform.PermissionChecker
	Radio       platform.RadioWatcher
	Store       platform.Store
	Logger      log.Logger

	// Backoff overrides the reconnection backoff calculator. Nil selects
	// the default tiered policy.
	Backoff *reconnect.Backoff
}

// Machine is the process-wide connection state machine for a single
// peripheral. Create one with NewMachine, call Start before use, and
// Stop when done.
type Machine struct {
	cfg    config.Config
	perms  platform.PermissionChecker
	radio  platform.RadioWatcher
	store  platform.Store
	logger log.Logger

	link    *link.Manager
	pairing *pairing.Coordinator
	sched   *reconnect.Scheduler

	// mu guards the snapshot fields below, which are written by the run
	// loop and read by public getters.
	mu            sync.Mutex
	state         State
	errDetail     *ErrorDetail
	deviceID      string
	deviceName    string
	session       *link.Session
	autoReconnect bool
	lastKnown     *platform.DeviceRef
	observers     []Observer
	connID        string

	started bool
	events  chan event
	done    chan struct{}

	// Run loop owned fields. Touched only on the loop goroutine.
	closing      bool
	reconnecting bool
	resultCb     ResultFunc
	connTimer    *time.Timer
	timerGen     uint64

	radioUnsub func()
}

// Run loop events.
type (
	connectCmd struct {
		deviceID string
		cb       ResultFunc
		reply    chan error
	}
	disconnectCmd struct{ reply chan error }
	ackErrorCmd   struct{ reply chan bool }
	scanCmd       struct {
		active bool
		reply  chan bool
	}
	autoReconnectCmd struct{ enabled bool }
	stopCmd          struct{ reply chan struct{} }

	pairingRetryEv  struct{ attempt int }
	pairingDoneEv   struct{ reason error } // nil reason is success
	linkReadyEv     struct{ session *link.Session }
	linkErrorEv     struct {
		phase string
		err   error
	}
	linkDownEv struct {
		deviceID string
		expected bool
	}
	connTimeoutEv      struct{ gen uint64 }
	reconnectAttemptEv struct{ attempt int }
	radioEv            struct{ enabled bool }
)

// NewMachine creates a connection state machine from the configuration
// and platform collaborators. The machine is idle until Start is called.
func NewMachine(cfg config.Config, deps Deps) *Machine {
	m := &Machine{
		cfg:           cfg,
		perms:         deps.Permissions,
		radio:         deps.Radio,
		store:         deps.Store,
		logger:        log.OrNoop(deps.Logger),
		state:         StateIdle,
		autoReconnect: true,
		events:        make(chan event, 64),
		done:          make(chan struct{}),
	}

	m.link = link.NewManager(deps.Central, link.Events{
		OnConnected: func(deviceID string) {
			m.logger.Log(log.NewPhaseEvent(m.connectionID(), deviceID, link.PhaseLink, "DONE", 0))
		},
		OnServicesDiscovered: func(deviceID string) {
			m.logger.Log(log.NewPhaseEvent(m.connectionID(), deviceID, link.PhaseDiscovery, "DONE", 0))
		},
		OnMTUNegotiated: func(deviceID string, mtu int) {
			m.logger.Log(log.NewPhaseEvent(m.connectionID(), deviceID, link.PhaseNegotiation, "DONE", mtu))
		},
		OnReady: func(session *link.Session) {
			m.post(linkReadyEv{session: session})
		},
		OnDisconnected: func(deviceID string, expected bool) {
			m.post(linkDownEv{deviceID: deviceID, expected: expected})
		},
		OnError: func(phase string, err error) {
			m.post(linkErrorEv{phase: phase, err: err})
		},
	}, m.logger)
	m.link.SetTimeouts(cfg.Timeouts.Link, cfg.Timeouts.Discovery)
	m.link.SetMTUTarget(cfg.MTUTarget)

	m.pairing = pairing.NewCoordinator(deps.Bonder, m.logger)
	m.pairing.SetTimeout(cfg.Timeouts.Pairing)

	backoff := deps.Backoff
	if backoff == nil {
		backoff = reconnect.NewBackoff()
	}
	m.sched = reconnect.NewSchedulerWithBackoff(deps.Radio, func(attempt int) {
		m.post(reconnectAttemptEv{attempt: attempt})
	}, m.logger, backoff)

	return m
}

// Start loads the persisted device reference and starts the run loop.
func (m *Machine) Start() error {
	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return nil
	}
	m.started = true
	m.mu.Unlock()

	if m.store != nil {
		ref, err := m.store.Load()
		if err != nil {
			m.logger.Log(log.NewErrorEvent("", "", bleerr.CodeConnectionFailed.String(),
				"failed to load persisted device: "+err.Error()))
		} else if ref != nil {
			m.mu.Lock()
			m.lastKnown = ref
			m.mu.Unlock()
		}
	}

	m.radioUnsub = m.radio.SubscribeRadio(func(enabled bool) {
		m.post(radioEv{enabled: enabled})
	})

	go m.loop()
	return nil
}

// Stop tears down any in-flight activity and stops the run loop.
// Idempotent.
func (m *Machine) Stop() {
	m.mu.Lock()
	if !m.started {
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()

	select {
	case <-m.done:
		return
	default:
	}

	reply := make(chan struct{})
	select {
	case m.events <- stopCmd{reply: reply}:
		<-reply
	case <-m.done:
		return
	}

	if m.radioUnsub != nil {
		m.radioUnsub()
	}
	m.sched.Close()
	close(m.done)
}

// State returns the current connection state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// ErrorDetail returns the failure detail, or nil outside StateError.
func (m *Machine) ErrorDetail() *ErrorDetail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errDetail
}

// Session returns the live session handle, or nil when not connected.
func (m *Machine) Session() *link.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

// LastKnownDevice returns the device reference loaded from the persisted
// store at Start, or nil if none was stored.
func (m *Machine) LastKnownDevice() *platform.DeviceRef {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastKnown
}

// SetDeviceName sets the display name persisted alongside the device
// address on a successful connect.
func (m *Machine) SetDeviceName(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deviceName = name
}

// ReconnectAttempts returns the number of reconnection attempts fired
// since the last successful connection.
func (m *Machine) ReconnectAttempts() int {
	return m.sched.Attempts()
}

// AutoReconnectEnabled reports whether automatic reconnection after an
// unexpected drop is enabled.
func (m *Machine) AutoReconnectEnabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.autoReconnect
}

// EnableAutoReconnect enables automatic reconnection after an unexpected
// drop. Enabled by default.
func (m *Machine) EnableAutoReconnect() {
	m.post(autoReconnectCmd{enabled: true})
}

// DisableAutoReconnect disables automatic reconnection. If reconnection
// is already in progress it is cancelled and the machine settles in
// StateDisconnected.
func (m *Machine) DisableAutoReconnect() {
	m.post(autoReconnectCmd{enabled: false})
}

// RegisterObserver adds a transition observer. Observers are notified in
// registration order.
func (m *Machine) RegisterObserver(o Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observers = append(m.observers, o)
}

// UnregisterObserver removes a previously registered observer. The same
// value must be passed that was registered.
func (m *Machine) UnregisterObserver(o Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.observers {
		if existing == o {
			m.observers = append(m.observers[:i], m.observers[i+1:]...)
			return
		}
	}
}

// Connect starts the full connect sequence for the device: bond check,
// pairing if needed, link establishment, service discovery, and transfer
// size negotiation. Allowed only from StateIdle or StateDisconnected.
//
// Connect returns once the sequence has been accepted or rejected; the
// outcome arrives later via cb, which may be nil.
func (m *Machine) Connect(deviceID string, cb ResultFunc) error {
	reply := make(chan error, 1)
	if err := m.post(connectCmd{deviceID: deviceID, cb: cb, reply: reply}); err != nil {
		return err
	}
	select {
	case err := <-reply:
		return err
	case <-m.done:
		return ErrStopped
	}
}

// Disconnect tears down the connection or cancels an in-flight connect,
// pairing, or reconnection sequence. It disables auto-reconnect and
// clears the persisted device reference. Best effort: the machine always
// reaches StateDisconnected even when the underlying teardown fails.
func (m *Machine) Disconnect() error {
	reply := make(chan error, 1)
	if err := m.post(disconnectCmd{reply: reply}); err != nil {
		return err
	}
	select {
	case err := <-reply:
		return err
	case <-m.done:
		return ErrStopped
	}
}

// AcknowledgeError clears the error detail and returns the machine to
// StateIdle. Returns false when the machine is not in StateError.
func (m *Machine) AcknowledgeError() bool {
	reply := make(chan bool, 1)
	if err := m.post(ackErrorCmd{reply: reply}); err != nil {
		return false
	}
	select {
	case ok := <-reply:
		return ok
	case <-m.done:
		return false
	}
}

// NoteScanStarted records that the external scan provider began device
// discovery. Returns false unless the machine is idle.
func (m *Machine) NoteScanStarted() bool {
	return m.scan(true)
}

// NoteScanStopped records that the scan provider finished. Returns false
// unless the machine is scanning.
func (m *Machine) NoteScanStopped() bool {
	return m.scan(false)
}

func (m *Machine) scan(active bool) bool {
	reply := make(chan bool, 1)
	if err := m.post(scanCmd{active: active, reply: reply}); err != nil {
		return false
	}
	select {
	case ok := <-reply:
		return ok
	case <-m.done:
		return false
	}
}

// post places an event on the run loop. Fails once the machine has
// stopped.
func (m *Machine) post(ev event) error {
	m.mu.Lock()
	started := m.started
	m.mu.Unlock()
	if !started {
		return ErrNotStarted
	}
	select {
	case m.events <- ev:
		return nil
	case <-m.done:
		return ErrStopped
	}
}

func (m *Machine) connectionID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connID
}

// loop serializes all state evaluation. It exits on stopCmd.
func (m *Machine) loop() {
	for ev := range m.events {
		switch ev := ev.(type) {
		case connectCmd:
			ev.reply <- m.handleConnect(ev.deviceID, ev.cb)
		case disconnectCmd:
			ev.reply <- m.handleDisconnect()
		case ackErrorCmd:
			ev.reply <- m.handleAckError()
		case scanCmd:
			ev.reply <- m.handleScan(ev.active)
		case autoReconnectCmd:
			m.handleAutoReconnect(ev.enabled)
		case stopCmd:
			m.handleStop()
			close(ev.reply)
			return
		case pairingRetryEv:
			m.handlePairingRetry(ev.attempt)
		case pairingDoneEv:
			m.handlePairingDone(ev.reason)
		case linkReadyEv:
			m.handleLinkReady(ev.session)
		case linkErrorEv:
			m.handleLinkError(ev.phase, ev.err)
		case linkDownEv:
			m.handleLinkDown(ev.expected)
		case connTimeoutEv:
			m.handleConnTimeout(ev.gen)
		case reconnectAttemptEv:
			m.handleReconnectAttempt(ev.attempt)
		case radioEv:
			m.logger.Log(log.NewRadioEvent(m.connectionID(), ev.enabled))
		}
	}
}

type event any

// setState applies a transition if the table permits it. Same-state
// requests succeed without emitting a notification. detail must be
// non-nil exactly when to is StateError.
func (m *Machine) setState(to State, detail *ErrorDetail) bool {
	m.mu.Lock()
	old := m.state
	if !CanTransition(old, to) {
		m.mu.Unlock()
		return false
	}
	if old == to {
		m.mu.Unlock()
		return true
	}
	m.state = to
	m.errDetail = detail
	deviceID := m.deviceID
	obs := append([]Observer(nil), m.observers...)
	m.mu.Unlock()

	t := Transition{
		Old:       old,
		New:       to,
		Timestamp: time.Now(),
		DeviceID:  deviceID,
	}
	if detail != nil {
		t.ErrorCode = detail.Code
		t.ErrorMessage = detail.Message
	}

	m.logger.Log(log.NewStateEvent(m.connID, deviceID, old.String(), to.String()))
	for _, o := range obs {
		m.notifyOne(o, t)
	}
	return true
}

// notifyOne delivers a transition to one observer, isolating panics so a
// broken observer never blocks the rest.
func (m *Machine) notifyOne(o Observer, t Transition) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Log(log.NewErrorEvent(m.connID, t.DeviceID,
				bleerr.CodeConnectionFailed.String(), "observer panic during state notification"))
		}
	}()
	o.StateChanged(t)
}

func (m *Machine) currentState() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Machine) permissionGranted() bool {
	return m.perms == nil || m.perms.HasConnectPermission()
}

// handleConnect validates and starts a caller-requested connect
// sequence.
func (m *Machine) handleConnect(deviceID string, cb ResultFunc) error {
	st := m.currentState()
	if st != StateIdle && st != StateDisconnected {
		return bleerr.Newf(bleerr.CodeInvalidState, "connect not allowed from %s", st)
	}

	m.mu.Lock()
	m.deviceID = deviceID
	m.connID = uuid.NewString()
	m.mu.Unlock()
	m.closing = false
	m.reconnecting = false
	m.resultCb = cb

	m.setState(StateConnecting, nil)
	m.startConnTimer()
	m.beginSequence(deviceID)
	return nil
}

// beginSequence runs the bond check and hands off to pairing or the link
// manager. Called in StateConnecting.
func (m *Machine) beginSequence(deviceID string) {
	if !m.permissionGranted() {
		m.failConnect(bleerr.CodePermissionDenied, "bluetooth connect permission denied", nil)
		return
	}

	bond, err := m.pairing.CheckBondState(deviceID)
	if err != nil {
		m.failConnect(bleerr.CodeConnectionFailed, "bond state check failed", err)
		return
	}

	if bond == platform.Bonded {
		m.startLink(deviceID)
		return
	}

	m.setState(StatePairing, nil)
	err = m.pairing.Start(deviceID, pairing.Callbacks{
		OnRetry:   func(attempt int) { m.post(pairingRetryEv{attempt: attempt}) },
		OnSuccess: func() { m.post(pairingDoneEv{}) },
		OnFailed:  func(reason error) { m.post(pairingDoneEv{reason: reason}) },
	})
	if err != nil {
		m.failConnect(bleerr.CodePairingFailed, "failed to start pairing", err)
	}
}

// startLink asks the link manager to establish the raw link. The rest of
// the sequence arrives as link events.
func (m *Machine) startLink(deviceID string) {
	if err := m.link.Connect(deviceID, true); err != nil {
		m.failConnect(bleerr.CodeConnectionFailed, "failed to start link", err)
	}
}

// failConnect ends the current connect sequence. A failed reconnection
// attempt goes back to StateReconnecting and schedules the next attempt;
// a caller-requested connect escalates to StateError.
func (m *Machine) failConnect(code bleerr.Code, message string, cause error) {
	m.stopConnTimer()

	if m.reconnecting {
		m.reconnecting = false
		m.logger.Log(log.NewErrorEvent(m.connID, m.currentDevice(),
			bleerr.CodeReconnectionFailed.String(), message))
		m.setState(StateDisconnected, nil)
		if !m.AutoReconnectEnabled() {
			m.sched.Stop()
			return
		}
		m.setState(StateReconnecting, nil)
		m.sched.NoteFailure()
		return
	}

	m.transitionToError(code, message, cause)
}

// transitionToError is the single entry into StateError. It records the
// error detail, applies the transition, and delivers the failure to the
// pending result callback.
func (m *Machine) transitionToError(code bleerr.Code, message string, cause error) {
	m.stopConnTimer()
	m.sched.Stop()
	m.link.Close()
	m.reconnecting = false
	m.closing = false

	m.mu.Lock()
	m.session = nil
	m.mu.Unlock()

	detail := &ErrorDetail{Code: code, Message: message, Cause: cause}
	m.logger.Log(log.NewErrorEvent(m.connID, m.currentDevice(), code.String(), message))
	m.setState(StateError, detail)

	cb := m.resultCb
	m.resultCb = nil
	if cb != nil {
		if cause != nil {
			cb(nil, bleerr.Wrap(code, message, cause))
		} else {
			cb(nil, bleerr.New(code, message))
		}
	}
}

func (m *Machine) currentDevice() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deviceID
}

func (m *Machine) handlePairingRetry(attempt int) {
	if m.currentState() != StatePairing {
		return
	}
	m.logger.Log(log.NewPhaseEvent(m.connID, m.currentDevice(), "pairing-retry", "RETRY", attempt))
}

func (m *Machine) handlePairingDone(reason error) {
	if m.currentState() != StatePairing {
		return
	}
	if reason == nil {
		m.startLink(m.currentDevice())
		return
	}
	m.failConnect(bleerr.CodePairingFailed, "pairing failed: "+reason.Error(), reason)
}

func (m *Machine) handleLinkReady(session *link.Session) {
	st := m.currentState()
	if (st != StateConnecting && st != StatePairing) || m.closing {
		return
	}

	m.stopConnTimer()
	m.reconnecting = false
	m.sched.NoteSuccess()

	m.mu.Lock()
	m.session = session
	name := m.deviceName
	m.mu.Unlock()

	m.setState(StateConnected, nil)
	m.persistDevice(session.DeviceID, name)

	cb := m.resultCb
	m.resultCb = nil
	if cb != nil {
		cb(session, nil)
	}
}

// persistDevice stores the connected device reference. Failures are
// logged, never fatal.
func (m *Machine) persistDevice(deviceID, name string) {
	if m.store == nil {
		return
	}
	ref := platform.DeviceRef{DeviceID: deviceID, DisplayName: name}
	if err := m.store.Save(ref); err != nil {
		m.logger.Log(log.NewErrorEvent(m.connID, deviceID,
			bleerr.CodeConnectionFailed.String(), "failed to persist device: "+err.Error()))
		return
	}
	m.mu.Lock()
	m.lastKnown = &ref
	m.mu.Unlock()
}

func (m *Machine) handleLinkError(phase string, err error) {
	st := m.currentState()
	if st != StateConnecting && st != StatePairing {
		return
	}

	code := bleerr.CodeOf(err)
	if errors.Is(err, link.ErrLinkTimeout) {
		code = bleerr.CodeConnectionTimeout
	}
	m.failConnect(code, phase+" phase failed: "+err.Error(), err)
}

func (m *Machine) handleLinkDown(expected bool) {
	if m.closing {
		// Caller-requested teardown completing.
		m.stopConnTimer()
		m.closing = false
		m.reconnecting = false
		m.mu.Lock()
		m.session = nil
		m.mu.Unlock()
		m.setState(StateDisconnected, nil)
		return
	}

	switch m.currentState() {
	case StateConnected:
		m.mu.Lock()
		m.session = nil
		auto := m.autoReconnect
		m.mu.Unlock()

		if !expected && auto {
			m.setState(StateReconnecting, nil)
			m.startReconnect()
			return
		}
		m.setState(StateDisconnected, nil)

	case StateConnecting, StatePairing:
		// Link dropped mid-sequence without a phase error.
		m.failConnect(bleerr.CodeConnectionFailed, "link dropped during connection", nil)
	}
}

func (m *Machine) startReconnect() {
	if err := m.sched.Start(m.currentDevice()); err != nil {
		m.transitionToError(bleerr.CodeReconnectionSetupFailed, "failed to start reconnection", err)
	}
}

func (m *Machine) handleReconnectAttempt(attempt int) {
	if m.currentState() != StateReconnecting {
		return
	}

	if !m.permissionGranted() {
		m.transitionToError(bleerr.CodePermissionRevoked,
			"bluetooth connect permission revoked during reconnection", nil)
		return
	}

	deviceID := m.currentDevice()
	m.mu.Lock()
	m.connID = uuid.NewString()
	m.mu.Unlock()
	m.reconnecting = true
	m.closing = false

	m.setState(StateConnecting, nil)
	m.startConnTimer()
	m.beginSequence(deviceID)
}

func (m *Machine) handleConnTimeout(gen uint64) {
	if gen != m.timerGen {
		return
	}
	st := m.currentState()
	if st != StateConnecting && st != StatePairing {
		return
	}

	m.pairing.Cancel()
	m.link.Close()
	m.failConnect(bleerr.CodeConnectionTimeout, "connection attempt timed out", nil)
}

func (m *Machine) handleDisconnect() error {
	st := m.currentState()
	switch st {
	case StateConnecting, StatePairing, StateConnected, StateReconnecting:
	default:
		return bleerr.Newf(bleerr.CodeInvalidState, "disconnect not allowed from %s", st)
	}

	m.mu.Lock()
	m.autoReconnect = false
	m.mu.Unlock()
	m.resultCb = nil
	m.stopConnTimer()
	m.pairing.Cancel()
	m.sched.Stop()
	m.clearPersisted()

	if st == StateReconnecting || m.link.Session() == nil {
		// No live link to tear down.
		m.closing = false
		m.reconnecting = false
		m.setState(StateDisconnected, nil)
		return nil
	}

	m.closing = true
	if err := m.link.Disconnect(); err != nil {
		// Teardown submission failed; force the release and settle in
		// StateDisconnected anyway.
		m.link.Close()
		m.closing = false
		m.reconnecting = false
		m.mu.Lock()
		m.session = nil
		m.mu.Unlock()
		m.setState(StateDisconnected, nil)
	}
	return nil
}

func (m *Machine) clearPersisted() {
	if m.store == nil {
		return
	}
	if err := m.store.Clear(); err != nil {
		m.logger.Log(log.NewErrorEvent(m.connID, m.currentDevice(),
			bleerr.CodeConnectionFailed.String(), "failed to clear persisted device: "+err.Error()))
		return
	}
	m.mu.Lock()
	m.lastKnown = nil
	m.mu.Unlock()
}

func (m *Machine) handleAckError() bool {
	if m.currentState() != StateError {
		return false
	}
	m.mu.Lock()
	m.deviceID = ""
	m.session = nil
	m.mu.Unlock()
	return m.setState(StateIdle, nil)
}

func (m *Machine) handleScan(active bool) bool {
	if active {
		return m.currentState() == StateIdle && m.setState(StateScanning, nil)
	}
	return m.currentState() == StateScanning && m.setState(StateIdle, nil)
}

func (m *Machine) handleAutoReconnect(enabled bool) {
	m.mu.Lock()
	m.autoReconnect = enabled
	st := m.state
	m.mu.Unlock()

	if !enabled && st == StateReconnecting {
		m.sched.Stop()
		m.setState(StateDisconnected, nil)
	}
}

func (m *Machine) handleStop() {
	m.stopConnTimer()
	m.pairing.Cancel()
	m.sched.Stop()
	m.link.Close()
	m.resultCb = nil
	m.closing = false
	m.reconnecting = false
	m.mu.Lock()
	m.session = nil
	m.mu.Unlock()
}

// startConnTimer arms the overall connection timeout spanning pairing,
// link, discovery, and negotiation.
func (m *Machine) startConnTimer() {
	m.stopConnTimer()
	gen := m.timerGen
	m.connTimer = time.AfterFunc(m.cfg.Timeouts.Connection, func() {
		m.post(connTimeoutEv{gen: gen})
	})
}

// stopConnTimer cancels the connection timeout. A timeout event already
// posted carries a stale generation and is ignored.
func (m *Machine) stopConnTimer() {
	if m.connTimer != nil {
		m.connTimer.Stop()
		m.connTimer = nil
	}
	m.timerGen++
}
