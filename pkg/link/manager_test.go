package link

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/blelink-protocol/blelink-go/pkg/bleerr"
	"github.com/blelink-protocol/blelink-go/pkg/platform"
)

// fakeCentral records GATT operations and lets tests drive link events.
type fakeCentral struct {
	mu          sync.Mutex
	handler     platform.LinkHandler
	connectErr  error
	discoverErr error
	mtuErr      error
	closeErr    error
	calls       []string
}

func (f *fakeCentral) SetLinkHandler(h platform.LinkHandler) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handler = h
}

func (f *fakeCentral) record(op, deviceID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, op+":"+deviceID)
}

func (f *fakeCentral) Connect(deviceID string, persistent bool) error {
	f.record(fmt.Sprintf("connect[persistent=%t]", persistent), deviceID)
	return f.connectErr
}

func (f *fakeCentral) Disconnect(deviceID string) error {
	f.record("disconnect", deviceID)
	return nil
}

func (f *fakeCentral) Close(deviceID string) error {
	f.record("close", deviceID)
	return f.closeErr
}

func (f *fakeCentral) DiscoverServices(deviceID string) error {
	f.record("discover", deviceID)
	return f.discoverErr
}

func (f *fakeCentral) RequestMTU(deviceID string, mtu int) error {
	f.record(fmt.Sprintf("mtu[%d]", mtu), deviceID)
	return f.mtuErr
}

func (f *fakeCentral) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeCentral) has(call string) bool {
	for _, c := range f.callLog() {
		if c == call {
			return true
		}
	}
	return false
}

// recorder collects manager events.
type recorder struct {
	mu           sync.Mutex
	connected    []string
	discovered   []string
	mtus         []int
	ready        []*Session
	disconnected []bool
	errs         []string // "phase:code"
}

func (r *recorder) events() Events {
	return Events{
		OnConnected: func(deviceID string) {
			r.mu.Lock()
			r.connected = append(r.connected, deviceID)
			r.mu.Unlock()
		},
		OnServicesDiscovered: func(deviceID string) {
			r.mu.Lock()
			r.discovered = append(r.discovered, deviceID)
			r.mu.Unlock()
		},
		OnMTUNegotiated: func(_ string, mtu int) {
			r.mu.Lock()
			r.mtus = append(r.mtus, mtu)
			r.mu.Unlock()
		},
		OnReady: func(session *Session) {
			r.mu.Lock()
			r.ready = append(r.ready, session)
			r.mu.Unlock()
		},
		OnDisconnected: func(_ string, expected bool) {
			r.mu.Lock()
			r.disconnected = append(r.disconnected, expected)
			r.mu.Unlock()
		},
		OnError: func(phase string, err error) {
			r.mu.Lock()
			r.errs = append(r.errs, phase+":"+bleerr.CodeOf(err).String())
			r.mu.Unlock()
		},
	}
}

func (r *recorder) waitFor(t *testing.T, cond func() bool, what string) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		r.mu.Lock()
		ok := cond()
		r.mu.Unlock()
		if ok {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for %s", what)
		case <-time.After(2 * time.Millisecond):
		}
	}
}

const dev = "AA:BB:CC:DD:EE:FF"

func TestConnectSequence(t *testing.T) {
	central := &fakeCentral{}
	rec := &recorder{}
	m := NewManager(central, rec.events(), nil)

	if err := m.Connect(dev, true); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	if !central.has("connect[persistent=true]:"+dev) {
		t.Fatalf("platform connect not issued: %v", central.callLog())
	}

	session := m.Session()
	if session == nil {
		t.Fatal("Session() = nil during connect")
	}
	if session.MTU() != platform.DefaultATTMTU {
		t.Errorf("initial MTU = %d, want conservative default %d", session.MTU(), platform.DefaultATTMTU)
	}
	if session.ServicesDiscovered() {
		t.Error("services flagged discovered before discovery")
	}

	// Link active: discovery follows immediately.
	central.handler.LinkUp(dev)
	if len(rec.connected) != 1 {
		t.Fatal("OnConnected not fired")
	}
	if !central.has("discover:" + dev) {
		t.Fatal("service discovery not triggered on link up")
	}

	// Discovery done: negotiation follows immediately.
	central.handler.ServicesDiscovered(dev, platform.StatusSuccess)
	if len(rec.discovered) != 1 {
		t.Fatal("OnServicesDiscovered not fired")
	}
	if !central.has(fmt.Sprintf("mtu[%d]:%s", platform.MaxRequestedMTU, dev)) {
		t.Fatalf("MTU request not triggered: %v", central.callLog())
	}

	// Negotiation grants less than requested.
	central.handler.MTUChanged(dev, 247, platform.StatusSuccess)

	if len(rec.ready) != 1 {
		t.Fatal("OnReady not fired")
	}
	ready := rec.ready[0]
	if ready.MTU() != 247 {
		t.Errorf("negotiated MTU = %d, want 247", ready.MTU())
	}
	if !ready.ServicesDiscovered() {
		t.Error("ready session should have discovered services")
	}
	if len(rec.mtus) != 1 || rec.mtus[0] != 247 {
		t.Errorf("OnMTUNegotiated values = %v, want [247]", rec.mtus)
	}
	if ready.ID == "" {
		t.Error("session ID should be populated")
	}
}

func TestMTUFailureIsNonFatal(t *testing.T) {
	central := &fakeCentral{}
	rec := &recorder{}
	m := NewManager(central, rec.events(), nil)

	if err := m.Connect(dev, true); err != nil {
		t.Fatal(err)
	}
	central.handler.LinkUp(dev)
	central.handler.ServicesDiscovered(dev, platform.StatusSuccess)
	central.handler.MTUChanged(dev, 0, platform.StatusFailure)

	if len(rec.ready) != 1 {
		t.Fatal("negotiation failure must not block completion")
	}
	if got := rec.ready[0].MTU(); got != platform.DefaultATTMTU {
		t.Errorf("MTU after failed negotiation = %d, want default %d", got, platform.DefaultATTMTU)
	}
}

func TestMTUSubmissionFailureIsNonFatal(t *testing.T) {
	central := &fakeCentral{mtuErr: errors.New("busy")}
	rec := &recorder{}
	m := NewManager(central, rec.events(), nil)

	if err := m.Connect(dev, true); err != nil {
		t.Fatal(err)
	}
	central.handler.LinkUp(dev)
	central.handler.ServicesDiscovered(dev, platform.StatusSuccess)

	if len(rec.ready) != 1 {
		t.Fatal("MTU submission failure must not block completion")
	}
	if got := rec.ready[0].MTU(); got != platform.DefaultATTMTU {
		t.Errorf("MTU = %d, want default %d", got, platform.DefaultATTMTU)
	}
}

func TestDiscoveryFailureDisconnectsBeforeClose(t *testing.T) {
	central := &fakeCentral{}
	rec := &recorder{}
	m := NewManager(central, rec.events(), nil)

	if err := m.Connect(dev, true); err != nil {
		t.Fatal(err)
	}
	central.handler.LinkUp(dev)
	central.handler.ServicesDiscovered(dev, platform.StatusFailure)

	if len(rec.errs) != 1 || rec.errs[0] != PhaseDiscovery+":GATT_ERROR" {
		t.Errorf("errs = %v, want discovery GATT_ERROR", rec.errs)
	}
	if !central.has("disconnect:" + dev) {
		t.Fatal("discovery failure must initiate a disconnect")
	}
	if central.has("close:" + dev) {
		t.Fatal("close must not happen before the link down event")
	}

	// Platform completes the disconnect; close follows.
	central.handler.LinkDown(dev, platform.StatusLocalTerminated)
	if !central.has("close:" + dev) {
		t.Fatal("close must follow the link down event")
	}
	if len(rec.disconnected) != 1 || !rec.disconnected[0] {
		t.Errorf("disconnected = %v, want one expected drop", rec.disconnected)
	}
}

func TestLinkTimeout(t *testing.T) {
	central := &fakeCentral{}
	rec := &recorder{}
	m := NewManager(central, rec.events(), nil)
	m.SetTimeouts(15*time.Millisecond, 0)

	if err := m.Connect(dev, true); err != nil {
		t.Fatal(err)
	}

	rec.waitFor(t, func() bool { return len(rec.errs) == 1 }, "link timeout error")
	if rec.errs[0] != PhaseLink+":CONNECTION_FAILED" {
		t.Errorf("errs = %v", rec.errs)
	}
	if !central.has("close:" + dev) {
		t.Error("link timeout must force teardown")
	}
	if m.Session() != nil {
		t.Error("session should be cleared after timeout teardown")
	}
}

func TestDiscoveryTimeout(t *testing.T) {
	central := &fakeCentral{}
	rec := &recorder{}
	m := NewManager(central, rec.events(), nil)
	m.SetTimeouts(0, 15*time.Millisecond)

	if err := m.Connect(dev, true); err != nil {
		t.Fatal(err)
	}
	central.handler.LinkUp(dev)

	rec.waitFor(t, func() bool { return len(rec.errs) == 1 }, "discovery timeout error")
	if rec.errs[0] != PhaseDiscovery+":GATT_ERROR" {
		t.Errorf("errs = %v", rec.errs)
	}
	if !central.has("disconnect:" + dev) {
		t.Error("discovery timeout must issue a disconnect")
	}
	if central.has("close:" + dev) {
		t.Error("discovery timeout must not close before the disconnect completes")
	}
}

func TestTimeoutCancelledOnSuccess(t *testing.T) {
	central := &fakeCentral{}
	rec := &recorder{}
	m := NewManager(central, rec.events(), nil)
	m.SetTimeouts(25*time.Millisecond, 25*time.Millisecond)

	if err := m.Connect(dev, true); err != nil {
		t.Fatal(err)
	}
	central.handler.LinkUp(dev)
	central.handler.ServicesDiscovered(dev, platform.StatusSuccess)
	central.handler.MTUChanged(dev, 185, platform.StatusSuccess)

	// Give the stale timers a chance to fire if cancellation is broken.
	time.Sleep(60 * time.Millisecond)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.errs) != 0 {
		t.Errorf("cancelled timers fired: %v", rec.errs)
	}
}

func TestDropClassification(t *testing.T) {
	t.Run("Unexpected", func(t *testing.T) {
		central := &fakeCentral{}
		rec := &recorder{}
		m := NewManager(central, rec.events(), nil)

		if err := m.Connect(dev, true); err != nil {
			t.Fatal(err)
		}
		central.handler.LinkUp(dev)
		central.handler.LinkDown(dev, platform.StatusRemoteTerminated)

		if len(rec.disconnected) != 1 || rec.disconnected[0] {
			t.Errorf("disconnected = %v, want one unexpected drop", rec.disconnected)
		}
	})

	t.Run("LocalRequest", func(t *testing.T) {
		central := &fakeCentral{}
		rec := &recorder{}
		m := NewManager(central, rec.events(), nil)

		if err := m.Connect(dev, true); err != nil {
			t.Fatal(err)
		}
		central.handler.LinkUp(dev)
		if err := m.Disconnect(); err != nil {
			t.Fatal(err)
		}
		// Even a non-local status is expected once Disconnect was requested.
		central.handler.LinkDown(dev, platform.StatusRemoteTerminated)

		if len(rec.disconnected) != 1 || !rec.disconnected[0] {
			t.Errorf("disconnected = %v, want one expected drop", rec.disconnected)
		}
	})
}

func TestCloseIsIdempotent(t *testing.T) {
	central := &fakeCentral{closeErr: errors.New("release failed")}
	rec := &recorder{}
	m := NewManager(central, rec.events(), nil)

	if err := m.Connect(dev, true); err != nil {
		t.Fatal(err)
	}

	m.Close()
	if m.Session() != nil {
		t.Error("state must reset even when the native release fails")
	}

	before := len(central.callLog())
	m.Close()
	if len(central.callLog()) != before {
		t.Error("second Close must be a no-op")
	}
}

func TestConnectTearsDownExistingLink(t *testing.T) {
	central := &fakeCentral{}
	rec := &recorder{}
	m := NewManager(central, rec.events(), nil)

	if err := m.Connect(dev, true); err != nil {
		t.Fatal(err)
	}
	if err := m.Connect("11:22:33:44:55:66", true); err != nil {
		t.Fatal(err)
	}

	calls := central.callLog()
	sawClose := false
	for _, c := range calls {
		if c == "close:"+dev {
			sawClose = true
		}
		if c == "connect[persistent=true]:11:22:33:44:55:66" && !sawClose {
			t.Fatalf("new connect before old link teardown: %v", calls)
		}
	}
	if !sawClose {
		t.Fatalf("old link never closed: %v", calls)
	}
}

func TestConnectSubmissionFailure(t *testing.T) {
	central := &fakeCentral{connectErr: errors.New("adapter off")}
	rec := &recorder{}
	m := NewManager(central, rec.events(), nil)

	err := m.Connect(dev, true)
	if err == nil {
		t.Fatal("Connect() should fail when the platform rejects submission")
	}
	if bleerr.CodeOf(err) != bleerr.CodeConnectionFailed {
		t.Errorf("code = %v, want CONNECTION_FAILED", bleerr.CodeOf(err))
	}
	if m.Session() != nil {
		t.Error("session should be cleared after submission failure")
	}
}

func TestDisconnectWithoutLink(t *testing.T) {
	central := &fakeCentral{}
	m := NewManager(central, Events{}, nil)

	if err := m.Disconnect(); !errors.Is(err, ErrNoLink) {
		t.Errorf("Disconnect() error = %v, want ErrNoLink", err)
	}
}
