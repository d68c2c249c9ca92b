package sim

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/blelink-protocol/blelink-go/pkg/platform"
)

type linkRecorder struct {
	mu    sync.Mutex
	ups   []string
	downs []platform.Status
	disc  []platform.Status
	mtus  []int
}

func (r *linkRecorder) LinkUp(deviceID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ups = append(r.ups, deviceID)
}

func (r *linkRecorder) LinkDown(deviceID string, status platform.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.downs = append(r.downs, status)
}

func (r *linkRecorder) ServicesDiscovered(deviceID string, status platform.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.disc = append(r.disc, status)
}

func (r *linkRecorder) MTUChanged(deviceID string, mtu int, status platform.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mtus = append(r.mtus, mtu)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.After(time.Second)
	for {
		if cond() {
			return
		}
		select {
		case <-deadline:
			t.Fatal("condition never became true")
		case <-time.After(2 * time.Millisecond):
		}
	}
}

func TestConnectAndNegotiate(t *testing.T) {
	a := NewAdapter(&Peripheral{ID: "dev-1", Name: "Pump", GrantMTU: 185})
	rec := &linkRecorder{}
	a.SetLinkHandler(rec)

	if err := a.Connect("dev-1", true); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	waitFor(t, func() bool {
		rec.mu.Lock()
		defer rec.mu.Unlock()
		return len(rec.ups) == 1
	})
	if !a.Linked("dev-1") {
		t.Error("link not marked up")
	}

	if err := a.RequestMTU("dev-1", 512); err != nil {
		t.Fatal(err)
	}
	waitFor(t, func() bool {
		rec.mu.Lock()
		defer rec.mu.Unlock()
		return len(rec.mtus) == 1 && rec.mtus[0] == 185
	})
}

func TestUnknownDevice(t *testing.T) {
	a := NewAdapter()
	a.SetLinkHandler(&linkRecorder{})
	if err := a.Connect("nope", true); err != ErrUnknownDevice {
		t.Errorf("Connect(unknown) = %v, want ErrUnknownDevice", err)
	}
}

func TestRadioOffDropsLinksAndBroadcasts(t *testing.T) {
	a := NewAdapter(&Peripheral{ID: "dev-1"})
	rec := &linkRecorder{}
	a.SetLinkHandler(rec)

	var mu sync.Mutex
	var broadcasts []bool
	a.SubscribeRadio(func(enabled bool) {
		mu.Lock()
		defer mu.Unlock()
		broadcasts = append(broadcasts, enabled)
	})

	_ = a.Connect("dev-1", true)
	waitFor(t, func() bool { return a.Linked("dev-1") })

	a.SetRadio(false)
	waitFor(t, func() bool {
		rec.mu.Lock()
		defer rec.mu.Unlock()
		return len(rec.downs) == 1
	})
	if rec.downs[0].Expected() {
		t.Error("radio-off drop classified as expected")
	}
	mu.Lock()
	if len(broadcasts) != 1 || broadcasts[0] {
		t.Errorf("broadcasts = %v, want [false]", broadcasts)
	}
	mu.Unlock()

	if err := a.Connect("dev-1", true); err != ErrRadioOff {
		t.Errorf("Connect with radio off = %v, want ErrRadioOff", err)
	}
}

type bondRecorder struct {
	mu     sync.Mutex
	states []platform.BondState
}

func (r *bondRecorder) BondStateChanged(deviceID string, state platform.BondState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, state)
}

func (r *bondRecorder) BondRetry(deviceID string, attempt int) {}

func TestBonding(t *testing.T) {
	a := NewAdapter(&Peripheral{ID: "dev-1"})
	rec := &bondRecorder{}
	a.SetBondHandler(rec)

	state, err := a.BondState("dev-1")
	if err != nil || state != platform.BondNone {
		t.Fatalf("BondState() = %v, %v", state, err)
	}

	if err := a.CreateBond("dev-1"); err != nil {
		t.Fatal(err)
	}
	waitFor(t, func() bool {
		rec.mu.Lock()
		defer rec.mu.Unlock()
		return len(rec.states) == 1 && rec.states[0] == platform.Bonded
	})

	state, _ = a.BondState("dev-1")
	if state != platform.Bonded {
		t.Errorf("BondState after bonding = %v, want Bonded", state)
	}
}

func TestScan(t *testing.T) {
	a := NewAdapter(
		&Peripheral{ID: "dev-1", Name: "Pump", RSSI: -40},
		&Peripheral{ID: "dev-2", Name: "Sensor", RSSI: -70},
	)

	ads, err := a.Scan(context.Background(), time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if len(ads) != 2 {
		t.Fatalf("Scan() returned %d advertisements, want 2", len(ads))
	}

	a.SetRadio(false)
	if _, err := a.Scan(context.Background(), time.Second); err != ErrRadioOff {
		t.Errorf("Scan with radio off = %v, want ErrRadioOff", err)
	}
}
