package pairing

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/blelink-protocol/blelink-go/pkg/platform"
	"github.com/blelink-protocol/blelink-go/pkg/platform/mocks"
)

// fakeBonder is a stateful platform bonder for driving callback flows.
type fakeBonder struct {
	mu          sync.Mutex
	handler     platform.BondHandler
	state       platform.BondState
	createErr   error
	createCalls int
	cancelCalls int
}

func (f *fakeBonder) SetBondHandler(h platform.BondHandler) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handler = h
}

func (f *fakeBonder) BondState(string) (platform.BondState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state, nil
}

func (f *fakeBonder) CreateBond(string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	return f.createErr
}

func (f *fakeBonder) CancelBond(string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelCalls++
	return nil
}

func (f *fakeBonder) counts() (creates, cancels int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.createCalls, f.cancelCalls
}

// outcome collects terminal callbacks.
type outcome struct {
	mu       sync.Mutex
	success  int
	failures []error
	retries  []int
}

func (o *outcome) callbacks() Callbacks {
	return Callbacks{
		OnRetry:   func(attempt int) { o.mu.Lock(); o.retries = append(o.retries, attempt); o.mu.Unlock() },
		OnSuccess: func() { o.mu.Lock(); o.success++; o.mu.Unlock() },
		OnFailed:  func(reason error) { o.mu.Lock(); o.failures = append(o.failures, reason); o.mu.Unlock() },
	}
}

func (o *outcome) snapshot() (int, []error, []int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.success, append([]error(nil), o.failures...), append([]int(nil), o.retries...)
}

func TestStartAlreadyBonded(t *testing.T) {
	bonder := &fakeBonder{state: platform.Bonded}
	c := NewCoordinator(bonder, nil)

	var o outcome
	if err := c.Start("dev-a", o.callbacks()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	success, failures, _ := o.snapshot()
	if success != 1 || len(failures) != 0 {
		t.Errorf("success=%d failures=%v, want immediate success", success, failures)
	}
	if creates, _ := bonder.counts(); creates != 0 {
		t.Error("CreateBond should not be called for a bonded device")
	}
	if c.Active() {
		t.Error("coordinator should be idle after immediate success")
	}
}

func TestPairingSuccessFlow(t *testing.T) {
	bonder := &fakeBonder{state: platform.BondNone}
	c := NewCoordinator(bonder, nil)

	var o outcome
	if err := c.Start("dev-a", o.callbacks()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !c.Active() {
		t.Fatal("coordinator should be active")
	}

	// Platform progresses through Bonding then Bonded.
	bonder.handler.BondStateChanged("dev-a", platform.Bonding)
	bonder.handler.BondRetry("dev-a", 1)
	bonder.handler.BondStateChanged("dev-a", platform.Bonded)

	success, failures, retries := o.snapshot()
	if success != 1 || len(failures) != 0 {
		t.Errorf("success=%d failures=%v, want one success", success, failures)
	}
	if len(retries) != 1 || retries[0] != 1 {
		t.Errorf("retries = %v, want [1]", retries)
	}
	if c.Active() {
		t.Error("coordinator should be idle after success")
	}

	// Late duplicate event must not produce a second callback.
	bonder.handler.BondStateChanged("dev-a", platform.Bonded)
	success, _, _ = o.snapshot()
	if success != 1 {
		t.Errorf("success=%d after stale event, want 1", success)
	}
}

func TestPairingFailureFlow(t *testing.T) {
	bonder := &fakeBonder{state: platform.BondNone}
	c := NewCoordinator(bonder, nil)

	var o outcome
	if err := c.Start("dev-a", o.callbacks()); err != nil {
		t.Fatal(err)
	}

	bonder.handler.BondStateChanged("dev-a", platform.Bonding)
	bonder.handler.BondStateChanged("dev-a", platform.BondNone)

	success, failures, _ := o.snapshot()
	if success != 0 || len(failures) != 1 || !errors.Is(failures[0], ErrBondingFailed) {
		t.Errorf("success=%d failures=%v, want one ErrBondingFailed", success, failures)
	}
}

func TestEventsForOtherDevicesIgnored(t *testing.T) {
	bonder := &fakeBonder{state: platform.BondNone}
	c := NewCoordinator(bonder, nil)

	var o outcome
	if err := c.Start("dev-a", o.callbacks()); err != nil {
		t.Fatal(err)
	}

	bonder.handler.BondStateChanged("dev-b", platform.Bonded)
	bonder.handler.BondRetry("dev-b", 2)

	success, failures, retries := o.snapshot()
	if success != 0 || len(failures) != 0 || len(retries) != 0 {
		t.Errorf("callbacks fired for wrong device: %d/%v/%v", success, failures, retries)
	}
	if !c.Active() {
		t.Error("flow for dev-a should still be active")
	}
}

func TestCancelIsIdempotent(t *testing.T) {
	bonder := &fakeBonder{state: platform.BondNone}
	c := NewCoordinator(bonder, nil)

	// Cancel with nothing active is a no-op.
	c.Cancel()

	var o outcome
	if err := c.Start("dev-a", o.callbacks()); err != nil {
		t.Fatal(err)
	}

	c.Cancel()
	c.Cancel()

	success, failures, _ := o.snapshot()
	if success != 0 || len(failures) != 1 || !errors.Is(failures[0], ErrPairingCancelled) {
		t.Errorf("success=%d failures=%v, want one ErrPairingCancelled", success, failures)
	}
	if _, cancels := bonder.counts(); cancels != 1 {
		t.Errorf("CancelBond called %d times, want 1", cancels)
	}
}

func TestPairingTimeout(t *testing.T) {
	bonder := &fakeBonder{state: platform.BondNone}
	c := NewCoordinator(bonder, nil)
	c.SetTimeout(20 * time.Millisecond)

	var o outcome
	if err := c.Start("dev-a", o.callbacks()); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(2 * time.Second)
	for {
		success, failures, _ := o.snapshot()
		if len(failures) == 1 {
			if success != 0 || !errors.Is(failures[0], ErrPairingTimeout) {
				t.Errorf("success=%d failures=%v, want one ErrPairingTimeout", success, failures)
			}
			break
		}
		select {
		case <-deadline:
			t.Fatal("timeout callback never fired")
		case <-time.After(5 * time.Millisecond):
		}
	}

	if _, cancels := bonder.counts(); cancels != 1 {
		t.Errorf("CancelBond called %d times, want 1", cancels)
	}
}

func TestStartWhileActive(t *testing.T) {
	bonder := &fakeBonder{state: platform.BondNone}
	c := NewCoordinator(bonder, nil)

	var o outcome
	if err := c.Start("dev-a", o.callbacks()); err != nil {
		t.Fatal(err)
	}
	if err := c.Start("dev-b", o.callbacks()); !errors.Is(err, ErrPairingInProgress) {
		t.Errorf("second Start() error = %v, want ErrPairingInProgress", err)
	}
}

func TestStartSubmissionError(t *testing.T) {
	bonder := mocks.NewMockBonder(t)
	bonder.EXPECT().SetBondHandler(mock.Anything).Once()
	bonder.EXPECT().BondState("dev-a").Return(platform.BondNone, nil).Once()
	submitErr := errors.New("adapter busy")
	bonder.EXPECT().CreateBond("dev-a").Return(submitErr).Once()

	c := NewCoordinator(bonder, nil)

	var o outcome
	if err := c.Start("dev-a", o.callbacks()); !errors.Is(err, submitErr) {
		t.Errorf("Start() error = %v, want %v", err, submitErr)
	}
	if c.Active() {
		t.Error("coordinator should be idle after submission failure")
	}
}
