package reconnect

import (
	"sync"
	"testing"
	"time"

	"github.com/blelink-protocol/blelink-go/pkg/platform"
)

// fakeRadio is a controllable radio-state provider.
type fakeRadio struct {
	mu        sync.Mutex
	enabled   bool
	powerSave bool
	subs      []func(bool)
}

func newFakeRadio(enabled bool) *fakeRadio {
	return &fakeRadio{enabled: enabled}
}

func (f *fakeRadio) RadioEnabled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.enabled
}

func (f *fakeRadio) PowerSaveActive() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.powerSave
}

func (f *fakeRadio) SubscribeRadio(fn func(bool)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subs = append(f.subs, fn)
	idx := len(f.subs) - 1
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.subs[idx] = nil
	}
}

func (f *fakeRadio) setEnabled(enabled bool) {
	f.mu.Lock()
	f.enabled = enabled
	subs := append(([]func(bool))(nil), f.subs...)
	f.mu.Unlock()
	for _, fn := range subs {
		if fn != nil {
			fn(enabled)
		}
	}
}

// attemptLog records fired attempts.
type attemptLog struct {
	mu       sync.Mutex
	attempts []int
}

func (a *attemptLog) record(attempt int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.attempts = append(a.attempts, attempt)
}

func (a *attemptLog) snapshot() []int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]int(nil), a.attempts...)
}

func (a *attemptLog) waitLen(t *testing.T, n int) []int {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		got := a.snapshot()
		if len(got) >= n {
			return got
		}
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for %d attempts, have %v", n, got)
		case <-time.After(2 * time.Millisecond):
		}
	}
}

// fastBackoff keeps scheduler tests quick.
func fastBackoff() *Backoff {
	return NewBackoffWithPolicy(Policy{
		TierOne:   5 * time.Millisecond,
		TierTwo:   5 * time.Millisecond,
		TierThree: 5 * time.Millisecond,
		Max:       50 * time.Millisecond,
		Min:       time.Millisecond,
		Jitter:    0,
	})
}

func TestSchedulerFiresAndAdvances(t *testing.T) {
	radio := newFakeRadio(true)
	var a attemptLog
	s := NewSchedulerWithBackoff(radio, a.record, nil, fastBackoff())
	defer s.Close()

	if err := s.Start("dev-a"); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := s.Start("dev-a"); err != ErrAlreadyRunning {
		t.Errorf("second Start() error = %v, want ErrAlreadyRunning", err)
	}

	a.waitLen(t, 1)
	s.NoteFailure()
	a.waitLen(t, 2)
	s.NoteFailure()
	got := a.waitLen(t, 3)

	for i, attempt := range got[:3] {
		if attempt != i+1 {
			t.Errorf("attempt %d fired with number %d", i, attempt)
		}
	}

	s.NoteSuccess()
	if s.Running() {
		t.Error("scheduler should stop after success")
	}
	if s.Attempts() != 0 {
		t.Errorf("Attempts() = %d after success, want 0", s.Attempts())
	}
}

func TestStopCancelsPendingAttempt(t *testing.T) {
	radio := newFakeRadio(true)
	var a attemptLog
	s := NewSchedulerWithBackoff(radio, a.record, nil, NewBackoffWithPolicy(Policy{
		TierOne: time.Hour, Min: time.Millisecond, Jitter: 0,
	}))
	defer s.Close()

	if err := s.Start("dev-a"); err != nil {
		t.Fatal(err)
	}
	s.Stop()
	s.Stop() // idempotent

	if s.Running() {
		t.Error("scheduler should not be running after Stop")
	}
	if s.Attempts() != 0 {
		t.Errorf("Attempts() = %d after Stop, want 0", s.Attempts())
	}

	time.Sleep(20 * time.Millisecond)
	if got := a.snapshot(); len(got) != 0 {
		t.Errorf("cancelled attempt still fired: %v", got)
	}
}

func TestRadioOffAtStartGatesAttempts(t *testing.T) {
	radio := newFakeRadio(false)
	var a attemptLog
	s := NewSchedulerWithBackoff(radio, a.record, nil, fastBackoff())
	defer s.Close()

	if err := s.Start("dev-a"); err != nil {
		t.Fatal(err)
	}

	time.Sleep(30 * time.Millisecond)
	if got := a.snapshot(); len(got) != 0 {
		t.Errorf("attempts fired while radio disabled: %v", got)
	}

	// Radio back: one attempt fires immediately.
	radio.setEnabled(true)
	got := a.waitLen(t, 1)
	if got[0] != 1 {
		t.Errorf("immediate attempt number = %d, want 1", got[0])
	}
}

func TestRadioOffPreservesCounter(t *testing.T) {
	radio := newFakeRadio(true)
	var a attemptLog
	var s *Scheduler

	// Fail each attempt until 7 have fired, then disable the radio.
	fn := func(attempt int) {
		a.record(attempt)
		if attempt < 7 {
			s.NoteFailure()
			return
		}
		if attempt == 7 {
			radio.setEnabled(false)
			s.NoteFailure() // parks attempt 8 behind the disabled radio
		}
	}
	s = NewSchedulerWithBackoff(radio, fn, nil, fastBackoff())
	defer s.Close()

	if err := s.Start("dev-a"); err != nil {
		t.Fatal(err)
	}

	a.waitLen(t, 7)
	time.Sleep(30 * time.Millisecond)
	if got := a.snapshot(); len(got) != 7 {
		t.Fatalf("attempts fired while radio disabled: %v", got)
	}
	if s.Attempts() != 7 {
		t.Errorf("Attempts() = %d while gated, want 7 (preserved)", s.Attempts())
	}

	// Radio back: the parked attempt fires immediately with the counter
	// continued, not reset.
	radio.setEnabled(true)
	got := a.waitLen(t, 8)
	if got[7] != 8 {
		t.Errorf("resumed attempt number = %d, want 8", got[7])
	}
}

func TestRadioOffWhileTimerPending(t *testing.T) {
	radio := newFakeRadio(true)
	var a attemptLog
	s := NewSchedulerWithBackoff(radio, a.record, nil, NewBackoffWithPolicy(Policy{
		TierOne: 40 * time.Millisecond, Min: time.Millisecond, Jitter: 0,
	}))
	defer s.Close()

	if err := s.Start("dev-a"); err != nil {
		t.Fatal(err)
	}
	radio.setEnabled(false)

	time.Sleep(80 * time.Millisecond)
	if got := a.snapshot(); len(got) != 0 {
		t.Errorf("parked attempt fired during radio-off: %v", got)
	}

	radio.setEnabled(true)
	got := a.waitLen(t, 1)
	if got[0] != 1 {
		t.Errorf("attempt number = %d, want 1", got[0])
	}
}

func TestRadioBroadcastsIgnoredWhenIdle(t *testing.T) {
	radio := newFakeRadio(true)
	var a attemptLog
	s := NewSchedulerWithBackoff(radio, a.record, nil, fastBackoff())
	defer s.Close()

	radio.setEnabled(false)
	radio.setEnabled(true)

	time.Sleep(20 * time.Millisecond)
	if got := a.snapshot(); len(got) != 0 {
		t.Errorf("idle scheduler fired attempts: %v", got)
	}
}

// Compile-time check: fakeRadio implements platform.RadioWatcher.
var _ platform.RadioWatcher = (*fakeRadio)(nil)
