package reconnect

import (
	"errors"
	"sync"
	"time"

	"github.com/blelink-protocol/blelink-go/pkg/log"
	"github.com/blelink-protocol/blelink-go/pkg/platform"
)

// Scheduler errors.
var (
	ErrAlreadyRunning = errors.New("reconnection already running")
)

// AttemptFunc is invoked when a reconnection attempt is due. attempt is
// 1-based. It fires on a timer or radio-broadcast goroutine; the caller
// reports the outcome via NoteSuccess or NoteFailure.
type AttemptFunc func(attempt int)

// Scheduler executes the retry cadence after an unexpected drop, without
// caller intervention, until success or explicit cancellation.
type Scheduler struct {
	mu sync.Mutex

	backoff   *Backoff
	radio     platform.RadioWatcher
	logger    log.Logger
	attemptFn AttemptFunc

	// Active run; deviceID is empty when idle.
	deviceID string

	// pendingAttempt is the attempt number scheduled or gated next.
	pendingAttempt int

	// waitingRadio marks a pending attempt gated on the radio coming back.
	waitingRadio bool

	timer      *time.Timer
	generation uint64

	unsubscribe func()
}

// NewScheduler creates a reconnection scheduler with the default backoff
// policy. The attempt function is called for each due attempt; logger may
// be nil.
func NewScheduler(radio platform.RadioWatcher, attemptFn AttemptFunc, logger log.Logger) *Scheduler {
	return NewSchedulerWithBackoff(radio, attemptFn, logger, NewBackoff())
}

// NewSchedulerWithBackoff creates a scheduler with a custom backoff
// calculator.
func NewSchedulerWithBackoff(radio platform.RadioWatcher, attemptFn AttemptFunc, logger log.Logger, backoff *Backoff) *Scheduler {
	s := &Scheduler{
		backoff:   backoff,
		radio:     radio,
		logger:    log.OrNoop(logger),
		attemptFn: attemptFn,
	}
	s.unsubscribe = radio.SubscribeRadio(s.radioChanged)
	return s
}

// Backoff exposes the scheduler's backoff calculator.
func (s *Scheduler) Backoff() *Backoff {
	return s.backoff
}

// Start begins scheduling reconnection attempts for the device.
// The first attempt is scheduled with the tier-one delay.
func (s *Scheduler) Start(deviceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.deviceID != "" {
		return ErrAlreadyRunning
	}
	s.deviceID = deviceID
	s.scheduleNextLocked()
	return nil
}

// NoteSuccess records a successful connection: the attempt counter resets
// and scheduling stops.
func (s *Scheduler) NoteSuccess() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
	s.backoff.Reset()
}

// NoteFailure records a failed attempt and schedules the next one.
// No-op unless the scheduler is running.
func (s *Scheduler) NoteFailure() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deviceID == "" {
		return
	}
	s.scheduleNextLocked()
}

// Stop cancels any pending attempt and resets the attempt counter to
// zero. Idempotent.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
	s.backoff.Reset()
}

// Close stops the scheduler and unsubscribes from radio broadcasts.
func (s *Scheduler) Close() {
	s.Stop()
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}

// Running reports whether the scheduler is actively retrying.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deviceID != ""
}

// Attempts returns the number of attempts fired since the last success or
// Stop.
func (s *Scheduler) Attempts() int {
	return s.backoff.Attempts()
}

// stopLocked cancels the pending timer and clears the run. Caller holds
// s.mu.
func (s *Scheduler) stopLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.deviceID = ""
	s.pendingAttempt = 0
	s.waitingRadio = false
	s.generation++
}

// scheduleNextLocked computes the next attempt's delay and arms its timer,
// or gates it on the radio when disabled. Caller holds s.mu.
func (s *Scheduler) scheduleNextLocked() {
	next := s.backoff.Attempts() + 1
	s.pendingAttempt = next

	if !s.radio.RadioEnabled() {
		// Preserve the counter; the attempt fires when the radio is back.
		s.waitingRadio = true
		return
	}

	delay := s.backoff.DelayFor(next, s.radio.PowerSaveActive())
	s.logger.Log(log.NewReconnectEvent("", s.deviceID, next, delay, false))

	gen := s.generation
	s.timer = time.AfterFunc(delay, func() { s.fire(gen, false) })
}

// fire runs a due attempt. A stale timer (stopped or superseded run) is a
// no-op.
func (s *Scheduler) fire(gen uint64, immediate bool) {
	s.mu.Lock()
	if s.deviceID == "" || gen != s.generation {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	s.waitingRadio = false
	attempt := s.backoff.Advance()
	deviceID := s.deviceID
	s.mu.Unlock()

	if immediate {
		s.logger.Log(log.NewReconnectEvent("", deviceID, attempt, 0, true))
	}
	s.attemptFn(attempt)
}

// radioChanged handles radio enabled/disabled broadcasts.
func (s *Scheduler) radioChanged(enabled bool) {
	s.mu.Lock()
	if s.deviceID == "" {
		s.mu.Unlock()
		return
	}

	if !enabled {
		// Park the pending attempt, preserving the counter.
		if s.timer != nil {
			s.timer.Stop()
			s.timer = nil
		}
		s.generation++
		s.waitingRadio = true
		s.mu.Unlock()
		return
	}

	if !s.waitingRadio {
		s.mu.Unlock()
		return
	}
	// Radio is back: fire the parked attempt immediately to minimize
	// reconnection latency.
	gen := s.generation
	s.mu.Unlock()
	s.fire(gen, true)
}
