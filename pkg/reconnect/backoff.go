package reconnect

import (
	"math/rand"
	"sync"
	"time"
)

// Backoff policy constants.
const (
	// TierOneDelay is the base delay for attempts 1-5.
	TierOneDelay = 10 * time.Second

	// TierTwoDelay is the base delay for attempts 6-10.
	TierTwoDelay = 30 * time.Second

	// TierThreeDelay is the starting delay for attempts 11 and up, which
	// doubles per attempt.
	TierThreeDelay = 60 * time.Second

	// MaxDelay caps every computed delay.
	MaxDelay = 300 * time.Second

	// MinDelay floors every computed delay.
	MinDelay = 1 * time.Second

	// JitterFactor is the maximum jitter as a fraction of base delay,
	// applied symmetrically.
	JitterFactor = 0.20

	// PowerSavePenalty is the extra delay fraction applied in low-power
	// mode once PowerSaveThreshold attempts have passed.
	PowerSavePenalty = 0.20

	// PowerSaveThreshold is the attempt count after which the low-power
	// penalty applies.
	PowerSaveThreshold = 5
)

// Policy holds the tier delays and jitter for a backoff calculator.
type Policy struct {
	TierOne   time.Duration
	TierTwo   time.Duration
	TierThree time.Duration
	Max       time.Duration
	Min       time.Duration
	Jitter    float64
}

// DefaultPolicy returns the shipped backoff policy.
func DefaultPolicy() Policy {
	return Policy{
		TierOne:   TierOneDelay,
		TierTwo:   TierTwoDelay,
		TierThree: TierThreeDelay,
		Max:       MaxDelay,
		Min:       MinDelay,
		Jitter:    JitterFactor,
	}
}

// baseDelay returns the un-jittered delay for a 1-based attempt number.
func (p Policy) baseDelay(attempt int) time.Duration {
	switch {
	case attempt <= 0:
		return p.Min
	case attempt <= 5:
		return p.TierOne
	case attempt <= 10:
		return p.TierTwo
	default:
		d := p.TierThree
		for i := 11; i < attempt; i++ {
			d *= 2
			if d >= p.Max {
				return p.Max
			}
		}
		if d > p.Max {
			d = p.Max
		}
		return d
	}
}

// BaseDelay returns the base (un-jittered) delay the default policy
// assigns to a 1-based attempt number.
func BaseDelay(attempt int) time.Duration {
	return DefaultPolicy().baseDelay(attempt)
}

// Backoff computes tiered reconnection delays with jitter and tracks the
// attempt counter.
type Backoff struct {
	mu sync.Mutex

	policy Policy

	// Attempt counter; counts attempts actually fired.
	attempts int

	// Random source for jitter
	rng *rand.Rand
}

// NewBackoff creates a backoff calculator with the default policy.
func NewBackoff() *Backoff {
	return NewBackoffWithPolicy(DefaultPolicy())
}

// NewBackoffWithPolicy creates a backoff calculator with a custom policy.
// Zero durations fall back to the defaults.
func NewBackoffWithPolicy(p Policy) *Backoff {
	def := DefaultPolicy()
	if p.TierOne <= 0 {
		p.TierOne = def.TierOne
	}
	if p.TierTwo <= 0 {
		p.TierTwo = def.TierTwo
	}
	if p.TierThree <= 0 {
		p.TierThree = def.TierThree
	}
	if p.Max <= 0 {
		p.Max = def.Max
	}
	if p.Min <= 0 {
		p.Min = def.Min
	}
	if p.Jitter < 0 {
		p.Jitter = 0
	}

	return &Backoff{
		policy: p,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// DelayFor returns the jittered, clamped delay for a 1-based attempt
// number. With powerSave set and attempt past the threshold, the delay is
// increased by the low-power penalty.
func (b *Backoff) DelayFor(attempt int, powerSave bool) time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()

	delay := float64(b.policy.baseDelay(attempt))

	// Symmetric jitter in [-jitter, +jitter].
	if b.policy.Jitter > 0 {
		delay += delay * b.policy.Jitter * (2*b.rng.Float64() - 1)
	}

	if powerSave && attempt > PowerSaveThreshold {
		delay *= 1 + PowerSavePenalty
	}

	d := time.Duration(delay)
	if d < b.policy.Min {
		d = b.policy.Min
	}
	if d > b.policy.Max {
		d = b.policy.Max
	}
	return d
}

// Advance increments the attempt counter and returns the new attempt
// number. Called when an attempt actually fires.
func (b *Backoff) Advance() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.attempts++
	return b.attempts
}

// Attempts returns the number of attempts fired since the last reset.
func (b *Backoff) Attempts() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.attempts
}

// Reset resets the attempt counter to zero.
// Call this after a successful connection.
func (b *Backoff) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.attempts = 0
}
