// Package reconnect computes and executes the retry cadence after an
// unexpected link drop.
//
// This package handles:
//   - Tiered backoff for reconnection attempts
//   - Jitter to prevent thundering herd
//   - Low-power-mode delay adjustment
//   - Radio-state gating of scheduled attempts
//
// # Backoff Policy
//
// Attempt numbers are 1-based; the counter resets to zero on success:
//
//  1. Attempts 1-5: base delay 10 seconds
//  2. Attempts 6-10: base delay 30 seconds
//  3. Attempts 11+: 60 seconds doubling per attempt, capped at 5 minutes
//
// # Jitter
//
// To prevent synchronized retry storms across many devices:
//
//	actual_delay = base_delay ± random(0, base_delay * 0.20)
//
// When the platform reports a low-power state and more than 5 attempts have
// been made, the delay is increased by a further 20% to favor battery life.
// The final delay is always clamped to [1s, 5m].
//
// # Radio Gating
//
// While the radio is disabled no attempts run; the attempt counter is
// preserved so backoff continues where it left off. When the radio comes
// back, the pending attempt fires immediately, bypassing its wait.
package reconnect
