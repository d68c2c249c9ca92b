// Package link owns the raw BLE link for the currently-targeted device.
//
// The Manager drives the connect, service discovery, and transfer-size
// negotiation sequence event-first: each platform callback advances the
// phase, each phase has an independent cancellable timeout, and every
// acquired native resource is released exactly once. Cleanup always runs
// disconnect before close; a half-open link is never silently abandoned.
//
// Event callbacks fire on platform or timer goroutines; callers that need
// serialization must post them onto their own execution context.
package link
