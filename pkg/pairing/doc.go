// Package pairing bridges "not bonded" to "bonded" before a link attempt
// proceeds.
//
// The Coordinator wraps the platform bonding flow with a timeout and a
// small callback surface: retry notifications while the platform retries
// internally, success once the bond exists, failure on error, timeout, or
// explicit cancellation. It owns the bonding session exclusively; at most
// one pairing flow is active at a time.
//
// Callbacks fire on platform or timer goroutines. Callers that need
// serialization (the connection state machine does) must post them onto
// their own execution context.
package pairing
