// Package persistence stores the last-known device reference as JSON.
//
// The connection state machine saves the reference on every successful
// connect and clears it on manual disconnect, so the application can offer
// reconnect-on-start without owning any storage logic itself.
package persistence
