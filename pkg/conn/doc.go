// Package conn implements the top-level connection state machine for a
// single BLE peripheral.
//
// The Machine is the single authority for connection state. It validates
// every transition against a static adjacency table, fans transitions out
// to registered observers, and composes the pairing coordinator, the link
// manager, and the reconnection scheduler into the public connect and
// disconnect operations.
//
// All state mutations run on one internal run loop goroutine. Platform
// callbacks, timer expirations, and public API calls are posted onto that
// loop as events, so no two transitions are ever evaluated concurrently
// and observer notifications for one transition always complete before
// the next transition is considered.
package conn
