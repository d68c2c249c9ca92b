// Package platform defines the interfaces the connection orchestration
// subsystem consumes from the host BLE stack.
//
// The subsystem never talks to a radio directly. Everything it needs from
// the platform - the raw GATT link, the bonding flow, permission checks,
// radio state broadcasts, and the persisted device reference - is expressed
// as an interface here, implemented by a platform adapter (see the bluez
// subpackage) or by mocks in tests.
//
// All platform callbacks are asynchronous: an operation like Connect returns
// immediately and its outcome arrives later through the registered handler.
// Handlers may be invoked from arbitrary platform goroutines; consumers are
// responsible for serializing them.
package platform
