// Package shadow holds the pieces shared by the simulated OS records in its
// subpackages.
//
// The records themselves live in:
//   - shadow/bluetooth: a remote Bluetooth device, its bond state and GATT connections
//   - shadow/signing: APK signing metadata and certificate rotation history
//
// Records are in-memory and test-controllable. Every operation on them is
// total: configuration writers never validate, and queries never fail.
package shadow
