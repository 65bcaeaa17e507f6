package bluetooth

import (
	"slices"

	"github.com/go-ble/ble"
	"github.com/sirupsen/logrus"
	"github.com/srg/shadows/shadow"
)

// BluetoothDevice simulates a remote Bluetooth device handle.
//
// Every setter is an unconditional write: no validation, no transition
// checks on bond state. A device is not safe for concurrent use.
type BluetoothDevice struct {
	address  string
	registry *Registry

	name        *string
	alias       *string
	deviceType  DeviceType
	bondState   BondState
	createdBond bool
	removeBond  bool
	uuids       []ble.UUID

	fetchAttemptCount int
	fetchResult       bool

	pin                 []byte
	pairingConfirmation bool
	bluetoothClass      int
	batteryLevel        int
	metadata            map[int][]byte

	gattConnections []*BluetoothGatt
}

// NewBluetoothDevice creates a standalone device backed by its own registry.
// Use Registry.RemoteDevice when several devices share a test.
func NewBluetoothDevice(address string, logger *logrus.Logger) *BluetoothDevice {
	return NewRegistry(logger).RemoteDevice(address)
}

func newBluetoothDevice(address string, registry *Registry) *BluetoothDevice {
	return &BluetoothDevice{
		address:      address,
		registry:     registry,
		deviceType:   DeviceTypeUnknown,
		bondState:    BondNone,
		batteryLevel: BatteryLevelUnknown,
		metadata:     make(map[int][]byte),
	}
}

func (d *BluetoothDevice) log() *logrus.Entry {
	return d.registry.logger.WithField("address", d.address)
}

func (d *BluetoothDevice) Address() string {
	return d.address
}

// Registry returns the registry that owns this device.
func (d *BluetoothDevice) Registry() *Registry {
	return d.registry
}

func (d *BluetoothDevice) SetName(name string) {
	d.name = &name
}

// Name returns the configured name; ok is false until SetName is called.
func (d *BluetoothDevice) Name() (name string, ok bool) {
	if d.name == nil {
		return "", false
	}
	return *d.name, true
}

// SetAlias sets the user-visible alias. It always succeeds.
func (d *BluetoothDevice) SetAlias(alias string) bool {
	d.alias = &alias
	return true
}

// Alias returns the alias, falling back to the name when none was set.
func (d *BluetoothDevice) Alias() (string, bool) {
	if d.alias != nil {
		return *d.alias, true
	}
	return d.Name()
}

func (d *BluetoothDevice) SetType(t DeviceType) {
	d.deviceType = t
}

func (d *BluetoothDevice) Type() DeviceType {
	return d.deviceType
}

// SetUUIDs replaces the advertised service UUIDs. nil means absent.
func (d *BluetoothDevice) SetUUIDs(uuids []ble.UUID) {
	d.uuids = uuids
}

func (d *BluetoothDevice) UUIDs() []ble.UUID {
	return d.uuids
}

// SetBondState sets any bond state, including out-of-sequence values.
func (d *BluetoothDevice) SetBondState(state BondState) {
	d.log().WithFields(logrus.Fields{
		"from": d.bondState,
		"to":   state,
	}).Debug("Bond state set")
	d.bondState = state
}

func (d *BluetoothDevice) BondState() BondState {
	return d.bondState
}

// SetCreatedBond configures the result of CreateBond.
func (d *BluetoothDevice) SetCreatedBond(created bool) {
	d.createdBond = created
}

// CreateBond reports the configured result without changing bond state.
func (d *BluetoothDevice) CreateBond() bool {
	return d.createdBond
}

// SetRemoveBondResult configures the result of RemoveBond.
func (d *BluetoothDevice) SetRemoveBondResult(result bool) {
	d.removeBond = result
}

// RemoveBond reports the configured result; on success the bond state drops
// to BondNone.
func (d *BluetoothDevice) RemoveBond() bool {
	if d.removeBond {
		d.bondState = BondNone
	}
	return d.removeBond
}

// SetFetchUUIDsResult configures the result of FetchUUIDsWithSDP.
func (d *BluetoothDevice) SetFetchUUIDsResult(result bool) {
	d.fetchResult = result
}

// FetchUUIDsWithSDP counts the attempt and returns the configured result.
func (d *BluetoothDevice) FetchUUIDsWithSDP() bool {
	d.fetchAttemptCount++
	d.log().WithField("attempt", d.fetchAttemptCount).Debug("SDP fetch requested")
	return d.fetchResult
}

// FetchAttemptCount is the number of FetchUUIDsWithSDP calls so far.
func (d *BluetoothDevice) FetchAttemptCount() int {
	return d.fetchAttemptCount
}

// SetPin stores a copy of the pairing PIN. It always succeeds.
func (d *BluetoothDevice) SetPin(pin []byte) bool {
	d.pin = slices.Clone(pin)
	return true
}

func (d *BluetoothDevice) Pin() []byte {
	return slices.Clone(d.pin)
}

// SetPairingConfirmation stores the user's pairing decision. It always succeeds.
func (d *BluetoothDevice) SetPairingConfirmation(confirm bool) bool {
	d.pairingConfirmation = confirm
	return true
}

func (d *BluetoothDevice) PairingConfirmation() bool {
	return d.pairingConfirmation
}

func (d *BluetoothDevice) SetBluetoothClass(class int) {
	d.bluetoothClass = class
}

func (d *BluetoothDevice) BluetoothClass() int {
	return d.bluetoothClass
}

func (d *BluetoothDevice) SetBatteryLevel(level int) {
	d.batteryLevel = level
}

// BatteryLevel returns BatteryLevelUnknown until SetBatteryLevel is called.
func (d *BluetoothDevice) BatteryLevel() int {
	return d.batteryLevel
}

// SetMetadata stores a copy of value under key. It always succeeds.
func (d *BluetoothDevice) SetMetadata(key int, value []byte) bool {
	d.metadata[key] = slices.Clone(value)
	return true
}

func (d *BluetoothDevice) Metadata(key int) []byte {
	return slices.Clone(d.metadata[key])
}

// ConnectGatt opens a new simulated GATT connection bound to callback.
// Every call yields a new handle; connections are never deduplicated.
func (d *BluetoothDevice) ConnectGatt(callback GattCallback, opts ...ConnectOption) *BluetoothGatt {
	var o connectOptions
	for _, opt := range opts {
		opt(&o)
	}

	gatt := d.registry.registerGatt(d.address, callback, o)
	d.gattConnections = append(d.gattConnections, gatt)

	d.log().WithFields(logrus.Fields{
		"handle":      gatt.handle,
		"connections": len(d.gattConnections),
	}).Debug("GATT connection opened")
	return gatt
}

// GattConnections returns a copy of the opened connections in the order they
// were opened. The handles themselves are shared.
func (d *BluetoothDevice) GattConnections() []*BluetoothGatt {
	return slices.Clone(d.gattConnections)
}

// SimulateGattConnectionChange delivers (gatt, status, newState) to the
// callback of every connection, synchronously and in insertion order.
// A panicking callback stops delivery to the remaining connections.
func (d *BluetoothDevice) SimulateGattConnectionChange(status GattStatus, newState ConnectionState) {
	d.log().WithFields(logrus.Fields{
		"status":    status,
		"new_state": newState,
		"targets":   len(d.gattConnections),
	}).Debug("Broadcasting GATT connection state change")

	for _, gatt := range d.gattConnections {
		gatt.notify(status, newState)
	}
}

// AdapterService resolves the platform adapter service through the registry's
// provider. Any provider failure is reported as absent.
func (d *BluetoothDevice) AdapterService() (AdapterService, bool) {
	return shadow.TryLookup[AdapterService](d.registry.logger, "bluetooth_adapter_service", d.registry.serviceProvider())
}
