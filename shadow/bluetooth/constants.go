package bluetooth

import (
	"fmt"
	"strconv"
	"strings"
)

// BondState is the simulated pairing status of a remote device.
// Values match the platform's BOND_* codes.
type BondState int

const (
	BondNone    BondState = 10
	BondBonding BondState = 11
	BondBonded  BondState = 12
)

func (s BondState) String() string {
	switch s {
	case BondNone:
		return "none"
	case BondBonding:
		return "bonding"
	case BondBonded:
		return "bonded"
	default:
		return "bond_state(" + strconv.Itoa(int(s)) + ")"
	}
}

// ParseBondState converts "none", "bonding" or "bonded" (case-insensitive) or a
// raw integer code into a BondState. Raw codes are accepted without range checks.
func ParseBondState(s string) (BondState, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "none":
		return BondNone, nil
	case "bonding":
		return BondBonding, nil
	case "bonded":
		return BondBonded, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return BondState(n), nil
	}
	return BondNone, fmt.Errorf("unknown bond state %q", s)
}

// DeviceType is the simulated radio type of a remote device.
type DeviceType int

const (
	DeviceTypeUnknown DeviceType = 0
	DeviceTypeClassic DeviceType = 1
	DeviceTypeLE      DeviceType = 2
	DeviceTypeDual    DeviceType = 3
)

func (t DeviceType) String() string {
	switch t {
	case DeviceTypeUnknown:
		return "unknown"
	case DeviceTypeClassic:
		return "classic"
	case DeviceTypeLE:
		return "le"
	case DeviceTypeDual:
		return "dual"
	default:
		return "device_type(" + strconv.Itoa(int(t)) + ")"
	}
}

// ParseDeviceType converts "unknown", "classic", "le" or "dual" or a raw integer
// code into a DeviceType.
func ParseDeviceType(s string) (DeviceType, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "unknown":
		return DeviceTypeUnknown, nil
	case "classic":
		return DeviceTypeClassic, nil
	case "le":
		return DeviceTypeLE, nil
	case "dual":
		return DeviceTypeDual, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return DeviceType(n), nil
	}
	return DeviceTypeUnknown, fmt.Errorf("unknown device type %q", s)
}

// ConnectionState is a GATT profile connection state.
type ConnectionState int

const (
	StateDisconnected  ConnectionState = 0
	StateConnecting    ConnectionState = 1
	StateConnected     ConnectionState = 2
	StateDisconnecting ConnectionState = 3
)

func (s ConnectionState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateDisconnecting:
		return "disconnecting"
	default:
		return "connection_state(" + strconv.Itoa(int(s)) + ")"
	}
}

// GattStatus is the status code delivered with GATT callbacks.
type GattStatus int

const (
	GattSuccess GattStatus = 0
	GattFailure GattStatus = 257
)

// Transport selects the physical transport requested by ConnectGatt.
type Transport int

const (
	TransportAuto  Transport = 0
	TransportBREDR Transport = 1
	TransportLE    Transport = 2
)

func (t Transport) String() string {
	switch t {
	case TransportAuto:
		return "auto"
	case TransportBREDR:
		return "bredr"
	case TransportLE:
		return "le"
	default:
		return "transport(" + strconv.Itoa(int(t)) + ")"
	}
}

// BatteryLevelUnknown is reported until a test sets a battery level.
const BatteryLevelUnknown = -1

// PHY masks accepted by WithPhy.
const (
	PhyLE1MMask    = 1
	PhyLE2MMask    = 2
	PhyLECodedMask = 4
)
