// Package fixture loads YAML or JSON scenario files describing simulated
// Bluetooth devices and package signing records, and applies them to fresh
// shadow objects.
package fixture

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/go-ble/ble"
	"github.com/mcuadros/go-defaults"
	"github.com/srg/shadows/shadow/bluetooth"
	"github.com/srg/shadows/shadow/signing"
	"gopkg.in/yaml.v3"
)

// ErrInvalidFixture reports a structurally invalid scenario file.
var ErrInvalidFixture = errors.New("invalid fixture")

// ParseError reports a field value that could not be converted.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Fixture is a whole scenario file.
type Fixture struct {
	Devices  []Device  `yaml:"devices" json:"devices"`
	Packages []Package `yaml:"packages" json:"packages"`
}

// Device describes one simulated remote device. Enumerations accept their
// names or raw integer codes.
type Device struct {
	Address        string   `yaml:"address" json:"address"`
	Name           *string  `yaml:"name,omitempty" json:"name,omitempty"`
	Alias          *string  `yaml:"alias,omitempty" json:"alias,omitempty"`
	Type           string   `yaml:"type" json:"type" default:"unknown"`
	BondState      string   `yaml:"bond_state" json:"bond_state" default:"none"`
	CreatedBond    bool     `yaml:"created_bond" json:"created_bond"`
	RemoveBond     bool     `yaml:"remove_bond" json:"remove_bond"`
	UUIDs          []string `yaml:"uuids" json:"uuids"`
	FetchResult    bool     `yaml:"fetch_result" json:"fetch_result"`
	BluetoothClass int      `yaml:"bluetooth_class" json:"bluetooth_class"`
	BatteryLevel   *int     `yaml:"battery_level,omitempty" json:"battery_level,omitempty"`
	Pin            string   `yaml:"pin,omitempty" json:"pin,omitempty"`
}

// Package describes the signing record of one package. Certificates are hex
// encoded. A missing list stays absent; an empty list is present.
type Package struct {
	Name             string   `yaml:"name" json:"name"`
	Signatures       []string `yaml:"signatures" json:"signatures"`
	PastCertificates []string `yaml:"past_certificates" json:"past_certificates"`
}

// Load reads and parses a scenario file.
func Load(path string, strict bool) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture %s: %w", path, err)
	}
	f, err := Parse(data, strict)
	if err != nil {
		return nil, fmt.Errorf("fixture %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a scenario document. In strict mode unknown keys are rejected.
// An empty document is an empty fixture.
func Parse(data []byte, strict bool) (*Fixture, error) {
	f := &Fixture{}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(strict)
	if err := dec.Decode(f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFixture, err)
	}

	for i := range f.Devices {
		defaults.SetDefaults(&f.Devices[i])
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Validate checks required keys and uniqueness.
func (f *Fixture) Validate() error {
	addresses := make(map[string]struct{}, len(f.Devices))
	for i, d := range f.Devices {
		if d.Address == "" {
			return fmt.Errorf("%w: device at index %d has no address", ErrInvalidFixture, i)
		}
		addr := bluetooth.NormalizeAddress(d.Address)
		if _, dup := addresses[addr]; dup {
			return fmt.Errorf("%w: duplicate device address %s", ErrInvalidFixture, addr)
		}
		addresses[addr] = struct{}{}
	}

	names := make(map[string]struct{}, len(f.Packages))
	for i, p := range f.Packages {
		if p.Name == "" {
			return fmt.Errorf("%w: package at index %d has no name", ErrInvalidFixture, i)
		}
		if _, dup := names[p.Name]; dup {
			return fmt.Errorf("%w: duplicate package %s", ErrInvalidFixture, p.Name)
		}
		names[p.Name] = struct{}{}
	}
	return nil
}

// Apply creates every device in registry and builds a signing record per
// package, keyed by package name.
func (f *Fixture) Apply(registry *bluetooth.Registry) (map[string]*signing.SigningInfo, error) {
	for _, d := range f.Devices {
		if _, err := d.Build(registry); err != nil {
			return nil, err
		}
	}

	packages := make(map[string]*signing.SigningInfo, len(f.Packages))
	for _, p := range f.Packages {
		info, err := p.SigningInfo()
		if err != nil {
			return nil, fmt.Errorf("package %s: %w", p.Name, err)
		}
		packages[p.Name] = info
	}
	return packages, nil
}

// Build creates (or reuses) the device in registry and configures it.
func (d Device) Build(registry *bluetooth.Registry) (*bluetooth.BluetoothDevice, error) {
	deviceType, err := bluetooth.ParseDeviceType(d.Type)
	if err != nil {
		return nil, &ParseError{Field: "type", Value: d.Type, Err: err}
	}
	bondState, err := bluetooth.ParseBondState(d.BondState)
	if err != nil {
		return nil, &ParseError{Field: "bond_state", Value: d.BondState, Err: err}
	}
	uuids, err := ParseUUIDs(d.UUIDs)
	if err != nil {
		return nil, err
	}

	dev := registry.RemoteDevice(d.Address)
	if d.Name != nil {
		dev.SetName(*d.Name)
	}
	if d.Alias != nil {
		dev.SetAlias(*d.Alias)
	}
	dev.SetType(deviceType)
	dev.SetBondState(bondState)
	dev.SetCreatedBond(d.CreatedBond)
	dev.SetRemoveBondResult(d.RemoveBond)
	dev.SetUUIDs(uuids)
	dev.SetFetchUUIDsResult(d.FetchResult)
	dev.SetBluetoothClass(d.BluetoothClass)
	if d.BatteryLevel != nil {
		dev.SetBatteryLevel(*d.BatteryLevel)
	}
	if d.Pin != "" {
		dev.SetPin([]byte(d.Pin))
	}
	return dev, nil
}

// ParseUUIDs converts 16, 32 or 128-bit UUID strings. nil stays nil.
func ParseUUIDs(values []string) ([]ble.UUID, error) {
	if values == nil {
		return nil, nil
	}
	uuids := make([]ble.UUID, 0, len(values))
	for i, v := range values {
		u, err := ble.Parse(v)
		if err != nil {
			return nil, &ParseError{Field: "uuids[" + strconv.Itoa(i) + "]", Value: v, Err: err}
		}
		uuids = append(uuids, u)
	}
	return uuids, nil
}

// SigningInfo builds the signing record, preserving absent lists.
func (p Package) SigningInfo() (*signing.SigningInfo, error) {
	signatures, err := parseSignatures("signatures", p.Signatures)
	if err != nil {
		return nil, err
	}
	past, err := parseSignatures("past_certificates", p.PastCertificates)
	if err != nil {
		return nil, err
	}
	return signing.NewSigningInfo(signatures, past), nil
}

func parseSignatures(field string, values []string) ([]signing.Signature, error) {
	if values == nil {
		return nil, nil
	}
	sigs := make([]signing.Signature, 0, len(values))
	for i, v := range values {
		sig, err := signing.ParseSignature(v)
		if err != nil {
			return nil, &ParseError{Field: field + "[" + strconv.Itoa(i) + "]", Value: v, Err: err}
		}
		sigs = append(sigs, sig)
	}
	return sigs, nil
}
