package testutils

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/srg/shadows/internal/fixture"
	"github.com/srg/shadows/shadow/bluetooth"
	"github.com/srg/shadows/shadow/signing"
)

// DeviceBuilder builds a configured BluetoothDevice for tests
type DeviceBuilder struct {
	spec fixture.Device
}

// NewDeviceBuilder creates a builder for the device at address
func NewDeviceBuilder(address string) *DeviceBuilder {
	return &DeviceBuilder{
		spec: fixture.Device{
			Address:   address,
			Type:      "unknown",
			BondState: "none",
		},
	}
}

func (b *DeviceBuilder) WithName(name string) *DeviceBuilder {
	b.spec.Name = &name
	return b
}

func (b *DeviceBuilder) WithType(t bluetooth.DeviceType) *DeviceBuilder {
	b.spec.Type = strconv.Itoa(int(t))
	return b
}

func (b *DeviceBuilder) WithBondState(state bluetooth.BondState) *DeviceBuilder {
	b.spec.BondState = strconv.Itoa(int(state))
	return b
}

func (b *DeviceBuilder) WithCreatedBond(created bool) *DeviceBuilder {
	b.spec.CreatedBond = created
	return b
}

func (b *DeviceBuilder) WithUUIDs(uuids ...string) *DeviceBuilder {
	b.spec.UUIDs = append([]string{}, uuids...)
	return b
}

func (b *DeviceBuilder) WithFetchResult(result bool) *DeviceBuilder {
	b.spec.FetchResult = result
	return b
}

// FromJSON replaces the device spec with a JSON document (fixture device format)
func (b *DeviceBuilder) FromJSON(jsonStrFmt string, args ...interface{}) *DeviceBuilder {
	jsonStr := fmt.Sprintf(jsonStrFmt, args...)

	spec := fixture.Device{Type: "unknown", BondState: "none"}
	if err := json.Unmarshal([]byte(jsonStr), &spec); err != nil {
		panic(fmt.Sprintf("DeviceBuilder.FromJSON: failed to unmarshal: %v", err))
	}
	b.spec = spec
	return b
}

// Build creates the device in registry. Invalid specs panic, which is fine for tests.
func (b *DeviceBuilder) Build(registry *bluetooth.Registry) *bluetooth.BluetoothDevice {
	dev, err := b.spec.Build(registry)
	if err != nil {
		panic(fmt.Sprintf("DeviceBuilder.Build: %v", err))
	}
	return dev
}

// SigningInfoBuilder builds a SigningInfo from hex encoded certificates
type SigningInfoBuilder struct {
	spec fixture.Package
}

func NewSigningInfoBuilder() *SigningInfoBuilder {
	return &SigningInfoBuilder{}
}

// WithSignatures makes signatures present, even when called with no arguments
func (b *SigningInfoBuilder) WithSignatures(hexCerts ...string) *SigningInfoBuilder {
	b.spec.Signatures = append([]string{}, hexCerts...)
	return b
}

// WithPastCertificates makes past certificates present, even when called with no arguments
func (b *SigningInfoBuilder) WithPastCertificates(hexCerts ...string) *SigningInfoBuilder {
	b.spec.PastCertificates = append([]string{}, hexCerts...)
	return b
}

func (b *SigningInfoBuilder) Build() *signing.SigningInfo {
	info, err := b.spec.SigningInfo()
	if err != nil {
		panic(fmt.Sprintf("SigningInfoBuilder.Build: %v", err))
	}
	return info
}
