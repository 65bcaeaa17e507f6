package bluetooth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBondState(t *testing.T) {
	tests := []struct {
		input    string
		expected BondState
		wantErr  bool
	}{
		{input: "none", expected: BondNone},
		{input: "", expected: BondNone},
		{input: "Bonding", expected: BondBonding},
		{input: "BONDED", expected: BondBonded},
		{input: "12", expected: BondBonded},
		{input: "99", expected: BondState(99)},
		{input: " 12 ", expected: BondBonded},
		{input: " bonded ", expected: BondBonded},
		{input: "paired", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			state, err := ParseBondState(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, state)
		})
	}
}

func TestParseDeviceType(t *testing.T) {
	tests := []struct {
		input    string
		expected DeviceType
		wantErr  bool
	}{
		{input: "unknown", expected: DeviceTypeUnknown},
		{input: "classic", expected: DeviceTypeClassic},
		{input: "LE", expected: DeviceTypeLE},
		{input: "dual", expected: DeviceTypeDual},
		{input: "3", expected: DeviceTypeDual},
		{input: "\t2\n", expected: DeviceTypeLE},
		{input: "radio", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			deviceType, err := ParseDeviceType(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, deviceType)
		})
	}
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "bonded", BondBonded.String())
	assert.Equal(t, "bond_state(3)", BondState(3).String())
	assert.Equal(t, "dual", DeviceTypeDual.String())
	assert.Equal(t, "device_type(9)", DeviceType(9).String())
	assert.Equal(t, "disconnecting", StateDisconnecting.String())
	assert.Equal(t, "connection_state(8)", ConnectionState(8).String())
	assert.Equal(t, "bredr", TransportBREDR.String())
	assert.Equal(t, "transport(5)", Transport(5).String())
}
