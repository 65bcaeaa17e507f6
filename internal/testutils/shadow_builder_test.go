package testutils

import (
	"testing"

	"github.com/srg/shadows/internal/fixture"
	"github.com/srg/shadows/shadow/bluetooth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeviceBuilder_Build(t *testing.T) {
	registry := bluetooth.NewRegistry(nil)

	dev := NewDeviceBuilder("aa:bb:cc:dd:ee:ff").
		WithName("Thermometer").
		WithType(bluetooth.DeviceTypeDual).
		WithBondState(bluetooth.BondBonding).
		WithCreatedBond(true).
		WithUUIDs("1809").
		WithFetchResult(true).
		Build(registry)

	same, ok := registry.Lookup("AA:BB:CC:DD:EE:FF")
	require.True(t, ok)
	assert.Same(t, dev, same)

	name, ok := dev.Name()
	assert.True(t, ok)
	assert.Equal(t, "Thermometer", name)
	assert.Equal(t, bluetooth.DeviceTypeDual, dev.Type())
	assert.Equal(t, bluetooth.BondBonding, dev.BondState())
	assert.True(t, dev.CreateBond())
	assert.True(t, dev.FetchUUIDsWithSDP())
	require.Len(t, dev.UUIDs(), 1)
	assert.Equal(t, "1809", dev.UUIDs()[0].String())
}

func TestDeviceBuilder_FromJSON(t *testing.T) {
	registry := bluetooth.NewRegistry(nil)

	dev := NewDeviceBuilder("ignored").FromJSON(`{
		"address": "%s",
		"name": "Scale",
		"bond_state": "bonded",
		"uuids": []
	}`, "01:02:03:04:05:06").Build(registry)

	assert.Equal(t, "01:02:03:04:05:06", dev.Address())
	assert.Equal(t, bluetooth.BondBonded, dev.BondState())
	assert.Equal(t, bluetooth.DeviceTypeUnknown, dev.Type())
	assert.NotNil(t, dev.UUIDs())
	assert.Empty(t, dev.UUIDs())
}

func TestDeviceBuilder_PanicsOnInvalidSpec(t *testing.T) {
	assert.Panics(t, func() {
		NewDeviceBuilder("aa").FromJSON(`{not json`)
	})
	assert.Panics(t, func() {
		NewDeviceBuilder("aa").WithUUIDs("not-a-uuid").Build(bluetooth.NewRegistry(nil))
	})
}

func TestSigningInfoBuilder(t *testing.T) {
	t.Run("nothing configured is absent", func(t *testing.T) {
		info := NewSigningInfoBuilder().Build()
		assert.Nil(t, info.APKContentsSigners())
		assert.False(t, info.HasPastSigningCertificates())
	})

	t.Run("empty calls make lists present", func(t *testing.T) {
		info := NewSigningInfoBuilder().WithSignatures().WithPastCertificates().Build()
		assert.NotNil(t, info.APKContentsSigners())
		assert.True(t, info.HasPastSigningCertificates())
	})

	t.Run("invalid hex panics", func(t *testing.T) {
		assert.Panics(t, func() {
			NewSigningInfoBuilder().WithSignatures("xyz").Build()
		})
	})
}

func TestLoadFixture(t *testing.T) {
	data, err := LoadFixture("internal/fixture/testdata/scenario.yaml")
	require.NoError(t, err)

	f, err := fixture.Parse([]byte(data), true)
	require.NoError(t, err)
	assert.Len(t, f.Devices, 2)
	assert.Len(t, f.Packages, 3)

	_, err = LoadFixture("internal/fixture/testdata/missing.yaml")
	assert.Error(t, err)
}
