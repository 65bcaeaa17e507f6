package report_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/fatih/color"
	"github.com/go-ble/ble"
	"github.com/srg/shadows/internal/report"
	"github.com/srg/shadows/shadow/bluetooth"
	"github.com/srg/shadows/shadow/signing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeviceReport(t *testing.T) {
	t.Run("defaults keep absent values null", func(t *testing.T) {
		dev := bluetooth.NewBluetoothDevice("aa:bb:cc:dd:ee:ff", nil)

		r := report.NewDeviceReport(dev)
		assert.Equal(t, "AA:BB:CC:DD:EE:FF", r.Address)
		assert.Nil(t, r.Name)
		assert.Nil(t, r.UUIDs)
		assert.Equal(t, "unknown", r.Type)
		assert.Equal(t, "none", r.BondState)
		assert.Equal(t, bluetooth.BatteryLevelUnknown, r.BatteryLevel)
		assert.NotNil(t, r.GattConnections)
		assert.Empty(t, r.GattConnections)
	})

	t.Run("empty UUID list is present", func(t *testing.T) {
		dev := bluetooth.NewBluetoothDevice("aa:bb:cc:dd:ee:ff", nil)
		dev.SetUUIDs([]ble.UUID{})

		r := report.NewDeviceReport(dev)
		assert.NotNil(t, r.UUIDs)
		assert.Empty(t, r.UUIDs)
	})

	t.Run("connections and fetch attempts", func(t *testing.T) {
		dev := bluetooth.NewBluetoothDevice("aa:bb:cc:dd:ee:ff", nil)
		dev.SetName("Watch")
		dev.FetchUUIDsWithSDP()
		dev.FetchUUIDsWithSDP()
		gatt := dev.ConnectGatt(nil, bluetooth.WithAutoConnect(true), bluetooth.WithTransport(bluetooth.TransportLE))
		dev.SimulateGattConnectionChange(bluetooth.GattSuccess, bluetooth.StateConnected)

		r := report.NewDeviceReport(dev)
		require.NotNil(t, r.Name)
		assert.Equal(t, "Watch", *r.Name)
		assert.Equal(t, 2, r.FetchAttemptCount)
		require.Len(t, r.GattConnections, 1)
		assert.Equal(t, report.GattReport{
			Handle:      gatt.Handle().String(),
			State:       bluetooth.StateConnected.String(),
			AutoConnect: true,
			Transport:   bluetooth.TransportLE.String(),
		}, r.GattConnections[0])
	})
}

func TestNewPackageReport(t *testing.T) {
	one := signing.MustParseSignature("01")
	two := signing.MustParseSignature("02")

	t.Run("absent signatures", func(t *testing.T) {
		r := report.NewPackageReport("p", signing.NewSigningInfo(nil, nil))
		assert.Nil(t, r.Signers)
		assert.Nil(t, r.CertificateHistory)
		assert.False(t, r.HasMultipleSigners)
		assert.False(t, r.HasPastSigningCertificates)
	})

	t.Run("rotated package reports past certificates", func(t *testing.T) {
		r := report.NewPackageReport("p", signing.NewSigningInfo([]signing.Signature{one}, []signing.Signature{two}))
		assert.Equal(t, []string{one.Digest()}, r.Signers)
		assert.Equal(t, []string{two.Digest()}, r.CertificateHistory)
		assert.True(t, r.HasPastSigningCertificates)
	})
}

func TestNew_OrdersPackages(t *testing.T) {
	packages := map[string]*signing.SigningInfo{
		"com.b": signing.NewSigningInfo(nil, nil),
		"com.a": signing.NewSigningInfo(nil, nil),
		"com.c": signing.NewSigningInfo(nil, nil),
	}

	r := report.New(nil, packages)
	require.Len(t, r.Packages, 3)
	assert.Equal(t, "com.a", r.Packages[0].Name)
	assert.Equal(t, "com.b", r.Packages[1].Name)
	assert.Equal(t, "com.c", r.Packages[2].Name)
	assert.NotNil(t, r.Devices)
}

func TestWriteJSON(t *testing.T) {
	dev := bluetooth.NewBluetoothDevice("aa:bb:cc:dd:ee:ff", nil)
	r := report.New([]*bluetooth.BluetoothDevice{dev}, nil)

	var buf bytes.Buffer
	require.NoError(t, r.WriteJSON(&buf))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	devices := decoded["devices"].([]interface{})
	require.Len(t, devices, 1)
	first := devices[0].(map[string]interface{})
	assert.Nil(t, first["name"])
	assert.Nil(t, first["uuids"])
	assert.Equal(t, []interface{}{}, decoded["packages"])
}

func TestWriteText(t *testing.T) {
	previous := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = previous }()

	dev := bluetooth.NewBluetoothDevice("aa:bb:cc:dd:ee:ff", nil)
	dev.SetUUIDs([]ble.UUID{})
	packages := map[string]*signing.SigningInfo{
		"com.example": signing.NewSigningInfo(nil, []signing.Signature{}),
	}

	var buf bytes.Buffer
	require.NoError(t, report.New([]*bluetooth.BluetoothDevice{dev}, packages).WriteText(&buf))

	assert.Equal(t, `Device AA:BB:CC:DD:EE:FF
  Name:       <absent>
  Type:       unknown
  Bond state: none
  UUIDs:      0
  GATT:       0 connection(s)
Package com.example
  Signers:   <absent>
  Multiple signers:     no
  Past certificates:    no
  History:   <absent>
`, buf.String())
}
