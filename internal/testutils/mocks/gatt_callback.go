package mocks

import (
	"github.com/srg/shadows/shadow/bluetooth"
	"github.com/stretchr/testify/mock"
)

// MockGattCallback is a testify mock of bluetooth.GattCallback
type MockGattCallback struct {
	mock.Mock
}

// NewMockGattCallback creates a mock bound to t that asserts its expectations on cleanup.
func NewMockGattCallback(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockGattCallback {
	m := &MockGattCallback{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockGattCallback) OnConnectionStateChange(gatt *bluetooth.BluetoothGatt, status bluetooth.GattStatus, newState bluetooth.ConnectionState) {
	m.Called(gatt, status, newState)
}

// MockAdapterService is a testify mock of bluetooth.AdapterService
type MockAdapterService struct {
	mock.Mock
}

func (m *MockAdapterService) ServiceName() string {
	args := m.Called()
	return args.String(0)
}
