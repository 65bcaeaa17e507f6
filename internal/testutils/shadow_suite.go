//go:build test

package testutils

import (
	"github.com/sirupsen/logrus"
	"github.com/srg/shadows/internal/testutils/mocks"
	"github.com/srg/shadows/shadow/bluetooth"
	"github.com/stretchr/testify/suite"
)

// ShadowSuite is a reusable testify suite owning a fresh Registry per test.
//
// Usage:
//
//	type DeviceSuite struct {
//	    testutils.ShadowSuite
//	}
//
//	func (s *DeviceSuite) TestBond() {
//	    dev := s.WithDevice("AA:BB:CC:DD:EE:FF").WithCreatedBond(true).Build(s.Registry)
//	    s.True(dev.CreateBond())
//	}
type ShadowSuite struct {
	suite.Suite

	Helper *TestHelper
	Logger *logrus.Logger

	// Registry is recreated before each test
	Registry *bluetooth.Registry
}

// SetupSuite initializes the helper and logger once per suite.
func (s *ShadowSuite) SetupSuite() {
	s.Helper = NewTestHelper(s.T())
	s.Logger = s.Helper.Logger
	s.Logger.Debug("Suite setup completed")
}

// SetupTest gives every test an empty registry.
func (s *ShadowSuite) SetupTest() {
	s.Registry = bluetooth.NewRegistry(s.Logger)
}

func (s *ShadowSuite) TearDownTest() {
	s.Registry = nil
}

// WithDevice starts a device builder for address.
func (s *ShadowSuite) WithDevice(address string) *DeviceBuilder {
	return NewDeviceBuilder(address)
}

// NewMockCallback returns a GATT callback mock whose expectations are
// asserted when the current test ends.
func (s *ShadowSuite) NewMockCallback() *mocks.MockGattCallback {
	return mocks.NewMockGattCallback(s.T())
}
