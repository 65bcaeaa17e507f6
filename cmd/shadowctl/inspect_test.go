//go:build test

package main

import (
	"errors"
	"testing"

	"github.com/srg/shadows/internal/fixture"
	"github.com/srg/shadows/internal/testutils"
	"github.com/stretchr/testify/suite"
)

const inspectFixture = `
devices:
  - address: "aa:bb:cc:dd:ee:ff"
    name: "Heart Monitor"
    type: le
    bond_state: bonded
    uuids: ["12345678-1234-5678-1234-56789abcdef0"]
  - address: "11:22:33:44:55:66"
packages:
  - name: com.example.rotated
    signatures: ["01"]
    past_certificates: ["02"]
  - name: com.example.multi
    signatures: ["01", "03"]
`

// InspectTestSuite tests the inspect command
type InspectTestSuite struct {
	CommandTestSuite

	fixturePath string
}

func (s *InspectTestSuite) SetupTest() {
	s.CommandTestSuite.SetupTest()

	inspectJSON = false
	inspectLenient = false
	inspectDevice = ""
	inspectPackage = ""
	inspectNoColor = false
	s.Require().NoError(rootCmd.PersistentFlags().Set("log-level", ""))

	s.fixturePath = s.WriteFixture("scenario.yaml", inspectFixture)
}

func (s *InspectTestSuite) TestTextReport() {
	output, err := s.ExecuteCommand(rootCmd, "inspect", s.fixturePath, "--no-color")
	s.Require().NoError(err)

	testutils.NewTextAsserter(s.T()).Assert(output, `
Device 11:22:33:44:55:66
  Name:       <absent>
  Type:       unknown
  Bond state: none
  UUIDs:      <absent>
  GATT:       0 connection(s)
Device AA:BB:CC:DD:EE:FF
  Name:       Heart Monitor
  Type:       le
  Bond state: bonded
  UUIDs:      1
    - 1234567812345678123456789abcdef0
  GATT:       0 connection(s)
Package com.example.multi
  Signers:   2
    - 4bf5122f344554c53bde2ebb8cd2b7e3d1600ad631c385a5d7cce23c7785459a
    - 084fed08b978af4d7d196a7446a86b58009e636b611db16211b65a9aadff29c5
  Multiple signers:     yes
  Past certificates:    no
  History:   <absent>
Package com.example.rotated
  Signers:   1
    - 4bf5122f344554c53bde2ebb8cd2b7e3d1600ad631c385a5d7cce23c7785459a
  Multiple signers:     no
  Past certificates:    yes
  History:   1
    - dbc1b4c900ffe48d575b5da5c638040125f65db0fe3e24494b76ea986457d986
`)
}

func (s *InspectTestSuite) TestJSONReport() {
	output, err := s.ExecuteCommand(rootCmd, "inspect", s.fixturePath, "--json")
	s.Require().NoError(err)

	testutils.NewJSONAsserter(s.T()).Assert(output, `{
		"devices": [
			{"address": "11:22:33:44:55:66", "name": null, "uuids": null, "bond_state": "none"},
			{"address": "AA:BB:CC:DD:EE:FF", "name": "Heart Monitor", "type": "le", "bond_state": "bonded"}
		],
		"packages": [
			{"name": "com.example.multi", "has_multiple_signers": true, "certificate_history": null},
			{
				"name": "com.example.rotated",
				"has_multiple_signers": false,
				"has_past_signing_certificates": true,
				"certificate_history": ["dbc1b4c900ffe48d575b5da5c638040125f65db0fe3e24494b76ea986457d986"]
			}
		]
	}`)
}

func (s *InspectTestSuite) TestFilters() {
	s.Run("single device", func() {
		inspectPackage = ""
		output, err := s.ExecuteCommand(rootCmd, "inspect", s.fixturePath, "--json", "--device", "aa:bb:cc:dd:ee:ff")
		s.Require().NoError(err)
		testutils.NewJSONAsserter(s.T()).Assert(output, `{
			"devices": [{"address": "AA:BB:CC:DD:EE:FF"}],
			"packages": []
		}`)
	})

	s.Run("single package", func() {
		inspectDevice = ""
		output, err := s.ExecuteCommand(rootCmd, "inspect", s.fixturePath, "--json", "--package", "com.example.rotated")
		s.Require().NoError(err)
		testutils.NewJSONAsserter(s.T()).Assert(output, `{
			"devices": [],
			"packages": [{"name": "com.example.rotated"}]
		}`)
	})

	s.Run("unknown device", func() {
		inspectPackage = ""
		_, err := s.ExecuteCommand(rootCmd, "inspect", s.fixturePath, "--device", "00:00:00:00:00:00")
		s.ErrorIs(err, ErrUnknownDevice)
	})

	s.Run("unknown package", func() {
		inspectDevice = ""
		_, err := s.ExecuteCommand(rootCmd, "inspect", s.fixturePath, "--package", "com.example.missing")
		s.ErrorIs(err, ErrUnknownPackage)
	})
}

func (s *InspectTestSuite) TestFixtureErrors() {
	s.Run("strict mode rejects unknown keys", func() {
		path := s.WriteFixture("strict.yaml", "devices:\n  - address: AA\n    colour: red\n")
		_, err := s.ExecuteCommand(rootCmd, "inspect", path)
		s.ErrorIs(err, fixture.ErrInvalidFixture)
	})

	s.Run("lenient mode accepts unknown keys", func() {
		path := s.WriteFixture("lenient.yaml", "devices:\n  - address: AA\n    colour: red\n")
		_, err := s.ExecuteCommand(rootCmd, "inspect", path, "--lenient")
		s.NoError(err)
		inspectLenient = false
	})

	s.Run("parse errors are reported by field", func() {
		path := s.WriteFixture("bad.yaml", "packages:\n  - name: p\n    signatures: [\"zz\"]\n")
		_, err := s.ExecuteCommand(rootCmd, "inspect", path)
		s.Require().Error(err)

		var perr *fixture.ParseError
		s.True(errors.As(err, &perr))
		s.Equal(`fixture field signatures[0] has invalid value "zz"`, FormatUserError(err))
	})

	s.Run("invalid log level", func() {
		_, err := s.ExecuteCommand(rootCmd, "inspect", s.fixturePath, "--log-level", "loud")
		s.Error(err)
	})
}

func (s *InspectTestSuite) TestLogging() {
	s.Run("silent without log level", func() {
		output, err := s.ExecuteCommand(rootCmd, "inspect", s.fixturePath, "--json")
		s.Require().NoError(err)
		s.NotContains(output, "Fixture applied")
	})

	s.Run("log level enables logging", func() {
		output, err := s.ExecuteCommand(rootCmd, "inspect", s.fixturePath, "--json", "--log-level", "info")
		s.Require().NoError(err)
		s.Contains(output, "Fixture applied")
		s.Require().NoError(rootCmd.PersistentFlags().Set("log-level", ""))
	})
}

func TestInspectTestSuite(t *testing.T) {
	suite.Run(t, new(InspectTestSuite))
}

func TestFormatVersion(t *testing.T) {
	if got := formatVersion("1.2.3"); got != "v1.2.3" {
		t.Errorf("formatVersion(1.2.3) = %q", got)
	}
	if got := formatVersion("dev"); got != "dev" {
		t.Errorf("formatVersion(dev) = %q", got)
	}
}
