//go:build test

package main

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/srg/shadows/internal/testutils"
)

// CommandTestSuite extends ShadowSuite with command testing utilities.
type CommandTestSuite struct {
	testutils.ShadowSuite

	originalNoColor bool
}

func (s *CommandTestSuite) SetupSuite() {
	s.ShadowSuite.SetupSuite()
	s.originalNoColor = color.NoColor
	color.NoColor = true
}

func (s *CommandTestSuite) TearDownSuite() {
	color.NoColor = s.originalNoColor
}

// WriteFixture writes content into a temp file and returns its path.
func (s *CommandTestSuite) WriteFixture(name, content string) string {
	path := filepath.Join(s.T().TempDir(), name)
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o600), "fixture write MUST succeed")
	return path
}

// ExecuteCommand runs a cobra command with args, returns output and error.
func (s *CommandTestSuite) ExecuteCommand(cmd *cobra.Command, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}
