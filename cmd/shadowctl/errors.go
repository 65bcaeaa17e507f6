package main

import (
	"errors"

	"github.com/srg/shadows/internal/fixture"
)

// Command-level errors
var (
	// ErrUnknownDevice indicates --device named an address absent from the fixture.
	ErrUnknownDevice = errors.New("unknown device")

	// ErrUnknownPackage indicates --package named a package absent from the fixture.
	ErrUnknownPackage = errors.New("unknown package")
)

// FormatUserError turns fixture parse errors into a one-line message
func FormatUserError(err error) string {
	var perr *fixture.ParseError
	if errors.As(err, &perr) {
		return "fixture field " + perr.Field + " has invalid value \"" + perr.Value + "\""
	}
	return err.Error()
}
