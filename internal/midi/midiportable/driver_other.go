//go:build darwin || windows
// +build darwin windows

package midiportable

import (
	"errors"

	"github.com/leandrodaf/midigate/sdk/contracts"
)

// ErrUnsupportedPlatform is returned when RtMidi is requested on a system
// that has a native driver.
var ErrUnsupportedPlatform = errors.New("RtMidi driver is not built on this platform")

// NewDriver fails on macOS and Windows; use the native drivers there.
func NewDriver(options *contracts.ClientOptions) (contracts.Driver, error) {
	options.Logger.Warn("RtMidi driver requested on a system with a native MIDI driver")
	return nil, ErrUnsupportedPlatform
}
