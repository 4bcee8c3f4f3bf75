//go:build !windows
// +build !windows

package midiwindows

import (
	"errors"

	"github.com/leandrodaf/midigate/sdk/contracts"
)

// ErrUnsupportedPlatform is returned when winmm is requested outside Windows.
var ErrUnsupportedPlatform = errors.New("winmm MIDI is only available on Windows")

// NewDriver fails on every platform except Windows.
func NewDriver(options *contracts.ClientOptions) (contracts.Driver, error) {
	options.Logger.Warn("winmm driver requested on non-Windows system")
	return nil, ErrUnsupportedPlatform
}
