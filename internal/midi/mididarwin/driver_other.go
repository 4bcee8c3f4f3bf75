//go:build !darwin
// +build !darwin

package mididarwin

import (
	"errors"

	"github.com/leandrodaf/midigate/sdk/contracts"
)

// ErrUnsupportedPlatform is returned when CoreMIDI is requested outside macOS.
var ErrUnsupportedPlatform = errors.New("CoreMIDI is only available on macOS")

// NewDriver fails on every platform except macOS.
func NewDriver(options *contracts.ClientOptions) (contracts.Driver, error) {
	options.Logger.Warn("CoreMIDI driver requested on non-macOS system")
	return nil, ErrUnsupportedPlatform
}
