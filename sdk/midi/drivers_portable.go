//go:build !darwin && !windows
// +build !darwin,!windows

package midi

import "github.com/leandrodaf/midigate/internal/midi/midiportable"

func init() {
	driverInitializers["linux"] = midiportable.NewDriver // ALSA through RtMidi.
	driverInitializers["freebsd"] = midiportable.NewDriver
}
