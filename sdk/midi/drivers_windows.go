//go:build windows
// +build windows

package midi

import "github.com/leandrodaf/midigate/internal/midi/midiwindows"

func init() {
	driverInitializers["windows"] = midiwindows.NewDriver // Windows winmm driver.
}
