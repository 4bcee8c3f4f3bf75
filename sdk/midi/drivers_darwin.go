//go:build darwin
// +build darwin

package midi

import "github.com/leandrodaf/midigate/internal/midi/mididarwin"

func init() {
	driverInitializers["darwin"] = mididarwin.NewDriver // macOS (Darwin) CoreMIDI driver.
}
