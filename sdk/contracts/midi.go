package contracts

import "io"

// ClientMIDI defines an interface for MIDI capture and filtering.
type ClientMIDI interface {
	Stop() error                            // Stops capturing, closes the device and releases the driver.
	ListDevices() ([]DeviceInfo, error)     // Lists all available MIDI input devices.
	SelectDevice(name string) error         // Switches capture to the named input device.
	StartCapture(eventChannel chan Trigger) // Delivers every captured event, with its filter decision, to eventChannel.
	SetFilter(config FilterConfig)          // Replaces the active filter with a range filter.
	SetEZFilter(config EZConfig)            // Replaces the active filter with an exact-match filter.
	Latest() (Snapshot, bool)               // Returns the last event and whether it arrived since the previous call.
}

// Driver is the platform access a client needs: enumerate input devices and
// open one with a callback receiving raw MIDI messages.
//
// onMessage may be called from a driver-owned goroutine or OS thread and must
// not block.
type Driver interface {
	Devices() ([]DeviceInfo, error)
	Open(name string, onMessage func(data []byte)) (io.Closer, error)
	Close() error
}
