package contracts

// DeviceInfo contains information about a MIDI input device.
type DeviceInfo struct {
	Name         string // Device name, used by SelectDevice.
	Manufacturer string // Device manufacturer, if the platform reports one.
	EntityName   string // Name of the entity to which the device belongs.
}
