//go:build windows
// +build windows

package midiwindows

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"unsafe"

	"github.com/leandrodaf/midigate/sdk/contracts"
	"golang.org/x/sys/windows"
)

// Type definitions for MIDI handles
type HMIDIIN windows.Handle

// Constants for callback flags
const (
	CALLBACK_FUNCTION = 0x00030000 // Indicates that the callback is a function
	MIDI_IO_STATUS    = 0x00000020 // MIDI input/output status
)

// Constants for MIDI message types
const (
	MIM_OPEN      = 0x3C1 // MIDI device opened
	MIM_CLOSE     = 0x3C2 // MIDI device closed
	MIM_DATA      = 0x3C3 // MIDI data received
	MIM_ERROR     = 0x3C5 // MIDI error
	MIM_LONGERROR = 0x3C6 // Long MIDI error
	MIM_MOREDATA  = 0x3CC // More MIDI data available
)

// Error definitions for winmm access.
var (
	ErrDeviceNotFound = errors.New("MIDI device not found")
	ErrOpenDevice     = errors.New("failed to open MIDI device")
	ErrStartDevice    = errors.New("failed to start MIDI capture")
)

// Struct representing MIDI device capabilities
type midiInCaps struct {
	wMid           uint16
	wPid           uint16
	vDriverVersion uint32
	szPname        [32]uint16
	dwSupport      uint32
}

// Load the winmm.dll library and required functions
var (
	winmm                = windows.NewLazySystemDLL("winmm.dll")
	procMidiInGetNumDevs = winmm.NewProc("midiInGetNumDevs")
	procMidiInGetDevCaps = winmm.NewProc("midiInGetDevCapsW")
	procMidiInOpen       = winmm.NewProc("midiInOpen")
	procMidiInStart      = winmm.NewProc("midiInStart")
	procMidiInStop       = winmm.NewProc("midiInStop")
	procMidiInClose      = winmm.NewProc("midiInClose")
)

// Open ports are looked up by id from the callback instead of passing Go
// pointers through winmm. The callback itself is created once because
// windows.NewCallback slots are never released.
var (
	portsMu      sync.RWMutex
	ports        = map[uintptr]*port{}
	nextPortID   uintptr
	callbackOnce sync.Once
	callback     uintptr
)

// Driver opens winmm MIDI input devices.
type Driver struct {
	logger contracts.Logger
}

// NewDriver creates a winmm driver.
func NewDriver(options *contracts.ClientOptions) (contracts.Driver, error) {
	options.Logger.Info("winmm MIDI driver created")
	return &Driver{logger: options.Logger}, nil
}

// Devices lists the available MIDI input devices.
func (d *Driver) Devices() ([]contracts.DeviceInfo, error) {
	r0, _, _ := procMidiInGetNumDevs.Call()
	numDevices := uint32(r0)

	devices := make([]contracts.DeviceInfo, 0, numDevices)
	for i := uint32(0); i < numDevices; i++ {
		var caps midiInCaps
		r1, _, _ := procMidiInGetDevCaps.Call(
			uintptr(i),
			uintptr(unsafe.Pointer(&caps)),
			unsafe.Sizeof(caps),
		)
		if r1 != 0 {
			d.logger.Warn("Failed to get information for MIDI device", d.logger.Field().Int("deviceID", int(i)))
			continue
		}
		deviceName := windows.UTF16ToString(caps.szPname[:])
		devices = append(devices, contracts.DeviceInfo{
			Name:         deviceName,
			EntityName:   deviceName,
			Manufacturer: fmt.Sprintf("MID: %d PID: %d", caps.wMid, caps.wPid),
		})
	}
	return devices, nil
}

// deviceID resolves a device name to its winmm index.
func (d *Driver) deviceID(name string) (uint32, error) {
	r0, _, _ := procMidiInGetNumDevs.Call()
	for i := uint32(0); i < uint32(r0); i++ {
		var caps midiInCaps
		r1, _, _ := procMidiInGetDevCaps.Call(uintptr(i), uintptr(unsafe.Pointer(&caps)), unsafe.Sizeof(caps))
		if r1 == 0 && windows.UTF16ToString(caps.szPname[:]) == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrDeviceNotFound, name)
}

// Open opens and starts the named device.
func (d *Driver) Open(name string, onMessage func(data []byte)) (io.Closer, error) {
	deviceID, err := d.deviceID(name)
	if err != nil {
		return nil, err
	}

	callbackOnce.Do(func() {
		callback = windows.NewCallback(midiInCallback)
	})

	p := &port{logger: d.logger, name: name, onMessage: onMessage}
	portsMu.Lock()
	nextPortID++
	p.id = nextPortID
	ports[p.id] = p
	portsMu.Unlock()

	r1, _, callErr := procMidiInOpen.Call(
		uintptr(unsafe.Pointer(&p.handle)),
		uintptr(deviceID),
		callback,
		p.id,
		uintptr(CALLBACK_FUNCTION|MIDI_IO_STATUS),
	)
	if r1 != 0 {
		p.unregister()
		return nil, fmt.Errorf("%w %q: %v", ErrOpenDevice, name, callErr)
	}

	r1, _, callErr = procMidiInStart.Call(uintptr(p.handle))
	if r1 != 0 {
		procMidiInClose.Call(uintptr(p.handle))
		p.unregister()
		return nil, fmt.Errorf("%w %q: %v", ErrStartDevice, name, callErr)
	}

	d.logger.Debug("winmm device started", d.logger.Field().String("deviceName", name))
	return p, nil
}

// Close is a no-op; ports are closed individually.
func (d *Driver) Close() error {
	return nil
}

// port is one open winmm input device.
type port struct {
	id        uintptr
	name      string
	handle    HMIDIIN
	logger    contracts.Logger
	onMessage func(data []byte)
	closeOnce sync.Once
	closeErr  error
}

func (p *port) unregister() {
	portsMu.Lock()
	delete(ports, p.id)
	portsMu.Unlock()
}

// Close stops capture and releases the device handle.
func (p *port) Close() error {
	p.closeOnce.Do(func() {
		defer p.unregister()
		if r1, _, err := procMidiInStop.Call(uintptr(p.handle)); r1 != 0 {
			p.closeErr = fmt.Errorf("failed to stop MIDI capture: %v", err)
			return
		}
		if r1, _, err := procMidiInClose.Call(uintptr(p.handle)); r1 != 0 {
			p.closeErr = fmt.Errorf("failed to close MIDI device: %v", err)
		}
	})
	return p.closeErr
}

// midiInCallback processes incoming MIDI messages
func midiInCallback(hMidiIn uintptr, wMsg uint32, dwInstance uintptr, dwParam1 uintptr, dwParam2 uintptr) uintptr {
	portsMu.RLock()
	p := ports[dwInstance]
	portsMu.RUnlock()
	if p == nil {
		return 0
	}

	switch wMsg {
	case MIM_OPEN:
		p.logger.Debug("MIDI device opened", p.logger.Field().String("deviceName", p.name))
	case MIM_CLOSE:
		p.logger.Debug("MIDI device closed", p.logger.Field().String("deviceName", p.name))
	case MIM_DATA:
		p.onMessage([]byte{
			byte(dwParam1 & 0xFF),
			byte((dwParam1 >> 8) & 0xFF),
			byte((dwParam1 >> 16) & 0xFF),
		})
	case MIM_ERROR, MIM_LONGERROR:
		p.logger.Error("MIDI error", p.logger.Field().Uint64("msg", uint64(wMsg)))
	case MIM_MOREDATA:
		p.logger.Debug("Received MIM_MOREDATA message; ignored")
	default:
		p.logger.Warn("Unknown MIDI message", p.logger.Field().Uint64("msg", uint64(wMsg)))
	}

	return 0
}
