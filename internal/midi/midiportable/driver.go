//go:build !darwin && !windows
// +build !darwin,!windows

package midiportable

import (
	"errors"
	"fmt"
	"io"
	"sync"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver

	"github.com/leandrodaf/midigate/sdk/contracts"
)

// ErrListen is returned when gomidi cannot start listening on a port.
var ErrListen = errors.New("failed to listen to MIDI input")

// Driver opens gomidi input ports.
type Driver struct {
	logger contracts.Logger
}

// NewDriver returns a driver on the registered gomidi backend.
func NewDriver(options *contracts.ClientOptions) (contracts.Driver, error) {
	options.Logger.Info("gomidi driver created")
	return &Driver{logger: options.Logger}, nil
}

// Devices lists gomidi input ports.
func (d *Driver) Devices() ([]contracts.DeviceInfo, error) {
	ins := gomidi.GetInPorts()
	devices := make([]contracts.DeviceInfo, len(ins))
	for i, in := range ins {
		devices[i] = contracts.DeviceInfo{Name: in.String(), EntityName: in.String()}
	}
	return devices, nil
}

// Open listens on the named port.
func (d *Driver) Open(name string, onMessage func(data []byte)) (io.Closer, error) {
	in, err := gomidi.FindInPort(name)
	if err != nil {
		return nil, fmt.Errorf("can't find MIDI input %q: %w", name, err)
	}

	stop, err := gomidi.ListenTo(in, func(msg gomidi.Message, timestampms int32) {
		onMessage(msg)
	}, gomidi.HandleError(func(listenErr error) {
		d.logger.Warn("MIDI listener error", d.logger.Field().String("deviceName", name), d.logger.Field().Error("error", listenErr))
	}))
	if err != nil {
		_ = in.Close()
		return nil, fmt.Errorf("%w %q: %v", ErrListen, name, err)
	}

	return &listener{in: in, stop: stop}, nil
}

// Close releases the gomidi backend.
func (d *Driver) Close() error {
	gomidi.CloseDriver()
	return nil
}

type listener struct {
	in   drivers.In
	stop func()
	once sync.Once
	err  error
}

func (l *listener) Close() error {
	l.once.Do(func() {
		l.stop()
		l.err = l.in.Close()
	})
	return l.err
}
