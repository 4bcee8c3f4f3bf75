//go:build darwin
// +build darwin

package mididarwin

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/leandrodaf/midigate/sdk/contracts"
	"github.com/youpy/go-coremidi"
)

// Error definitions for CoreMIDI access.
var (
	ErrSourceNotFound  = errors.New("MIDI source not found")
	ErrCreateInputPort = errors.New("error creating input port")
	ErrConnectSource   = errors.New("error connecting to MIDI source")
)

// Driver opens CoreMIDI sources through a single CoreMIDI client.
type Driver struct {
	logger contracts.Logger
	client coremidi.Client // CoreMIDI client shared by every input port.
	mu     sync.Mutex      // Serializes port creation.
}

// NewDriver creates the CoreMIDI client named in options.CoreMIDIConfig.
func NewDriver(options *contracts.ClientOptions) (contracts.Driver, error) {
	client, err := coremidi.NewClient(options.CoreMIDIConfig.ClientName)
	if err != nil {
		return nil, err
	}
	options.Logger.Info("CoreMIDI client successfully created",
		options.Logger.Field().String("clientName", options.CoreMIDIConfig.ClientName))

	return &Driver{logger: options.Logger, client: client}, nil
}

// Devices lists every CoreMIDI source.
func (d *Driver) Devices() ([]contracts.DeviceInfo, error) {
	sources, err := coremidi.AllSources()
	if err != nil {
		return nil, err
	}

	devices := make([]contracts.DeviceInfo, len(sources))
	for i, source := range sources {
		entity := source.Entity()
		devices[i] = contracts.DeviceInfo{
			Name:         source.Name(),
			EntityName:   entity.Name(),
			Manufacturer: entity.Manufacturer(),
		}
	}
	return devices, nil
}

// Open connects a new input port to the named source. Each packet's data is
// handed to onMessage on the CoreMIDI thread.
func (d *Driver) Open(name string, onMessage func(data []byte)) (io.Closer, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	sources, err := coremidi.AllSources()
	if err != nil {
		return nil, fmt.Errorf("error retrieving MIDI sources: %w", err)
	}
	var source *coremidi.Source
	for i := range sources {
		if sources[i].Name() == name {
			source = &sources[i]
			break
		}
	}
	if source == nil {
		return nil, fmt.Errorf("%w: %q", ErrSourceNotFound, name)
	}

	inputPort, err := coremidi.NewInputPort(d.client, "Input Port", func(_ coremidi.Source, packet coremidi.Packet) {
		onMessage(packet.Data)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCreateInputPort, err)
	}

	conn, err := inputPort.Connect(*source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectSource, err)
	}

	d.logger.Debug("CoreMIDI source connected", d.logger.Field().String("deviceName", name))
	return &connection{conn: conn}, nil
}

// Close is a no-op; go-coremidi keeps the client for the process lifetime.
func (d *Driver) Close() error {
	return nil
}

// connection disconnects its port once.
type connection struct {
	conn interface{ Disconnect() }
	once sync.Once
}

func (c *connection) Close() error {
	c.once.Do(c.conn.Disconnect)
	return nil
}
