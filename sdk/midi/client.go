package midi

import (
	"github.com/leandrodaf/midigate/internal/capture"
	"github.com/leandrodaf/midigate/sdk/contracts"
)

// NewMIDIClient creates a new MIDI client with the specified options and
// starts its capture loop. Call Stop to release the device and driver.
//
// opts ...contracts.Option: A variadic list of option functions to customize the client configuration.
//
// Returns:
//   - contracts.ClientMIDI: An instance of the MIDI client.
//   - error: An error, if any occurred during the creation of the client.
func NewMIDIClient(opts ...contracts.Option) (contracts.ClientMIDI, error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}

	if options.Driver == nil {
		driver, err := NewDriver(&options)
		if err != nil {
			return nil, err
		}
		options.Driver = driver
	}

	return capture.New(&options), nil
}
