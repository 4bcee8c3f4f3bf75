package midi

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/leandrodaf/midigate/sdk/contracts"
)

// ErrUnsupportedOS is returned when no MIDI driver exists for the operating system.
var ErrUnsupportedOS = errors.New("unsupported operating system")

// driverInitializer creates the platform driver.
type driverInitializer func(*contracts.ClientOptions) (contracts.Driver, error)

// driverInitializers maps OS names to corresponding MIDI driver initializers.
// Entries are registered by the GOOS-specific drivers_*.go files so each build
// links only its own driver.
var driverInitializers = map[string]driverInitializer{}

// NewDriver initializes the MIDI driver for the current operating system.
//
// opts *contracts.ClientOptions: Configuration options for the MIDI client.
//
// Returns:
//   - contracts.Driver: The platform driver.
//   - error: An error if the operating system is unsupported or if initialization fails.
func NewDriver(opts *contracts.ClientOptions) (contracts.Driver, error) {
	if initializer, exists := driverInitializers[runtime.GOOS]; exists {
		return initializer(opts)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedOS, runtime.GOOS)
}
