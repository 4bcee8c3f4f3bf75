package midi

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDriverInitializersMatchPlatform(t *testing.T) {
	switch runtime.GOOS {
	case "darwin", "windows":
		assert.Len(t, driverInitializers, 1)
		assert.Contains(t, driverInitializers, runtime.GOOS)
	default:
		assert.NotContains(t, driverInitializers, "darwin")
		assert.NotContains(t, driverInitializers, "windows")
		assert.Contains(t, driverInitializers, "linux")
		assert.Contains(t, driverInitializers, "freebsd")
	}
}
