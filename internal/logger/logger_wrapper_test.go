package logger

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/leandrodaf/midigate/sdk/contracts"
)

func newObserved() (*ZapLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewZapLoggerWith(zap.New(core)), logs
}

func TestZapLoggerFields(t *testing.T) {
	l, logs := newObserved()

	l.Info("MIDI device selected",
		l.Field().String("device", "Launchpad"),
		l.Field().Int("channel", 2),
		l.Field().Float64("normalized", 0.5),
		l.Field().Error("error", errors.New("boom")),
	)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "MIDI device selected", entries[0].Message)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "Launchpad", ctx["device"])
	assert.EqualValues(t, 2, ctx["channel"])
	assert.Equal(t, 0.5, ctx["normalized"])
	assert.Equal(t, "boom", ctx["error"])
}

func TestZapLoggerLevels(t *testing.T) {
	cases := []struct {
		level    contracts.LogLevel
		expected []zapcore.Level
	}{
		{
			level:    contracts.DebugLevel,
			expected: []zapcore.Level{zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel},
		},
		{
			level:    contracts.InfoLevel,
			expected: []zapcore.Level{zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel},
		},
		{
			level:    contracts.WarnLevel,
			expected: []zapcore.Level{zapcore.WarnLevel, zapcore.ErrorLevel},
		},
		{
			level:    contracts.ErrorLevel,
			expected: []zapcore.Level{zapcore.ErrorLevel},
		},
	}

	for _, c := range cases {
		l, logs := newObserved()
		l.SetLevel(c.level)

		l.Debug("debug")
		l.Info("info")
		l.Warn("warn")
		l.Error("error")

		var got []zapcore.Level
		for _, e := range logs.All() {
			got = append(got, e.Level)
		}
		assert.Equal(t, c.expected, got, "level %v", c.level)
	}
}

func TestZapLoggerFatal(t *testing.T) {
	l, logs := newObserved()
	code := -1
	l.exit = func(c int) { code = c }

	l.Fatal("device lost", l.Field().String("device", "x"))

	assert.Equal(t, 1, code)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zapcore.FatalLevel, logs.All()[0].Level)
}

func TestZapLoggerSetDestination(t *testing.T) {
	l, logs := newObserved()

	l.SetDestination(contracts.FileLog)
	require.Equal(t, 1, logs.FilterMessage("file log destination requested without a path").Len())

	path := filepath.Join(t.TempDir(), "midigate.log")
	l.SetDestination(contracts.FileLog, path)
	l.Info("written to file")
	assert.NoError(t, l.Sync())
	assert.Equal(t, 0, logs.FilterMessage("written to file").Len())
	assert.FileExists(t, path)
}
