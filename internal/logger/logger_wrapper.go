package logger

import (
	"os"
	"sync"
	"time"

	"github.com/leandrodaf/midigate/sdk/contracts"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger implements contracts.Logger on top of Uber's zap.
type ZapLogger struct {
	mu     sync.RWMutex
	logger *zap.Logger
	level  zap.AtomicLevel // Shared with the core so SetLevel applies immediately.
	exit   func(int)       // Called by Fatal; os.Exit outside tests.
}

// NewZapLogger creates a production zap logger writing JSON to stderr.
func NewZapLogger() contracts.Logger {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	cfg := zap.NewProductionConfig()
	cfg.Level = level
	logger, err := cfg.Build(zap.AddCallerSkip(1), zap.WithFatalHook(deferredExit{}))
	if err != nil {
		logger = zap.NewNop()
	}
	return &ZapLogger{logger: logger, level: level, exit: os.Exit}
}

// NewZapLoggerWith wraps an existing zap logger. Level filtering is applied on
// top of whatever the wrapped core already enables.
func NewZapLoggerWith(l *zap.Logger) *ZapLogger {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	wrapped := l.WithOptions(
		zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return &levelCore{Core: core, level: level}
		}),
		zap.WithFatalHook(deferredExit{}),
	)
	return &ZapLogger{logger: wrapped, level: level, exit: os.Exit}
}

// Info logs a message at the INFO level
func (z *ZapLogger) Info(msg string, fields ...contracts.Field) {
	z.current().Info(msg, toZap(fields)...)
}

// Error logs a message at the ERROR level
func (z *ZapLogger) Error(msg string, fields ...contracts.Field) {
	z.current().Error(msg, toZap(fields)...)
}

// Debug logs a message at the DEBUG level
func (z *ZapLogger) Debug(msg string, fields ...contracts.Field) {
	z.current().Debug(msg, toZap(fields)...)
}

// Warn logs a message at the WARN level
func (z *ZapLogger) Warn(msg string, fields ...contracts.Field) {
	z.current().Warn(msg, toZap(fields)...)
}

// Fatal logs a message at the FATAL level and terminates the application
func (z *ZapLogger) Fatal(msg string, fields ...contracts.Field) {
	l := z.current()
	l.Fatal(msg, toZap(fields)...)
	_ = l.Sync()
	z.exit(1)
}

// Field returns a new instance of Field
func (z *ZapLogger) Field() contracts.Field {
	return zapField{}
}

// SetLevel sets the logging level
func (z *ZapLogger) SetLevel(level contracts.LogLevel) {
	z.level.SetLevel(zapLevel(level))
}

// SetDestination switches output between stderr and a file. A failed file
// open leaves the current destination in place and is logged.
func (z *ZapLogger) SetDestination(dest contracts.LogDestination, filePath ...string) {
	output := "stderr"
	if dest == contracts.FileLog {
		if len(filePath) == 0 || filePath[0] == "" {
			z.Warn("file log destination requested without a path")
			return
		}
		output = filePath[0]
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = z.level
	cfg.OutputPaths = []string{output}
	cfg.ErrorOutputPaths = []string{"stderr"}
	logger, err := cfg.Build(zap.AddCallerSkip(1), zap.WithFatalHook(deferredExit{}))
	if err != nil {
		z.Error("failed to change log destination", zapField{}.String("path", output), zapField{}.Error("error", err))
		return
	}

	z.mu.Lock()
	old := z.logger
	z.logger = logger
	z.mu.Unlock()
	_ = old.Sync()
}

// Sync flushes buffered entries.
func (z *ZapLogger) Sync() error {
	return z.current().Sync()
}

func (z *ZapLogger) current() *zap.Logger {
	z.mu.RLock()
	defer z.mu.RUnlock()
	return z.logger
}

// zapLevel maps the contract's levels onto zapcore levels.
func zapLevel(level contracts.LogLevel) zapcore.Level {
	switch level {
	case contracts.DebugLevel:
		return zapcore.DebugLevel
	case contracts.WarnLevel:
		return zapcore.WarnLevel
	case contracts.ErrorLevel:
		return zapcore.ErrorLevel
	case contracts.FatalLevel:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// deferredExit leaves process exit to ZapLogger.Fatal so the entry is
// flushed first and tests can intercept the exit.
type deferredExit struct{}

func (deferredExit) OnWrite(*zapcore.CheckedEntry, []zapcore.Field) {}

// levelCore adds an adjustable minimum level to a wrapped core.
type levelCore struct {
	zapcore.Core
	level zap.AtomicLevel
}

func (c *levelCore) Enabled(lvl zapcore.Level) bool {
	return c.level.Enabled(lvl) && c.Core.Enabled(lvl)
}

func (c *levelCore) With(fields []zapcore.Field) zapcore.Core {
	return &levelCore{Core: c.Core.With(fields), level: c.level}
}

func (c *levelCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if !c.level.Enabled(ent.Level) {
		return ce
	}
	return c.Core.Check(ent, ce)
}

func toZap(fields []contracts.Field) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		if f, ok := field.(zapField); ok && f.key != "" {
			out = append(out, f.field)
		}
	}
	return out
}

// zapField implements contracts.Field
type zapField struct {
	key   string
	field zap.Field
}

func (zapField) Bool(key string, val bool) contracts.Field {
	return zapField{key, zap.Bool(key, val)}
}

func (zapField) Int(key string, val int) contracts.Field {
	return zapField{key, zap.Int(key, val)}
}

func (zapField) Float64(key string, val float64) contracts.Field {
	return zapField{key, zap.Float64(key, val)}
}

func (zapField) String(key string, val string) contracts.Field {
	return zapField{key, zap.String(key, val)}
}

func (zapField) Time(key string, val time.Time) contracts.Field {
	return zapField{key, zap.Time(key, val)}
}

func (zapField) Int64(key string, val int64) contracts.Field {
	return zapField{key, zap.Int64(key, val)}
}

func (zapField) Error(key string, val error) contracts.Field {
	return zapField{key, zap.NamedError(key, val)}
}

func (zapField) Uint64(key string, val uint64) contracts.Field {
	return zapField{key, zap.Uint64(key, val)}
}

func (zapField) Uint8(key string, val uint8) contracts.Field {
	return zapField{key, zap.Uint8(key, val)}
}

func (zapField) Any(key string, val interface{}) contracts.Field {
	return zapField{key, zap.Any(key, val)}
}
