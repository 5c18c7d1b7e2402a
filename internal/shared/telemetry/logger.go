package telemetry

import (
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	level  = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	base   = build(os.Stdout)
	output io.Writer = os.Stdout
)

// Init configures the process logger for the given environment.
// Production logs at info level; everything else logs at debug.
func Init(env string) {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "production", "prod":
		level.SetLevel(zapcore.InfoLevel)
	default:
		level.SetLevel(zapcore.DebugLevel)
	}
}

// SetOutput redirects log output and returns a function restoring the previous writer.
func SetOutput(w io.Writer) func() {
	mu.Lock()
	prev := output
	output = w
	base = build(w)
	mu.Unlock()
	return func() {
		mu.Lock()
		output = prev
		base = build(prev)
		mu.Unlock()
	}
}

// Sync flushes buffered entries.
func Sync() {
	_ = logger().Sync()
}

// Debug writes a debug-level log line with the given fields.
func Debug(msg string, fields map[string]any) {
	logger().Debug(msg, toZap(fields)...)
}

// Info writes an info-level log line with the given fields.
func Info(msg string, fields map[string]any) {
	logger().Info(msg, toZap(fields)...)
}

// Warn writes a warn-level log line with the given fields.
func Warn(msg string, fields map[string]any) {
	logger().Warn(msg, toZap(fields)...)
}

// Error writes an error-level log line with the given fields.
func Error(msg string, fields map[string]any) {
	logger().Error(msg, toZap(fields)...)
}

func logger() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

func build(w io.Writer) *zap.Logger {
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "ts"
	enc.LevelKey = "level"
	enc.MessageKey = "msg"
	enc.EncodeTime = zapcore.RFC3339TimeEncoder
	enc.EncodeLevel = zapcore.LowercaseLevelEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.Lock(zapcore.AddSync(w)), level)
	return zap.New(core)
}

func toZap(fields map[string]any) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		if err, ok := fields[k].(error); ok {
			out = append(out, zap.String(k, err.Error()))
			continue
		}
		out = append(out, zap.Any(k, fields[k]))
	}
	return out
}
