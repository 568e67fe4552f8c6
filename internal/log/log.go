// Package log provides the process-wide zap logger for mtx.
package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var defaultLogger = zap.NewNop()

// Get returns the current logger. It is a no-op logger until Set is called.
func Get() *zap.Logger {
	return defaultLogger
}

// Set builds a console logger writing to stderr. Debug output is enabled
// when debug is true, otherwise only warnings and errors are written.
func Set(debug bool) error {
	level := zapcore.WarnLevel
	if debug {
		level = zapcore.DebugLevel
	}

	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      debug,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := cfg.Build()
	if err != nil {
		return err
	}
	defaultLogger = logger
	return nil
}

// Flush flushes any buffered log entries.
func Flush() {
	_ = defaultLogger.Sync()
}
