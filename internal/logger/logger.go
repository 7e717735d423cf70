// Package logger builds the zap logger used by the countfit command.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects the logger verbosity.
type Config struct {
	// Verbose enables debug output, including per-iteration optimizer traces.
	Verbose bool
	// JSON switches from the console encoder to JSON lines.
	JSON bool
}

// New builds a production logger writing to stderr, so stdout carries only
// command output. Without Verbose only warnings and errors are emitted.
func New(cfg Config) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if cfg.Verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	if !cfg.JSON {
		zc.Encoding = "console"
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	zc.DisableStacktrace = true
	zc.Sampling = nil

	return zc.Build()
}
