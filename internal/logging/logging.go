// Package logging builds the zap logger shared by the commands.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a console logger. Verbose enables debug-level output with
// caller annotations; otherwise only info and above are emitted.
func New(verbose bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.DisableStacktrace = true
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		cfg.DisableCaller = true
	}

	logger, err := cfg.Build()
	if err != nil {
		// The static config above cannot fail to build; fall back anyway.
		return zap.NewNop()
	}
	return logger
}
