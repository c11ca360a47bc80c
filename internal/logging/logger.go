package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

// LogLevelEnvVar is the environment variable that controls logging verbosity.
// When unset or empty, logging is silent (no zap output).
// Valid values: "debug", "info", "warn", "error"
const LogLevelEnvVar = "SHIFTDECK_LOG_LEVEL"

// Operation outcomes recorded by LogOperationFinished.
const (
	OutcomeOK          = "ok"
	OutcomeDomainError = "domain_error"
	OutcomeCrashed     = "crashed"
)

// Initialize creates a new logger with the specified level.
// If level is empty, it checks SHIFTDECK_LOG_LEVEL environment variable.
// If neither is set, logging is disabled (silent mode).
//
// When file is non-empty, entries are appended to that file instead of
// stderr. The TUI owns the terminal, so it always passes a file.
func Initialize(level, file string) error {
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}

	if level == "" {
		logger = zap.NewNop()
		return nil
	}

	zapLevel, err := ParseLevel(level)
	if err != nil {
		return err
	}

	output := "stderr"
	if file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		output = file
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{output},
	}

	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	if file == "" {
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	logger, err = config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	return nil
}

// ParseLevel maps a level name to a zap level.
func ParseLevel(level string) (zapcore.Level, error) {
	switch level {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info":
		return zapcore.InfoLevel, nil
	case "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q (want debug, info, warn or error)", level)
	}
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	if logger == nil {
		// Fallback to silent logger if not initialized
		logger = zap.NewNop()
	}
	return logger
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// LogOperationStarted logs the dispatch of a create or delete.
func LogOperationStarted(l *zap.Logger, kind, device, target string) {
	l.Info("operation started",
		zap.String("kind", kind),
		zap.String("device", device),
		zap.String("target", target),
	)
}

// LogOperationFinished logs the outcome of a create or delete. Crashes are
// logged at error level and domain failures at warn, so an integration fault
// stands out from a failure the user can act on.
func LogOperationFinished(l *zap.Logger, kind, device, outcome string, duration time.Duration, err error) {
	fields := []zap.Field{
		zap.String("kind", kind),
		zap.String("device", device),
		zap.String("outcome", outcome),
		zap.Duration("duration", duration),
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}

	switch outcome {
	case OutcomeCrashed:
		l.Error("operation crashed", fields...)
	case OutcomeDomainError:
		l.Warn("operation failed", fields...)
	default:
		l.Info("operation finished", fields...)
	}
}

// Sync flushes any buffered log entries
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
