// Package logging provides structured logging for shiftdeck.
//
// This package wraps a global zap logger with convenience functions. Logging
// is silent unless a level is set by flag, configuration or the
// SHIFTDECK_LOG_LEVEL environment variable.
//
// # Log Levels
//
//   - Debug: command lines, raw timeshift output sizes
//   - Info: inventory refreshes, operations started and finished
//   - Warn: skipped listing rows, operations that timeshift rejected
//   - Error: operations that crashed (timeshift could not be run, or died)
//
// # Configuration
//
// Initialize logging at startup:
//
//	if err := logging.Initialize("debug", "/home/me/.config/shiftdeck/shiftdeck.log"); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// The interactive UI draws on the terminal, so it always logs to a file.
// The listing subcommands log to stderr when no file is configured.
//
// # Operation Logging
//
// Components that run operations take an injected *zap.Logger and report
// through LogOperationStarted and LogOperationFinished:
//
//	logging.LogOperationFinished(logger, "delete", "/dev/sdb1",
//	    logging.OutcomeDomainError, time.Second, err)
package logging
