// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production) and is shared by the CLI commands, the sync
// engine, and the HTTP status server.
//
// # Correlation
//
// Two helpers attach correlation fields to a logger:
//
//   - WithRun attaches the import run UID, so all log lines produced while
//     synchronizing one library can be grouped together.
//   - WithRayID extracts the request ID from a Fiber context, correlating
//     log lines of one HTTP request.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Import started")
//
//	l := logger.WithRun(log, run.UID)
//	l.Warn("Record skipped", zap.Error(err))
package logger
