// Package logger provides a structured logging facility based on Zap.
//
// It builds a configured logger for development (console, colored levels) or
// production (json) use. Skipped files and sheets are logged at info level, so the
// default "info" level shows why a document did not produce a table.
//
// # Context Awareness
//
// WithRayID extracts the RayID set by the rayid middleware from a Fiber context and
// attaches it to the log entry, so all logs of one request can be correlated.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log.Info("Resolved tables", zap.Int("tables", n))
package logger
