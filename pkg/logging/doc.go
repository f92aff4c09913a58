// Package logging provides structured logging configuration for clinicctl
// and the clinic SOAP client.
//
// This package wraps log/slog so that the CLI, the SOAP invoker and the mock
// backend log the same way. It supports configurable log levels and output
// formats, and masks credential attributes.
//
// # Usage
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelDebug,
//	    Format: logging.FormatJSON,
//	})
//
//	logger.Debug("soap call", "operation", "getAllDoctors", "status", 200)
//
// Attributes whose key is listed in SensitiveKeys (for example "password")
// are written as "***".
//
// # Integration
//
// Components accept a *slog.Logger through an option. If none is provided
// they use logging.Nop().
package logging
