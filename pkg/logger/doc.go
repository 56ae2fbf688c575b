// Package logger provides a thin factory around Go's slog package with
// functional options for configuration and a small set of attribute helpers
// used across flightkit packages.
//
// The single entry point New creates a *slog.Logger configured by Option
// functions: output format (text or json), minimum level, static attributes
// and output destination. NewFromEnv reads LOG_LEVEL and LOG_FORMAT from the
// environment so that deployed front-ends can switch verbosity without a
// rebuild.
//
// # Usage
//
//	log := logger.New(logger.WithDevelopment("booking-ui"))
//	logger.SetAsDefault(log)
//
//	log.Info("session restored", logger.Route("/my-bookings"))
package logger
