// Package logging builds the slog loggers for the server and the CLI.
//
// The server logs JSON at the level named by LOG_LEVEL (or the config file).
// The CLI logs text to stderr so stdout stays clean for the verdict or JSON output.
// Request-scoped loggers carry the request ID and travel in the context:
//
//	logger := logging.WithRequestID(ctx, slog.Default())
//	ctx = logging.WithLogger(ctx, logger)
//	logging.FromContext(ctx).Info("verify started", slog.String("lang", "ar"))
package logging
