// Package tracing provides OpenTelemetry tracing integration.
//
// Server spans are created by Middleware for every inbound request. Client
// spans wrap each call to the remote fact-check API and carry the W3C trace
// context in the outgoing headers.
//
// The process-wide TracerProvider is installed by the binary; without one the
// global no-op provider is used and spans cost nothing.
//
// Example usage:
//
//	ctx, span := tracing.StartClientSpan(ctx, "factcheck.verify", req.Header)
//	resp, err := client.Do(req.WithContext(ctx))
//	tracing.EndSpan(span, err)
package tracing
