// Package observability is the parent of the logging, metrics and tracing
// packages. The web server wires all three; the CLI only uses logging.
//
// Every request log line carries request_id and trace_id, so a log entry can
// be matched to its span and to the request_id echoed in the X-Request-ID
// response header. Prometheus collectors live in metrics and are served on
// /metrics.
package observability
