// Package http provides Fiber response helpers, the canonical error handler and
// the middleware chain used by the API: request ids and access logs, tracing,
// Prometheus metrics, panic recovery and CORS.
package http
