// Package opentelemetry initializes tracing for the service and offers span helpers
// for the HTTP layer.
package opentelemetry
