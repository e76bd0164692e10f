// Package bootstrap loads the runtime configuration and wires the logger,
// telemetry, HTTP router and server manager into a runnable Service.
package bootstrap
