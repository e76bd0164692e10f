// Package zap adapts go.uber.org/zap to the log.Logger interface.
//
// Loggers are built per deployment environment, emit JSON, correlate with the
// active OpenTelemetry span and tee into the OpenTelemetry log bridge.
package zap
