// Package log defines the logging interface used across the service and its typed fields.
//
// Backends such as the zap package implement Logger, so call sites stay the
// same whichever encoder is configured.
package log
