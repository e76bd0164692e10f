package log

import "context"

// NopLogger discards everything.
type NopLogger struct{}

// NewNop returns a Logger that discards everything.
func NewNop() Logger { return NopLogger{} }

func (NopLogger) Log(context.Context, Level, string, ...Field) {}

//nolint:ireturn
func (l NopLogger) With(...Field) Logger { return l }

func (NopLogger) Enabled(Level) bool { return false }

func (NopLogger) Sync(context.Context) error { return nil }
