//go:build unit

package http

import (
	"context"
	"sync"

	"github.com/LerianStudio/docker-api/pkg/log"
)

type logEntry struct {
	level  log.Level
	msg    string
	fields []log.Field
}

// recordingLogger captures entries, including those of its children.
type recordingLogger struct {
	mu      *sync.Mutex
	entries *[]logEntry
	fields  []log.Field
}

func newRecordingLogger() *recordingLogger {
	return &recordingLogger{mu: &sync.Mutex{}, entries: &[]logEntry{}}
}

func (l *recordingLogger) Log(_ context.Context, level log.Level, msg string, fields ...log.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()

	all := append(append([]log.Field{}, l.fields...), fields...)
	*l.entries = append(*l.entries, logEntry{level: level, msg: msg, fields: all})
}

func (l *recordingLogger) With(fields ...log.Field) log.Logger {
	return &recordingLogger{mu: l.mu, entries: l.entries, fields: append(append([]log.Field{}, l.fields...), fields...)}
}

func (l *recordingLogger) Enabled(_ log.Level) bool     { return true }
func (l *recordingLogger) Sync(_ context.Context) error { return nil }

func (l *recordingLogger) all() []logEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]logEntry(nil), *l.entries...)
}

func fieldValue(fields []log.Field, key string) (any, bool) {
	for _, f := range fields {
		if f.Key == key {
			return f.Value, true
		}
	}

	return nil, false
}
