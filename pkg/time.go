package pkg

import "time"

// ISO8601Layout renders UTC instants with millisecond precision and a Z suffix.
const ISO8601Layout = "2006-01-02T15:04:05.000Z07:00"

// FormatISO8601 formats t in UTC using ISO8601Layout.
func FormatISO8601(t time.Time) string {
	return t.UTC().Format(ISO8601Layout)
}
