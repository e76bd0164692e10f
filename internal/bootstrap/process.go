package bootstrap

import "time"

// Version is the API version reported by the welcome endpoint.
const Version = "1.0.0"

// Process is the state of the running process shared with the status handlers.
type Process struct {
	startedAt   time.Time
	environment string
}

// NewProcess records startedAt as the process start. startedAt should come
// from time.Now so that it carries a monotonic reading.
func NewProcess(startedAt time.Time, environment string) *Process {
	return &Process{startedAt: startedAt, environment: environment}
}

// Environment returns the configured environment name.
func (p *Process) Environment() string { return p.environment }

// Version returns the API version.
func (p *Process) Version() string { return Version }

// Uptime returns the time elapsed since the process started.
func (p *Process) Uptime() time.Duration {
	if d := time.Since(p.startedAt); d > 0 {
		return d
	}

	return 0
}
