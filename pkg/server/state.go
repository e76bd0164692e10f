package server

// State is a lifecycle phase of the ServerManager.
type State int32

const (
	// StateIdle is a manager that has not started serving yet.
	StateIdle State = iota
	// StateRunning accepts new connections and serves requests.
	StateRunning
	// StateDraining refuses new connections while in-flight requests complete.
	StateDraining
	// StateTerminated has a closed listener and no handler left running.
	StateTerminated
)

// String returns the lower-case name of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateDraining:
		return "draining"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}
