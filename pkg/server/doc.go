// Package server binds the HTTP listener and runs the process lifecycle:
// RUNNING until a termination signal, DRAINING while in-flight requests
// finish, TERMINATED once the listener is closed and every handler returned.
package server
