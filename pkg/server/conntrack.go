package server

import (
	"net"
	"sync"
)

// trackedListener records the connections it accepts until they are closed,
// so a bounded drain can close the ones still open.
type trackedListener struct {
	net.Listener

	mu    sync.Mutex
	conns map[*trackedConn]struct{}
}

func newTrackedListener(ln net.Listener) *trackedListener {
	return &trackedListener{Listener: ln, conns: make(map[*trackedConn]struct{})}
}

func (l *trackedListener) Accept() (net.Conn, error) {
	conn, err := l.Listener.Accept()
	if err != nil {
		return nil, err
	}

	tc := &trackedConn{Conn: conn, owner: l}

	l.mu.Lock()
	l.conns[tc] = struct{}{}
	l.mu.Unlock()

	return tc, nil
}

// closeConns closes every open connection and returns how many there were.
func (l *trackedListener) closeConns() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := len(l.conns)

	for c := range l.conns {
		_ = c.Conn.Close()
	}

	clear(l.conns)

	return n
}

func (l *trackedListener) forget(c *trackedConn) {
	l.mu.Lock()
	delete(l.conns, c)
	l.mu.Unlock()
}

type trackedConn struct {
	net.Conn

	owner *trackedListener
	once  sync.Once
}

func (c *trackedConn) Close() error {
	c.once.Do(func() { c.owner.forget(c) })

	return c.Conn.Close()
}
