package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/LerianStudio/docker-api/pkg/log"
	"github.com/LerianStudio/docker-api/pkg/opentelemetry"
	"github.com/LerianStudio/docker-api/pkg/runtime"
	"github.com/gofiber/fiber/v2"
)

var (
	// ErrNoServersConfigured indicates no HTTP server was configured for the manager.
	ErrNoServersConfigured = errors.New("no servers configured: use WithHTTPServer()")
	// ErrAlreadyStarted is returned when Start is called more than once.
	ErrAlreadyStarted = errors.New("server manager already started")
)

// ServerManager runs an HTTP server until a termination signal arrives and
// then drains it before releasing telemetry and flushing the logger.
type ServerManager struct {
	httpServer     *fiber.App
	httpAddress    string
	telemetry      *opentelemetry.Telemetry
	logger         log.Logger
	environment    string
	listener       *trackedListener
	state          atomic.Int32
	serversStarted chan struct{}
	startOnce      sync.Once
	shutdownChan   <-chan struct{}
	shutdownOnce   sync.Once
	drainTimeout   time.Duration
	signals        []os.Signal
	serveErrors    chan error
	serveDone      chan struct{}
}

// NewServerManager creates a new instance of ServerManager.
// A nil logger is replaced by a no-op logger.
func NewServerManager(telemetry *opentelemetry.Telemetry, logger log.Logger) *ServerManager {
	if logger == nil {
		logger = log.NewNop()
	}

	return &ServerManager{
		telemetry:      telemetry,
		logger:         logger,
		serversStarted: make(chan struct{}),
		signals:        []os.Signal{syscall.SIGTERM, os.Interrupt},
		serveErrors:    make(chan error, 1),
		serveDone:      make(chan struct{}),
	}
}

// WithHTTPServer configures the Fiber app and the address it binds to.
func (sm *ServerManager) WithHTTPServer(app *fiber.App, address string) *ServerManager {
	sm.httpServer = app
	sm.httpAddress = address

	return sm
}

// WithEnvironment sets the environment name reported at startup.
func (sm *ServerManager) WithEnvironment(env string) *ServerManager {
	sm.environment = env

	return sm
}

// WithShutdownChannel replaces OS signals with ch as the shutdown trigger.
// Tests use it to drive shutdown deterministically.
func (sm *ServerManager) WithShutdownChannel(ch <-chan struct{}) *ServerManager {
	sm.shutdownChan = ch

	return sm
}

// WithDrainTimeout bounds how long in-flight requests may run once draining
// starts. Zero, the default, waits for them indefinitely.
func (sm *ServerManager) WithDrainTimeout(d time.Duration) *ServerManager {
	sm.drainTimeout = d

	return sm
}

// ServersStarted returns a channel closed once the listener is bound and serving.
func (sm *ServerManager) ServersStarted() <-chan struct{} {
	return sm.serversStarted
}

// State returns the current lifecycle state.
func (sm *ServerManager) State() State {
	return State(sm.state.Load())
}

// Addr returns the bound listener address, or nil before startup.
func (sm *ServerManager) Addr() net.Addr {
	select {
	case <-sm.serversStarted:
		return sm.listener.Addr()
	default:
		return nil
	}
}

// StartWithGracefulShutdownWithError binds the listener, serves until a
// shutdown trigger, then drains. It blocks until the manager is TERMINATED.
// A bind failure is returned before anything is served; a serve failure
// triggers the shutdown sequence and is returned once it completes.
func (sm *ServerManager) StartWithGracefulShutdownWithError() error {
	if sm.httpServer == nil {
		return ErrNoServersConfigured
	}

	if !sm.state.CompareAndSwap(int32(StateIdle), int32(StateRunning)) {
		return ErrAlreadyStarted
	}

	var signals chan os.Signal
	if sm.shutdownChan == nil {
		signals = make(chan os.Signal, 1)
		signal.Notify(signals, sm.signals...)

		defer signal.Stop(signals)
	}

	if err := sm.startServers(); err != nil {
		sm.state.Store(int32(StateTerminated))
		sm.telemetry.ShutdownTelemetry(context.Background())
		sm.syncLogger()

		return err
	}

	serveErr := sm.handleShutdown(signals)

	sm.executeShutdown()

	return serveErr
}

func (sm *ServerManager) startServers() error {
	listener, err := net.Listen("tcp", sm.httpAddress)
	if err != nil {
		sm.logger.Log(context.Background(), log.LevelError, "Failed to bind HTTP listener",
			log.String("address", sm.httpAddress), log.Err(err))

		return fmt.Errorf("HTTP listen on %s: %w", sm.httpAddress, err)
	}

	sm.listener = newTrackedListener(listener)

	runtime.SafeGoWithContextAndComponent(
		context.Background(),
		sm.logger,
		"server",
		"serve_http",
		runtime.KeepRunning,
		func(_ context.Context) {
			defer close(sm.serveDone)

			if err := sm.httpServer.Listener(sm.listener); err != nil && !isClosedListener(err) {
				sm.logger.Log(context.Background(), log.LevelError, "HTTP server error", log.Err(err))

				select {
				case sm.serveErrors <- fmt.Errorf("HTTP server: %w", err):
				default:
				}
			}
		},
	)

	sm.logger.Log(context.Background(), log.LevelInfo, fmt.Sprintf("Server running on port %s", portOf(listener.Addr())),
		log.String("address", listener.Addr().String()))
	sm.logger.Log(context.Background(), log.LevelInfo, fmt.Sprintf("Environment: %s", sm.environment),
		log.String("environment", sm.environment))

	sm.startOnce.Do(func() {
		close(sm.serversStarted)
	})

	return nil
}

// handleShutdown blocks in RUNNING until a trigger fires and returns the serve
// error, if that was the trigger.
func (sm *ServerManager) handleShutdown(signals <-chan os.Signal) error {
	var serveErr error

	select {
	case sig := <-signals:
		sm.logger.Log(context.Background(), log.LevelInfo,
			fmt.Sprintf("%s signal received: closing HTTP server", signalName(sig)),
			log.String("signal", signalName(sig)))
	case <-sm.shutdownChan:
		sm.logger.Log(context.Background(), log.LevelInfo, "Shutdown requested: closing HTTP server")
	case serveErr = <-sm.serveErrors:
		sm.logger.Log(context.Background(), log.LevelError, "HTTP server failed: closing HTTP server", log.Err(serveErr))
	case <-sm.serveDone:
		sm.logger.Log(context.Background(), log.LevelWarn, "HTTP server stopped unexpectedly: closing HTTP server")
	}

	return serveErr
}

// executeShutdown performs DRAINING and the transition to TERMINATED. It is idempotent.
func (sm *ServerManager) executeShutdown() {
	sm.shutdownOnce.Do(func() {
		sm.state.Store(int32(StateDraining))

		ctx := context.Background()

		var err error
		if sm.drainTimeout > 0 {
			err = sm.httpServer.ShutdownWithTimeout(sm.drainTimeout)
		} else {
			err = sm.httpServer.Shutdown()
		}

		if err != nil {
			sm.logger.Log(ctx, log.LevelWarn, "HTTP server drain did not complete cleanly: closing remaining connections",
				log.Duration("drain_timeout", sm.drainTimeout),
				log.Int("connections", sm.listener.closeConns()),
				log.Err(err))
		}

		// Serve may not have registered the listener yet when shutdown races startup.
		_ = sm.listener.Close()

		<-sm.serveDone

		sm.state.Store(int32(StateTerminated))
		sm.logger.Log(ctx, log.LevelInfo, "HTTP server closed")

		if sm.telemetry != nil {
			sm.logger.Log(ctx, log.LevelInfo, "Shutting down telemetry...")
			sm.telemetry.ShutdownTelemetry(ctx)
		}

		sm.syncLogger()
	})
}

func (sm *ServerManager) syncLogger() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sm.logger.Sync(ctx); err != nil && !isUnsyncableStream(err) {
		sm.logger.Log(ctx, log.LevelError, "Failed to sync logger", log.Err(err))
	}
}

func portOf(addr net.Addr) string {
	if tcp, ok := addr.(*net.TCPAddr); ok {
		return fmt.Sprintf("%d", tcp.Port)
	}

	_, port, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}

	return port
}

func signalName(sig os.Signal) string {
	if sig == nil {
		return "UNKNOWN"
	}

	switch sig {
	case syscall.SIGTERM:
		return "SIGTERM"
	case os.Interrupt:
		return "SIGINT"
	default:
		return strings.ToUpper(sig.String())
	}
}

func isClosedListener(err error) bool {
	return errors.Is(err, net.ErrClosed)
}

// isUnsyncableStream matches the errors returned when syncing stdout/stderr
// attached to a terminal or pipe.
func isUnsyncableStream(err error) bool {
	return errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTTY) || errors.Is(err, syscall.EBADF)
}
