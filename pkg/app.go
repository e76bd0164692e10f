package pkg

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/LerianStudio/docker-api/pkg/log"
	"github.com/LerianStudio/docker-api/pkg/runtime"
)

var (
	// ErrLoggerNil is returned when the Logger is nil and cannot proceed.
	ErrLoggerNil = errors.New("logger is nil")
	// ErrEmptyApp is returned when an app name is empty or whitespace.
	ErrEmptyApp = errors.New("app name is empty")
	// ErrNilApp is returned when a nil app instance is provided.
	ErrNilApp = errors.New("app is nil")
	// ErrConfigFailed is returned when launcher option application collected errors.
	ErrConfigFailed = errors.New("launcher configuration failed")
)

// App is a deployable component run by a Launcher.
type App interface {
	Run(launcher *Launcher) error
}

// LauncherOption defines a function option for Launcher.
type LauncherOption func(l *Launcher)

// WithLogger adds a log.Logger component to launcher.
func WithLogger(logger log.Logger) LauncherOption {
	return func(l *Launcher) {
		l.Logger = logger
	}
}

// RunApp registers an application with the launcher.
// A registration error is surfaced by RunWithError.
func RunApp(name string, app App) LauncherOption {
	return func(l *Launcher) {
		if err := l.Add(name, app); err != nil {
			l.configErrors = append(l.configErrors, fmt.Errorf("add app %q: %w", name, err))
		}
	}
}

// Launcher runs a set of apps concurrently and waits for all of them.
type Launcher struct {
	Logger       log.Logger
	apps         map[string]App
	configErrors []error
}

// NewLauncher create an instance of Launcher.
func NewLauncher(opts ...LauncherOption) *Launcher {
	l := &Launcher{apps: make(map[string]App)}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Add registers an application under appName.
func (l *Launcher) Add(appName string, a App) error {
	if strings.TrimSpace(appName) == "" {
		return ErrEmptyApp
	}

	if a == nil {
		return ErrNilApp
	}

	if l.apps == nil {
		l.apps = make(map[string]App)
	}

	l.apps[appName] = a

	return nil
}

// RunWithError runs every registered app, blocks until all have returned and
// joins their errors. A panicking app is recovered and reported as failed.
func (l *Launcher) RunWithError() error {
	if l.Logger == nil {
		return ErrLoggerNil
	}

	if len(l.configErrors) > 0 {
		return errors.Join(append([]error{ErrConfigFailed}, l.configErrors...)...)
	}

	names := make([]string, 0, len(l.apps))
	for name := range l.apps {
		names = append(names, name)
	}

	sort.Strings(names)

	l.Logger.Log(context.Background(), log.LevelDebug, "starting apps", log.Int("count", len(names)))

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	for _, name := range names {
		app := l.apps[name]

		wg.Add(1)

		runtime.SafeGoWithContextAndComponent(
			context.Background(),
			l.Logger,
			"launcher",
			"run_app_"+name,
			runtime.KeepRunning,
			func(_ context.Context) {
				failed := true

				defer func() {
					if failed {
						mu.Lock()
						errs = append(errs, fmt.Errorf("app %q: %w", name, errAppPanicked))
						mu.Unlock()
					}

					wg.Done()
				}()

				err := app.Run(l)
				failed = false

				if err != nil {
					l.Logger.Log(context.Background(), log.LevelError, "app error", log.String("app", name), log.Err(err))

					mu.Lock()
					errs = append(errs, fmt.Errorf("app %q: %w", name, err))
					mu.Unlock()
				}

				l.Logger.Log(context.Background(), log.LevelDebug, "app finished", log.String("app", name))
			},
		)
	}

	wg.Wait()

	return errors.Join(errs...)
}

var errAppPanicked = errors.New("panicked")
