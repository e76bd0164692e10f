package bootstrap

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/LerianStudio/docker-api/internal/adapters/http/in"
	"github.com/LerianStudio/docker-api/internal/services"
	"github.com/LerianStudio/docker-api/pkg"
	"github.com/LerianStudio/docker-api/pkg/log"
	"github.com/LerianStudio/docker-api/pkg/net/http"
	"github.com/LerianStudio/docker-api/pkg/opentelemetry"
	"github.com/LerianStudio/docker-api/pkg/server"
	libZap "github.com/LerianStudio/docker-api/pkg/zap"
	"github.com/gofiber/fiber/v2"
)

const metricsNamespace = "docker_api"

// Service is the application glue where we put all top level components to be used.
type Service struct {
	Config    *Config
	Process   *Process
	Logger    log.Logger
	Telemetry *opentelemetry.Telemetry
	App       *fiber.App
	Server    *server.ServerManager
}

// InitServers builds every component of the service from cfg. Nothing is
// bound until Run.
func InitServers(cfg *Config, proc *Process) (*Service, error) {
	logger, _, err := libZap.New(libZap.Config{
		Environment:     libZap.ParseEnvironment(cfg.Environment),
		Level:           cfg.LogLevel,
		OTelLibraryName: ApplicationName,
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	telemetry, err := opentelemetry.InitializeTelemetryWithError(&opentelemetry.TelemetryConfig{
		LibraryName:               ApplicationName,
		ServiceName:               cfg.OtelServiceName,
		ServiceVersion:            proc.Version(),
		DeploymentEnv:             cfg.Environment,
		CollectorExporterEndpoint: cfg.OtelCollectorEndpoint,
		EnableTelemetry:           cfg.EnableTelemetry,
		Logger:                    logger,
	})
	if err != nil {
		_ = logger.Sync(context.Background())

		return nil, fmt.Errorf("init telemetry: %w", err)
	}

	return newService(cfg, proc, logger, telemetry), nil
}

func newService(cfg *Config, proc *Process, logger log.Logger, telemetry *opentelemetry.Telemetry) *Service {
	app := in.NewRouter(
		logger,
		telemetry,
		http.NewMetrics(metricsNamespace),
		&in.StatusHandler{Process: proc},
		&in.UserHandler{UseCase: services.NewUseCase()},
	)

	manager := server.NewServerManager(telemetry, logger).
		WithHTTPServer(app, net.JoinHostPort("0.0.0.0", strconv.Itoa(cfg.Port))).
		WithEnvironment(cfg.Environment).
		WithDrainTimeout(cfg.DrainTimeout)

	return &Service{
		Config:    cfg,
		Process:   proc,
		Logger:    logger,
		Telemetry: telemetry,
		App:       app,
		Server:    manager,
	}
}

// Run serves until a termination signal and returns once drained.
func (s *Service) Run() error {
	return pkg.NewLauncher(
		pkg.WithLogger(s.Logger),
		pkg.RunApp("HTTP Service", NewServer(s.Server)),
	).RunWithError()
}
