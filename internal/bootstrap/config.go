package bootstrap

import (
	"errors"
	"fmt"
	"time"

	"github.com/LerianStudio/docker-api/pkg"
	"github.com/LerianStudio/docker-api/pkg/net/http"
	flag "github.com/spf13/pflag"
)

const (
	// ApplicationName names the service in logs and spans.
	ApplicationName = "docker-api"

	defaultPort         = 3000
	defaultEnvironment  = "development"
	defaultOTelEndpoint = "localhost:4317"
)

var (
	// ErrInvalidPort indicates a port outside 0-65535.
	ErrInvalidPort = errors.New("port must be between 0 and 65535")
	// ErrNegativeDrainTimeout indicates a drain timeout below zero.
	ErrNegativeDrainTimeout = errors.New("drain timeout cannot be negative")
)

// Config is the top level configuration struct for the entire application.
type Config struct {
	Port                  int           `env:"PORT"`
	Environment           string        `env:"NODE_ENV"`
	LogLevel              string        `env:"LOG_LEVEL"`
	DrainTimeout          time.Duration `env:"DRAIN_TIMEOUT"`
	EnableTelemetry       bool          `env:"ENABLE_TELEMETRY"`
	OtelCollectorEndpoint string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OtelServiceName       string        `env:"OTEL_SERVICE_NAME"`
}

func defaultConfig() *Config {
	return &Config{
		Port:                  defaultPort,
		Environment:           defaultEnvironment,
		OtelCollectorEndpoint: defaultOTelEndpoint,
		OtelServiceName:       ApplicationName,
	}
}

// LoadConfig builds the configuration from defaults, then the environment,
// then the command line flags in args. Only flags actually set override.
// A --help request returns flag.ErrHelp.
func LoadConfig(args []string) (*Config, error) {
	cfg := defaultConfig()

	if err := pkg.SetConfigFromEnvVars(cfg); err != nil {
		return nil, fmt.Errorf("load config from environment: %w", err)
	}

	fs := flag.NewFlagSet(ApplicationName, flag.ContinueOnError)
	port := fs.Int("port", cfg.Port, "TCP port to listen on (env PORT)")
	env := fs.String("env", cfg.Environment, "environment name (env NODE_ENV)")
	drain := fs.Duration("drain-timeout", cfg.DrainTimeout, "upper bound on draining in-flight requests, 0 waits forever (env DRAIN_TIMEOUT)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if fs.Changed("port") {
		cfg.Port = *port
	}

	if fs.Changed("env") {
		cfg.Environment = *env
	}

	if fs.Changed("drain-timeout") {
		cfg.DrainTimeout = *drain
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the fields that can be set to unusable values, and the CORS
// origins the router's middleware would reject at startup.
func (cfg *Config) Validate() error {
	if cfg.Port < 0 || cfg.Port > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidPort, cfg.Port)
	}

	if cfg.DrainTimeout < 0 {
		return fmt.Errorf("%w: %s", ErrNegativeDrainTimeout, cfg.DrainTimeout)
	}

	if err := http.ValidateCORSOrigins(http.CORSAllowedOrigins()); err != nil {
		return fmt.Errorf("env ACCESS_CONTROL_ALLOW_ORIGIN: %w", err)
	}

	return nil
}
