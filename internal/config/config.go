package config

import (
	"flag"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/ilyakaznacheev/cleanenv"
)

// Telemetry exporters.
const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

// EnvLocal switches logging to the human-readable development encoder.
const EnvLocal = "local"

// Config is the service configuration. Values come from an optional YAML file
// and are overridden by environment variables.
type Config struct {
	Env       string          `yaml:"env" env:"APP_ENV" env-default:"production"`
	LogLevel  string          `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	HTTP      HTTPConfig      `yaml:"http"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

type HTTPConfig struct {
	Host              string        `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port              int           `yaml:"port" env:"HTTP_PORT" env-default:"5000"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout" env:"HTTP_READ_HEADER_TIMEOUT" env-default:"5s"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

// Addr returns the host:port the server listens on.
func (c HTTPConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

type TelemetryConfig struct {
	// Exporter is one of: none | stdout | otlp. The OTLP exporters read
	// their endpoint from the standard OTEL_EXPORTER_OTLP_* variables.
	Exporter    string `yaml:"exporter" env:"TELEMETRY_EXPORTER" env-default:"none"`
	ServiceName string `yaml:"service_name" env:"OTEL_SERVICE_NAME" env-default:"calculator-service"`
}

// Load reads the config file at path, or only the environment when path is
// empty, and validates the result.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, errors.Wrap(err, "config: read env")
		}
	} else {
		if _, err := os.Stat(path); err != nil {
			return nil, errors.Wrapf(err, "config: stat %s", path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, errors.Wrapf(err, "config: read %s", path)
		}
	}

	if err := validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "config")
	}

	return &cfg, nil
}

// MustLoad loads the config from the --config flag or CONFIG_PATH and panics
// on failure. It returns the path used, empty when only the environment was read.
func MustLoad() (*Config, string) {
	path := fetchConfigPath()

	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}

	return cfg, path
}

func fetchConfigPath() string {
	var res string

	// --config="config/local.yaml"
	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}

func validate(cfg *Config) error {
	if cfg.HTTP.Port < 1 || cfg.HTTP.Port > 65535 {
		return errors.Newf("http.port %d out of range", cfg.HTTP.Port)
	}

	switch cfg.Telemetry.Exporter {
	case ExporterNone, ExporterStdout, ExporterOTLP:
	default:
		return errors.Newf("telemetry.exporter %q must be one of none, stdout, otlp", cfg.Telemetry.Exporter)
	}

	if cfg.HTTP.ShutdownTimeout <= 0 {
		return errors.New("http.shutdown_timeout must be positive")
	}

	return nil
}
