package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/yungbote/stock-gateway/internal/platform/envutil"
)

const (
	DefaultGatewayAddr = ":8000"
	DefaultWorkerAddr  = ":8080"
	DefaultWorkerURL   = "http://localhost:8080"
	DefaultMaxUpload   = 10 << 20
)

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	s := strings.TrimSpace(node.Value)
	if s == "" || s == "null" || s == "~" {
		d.Duration = 0
		return nil
	}
	if dd, err := time.ParseDuration(s); err == nil {
		d.Duration = dd
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("duration must be a string like \"5s\" or a number of seconds: %q", s)
	}
	d.Duration = time.Duration(f * float64(time.Second))
	return nil
}

func defaultConfig(addr string) *Config {
	return &Config{
		Env: "development",
		HTTP: HTTPConfig{
			Addr:              addr,
			ReadHeaderTimeout: Duration{Duration: 5 * time.Second},
			IdleTimeout:       Duration{Duration: 2 * time.Minute},
			ShutdownTimeout:   Duration{Duration: 15 * time.Second},
			MaxUploadBytes:    DefaultMaxUpload,
		},
		CORS: CORSConfig{Origins: DefaultCORSOrigins()},
		Worker: WorkerConfig{
			URL:     DefaultWorkerURL,
			Timeout: Duration{Duration: 30 * time.Second},
		},
		Aggregation: AggregationConfig{Mode: ModeWorker},
		OTel: OTelConfig{
			ServiceName: "stock-gateway",
			SampleRatio: 0.1,
		},
	}
}

// Load builds the gateway configuration.
func Load() (*Config, error) {
	return load(DefaultGatewayAddr, "stock-gateway")
}

// LoadWorker builds the worker service configuration. It shares every
// setting with the gateway except the listen address and service name.
func LoadWorker() (*Config, error) {
	return load(DefaultWorkerAddr, "stock-worker")
}

// load layers, lowest first: defaults, an optional YAML file named by
// GATEWAY_CONFIG_PATH, then environment variables. A .env file in the
// working directory is read into the environment first without overriding
// variables that are already set.
func load(addr string, service string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := defaultConfig(addr)
	cfg.OTel.ServiceName = service

	if p := strings.TrimSpace(os.Getenv("GATEWAY_CONFIG_PATH")); p != "" {
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", p, err)
		}
	}

	applyEnv(cfg)

	if err := normalize(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Env = envutil.String("LOG_MODE", cfg.Env)
	cfg.HTTP.Addr = envutil.String("HTTP_ADDR", cfg.HTTP.Addr)
	cfg.HTTP.MaxUploadBytes = envutil.Int64("MAX_UPLOAD_BYTES", cfg.HTTP.MaxUploadBytes)
	cfg.HTTP.ShutdownTimeout.Duration = envutil.Duration("SHUTDOWN_TIMEOUT", cfg.HTTP.ShutdownTimeout.Duration)

	if raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS")); raw != "" {
		cfg.CORS.Origins = CORSOrigins(raw)
	}

	cfg.Worker.URL = envutil.String("WORKER_URL", cfg.Worker.URL)
	cfg.Worker.Timeout.Duration = envutil.Seconds("WORKER_TIMEOUT", cfg.Worker.Timeout.Duration)
	cfg.Aggregation.Mode = envutil.String("AGGREGATION_MODE", cfg.Aggregation.Mode)

	cfg.Metrics.Enabled = envutil.Bool("METRICS_ENABLED", cfg.Metrics.Enabled)

	cfg.OTel.Enabled = envutil.Bool("OTEL_ENABLED", cfg.OTel.Enabled)
	cfg.OTel.Endpoint = envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.OTel.Endpoint)
	cfg.OTel.Insecure = envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", cfg.OTel.Insecure)
	if v := strings.TrimSpace(os.Getenv("OTEL_SAMPLER_RATIO")); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.OTel.SampleRatio = f
		}
	}
}

func normalize(cfg *Config) error {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "development"
	}
	if strings.TrimSpace(cfg.HTTP.Addr) == "" {
		return errors.New("http addr is required")
	}
	if cfg.HTTP.MaxUploadBytes <= 0 {
		cfg.HTTP.MaxUploadBytes = DefaultMaxUpload
	}
	if cfg.HTTP.ShutdownTimeout.Duration <= 0 {
		cfg.HTTP.ShutdownTimeout.Duration = 15 * time.Second
	}
	if len(cfg.CORS.Origins) == 0 {
		cfg.CORS.Origins = DefaultCORSOrigins()
	}

	cfg.Worker.URL = strings.TrimRight(strings.TrimSpace(cfg.Worker.URL), "/")
	if cfg.Worker.URL == "" {
		cfg.Worker.URL = DefaultWorkerURL
	}
	if cfg.Worker.Timeout.Duration <= 0 {
		cfg.Worker.Timeout.Duration = 30 * time.Second
	}

	cfg.Aggregation.Mode = strings.ToLower(strings.TrimSpace(cfg.Aggregation.Mode))
	switch cfg.Aggregation.Mode {
	case "":
		cfg.Aggregation.Mode = ModeWorker
	case ModeLocal, ModeWorker:
	default:
		return fmt.Errorf("invalid aggregation mode %q (want %q or %q)", cfg.Aggregation.Mode, ModeLocal, ModeWorker)
	}

	if cfg.OTel.SampleRatio < 0 {
		cfg.OTel.SampleRatio = 0
	}
	if cfg.OTel.SampleRatio > 1 {
		cfg.OTel.SampleRatio = 1
	}
	return nil
}
