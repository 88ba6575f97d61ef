package config

import "time"

const (
	ModeLocal  = "local"
	ModeWorker = "worker"
)

// Duration decodes from "15s"-style strings or a bare number of seconds.
type Duration struct {
	Duration time.Duration
}

type HTTPConfig struct {
	Addr              string   `yaml:"addr"`
	ReadHeaderTimeout Duration `yaml:"read_header_timeout"`
	IdleTimeout       Duration `yaml:"idle_timeout"`
	ShutdownTimeout   Duration `yaml:"shutdown_timeout"`

	// MaxUploadBytes caps the multipart body accepted by POST /upload.
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`
}

type CORSConfig struct {
	Origins []string `yaml:"origins"`
}

type WorkerConfig struct {
	URL     string   `yaml:"url"`
	Timeout Duration `yaml:"timeout"`
}

type AggregationConfig struct {
	// Mode is "local" (aggregate in-process) or "worker" (delegate over HTTP).
	Mode string `yaml:"mode"`
}

type OTelConfig struct {
	Enabled     bool    `yaml:"enabled"`
	ServiceName string  `yaml:"service_name"`
	Endpoint    string  `yaml:"endpoint"`
	Insecure    bool    `yaml:"insecure"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

type MetricsConfig struct {
	// Enabled exposes Prometheus text at GET /metrics.
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	Env         string            `yaml:"env"`
	HTTP        HTTPConfig        `yaml:"http"`
	CORS        CORSConfig        `yaml:"cors"`
	Worker      WorkerConfig      `yaml:"worker"`
	Aggregation AggregationConfig `yaml:"aggregation"`
	OTel        OTelConfig        `yaml:"otel"`
	Metrics     MetricsConfig     `yaml:"metrics"`
}
