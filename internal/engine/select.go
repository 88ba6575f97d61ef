package engine

import (
	"fmt"
	"strings"

	"github.com/yungbote/stock-gateway/internal/config"
	"github.com/yungbote/stock-gateway/internal/engine/local"
	"github.com/yungbote/stock-gateway/internal/engine/workerhttp"
	"github.com/yungbote/stock-gateway/internal/platform/clock"
	"github.com/yungbote/stock-gateway/internal/platform/logger"
)

// New picks the engine named by cfg.Aggregation.Mode.
func New(cfg *config.Config, log *logger.Logger) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Aggregation.Mode)) {
	case config.ModeLocal:
		return local.New(clock.System{}), nil
	case config.ModeWorker, "":
		return workerhttp.New(workerhttp.Options{
			BaseURL: cfg.Worker.URL,
			Timeout: cfg.Worker.Timeout.Duration,
			Log:     log,
		})
	default:
		return nil, fmt.Errorf("unsupported aggregation mode %q", cfg.Aggregation.Mode)
	}
}
