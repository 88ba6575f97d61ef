package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/stock-gateway/internal/config"
	apphttp "github.com/yungbote/stock-gateway/internal/http"
	"github.com/yungbote/stock-gateway/internal/platform/logger"
	"github.com/yungbote/stock-gateway/internal/workerapi"
)

func ginMode(cfg *config.Config) {
	switch cfg.Env {
	case "prod", "production":
		gin.SetMode(gin.ReleaseMode)
	}
}

func wireGatewayRouter(cfg *config.Config, log *logger.Logger, services Services, handlers Handlers) *gin.Engine {
	ginMode(cfg)
	return apphttp.NewRouter(apphttp.RouterConfig{
		Log:            log,
		ServiceName:    cfg.OTel.ServiceName,
		Metrics:        services.Metrics,
		CORSOrigins:    cfg.CORS.Origins,
		MaxUploadBytes: cfg.HTTP.MaxUploadBytes,
		HealthHandler:  handlers.Health,
		UploadHandler:  handlers.Upload,
	})
}

func wireWorkerRouter(cfg *config.Config, log *logger.Logger, services Services) *gin.Engine {
	ginMode(cfg)
	return workerapi.NewRouter(workerapi.RouterConfig{
		Log:            log,
		ServiceName:    cfg.OTel.ServiceName,
		Engine:         services.Engine,
		Metrics:        services.Metrics,
		MaxUploadBytes: cfg.HTTP.MaxUploadBytes,
	})
}
