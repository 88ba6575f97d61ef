package app

import (
	httpH "github.com/yungbote/stock-gateway/internal/http/handlers"
	"github.com/yungbote/stock-gateway/internal/platform/logger"
)

type Handlers struct {
	Health *httpH.HealthHandler
	Upload *httpH.UploadHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health: httpH.NewHealthHandler(),
		Upload: httpH.NewUploadHandler(log, services.Pipeline),
	}
}
