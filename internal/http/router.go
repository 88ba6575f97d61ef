package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/stock-gateway/internal/http/handlers"
	httpMW "github.com/yungbote/stock-gateway/internal/http/middleware"
	"github.com/yungbote/stock-gateway/internal/observability"
	"github.com/yungbote/stock-gateway/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	ServiceName string
	Metrics     *observability.Metrics

	CORSOrigins    []string
	MaxUploadBytes int64

	HealthHandler *httpH.HealthHandler
	UploadHandler *httpH.UploadHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.CORSOrigins, cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))

	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/", cfg.HealthHandler.Root)
		r.GET("/health", cfg.HealthHandler.HealthCheck)
	}

	// Upload
	if cfg.UploadHandler != nil {
		r.POST("/upload", httpMW.LimitBody(cfg.MaxUploadBytes), cfg.UploadHandler.Upload)
	}

	return r
}
