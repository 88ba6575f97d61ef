package workerapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yungbote/stock-gateway/internal/engine"
	httpMW "github.com/yungbote/stock-gateway/internal/http/middleware"
	"github.com/yungbote/stock-gateway/internal/observability"
	"github.com/yungbote/stock-gateway/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	ServiceName    string
	Engine         engine.Engine
	Metrics        *observability.Metrics
	MaxUploadBytes int64
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))

	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	h := NewProcessHandler(cfg.Log, cfg.Engine)
	r.POST("/process", httpMW.LimitBody(cfg.MaxUploadBytes), h.Process)

	return r
}
