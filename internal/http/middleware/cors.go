package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yungbote/stock-gateway/internal/config"
	"github.com/yungbote/stock-gateway/internal/platform/logger"
)

// CORS allows credentials and every method and header from the configured
// origins. Entries gin-contrib/cors would reject (no http:// or https://
// scheme) are dropped with a warning; "*" allows any origin.
//
// Browsers do not treat "*" in Access-Control-Allow-Headers as a wildcard on
// credentialed requests, so preflights get the requested headers echoed back.
func CORS(origins []string, log *logger.Logger) gin.HandlerFunc {
	policy := corsPolicy(origins, log)
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			if requested := c.GetHeader("Access-Control-Request-Headers"); requested != "" {
				c.Writer = &echoHeadersWriter{ResponseWriter: c.Writer, requested: requested}
			}
		}
		policy(c)
	}
}

func corsPolicy(origins []string, log *logger.Logger) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowHeaders: []string{
			"Origin",
			"Accept",
			"Content-Type",
			"Authorization",
			headerRequestID,
			headerTraceID,
		},
		ExposeHeaders:    []string{headerRequestID, headerTraceID},
		AllowCredentials: true,
		MaxAge:           10 * time.Minute,
	}

	var allowed []string
	for _, o := range origins {
		o = strings.TrimSpace(o)
		switch {
		case o == "*":
			cfg.AllowAllOrigins = true
		case strings.HasPrefix(o, "http://"), strings.HasPrefix(o, "https://"):
			allowed = append(allowed, strings.TrimRight(o, "/"))
		case o != "" && log != nil:
			log.Warn("ignoring CORS origin without http(s) scheme", "origin", o)
		}
	}

	if cfg.AllowAllOrigins {
		return cors.New(cfg)
	}
	if len(allowed) == 0 {
		allowed = config.DefaultCORSOrigins()
	}
	cfg.AllowOrigins = allowed
	return cors.New(cfg)
}

// echoHeadersWriter swaps the static allow-headers list for the preflight's
// requested headers just before the status line goes out. Rejected origins
// carry no Access-Control-Allow-Origin and are left alone.
type echoHeadersWriter struct {
	gin.ResponseWriter
	requested string
	done      bool
}

func (w *echoHeadersWriter) echo() {
	if w.done {
		return
	}
	w.done = true
	h := w.ResponseWriter.Header()
	if h.Get("Access-Control-Allow-Origin") == "" {
		return
	}
	h.Set("Access-Control-Allow-Headers", w.requested)
	if !strings.Contains(strings.Join(h.Values("Vary"), ","), "Access-Control-Request-Headers") {
		h.Add("Vary", "Access-Control-Request-Headers")
	}
}

func (w *echoHeadersWriter) WriteHeader(code int) {
	w.echo()
	w.ResponseWriter.WriteHeader(code)
}

func (w *echoHeadersWriter) WriteHeaderNow() {
	w.echo()
	w.ResponseWriter.WriteHeaderNow()
}

func (w *echoHeadersWriter) Write(b []byte) (int, error) {
	w.echo()
	return w.ResponseWriter.Write(b)
}
