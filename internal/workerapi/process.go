// Package workerapi is the HTTP face of the aggregation worker: POST /process
// takes {"records": [...]} and answers with a success/error envelope.
package workerapi

import (
	"errors"
	"net/http"
	"unicode"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/stock-gateway/internal/engine"
	"github.com/yungbote/stock-gateway/internal/platform/ctxutil"
	"github.com/yungbote/stock-gateway/internal/platform/logger"
	"github.com/yungbote/stock-gateway/internal/stocks"
)

type processBody struct {
	Records *[]stocks.Record `json:"records" binding:"required"`
}

type ProcessHandler struct {
	log    *logger.Logger
	engine engine.Engine
}

func NewProcessHandler(log *logger.Logger, eng engine.Engine) *ProcessHandler {
	if log == nil {
		log = logger.NewNop()
	}
	return &ProcessHandler{log: log.With("handler", "ProcessHandler"), engine: eng}
}

// Process answers 200 for both aggregated summaries and rejected input; the
// envelope's success flag tells them apart. Only an unreadable request body
// or an unexpected failure changes the status.
func (h *ProcessHandler) Process(c *gin.Context) {
	var body processBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, stocks.Envelope{Error: "invalid request body: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	summary, err := h.engine.Aggregate(ctx, *body.Records)
	if err != nil {
		var ve *stocks.ValidationError
		if errors.As(err, &ve) {
			h.log.Info("records rejected", "request_id", ctxutil.RequestID(ctx), "kind", string(ve.Kind), "error", ve.Error())
			c.JSON(http.StatusOK, stocks.Envelope{Error: lowerFirst(ve.Error())})
			return
		}
		h.log.Error("aggregation failed", "request_id", ctxutil.RequestID(ctx), "error", err)
		c.JSON(http.StatusInternalServerError, stocks.Envelope{Error: "internal error"})
		return
	}

	c.JSON(http.StatusOK, stocks.Envelope{Success: true, Data: summary})
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
