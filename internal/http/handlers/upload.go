package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/yungbote/stock-gateway/internal/http/response"
	"github.com/yungbote/stock-gateway/internal/platform/logger"
	"github.com/yungbote/stock-gateway/internal/stocks"
)

// Processor is the upload pipeline as seen by the handler.
type Processor interface {
	Process(ctx context.Context, filename string, content []byte) (*stocks.Summary, error)
}

type uploadForm struct {
	File *multipart.FileHeader `form:"file" binding:"required"`
}

type UploadHandler struct {
	log      *logger.Logger
	pipeline Processor
}

func NewUploadHandler(log *logger.Logger, pipeline Processor) *UploadHandler {
	if log == nil {
		log = logger.NewNop()
	}
	return &UploadHandler{
		log:      log.With("handler", "UploadHandler"),
		pipeline: pipeline,
	}
}

// Upload handles POST /upload with a multipart "file" part holding a JSON
// array of stock records.
func (h *UploadHandler) Upload(c *gin.Context) {
	var form uploadForm
	if err := c.ShouldBindWith(&form, binding.FormMultipart); err != nil {
		h.respondBindError(c, err)
		return
	}

	content, err := readPart(form.File)
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			response.RespondError(c, http.StatusRequestEntityTooLarge, "upload_too_large", fmt.Errorf("Upload exceeds %d bytes", mbe.Limit))
			return
		}
		h.log.Error("read upload part failed", "filename", form.File.Filename, "error", err)
		response.RespondError(c, http.StatusBadRequest, "unreadable_upload", errors.New("Could not read uploaded file"))
		return
	}

	summary, err := h.pipeline.Process(c.Request.Context(), form.File.Filename, content)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, summary)
}

func (h *UploadHandler) respondBindError(c *gin.Context, err error) {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		response.RespondError(c, http.StatusRequestEntityTooLarge, "upload_too_large", fmt.Errorf("Upload exceeds %d bytes", mbe.Limit))
		return
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		response.RespondValidation(c, "body", ve)
		return
	}
	// Not multipart at all, or a broken multipart envelope: the file part is
	// as good as missing.
	h.log.Debug("multipart bind failed", "error", err)
	response.RespondMissing(c, "body", "file")
}

func readPart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
