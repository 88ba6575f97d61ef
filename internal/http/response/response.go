package response

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/yungbote/stock-gateway/internal/platform/apierr"
)

// ContextKeyErrorCode is where the machine-readable code of an error
// response is stashed for the request logger.
const ContextKeyErrorCode = "error_code"

type ErrorEnvelope struct {
	Detail string `json:"detail"`
}

// FieldError describes one failed form/body field. The shape follows the
// usual {"loc","msg","type"} convention so clients can treat all 422s alike.
type FieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

type ValidationEnvelope struct {
	Detail []FieldError `json:"detail"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	if code != "" {
		c.Set(ContextKeyErrorCode, code)
	}
	c.AbortWithStatusJSON(status, ErrorEnvelope{Detail: msg})
}

// RespondAPIError renders err with the status and code it carries. Untyped
// errors become a bare 500 so their text never reaches the client.
func RespondAPIError(c *gin.Context, err error) {
	var ae *apierr.Error
	if errors.As(err, &ae) {
		RespondError(c, apierr.StatusOf(ae), ae.Code, ae)
		return
	}
	_ = c.Error(err)
	RespondError(c, http.StatusInternalServerError, "internal_error", errors.New("Internal server error"))
}

// RespondValidation answers 422 for request-shape failures detected by gin
// binding.
func RespondValidation(c *gin.Context, location string, errs validator.ValidationErrors) {
	out := make([]FieldError, 0, len(errs))
	for _, fe := range errs {
		out = append(out, fieldError(location, fe))
	}
	c.Set(ContextKeyErrorCode, "request_validation")
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, ValidationEnvelope{Detail: out})
}

// RespondMissing answers 422 for a required part that could not even be
// bound, e.g. a non-multipart body on a file endpoint.
func RespondMissing(c *gin.Context, location string, field string) {
	c.Set(ContextKeyErrorCode, "request_validation")
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, ValidationEnvelope{Detail: []FieldError{
		{Loc: []string{location, field}, Msg: "Field required", Type: "missing"},
	}})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func fieldError(location string, fe validator.FieldError) FieldError {
	name := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return FieldError{Loc: []string{location, name}, Msg: "Field required", Type: "missing"}
	default:
		return FieldError{Loc: []string{location, name}, Msg: fe.Error(), Type: fe.Tag()}
	}
}
