package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trimsync/barbershop-api/internal/apperr"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// From maps a business error to its HTTP shape. Cross-tenant references come
// out as a plain 404 so responses never reveal whether the entity exists in
// another barbershop.
func From(c *gin.Context, err error) {
	var ae *apperr.Error
	if !errors.As(err, &ae) {
		Internal(c, "internal_error", "unexpected error")
		return
	}

	switch ae.Kind {
	case apperr.KindValidation:
		BadRequest(c, ae.Code, ae.Message)
	case apperr.KindConflict:
		Conflict(c, ae.Code, ae.Message)
	case apperr.KindInvalidTransition:
		Conflict(c, ae.Code, ae.Message)
	case apperr.KindCrossTenant:
		NotFound(c, ae.Code, ae.Message)
	case apperr.KindNotFound:
		NotFound(c, ae.Code, ae.Message)
	case apperr.KindUnauthorized:
		Unauthorized(c, ae.Code, ae.Message)
	default:
		Internal(c, "internal_error", "unexpected error")
	}
}
