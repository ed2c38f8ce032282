package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
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

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// From maps a use-case error onto the HTTP response. Business errors keep
// their code and message; anything else is surfaced as a generic failure.
func From(c *gin.Context, err error) {
	var be BusinessError
	if errors.As(err, &be) {
		switch be.Kind {
		case KindNotFound:
			NotFound(c, be.Code, be.Message)
		case KindValidation:
			BadRequest(c, be.Code, be.Message)
		default:
			Internal(c, be.Code, be.Message)
		}
		return
	}
	Internal(c, "internal_error", "Something went wrong.")
}
