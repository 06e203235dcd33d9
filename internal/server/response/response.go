// Package response shapes every HTTP reply as the {statusCode, message, data}
// envelope and maps domain error kinds to status codes 1:1.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shelllbyyyyyy/authcore/internal/apperr"
)

// Body is the response envelope.
type Body struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data"`
}

// JSON writes the envelope with the given status.
func JSON(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Body{StatusCode: status, Message: message, Data: data})
}

// Error writes the envelope for a failed operation. Domain errors carry their
// own message; anything else is a server-side fault and surfaces generically.
func Error(c *gin.Context, err error) {
	status, message := statusMessage(err)
	c.JSON(status, Body{StatusCode: status, Message: message, Data: nil})
}

// AbortError is Error for middleware: it also aborts the handler chain.
func AbortError(c *gin.Context, err error) {
	status, message := statusMessage(err)
	c.AbortWithStatusJSON(status, Body{StatusCode: status, Message: message, Data: nil})
}

// BadRequest writes a 400 envelope, used for payload binding failures.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Body{StatusCode: http.StatusBadRequest, Message: message, Data: nil})
}

func statusMessage(err error) (int, string) {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		return http.StatusNotFound, err.Error()
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized, err.Error()
	case apperr.KindConflict:
		return http.StatusConflict, err.Error()
	case apperr.KindInvalidInput:
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "Something went wrong"
	}
}

// Status returns the HTTP status an error maps to, for logging.
func Status(err error) int {
	status, _ := statusMessage(err)
	return status
}
