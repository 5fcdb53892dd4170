package response

import (
	"net/http"
	"os"

	"github.com/labstack/echo/v4"

	"SchoolBridge/internal/apperr"
)

// Envelope is the uniform JSON body for every endpoint.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func OK(c echo.Context, message string, data interface{}) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

func Created(c echo.Context, message string, data interface{}) error {
	return c.JSON(http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

// Error converts a classified error into the envelope with the matching
// HTTP status. Internal error detail is only exposed outside production.
func Error(c echo.Context, err error) error {
	status := statusOf(apperr.KindOf(err))
	message := apperr.Message(err)
	if status == http.StatusInternalServerError && os.Getenv("APP_ENV") != "production" {
		message = err.Error()
	}
	return c.JSON(status, Envelope{Success: false, Message: message})
}

func statusOf(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation, apperr.KindConflict:
		return http.StatusBadRequest
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
