package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"miniMercado/pkg/logger"
	jsonres "miniMercado/pkg/response"
)

// ErrorHandler is the Echo HTTPErrorHandler of last resort. Anything that
// escapes a handler is logged server-side and collapsed into a generic
// response so no internal detail reaches the caller.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "internal server error"

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		}
	}

	if code == http.StatusInternalServerError {
		logger.Error("Unhandled request error", err)
		message = "internal server error"
	}

	if err := c.JSON(code, jsonres.Error("ERROR", message, nil)); err != nil {
		logger.Error("Failed to write error response", err)
	}
}
