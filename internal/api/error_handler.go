package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/flatfinder/flatfinder-api/internal/core/domain"
)

// errorResponse is the body of every 4xx and 5xx response.
type errorResponse struct {
	Error string `json:"error"`
}

var kindStatus = map[error]int{
	domain.ErrUnauthenticated: http.StatusUnauthorized,
	domain.ErrForbidden:       http.StatusForbidden,
	domain.ErrNotFound:        http.StatusNotFound,
	domain.ErrConflict:        http.StatusConflict,
	domain.ErrInvalidInput:    http.StatusBadRequest,
}

// NewHTTPErrorHandler renders domain errors with the status of their kind.
// Errors without a kind are logged and reported as a bare 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := statusFor(err)
		if code == http.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
				Msg("unhandled error")
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func statusFor(err error) (int, string) {
	// Router 404/405 and anything a middleware raised through echo.
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprint(he.Message)
	}
	if kind := domain.KindOf(err); kind != nil {
		return kindStatus[kind], domain.MessageOf(err)
	}
	return http.StatusInternalServerError, "internal server error"
}
