package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hospital/records/internal/domain"
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// ErrorHandler translates domain errors into HTTP responses. Unknown errors
// become a logged 500 with a generic message.
func ErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := classify(err)
		if status >= http.StatusInternalServerError {
			logger.Error().
				Err(err).
				Str("request_id", requestID(c)).
				Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Msg("unhandled error")
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			logger.Error().Err(writeErr).Str("request_id", requestID(c)).Msg("write error response")
		}
	}
}

func classify(err error) (int, ErrorResponse) {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.Internal != nil {
			if status, body := classify(httpErr.Internal); status != http.StatusInternalServerError {
				return status, body
			}
		}
		msg, ok := httpErr.Message.(string)
		if !ok {
			msg = fmt.Sprint(httpErr.Message)
		}
		if httpErr.Code >= http.StatusInternalServerError {
			msg = http.StatusText(httpErr.Code)
		}
		return httpErr.Code, ErrorResponse{Message: msg}
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ErrorResponse{Message: "validation failed", Errors: ve.Fields()}
	}

	msg := err.Error()
	var de *domain.Error
	if errors.As(err, &de) {
		msg = de.Message
	}

	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrAlreadyExists):
		return http.StatusBadRequest, ErrorResponse{Message: msg}
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, ErrorResponse{Message: msg}
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, ErrorResponse{Message: msg}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, ErrorResponse{Message: msg}
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, ErrorResponse{Message: "request timed out"}
	}
	return http.StatusInternalServerError, ErrorResponse{Message: "internal server error"}
}
