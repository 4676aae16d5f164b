package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"explorer/internal/engine"
	"explorer/internal/query"
)

// Error codes returned in ErrorResponse.Code.
const (
	CodeDataUnavailable = "DATA_UNAVAILABLE"
	CodeInvalidParams   = "INVALID_PARAMS"
	CodeUnknownQuery    = "UNKNOWN_QUERY"
	CodeInternal        = "INTERNAL_ERROR"
)

// ErrLoading is reported until the background load finishes.
var ErrLoading = errors.New("data is still loading")

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ErrLoading), errors.Is(err, engine.ErrDataUnavailable):
		return http.StatusServiceUnavailable, CodeDataUnavailable
	case errors.Is(err, query.ErrInvalidParams):
		return http.StatusBadRequest, CodeInvalidParams
	case errors.Is(err, query.ErrUnknownQuery):
		return http.StatusNotFound, CodeUnknownQuery
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

func (h *Handler) fail(c echo.Context, err error) error {
	status, code := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		h.log.WithError(err).Error("request failed", map[string]interface{}{
			"path": c.Path(),
		})
		msg = "internal error"
	}
	return c.JSON(status, ErrorResponse{Code: code, Message: msg})
}
