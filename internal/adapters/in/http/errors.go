package http

import (
	"errors"
	"log/slog"
	"net/http"

	"procurement/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error kinds reported to clients alongside the HTTP status.
const (
	KindNotFound              = "not_found"
	KindPermissionDenied      = "permission_denied"
	KindInvalidTransition     = "invalid_transition"
	KindConflict              = "conflict"
	KindValidationFailed      = "validation_failed"
	KindDependencyUnavailable = "dependency_unavailable"
	KindUnauthorized          = "unauthorized"
	KindInternal              = "internal"
)

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// classify maps an engine error to a status code and kind. Unknown errors
// are internal.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, KindNotFound
	case errors.Is(err, errs.ErrPermissionDenied):
		return http.StatusForbidden, KindPermissionDenied
	case errors.Is(err, errs.ErrInvalidTransition):
		return http.StatusConflict, KindInvalidTransition
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict, KindConflict
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, KindValidationFailed
	case errors.Is(err, errs.ErrDependencyUnavailable):
		return http.StatusServiceUnavailable, KindDependencyUnavailable
	default:
		return http.StatusInternalServerError, KindInternal
	}
}

// writeError renders err. Internal errors are logged and hidden behind a
// generic message.
func writeError(ctx echo.Context, logger *slog.Logger, err error) error {
	status, kind := classify(err)

	message := err.Error()
	switch status {
	case http.StatusInternalServerError:
		logger.ErrorContext(ctx.Request().Context(), "Request failed",
			"method", ctx.Request().Method, "path", ctx.Path(), "error", err)
		message = "internal server error"
	case http.StatusServiceUnavailable:
		logger.WarnContext(ctx.Request().Context(), "Dependency unavailable",
			"method", ctx.Request().Method, "path", ctx.Path(), "error", err)
	}

	return ctx.JSON(status, errorResponse{
		Code:    status,
		Kind:    kind,
		Message: message,
	})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, errorResponse{
		Code:    http.StatusBadRequest,
		Kind:    KindValidationFailed,
		Message: message,
	})
}

func unauthorized(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusUnauthorized, errorResponse{
		Code:    http.StatusUnauthorized,
		Kind:    KindUnauthorized,
		Message: message,
	})
}
