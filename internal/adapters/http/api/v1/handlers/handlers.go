package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/example/audio-service/internal/adapters/yandex"
	"github.com/example/audio-service/internal/domain"
	"github.com/example/audio-service/internal/usecase"
)

// errorStatus maps service errors to an HTTP status and stable error code.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, usecase.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, usecase.ErrInactiveUser):
		return http.StatusForbidden, "inactive_user"
	case errors.Is(err, usecase.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, usecase.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, usecase.ErrUnsupportedFileType):
		return http.StatusBadRequest, "unsupported_file_type"
	case errors.Is(err, yandex.ErrProfileIncomplete):
		return http.StatusBadRequest, "profile_incomplete"
	case errors.Is(err, yandex.ErrExchangeFailed):
		return http.StatusBadRequest, "oauth_exchange_failed"
	case errors.Is(err, usecase.ErrStorageWrite):
		return http.StatusInternalServerError, "storage_write_failed"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

func currentUser(c echo.Context) *domain.User {
	user, _ := c.Get("user").(*domain.User)
	return user
}

func requestIDFromCtx(c echo.Context) string {
	if reqID := c.Response().Header().Get(echo.HeaderXRequestID); reqID != "" {
		return reqID
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}
