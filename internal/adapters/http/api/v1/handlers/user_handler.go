package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/example/audio-service/internal/usecase"
	res "github.com/example/audio-service/pkg/http"
)

type UserHandler struct {
	service usecase.Service
}

func NewUserHandler(s usecase.Service) *UserHandler { return &UserHandler{service: s} }

type updateMeRequest struct {
	Username string `json:"username"`
}

func (h *UserHandler) Me(c echo.Context) error {
	user := currentUser(c)
	if user == nil {
		return res.ErrorJSON(c, http.StatusUnauthorized, "unauthorized", "missing user context", requestIDFromCtx(c), nil)
	}
	return res.JSON(c, http.StatusOK, user)
}

func (h *UserHandler) GetByID(c echo.Context) error {
	actor := currentUser(c)
	if actor == nil {
		return res.ErrorJSON(c, http.StatusUnauthorized, "unauthorized", "missing user context", requestIDFromCtx(c), nil)
	}
	user, err := h.service.GetUser(c.Request().Context(), requestIDFromCtx(c), actor, c.Param("id"))
	if err != nil {
		status, errCode := errorStatus(err)
		return res.ErrorJSON(c, status, errCode, err.Error(), requestIDFromCtx(c), nil)
	}
	return res.JSON(c, http.StatusOK, user)
}

func (h *UserHandler) UpdateMe(c echo.Context) error {
	user := currentUser(c)
	if user == nil {
		return res.ErrorJSON(c, http.StatusUnauthorized, "unauthorized", "missing user context", requestIDFromCtx(c), nil)
	}
	req := new(updateMeRequest)
	if err := c.Bind(req); err != nil {
		return res.ErrorJSON(c, http.StatusBadRequest, "bad_request", "invalid payload", requestIDFromCtx(c), nil)
	}
	if strings.TrimSpace(req.Username) == "" {
		return res.ErrorJSON(c, http.StatusBadRequest, "bad_request", "username required", requestIDFromCtx(c), nil)
	}
	updated, err := h.service.UpdateUsername(c.Request().Context(), requestIDFromCtx(c), user, req.Username)
	if err != nil {
		status, errCode := errorStatus(err)
		return res.ErrorJSON(c, status, errCode, err.Error(), requestIDFromCtx(c), nil)
	}
	return res.JSON(c, http.StatusOK, updated)
}

func (h *UserHandler) Delete(c echo.Context) error {
	actor := currentUser(c)
	if actor == nil {
		return res.ErrorJSON(c, http.StatusUnauthorized, "unauthorized", "missing user context", requestIDFromCtx(c), nil)
	}
	if err := h.service.DeleteUser(c.Request().Context(), requestIDFromCtx(c), actor, c.Param("id")); err != nil {
		status, errCode := errorStatus(err)
		return res.ErrorJSON(c, status, errCode, err.Error(), requestIDFromCtx(c), nil)
	}
	return res.JSON(c, http.StatusOK, map[string]string{"message": "user deleted"})
}
