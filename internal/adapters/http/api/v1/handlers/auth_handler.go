package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/example/audio-service/internal/adapters/yandex"
	"github.com/example/audio-service/internal/usecase"
	res "github.com/example/audio-service/pkg/http"
)

const stateCookieName = "oauth_state"

type AuthHandler struct {
	service usecase.Service
}

func NewAuthHandler(s usecase.Service) *AuthHandler { return &AuthHandler{service: s} }

// YandexStart redirects to the provider authorization page. The csrf state
// is parked in a short-lived cookie and checked on callback.
func (h *AuthHandler) YandexStart(c echo.Context) error {
	state, err := yandex.GenerateState()
	if err != nil {
		return res.ErrorJSON(c, http.StatusInternalServerError, "internal_error", "state generation failed", requestIDFromCtx(c), nil)
	}
	c.SetCookie(&http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusTemporaryRedirect, h.service.AuthorizationURL(state))
}

func (h *AuthHandler) YandexCallback(c echo.Context) error {
	state := c.QueryParam("state")
	cookie, err := c.Cookie(stateCookieName)
	if state == "" || err != nil || cookie.Value != state {
		return res.ErrorJSON(c, http.StatusBadRequest, "invalid_state", "state mismatch", requestIDFromCtx(c), nil)
	}
	c.SetCookie(&http.Cookie{Name: stateCookieName, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})

	code := c.QueryParam("code")
	if code == "" {
		return res.ErrorJSON(c, http.StatusBadRequest, "missing_code", "authorization code missing", requestIDFromCtx(c), nil)
	}
	_, tokens, err := h.service.LoginWithYandex(c.Request().Context(), requestIDFromCtx(c), code)
	if err != nil {
		status, errCode := errorStatus(err)
		return res.ErrorJSON(c, status, errCode, err.Error(), requestIDFromCtx(c), nil)
	}
	return res.JSON(c, http.StatusOK, tokens)
}

func (h *AuthHandler) Refresh(c echo.Context) error {
	user := currentUser(c)
	if user == nil {
		return res.ErrorJSON(c, http.StatusUnauthorized, "unauthorized", "missing user context", requestIDFromCtx(c), nil)
	}
	tokens, err := h.service.RefreshToken(c.Request().Context(), requestIDFromCtx(c), user)
	if err != nil {
		status, errCode := errorStatus(err)
		return res.ErrorJSON(c, status, errCode, err.Error(), requestIDFromCtx(c), nil)
	}
	return res.JSON(c, http.StatusOK, tokens)
}
