package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	repo "github.com/example/audio-service/internal/adapters/postgres"
	"github.com/example/audio-service/internal/usecase"
	res "github.com/example/audio-service/pkg/http"
)

// AuthMiddleware resolves the bearer token to a usable account. Anything
// beyond authentication (ownership, superuser) is checked per-endpoint.
type AuthMiddleware struct {
	signer usecase.JWTSigner
	users  repo.UserRepository
}

func NewAuthMiddleware(signer usecase.JWTSigner, users repo.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{signer: signer, users: users}
}

func (m *AuthMiddleware) Handler(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authz := c.Request().Header.Get(echo.HeaderAuthorization)
		parts := strings.SplitN(authz, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return res.ErrorJSON(c, http.StatusUnauthorized, "unauthorized", "missing token", requestIDFromCtx(c), nil)
		}
		tok, claims, err := m.signer.Parse(parts[1])
		if err != nil || tok == nil || !tok.Valid {
			return res.ErrorJSON(c, http.StatusUnauthorized, "unauthorized", "invalid token", requestIDFromCtx(c), nil)
		}
		sub, _ := claims["sub"].(string)
		if sub == "" {
			return res.ErrorJSON(c, http.StatusUnauthorized, "unauthorized", "subject missing", requestIDFromCtx(c), nil)
		}
		user, err := m.users.FindByID(c.Request().Context(), sub)
		if err != nil {
			return res.ErrorJSON(c, http.StatusUnauthorized, "unauthorized", "user not found", requestIDFromCtx(c), nil)
		}
		if !user.IsActive {
			return res.ErrorJSON(c, http.StatusForbidden, "inactive_user", "account is inactive", requestIDFromCtx(c), nil)
		}
		c.Set("user", user)
		c.Set("user_id", user.ID)
		return next(c)
	}
}

func requestIDFromCtx(c echo.Context) string {
	if reqID := c.Response().Header().Get(echo.HeaderXRequestID); reqID != "" {
		return reqID
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}
