package v1

import (
	"github.com/labstack/echo/v4"

	"github.com/example/audio-service/internal/adapters/http/api/v1/handlers"
)

type Router struct {
	auth   *handlers.AuthHandler
	users  *handlers.UserHandler
	audio  *handlers.AudioHandler
	authMW echo.MiddlewareFunc
}

func NewRouter(auth *handlers.AuthHandler, users *handlers.UserHandler, audio *handlers.AudioHandler, authMW echo.MiddlewareFunc) *Router {
	return &Router{auth: auth, users: users, audio: audio, authMW: authMW}
}

func (r *Router) Register(g *echo.Group) {
	g.GET("/auth/yandex", r.auth.YandexStart)
	g.GET("/auth/yandex/callback", r.auth.YandexCallback)

	protected := g.Group("", r.authMW)
	protected.GET("/users/me", r.users.Me)
	protected.PATCH("/users/me", r.users.UpdateMe)
	protected.GET("/users/:id", r.users.GetByID)
	protected.DELETE("/users/:id", r.users.Delete)
	protected.POST("/audio/upload", r.audio.Upload)
	protected.GET("/audio/files", r.audio.List)
	protected.POST("/token/refresh", r.auth.Refresh)
}
