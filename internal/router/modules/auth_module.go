package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/citymarket/citymarket/internal/container"
	handlers "github.com/citymarket/citymarket/internal/interface/http"
	"github.com/citymarket/citymarket/internal/interface/middleware"
)

// AuthModule wires the public entry points: registration, login, logout,
// token refresh and the home redirect.
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	refreshLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), nil)

	rg.GET("/register/", m.Handler.RegisterForm)
	rg.POST("/register/", registerLimiter, m.Handler.Register)
	rg.GET("/login/", m.Handler.LoginForm)
	rg.POST("/login/", loginLimiter, m.Handler.Login)
	rg.GET("/logout/", m.Handler.Logout)
	rg.POST("/refresh", refreshLimiter, m.Handler.Refresh)
	rg.GET("/", m.Handler.Home)
}
