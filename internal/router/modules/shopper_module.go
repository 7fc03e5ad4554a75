package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/citymarket/citymarket/internal/container"
	repo "github.com/citymarket/citymarket/internal/domain/repository"
	handlers "github.com/citymarket/citymarket/internal/interface/http"
	"github.com/citymarket/citymarket/internal/interface/middleware"
	"github.com/citymarket/citymarket/pkg/helpers"
)

// ShopperModule wires the shopper dashboard behind the session and role
// guards.
type ShopperModule struct {
	Handler  *handlers.ShopperHandler
	JWT      *helpers.JWTManager
	Profiles repo.ProfileRepository
}

func NewShopperModule(h *handlers.ShopperHandler, jwt *helpers.JWTManager, profiles repo.ProfileRepository) *ShopperModule {
	return &ShopperModule{Handler: h, JWT: jwt, Profiles: profiles}
}

func (m *ShopperModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/user")
	g.Use(
		middleware.Session(container.GetRedis(), m.JWT),
		middleware.RequireShopper(m.Profiles),
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByAccountID(), nil),
	)
	{
		g.GET("/dashboard/", m.Handler.Dashboard)
	}
}
