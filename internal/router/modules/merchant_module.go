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

// MerchantModule wires the merchant-only pages behind the session and
// role guards.
type MerchantModule struct {
	Handler  *handlers.MerchantHandler
	JWT      *helpers.JWTManager
	Profiles repo.ProfileRepository
}

func NewMerchantModule(h *handlers.MerchantHandler, jwt *helpers.JWTManager, profiles repo.ProfileRepository) *MerchantModule {
	return &MerchantModule{Handler: h, JWT: jwt, Profiles: profiles}
}

func (m *MerchantModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/merchant")
	g.Use(
		middleware.Session(container.GetRedis(), m.JWT),
		middleware.RequireMerchant(m.Profiles),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByAccountID(), nil),
	)
	{
		g.GET("/dashboard/", m.Handler.Dashboard)
		g.GET("/register-shop/", m.Handler.RegisterShopForm)
		g.POST("/register-shop/", m.Handler.RegisterShop)
		g.GET("/add-product/", m.Handler.AddProductForm)
		g.POST("/add-product/", m.Handler.AddProduct)
		g.GET("/view-products/", m.Handler.ViewProducts)
		g.POST("/view-products/", m.Handler.DeleteProduct)
		g.GET("/edit-product/:id/", m.Handler.EditProductForm)
		g.POST("/edit-product/:id/", m.Handler.EditProduct)
	}
}
