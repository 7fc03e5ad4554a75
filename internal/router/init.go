package router

import (
	"github.com/citymarket/citymarket/internal/application"
	"github.com/citymarket/citymarket/internal/container"
	pginfra "github.com/citymarket/citymarket/internal/infrastructure/postgres"
	handlers "github.com/citymarket/citymarket/internal/interface/http"
	"github.com/citymarket/citymarket/internal/router/modules"
	"github.com/citymarket/citymarket/pkg/helpers"
)

// InitModules initializes all application modules and registers them with
// the router registry. Called once during application startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	accounts := pginfra.NewAccountRepository(pool)
	profiles := pginfra.NewProfileRepository(pool)
	shops := pginfra.NewShopRepository(pool)
	products := pginfra.NewProductRepository(pool)
	catalog := pginfra.NewCatalogRepository(pool)

	authSvc := application.NewAuthService(
		accounts,
		profiles,
		container.GetJWT(),
		container.GetRedis(),
		logger,
		container.GetRabbitPub(),
		cfg.MailSendEnabled,
	)
	merchantSvc := application.NewMerchantService(
		shops,
		products,
		helpers.NewGCSImageStore(container.GetGCS(), cfg.GCSBucket),
		logger,
	)
	catalogSvc := application.NewCatalogService(catalog, logger)

	authHandler := handlers.NewAuthHandler(authSvc, logger, cfg.CookieDomain, cfg.CookieSecure)
	merchantHandler := handlers.NewMerchantHandler(merchantSvc, logger)
	shopperHandler := handlers.NewShopperHandler(catalogSvc, logger)

	r.Add(modules.NewAuthModule(authHandler))
	r.Add(modules.NewMerchantModule(merchantHandler, container.GetJWT(), profiles))
	r.Add(modules.NewShopperModule(shopperHandler, container.GetJWT(), profiles))
}
