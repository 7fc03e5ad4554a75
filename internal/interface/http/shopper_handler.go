package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/citymarket/citymarket/internal/application"
	"github.com/citymarket/citymarket/internal/domain/entity"
	"github.com/citymarket/citymarket/pkg/response"
)

type ShopperHandler struct {
	Svc    *application.CatalogService
	Logger *logrus.Logger
}

func NewShopperHandler(svc *application.CatalogService, logger *logrus.Logger) *ShopperHandler {
	return &ShopperHandler{Svc: svc, Logger: logger}
}

func catalogItemJSON(it *entity.CatalogItem) gin.H {
	return gin.H{
		"id":          it.ProductID,
		"name":        it.Name,
		"description": it.Description,
		"price":       it.Price.StringFixed(2),
		"image_url":   it.ImageURL,
		"shop_id":     it.ShopID,
		"shop_name":   it.ShopName,
		"city":        it.City,
	}
}

// Dashboard GET /user/dashboard/?q=&city=
// Echoes the filters used alongside the results.
func (h *ShopperHandler) Dashboard(c *gin.Context) {
	query := c.Query("q")
	city := c.Query("city")

	items, err := h.Svc.SearchProducts(c.Request.Context(), query, city)
	if err != nil {
		h.Logger.WithError(err).Error("catalog search failed")
		response.Error[any](c, http.StatusInternalServerError, "search failed", nil)
		return
	}

	results := make([]gin.H, 0, len(items))
	for i := range items {
		results = append(results, catalogItemJSON(&items[i]))
	}
	response.Success(c, http.StatusOK, gin.H{
		"query":         query,
		"selected_city": city,
		"results":       results,
	}, "shopper dashboard", nil)
}
