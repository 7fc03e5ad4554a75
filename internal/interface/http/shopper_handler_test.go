package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citymarket/citymarket/internal/application"
	"github.com/citymarket/citymarket/internal/domain/entity"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubCatalogRepo struct {
	items []entity.CatalogItem
}

func (s *stubCatalogRepo) Search(_ context.Context, nameFilter, cityFilter string) ([]entity.CatalogItem, error) {
	out := []entity.CatalogItem{}
	for _, it := range s.items {
		if cityFilter != "" && !strings.EqualFold(it.City, cityFilter) {
			continue
		}
		if nameFilter != "" && !strings.Contains(strings.ToLower(it.Name), strings.ToLower(nameFilter)) {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

func newShopperRouter(items []entity.CatalogItem) *gin.Engine {
	logger := logrus.New()
	svc := application.NewCatalogService(&stubCatalogRepo{items: items}, logger)
	h := NewShopperHandler(svc, logger)

	r := gin.New()
	r.GET("/user/dashboard/", h.Dashboard)
	return r
}

func shopperFixture() []entity.CatalogItem {
	price := decimal.RequireFromString("59.99")
	return []entity.CatalogItem{
		{ProductID: "p1", Name: "Red Shoe", City: "Lagos", ShopID: "s1", ShopName: "Ada Shoes", Price: price},
		{ProductID: "p2", Name: "Blue Shoe", City: "Abuja", ShopID: "s2", ShopName: "Grace Bags", Price: price},
	}
}

func dashboardData(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	data, ok := body["data"].(map[string]any)
	require.True(t, ok, "data object missing in response")
	return data
}

func TestDashboardBlankSearch(t *testing.T) {
	r := newShopperRouter(shopperFixture())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/user/dashboard/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	data := dashboardData(t, w)
	assert.Equal(t, "", data["query"])
	assert.Equal(t, "", data["selected_city"])
	assert.Empty(t, data["results"])
}

func TestDashboardSearchEchoesFilters(t *testing.T) {
	r := newShopperRouter(shopperFixture())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/user/dashboard/?q=shoe&city=Lagos", nil))

	require.Equal(t, http.StatusOK, w.Code)
	data := dashboardData(t, w)
	assert.Equal(t, "shoe", data["query"])
	assert.Equal(t, "Lagos", data["selected_city"])

	results, ok := data["results"].([]any)
	require.True(t, ok)
	require.Len(t, results, 1)
	item := results[0].(map[string]any)
	assert.Equal(t, "Red Shoe", item["name"])
	assert.Equal(t, "59.99", item["price"])
	assert.Equal(t, "Ada Shoes", item["shop_name"])
}
