package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/citymarket/citymarket/internal/domain/entity"
	repo "github.com/citymarket/citymarket/internal/domain/repository"
)

// CatalogService serves the shopper-facing search across all shops.
type CatalogService struct {
	Catalog repo.CatalogRepository
	Logger  *logrus.Logger
}

func NewCatalogService(catalog repo.CatalogRepository, logger *logrus.Logger) *CatalogService {
	return &CatalogService{Catalog: catalog, Logger: logger}
}

// SearchProducts applies the optional name and city filters. Browsing
// without any filter yields no results; the catalog is never listed
// wholesale.
func (s *CatalogService) SearchProducts(ctx context.Context, nameFilter, cityFilter string) ([]entity.CatalogItem, error) {
	if nameFilter == "" && cityFilter == "" {
		return []entity.CatalogItem{}, nil
	}
	return s.Catalog.Search(ctx, nameFilter, cityFilter)
}
