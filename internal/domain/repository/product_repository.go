package repository

import (
	"context"

	"github.com/citymarket/citymarket/internal/domain/entity"
)

// ProductRepository persists products. Every read and mutation is scoped
// by the owning shop id in the same statement, so an id belonging to
// another shop behaves as ErrNotFound.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByShop(ctx context.Context, shopID, id string) (*entity.Product, error)
	ListByShop(ctx context.Context, shopID string) ([]entity.Product, error)
	Update(ctx context.Context, p *entity.Product) error
	Delete(ctx context.Context, shopID, id string) error
}

// CatalogRepository serves the shopper-facing search across all shops.
type CatalogRepository interface {
	Search(ctx context.Context, nameFilter, cityFilter string) ([]entity.CatalogItem, error)
}
