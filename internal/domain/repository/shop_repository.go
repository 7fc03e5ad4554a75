package repository

import (
	"context"

	"github.com/citymarket/citymarket/internal/domain/entity"
)

// ShopRepository persists storefronts. Create relies on the storage
// layer's UNIQUE(merchant_id) constraint and returns ErrDuplicateKey when
// the merchant already owns a shop, closing the check-then-create race.
type ShopRepository interface {
	Create(ctx context.Context, s *entity.Shop) error
	GetByMerchant(ctx context.Context, merchantID string) (*entity.Shop, error)
}
