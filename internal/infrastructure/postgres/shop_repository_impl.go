package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/citymarket/citymarket/internal/domain/entity"
	"github.com/citymarket/citymarket/internal/domain/repository"
)

type ShopRepository struct {
	pool *pgxpool.Pool
}

func NewShopRepository(pool *pgxpool.Pool) *ShopRepository {
	return &ShopRepository{pool: pool}
}

// Create inserts the shop. UNIQUE(merchant_id) makes a concurrent double
// submit lose at commit time; the violation surfaces as ErrDuplicateKey.
func (r *ShopRepository) Create(ctx context.Context, s *entity.Shop) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO shops (merchant_id, name, phone, address, city, latitude, longitude)
		VALUES ($1, $2, $3, $4, COALESCE(NULLIF($5, ''), 'Unknown'), $6, $7)
		RETURNING id, city, created_at
	`, s.MerchantID, s.Name, s.Phone, s.Address, s.City, s.Latitude, s.Longitude)
	return mapErr(row.Scan(&s.ID, &s.City, &s.CreatedAt))
}

func (r *ShopRepository) GetByMerchant(ctx context.Context, merchantID string) (*entity.Shop, error) {
	s := &entity.Shop{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, merchant_id, name, phone, address, city, latitude, longitude, created_at
		FROM shops
		WHERE merchant_id = $1
	`, merchantID)
	if err := row.Scan(&s.ID, &s.MerchantID, &s.Name, &s.Phone, &s.Address,
		&s.City, &s.Latitude, &s.Longitude, &s.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

var _ repository.ShopRepository = (*ShopRepository)(nil)
