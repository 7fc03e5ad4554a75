package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/citymarket/citymarket/internal/domain/entity"
	"github.com/citymarket/citymarket/internal/domain/repository"
)

type CatalogRepository struct {
	pool *pgxpool.Pool
}

func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

// Search scans products across all shops. City matches case-insensitively
// and exactly; name matches case-insensitively as a substring. A blank
// filter is a no-op; the caller guarantees at least one filter is set.
// Ordering is fixed so identical queries return identical sequences.
func (r *CatalogRepository) Search(ctx context.Context, nameFilter, cityFilter string) ([]entity.CatalogItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.id, p.name, p.description, p.price::text, p.image_url,
		       s.id, s.name, s.city
		FROM products p
		JOIN shops s ON s.id = p.shop_id
		WHERE ($1 = '' OR lower(s.city) = lower($1))
		  AND ($2 = '' OR p.name ILIKE '%' || $2 || '%')
		ORDER BY p.created_at, p.id
	`, cityFilter, nameFilter)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.CatalogItem, 0)
	for rows.Next() {
		var it entity.CatalogItem
		var price string
		if err := rows.Scan(&it.ProductID, &it.Name, &it.Description, &price,
			&it.ImageURL, &it.ShopID, &it.ShopName, &it.City); err != nil {
			return nil, err
		}
		if it.Price, err = decimal.NewFromString(price); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

var _ repository.CatalogRepository = (*CatalogRepository)(nil)
