package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/citymarket/citymarket/internal/domain/entity"
	"github.com/citymarket/citymarket/internal/domain/repository"
)

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO products (shop_id, name, description, price, image_url)
		VALUES ($1, $2, $3, $4::numeric, $5)
		RETURNING id, created_at, updated_at
	`, p.ShopID, p.Name, p.Description, p.Price.StringFixed(2), p.ImageURL)
	return mapErr(row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt))
}

func (r *ProductRepository) GetByShop(ctx context.Context, shopID, id string) (*entity.Product, error) {
	p := &entity.Product{}
	var price string
	row := r.pool.QueryRow(ctx, `
		SELECT id, shop_id, name, description, price::text, image_url, created_at, updated_at
		FROM products
		WHERE id = $1 AND shop_id = $2
	`, id, shopID)
	if err := row.Scan(&p.ID, &p.ShopID, &p.Name, &p.Description, &price,
		&p.ImageURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	var err error
	if p.Price, err = decimal.NewFromString(price); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProductRepository) ListByShop(ctx context.Context, shopID string) ([]entity.Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, shop_id, name, description, price::text, image_url, created_at, updated_at
		FROM products
		WHERE shop_id = $1
		ORDER BY created_at, id
	`, shopID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Product, 0)
	for rows.Next() {
		var p entity.Product
		var price string
		if err := rows.Scan(&p.ID, &p.ShopID, &p.Name, &p.Description, &price,
			&p.ImageURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		if p.Price, err = decimal.NewFromString(price); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Update writes the editable fields. The WHERE clause carries the shop
// scope, so ownership is checked by the same statement that mutates.
// An empty ImageURL keeps the stored image.
func (r *ProductRepository) Update(ctx context.Context, p *entity.Product) error {
	row := r.pool.QueryRow(ctx, `
		UPDATE products
		SET name = $1,
		    description = $2,
		    price = $3::numeric,
		    image_url = COALESCE(NULLIF($4, ''), image_url),
		    updated_at = now()
		WHERE id = $5 AND shop_id = $6
		RETURNING image_url, updated_at
	`, p.Name, p.Description, p.Price.StringFixed(2), p.ImageURL, p.ID, p.ShopID)
	if err := row.Scan(&p.ImageURL, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, shopID, id string) error {
	res, err := r.pool.Exec(ctx, `
		DELETE FROM products
		WHERE id = $1 AND shop_id = $2
	`, id, shopID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.ProductRepository = (*ProductRepository)(nil)
