package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/citymarket/citymarket/config"
	"github.com/citymarket/citymarket/pkg/helpers"
)

// Seeds a demo merchant with a shop and two products, plus a demo
// shopper, for local development.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	merchantID := seedAccount(db, "demoMerchant", "merchant@example.com", "password123", true)
	shopperID := seedAccount(db, "demoShopper", "shopper@example.com", "password123", false)

	var shopID string
	err = db.QueryRow(`
		INSERT INTO shops (merchant_id, name, phone, address, city, latitude, longitude)
		VALUES ($1, 'Demo Shoes', '+2348012345678', '12 Broad Street', 'Lagos', 6.45, 3.39)
		ON CONFLICT (merchant_id) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, merchantID).Scan(&shopID)
	if err != nil {
		log.Fatalf("failed to seed shop: %v", err)
	}

	if _, err := db.Exec(`DELETE FROM products WHERE shop_id = $1`, shopID); err != nil {
		log.Fatalf("failed to clear products: %v", err)
	}

	products := []struct {
		name, description, price string
	}{
		{"Red Shoe", "Bright red leather shoe", "59.99"},
		{"Blue Shoe", "Navy blue canvas shoe", "39.99"},
	}
	for _, p := range products {
		if _, err := db.Exec(`
			INSERT INTO products (shop_id, name, description, price, image_url)
			VALUES ($1, $2, $3, $4::numeric, '')
		`, shopID, p.name, p.description, p.price); err != nil {
			log.Fatalf("failed to seed product %q: %v", p.name, err)
		}
	}

	fmt.Printf("seeded merchant=%s shopper=%s shop=%s products=%d\n", merchantID, shopperID, shopID, len(products))
}

func seedAccount(db *sql.DB, username, email, password string, merchant bool) string {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	var id string
	err = db.QueryRow(`
		INSERT INTO accounts (username, email, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (username) DO UPDATE SET email = EXCLUDED.email
		RETURNING id
	`, username, email, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed account %q: %v", username, err)
	}
	if _, err := db.Exec(`
		INSERT INTO profiles (account_id, is_merchant)
		VALUES ($1, $2)
		ON CONFLICT (account_id) DO NOTHING
	`, id, merchant); err != nil {
		log.Fatalf("failed to seed profile for %q: %v", username, err)
	}
	return id
}
