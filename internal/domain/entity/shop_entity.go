package entity

import "time"

// Shop is a merchant's storefront. A merchant owns at most one shop,
// enforced by a unique constraint on MerchantID at the storage layer.
type Shop struct {
	ID         string
	MerchantID string
	Name       string
	Phone      string
	Address    string
	City       string
	Latitude   float64
	Longitude  float64
	CreatedAt  time.Time
}
