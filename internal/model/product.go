package model

import "time"

// Product represents a product in the storefront catalogue.
// Prices are whole currency units.
type Product struct {
	ID           string    `json:"_id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Description  string    `json:"description" db:"description"`
	Price        int64     `json:"price" db:"price"`
	Category     string    `json:"category" db:"category"`
	CountInStock int       `json:"countInStock" db:"count_in_stock"`
	ImageURL     string    `json:"imageUrl" db:"image_url"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
