package domain

import "time"

// DefaultCurrency applies when a product is saved without one.
const DefaultCurrency = "USD"

// Product is a sellable item listed by a creator.
type Product struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Price       float64   `json:"price"`
	Currency    string    `json:"currency"`
	ImageURL    *string   `json:"image_url"`
	IsDigital   bool      `json:"is_digital"`
	DownloadURL *string   `json:"download_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (p *Product) OwnerID() string { return p.UserID }

// ProductTypeCount is a per-type product tally.
type ProductTypeCount struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

// ProductMeta summarizes the catalogue.
type ProductMeta struct {
	Types        []ProductTypeCount
	MinPrice     float64
	MaxPrice     float64
	Total        int64
	Featured     int64
	Creators     int64
	TotalRevenue float64
}

// ProductCollections groups the storefront shelves.
type ProductCollections struct {
	Featured    []Product
	TopSelling  []Product
	NewArrivals []Product
}
