// Package entity defines the domain models for the pricing feature.
package entity

import "time"

// Product is a sellable price-list item. Products are provisioned out of
// band; this subsystem only ever mutates the price.
type Product struct {
	ID        string
	Name      string
	SKU       *string
	PriceINR  float64 // Always >= 0; negative results of a mutation clamp to 0
	SortOrder *int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PriceChange is one immutable audit ledger entry. Rows are append-only and
// are never edited after the fact.
type PriceChange struct {
	ProductID string
	OldPrice  float64
	NewPrice  float64
	ChangedBy string // Email of the authenticated actor
	ChangedAt time.Time
}

// PriceChangeView is a ledger entry joined with the product name for display.
// ProductName is nil when the product has since been deleted; the historical
// entry stays intact.
type PriceChangeView struct {
	ID          uint
	ProductID   string
	ProductName *string
	OldPrice    float64
	NewPrice    float64
	ChangedBy   string
	ChangedAt   time.Time
}
