// Package dto defines the JSON shapes of the pricing endpoints.
package dto

import "time"

// UpdatePriceRequest is the body of a single price update. PriceINR is a
// pointer so a missing field fails validation instead of silently becoming 0.
type UpdatePriceRequest struct {
	ID       string   `json:"id" binding:"required"`
	PriceINR *float64 `json:"priceINR" binding:"required"`
}

// BulkUpdateRequest is the body of a bulk price adjustment.
type BulkUpdateRequest struct {
	ProductIDs []string `json:"productIds" binding:"required"`
	Mode       string   `json:"mode" binding:"required"`
	Amount     *float64 `json:"amount" binding:"required"`
}

// ProductResponse is one public price-list item.
type ProductResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	SKU      string  `json:"sku"`
	PriceINR float64 `json:"priceINR"`
}

// PriceChangeResponse is one audit ledger entry. ProductName is null when the
// product no longer exists.
type PriceChangeResponse struct {
	ID          uint      `json:"id"`
	ProductID   string    `json:"product_id"`
	ProductName *string   `json:"product_name"`
	OldPrice    float64   `json:"old_price"`
	NewPrice    float64   `json:"new_price"`
	ChangedBy   string    `json:"changed_by"`
	ChangedAt   time.Time `json:"changed_at"`
}
