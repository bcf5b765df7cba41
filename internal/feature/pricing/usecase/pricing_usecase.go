// Package usecase implements the business logic for the pricing feature.
package usecase

import (
	"context"
	"log/slog"
	"math"
	"time"

	"tjkspices_backend/internal/feature/pricing/domain"
	"tjkspices_backend/internal/feature/pricing/domain/entity"
)

// Bulk adjustment modes.
const (
	ModeAdd      = "add"
	ModeSubtract = "subtract"
)

// ProductRepository abstracts the persistence layer for products.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type ProductRepository interface {
	// FindByID returns the product or domain.ErrProductNotFound.
	FindByID(ctx context.Context, id string) (*entity.Product, error)

	// FindByIDs returns the products matching any of the given IDs; missing
	// IDs are silently dropped.
	FindByIDs(ctx context.Context, ids []string) ([]entity.Product, error)

	// UpdatePrice writes a new price and update timestamp for one product.
	// Returns domain.ErrProductNotFound when the row does not exist.
	UpdatePrice(ctx context.Context, id string, price float64, updatedAt time.Time) error

	// UpsertPrices writes all given products in one batch keyed on the
	// primary key, updating only price and update timestamp.
	UpsertPrices(ctx context.Context, products []entity.Product) error

	// List returns the full catalog ordered by sort order, then creation time.
	List(ctx context.Context) ([]entity.Product, error)
}

// PriceChangeRepository abstracts the append-only audit ledger.
type PriceChangeRepository interface {
	Insert(ctx context.Context, change entity.PriceChange) error
	InsertBatch(ctx context.Context, changes []entity.PriceChange) error
	ListRecent(ctx context.Context, limit int) ([]entity.PriceChangeView, error)
}

// PricingUsecase implements price mutation with an audit trail. The audit
// write is a best-effort secondary step: its failure downgrades the result to
// success-with-warning and never rolls back the primary write, because the
// store gives no cross-call transaction spanning both tables.
type PricingUsecase struct {
	products ProductRepository
	changes  PriceChangeRepository
}

// NewPricingUsecase creates a new PricingUsecase.
func NewPricingUsecase(products ProductRepository, changes PriceChangeRepository) *PricingUsecase {
	return &PricingUsecase{products: products, changes: changes}
}

// UpdatePrice sets one product's price and appends an audit row. The returned
// warning flag is true when the price was written but the audit insert failed.
func (u *PricingUsecase) UpdatePrice(ctx context.Context, actor, id string, newPrice float64) (warning bool, err error) {
	if math.IsNaN(newPrice) || math.IsInf(newPrice, 0) {
		return false, domain.ErrInvalidPrice
	}
	if newPrice < 0 {
		newPrice = 0 // prices never go below zero
	}

	current, err := u.products.FindByID(ctx, id)
	if err != nil {
		return false, err
	}

	now := time.Now().UTC()
	if err := u.products.UpdatePrice(ctx, id, newPrice, now); err != nil {
		return false, err
	}

	change := entity.PriceChange{
		ProductID: id,
		OldPrice:  current.PriceINR,
		NewPrice:  newPrice,
		ChangedBy: actor,
		ChangedAt: now,
	}
	if err := u.changes.Insert(ctx, change); err != nil {
		// The price change is authoritative; audit is advisory.
		slog.Error("audit insert failed", "product_id", id, "changed_by", actor, "error", err)
		return true, nil
	}
	return false, nil
}

// BulkAdjust adds or subtracts a fixed amount from every matched product,
// clamping at zero, and appends one audit row per product sharing a single
// batch timestamp. Returns the number of adjusted products and the audit
// warning flag.
func (u *PricingUsecase) BulkAdjust(ctx context.Context, actor string, productIDs []string, mode string, amount float64) (count int, warning bool, err error) {
	if len(productIDs) == 0 {
		return 0, false, domain.ErrNoProductIDs
	}
	if mode != ModeAdd && mode != ModeSubtract {
		return 0, false, domain.ErrInvalidMode
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return 0, false, domain.ErrInvalidAmount
	}

	products, err := u.products.FindByIDs(ctx, productIDs)
	if err != nil {
		return 0, false, err
	}
	if len(products) == 0 {
		return 0, false, domain.ErrNoProductsMatched
	}

	delta := amount
	if mode == ModeSubtract {
		delta = -amount
	}

	now := time.Now().UTC()
	updates := make([]entity.Product, 0, len(products))
	audits := make([]entity.PriceChange, 0, len(products))
	for _, p := range products {
		oldPrice := p.PriceINR
		newPrice := oldPrice + delta
		if newPrice < 0 {
			newPrice = 0
		}

		p.PriceINR = newPrice
		p.UpdatedAt = now
		updates = append(updates, p)

		audits = append(audits, entity.PriceChange{
			ProductID: p.ID,
			OldPrice:  oldPrice,
			NewPrice:  newPrice,
			ChangedBy: actor,
			ChangedAt: now,
		})
	}

	if err := u.products.UpsertPrices(ctx, updates); err != nil {
		return 0, false, err
	}

	if err := u.changes.InsertBatch(ctx, audits); err != nil {
		slog.Error("bulk audit insert failed", "products", len(audits), "changed_by", actor, "error", err)
		return len(updates), true, nil
	}
	return len(updates), false, nil
}

// ListProducts returns the catalog for the public price list.
func (u *PricingUsecase) ListProducts(ctx context.Context) ([]entity.Product, error) {
	return u.products.List(ctx)
}

// ListPriceChanges returns the most recent ledger entries, newest first.
func (u *PricingUsecase) ListPriceChanges(ctx context.Context, limit int) ([]entity.PriceChangeView, error) {
	const (
		defaultLimit = 50
		maxLimit     = 200
	)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return u.changes.ListRecent(ctx, limit)
}
