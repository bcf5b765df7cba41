package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"

	"tjkspices_backend/internal/feature/pricing/domain/entity"
	"tjkspices_backend/internal/feature/pricing/usecase"
)

type priceChangePostgres struct {
	db *gorm.DB
}

var _ usecase.PriceChangeRepository = (*priceChangePostgres)(nil)

func NewPriceChangeRepository(db *gorm.DB) *priceChangePostgres {
	return &priceChangePostgres{db: db}
}

// PriceChangeModel is the persistence model for the price_changes ledger.
// Rows are append-only: this adapter exposes no update or delete.
type PriceChangeModel struct {
	ID        uint      `gorm:"primaryKey"`
	ProductID string    `gorm:"size:64;not null;index"`
	OldPrice  float64   `gorm:"not null"`
	NewPrice  float64   `gorm:"not null"`
	ChangedBy string    `gorm:"size:255;not null"`
	ChangedAt time.Time `gorm:"not null;index"`
}

func (PriceChangeModel) TableName() string {
	return "price_changes"
}

func toChangeModel(e entity.PriceChange) PriceChangeModel {
	return PriceChangeModel{
		ProductID: e.ProductID,
		OldPrice:  e.OldPrice,
		NewPrice:  e.NewPrice,
		ChangedBy: e.ChangedBy,
		ChangedAt: e.ChangedAt,
	}
}

func (r *priceChangePostgres) Insert(ctx context.Context, change entity.PriceChange) error {
	m := toChangeModel(change)
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *priceChangePostgres) InsertBatch(ctx context.Context, changes []entity.PriceChange) error {
	if len(changes) == 0 {
		return nil
	}
	ms := make([]PriceChangeModel, 0, len(changes))
	for _, c := range changes {
		ms = append(ms, toChangeModel(c))
	}
	return r.db.WithContext(ctx).Create(&ms).Error
}

// changeRow is the scan target for the ledger/product join. ProductName is a
// pointer so a deleted product yields null rather than an empty string.
type changeRow struct {
	ID          uint
	ProductID   string
	ProductName *string
	OldPrice    float64
	NewPrice    float64
	ChangedBy   string
	ChangedAt   time.Time
}

func (r *priceChangePostgres) ListRecent(ctx context.Context, limit int) ([]entity.PriceChangeView, error) {
	var rows []changeRow
	err := r.db.WithContext(ctx).
		Table("price_changes").
		Select("price_changes.id, price_changes.product_id, products.name AS product_name, price_changes.old_price, price_changes.new_price, price_changes.changed_by, price_changes.changed_at").
		Joins("LEFT JOIN products ON products.id = price_changes.product_id").
		Order("price_changes.changed_at DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]entity.PriceChangeView, 0, len(rows))
	for _, m := range rows {
		out = append(out, entity.PriceChangeView{
			ID:          m.ID,
			ProductID:   m.ProductID,
			ProductName: m.ProductName,
			OldPrice:    m.OldPrice,
			NewPrice:    m.NewPrice,
			ChangedBy:   m.ChangedBy,
			ChangedAt:   m.ChangedAt,
		})
	}
	return out, nil
}
