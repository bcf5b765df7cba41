package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tjkspices_backend/internal/feature/pricing/domain"
	"tjkspices_backend/internal/feature/pricing/domain/entity"
	"tjkspices_backend/internal/feature/pricing/usecase"
)

type productPostgres struct {
	db *gorm.DB
}

var _ usecase.ProductRepository = (*productPostgres)(nil)

func NewProductRepository(db *gorm.DB) *productPostgres {
	return &productPostgres{db: db}
}

// ProductModel is the persistence model for products. Rows are created by
// seed/admin provisioning; this subsystem only updates price_inr and
// updated_at.
type ProductModel struct {
	ID        string  `gorm:"primaryKey;size:64"`
	Name      string  `gorm:"size:255;not null"`
	SKU       *string `gorm:"column:sku;size:64"`
	PriceINR  float64 `gorm:"column:price_inr;not null;default:0"`
	SortOrder *int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ProductModel) TableName() string {
	return "products"
}

func toProductEntity(m ProductModel) entity.Product {
	return entity.Product{
		ID:        m.ID,
		Name:      m.Name,
		SKU:       m.SKU,
		PriceINR:  m.PriceINR,
		SortOrder: m.SortOrder,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (r *productPostgres) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	var m ProductModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	e := toProductEntity(m)
	return &e, nil
}

func (r *productPostgres) FindByIDs(ctx context.Context, ids []string) ([]entity.Product, error) {
	var rows []ProductModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Product, 0, len(rows))
	for _, m := range rows {
		out = append(out, toProductEntity(m))
	}
	return out, nil
}

func (r *productPostgres) UpdatePrice(ctx context.Context, id string, price float64, updatedAt time.Time) error {
	res := r.db.WithContext(ctx).Model(&ProductModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"price_inr": price, "updated_at": updatedAt})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// UpsertPrices writes the batch keyed on the primary key, touching only the
// price and update timestamp of existing rows.
func (r *productPostgres) UpsertPrices(ctx context.Context, products []entity.Product) error {
	if len(products) == 0 {
		return nil
	}
	ms := make([]ProductModel, 0, len(products))
	for _, p := range products {
		ms = append(ms, ProductModel{
			ID:        p.ID,
			Name:      p.Name,
			SKU:       p.SKU,
			PriceINR:  p.PriceINR,
			SortOrder: p.SortOrder,
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		})
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"price_inr", "updated_at"}),
	}).Create(&ms).Error
}

func (r *productPostgres) List(ctx context.Context) ([]entity.Product, error) {
	var rows []ProductModel
	err := r.db.WithContext(ctx).
		Order("sort_order ASC").
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]entity.Product, 0, len(rows))
	for _, m := range rows {
		out = append(out, toProductEntity(m))
	}
	return out, nil
}
