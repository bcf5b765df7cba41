package usecase

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tjkspices_backend/internal/feature/pricing/domain"
	"tjkspices_backend/internal/feature/pricing/domain/entity"
)

var ErrDB = errors.New("db error")

// mockProductRepository is a mock implementation of the ProductRepository interface.
type mockProductRepository struct {
	FindByIDFunc     func(ctx context.Context, id string) (*entity.Product, error)
	FindByIDsFunc    func(ctx context.Context, ids []string) ([]entity.Product, error)
	UpdatePriceFunc  func(ctx context.Context, id string, price float64, updatedAt time.Time) error
	UpsertPricesFunc func(ctx context.Context, products []entity.Product) error
	ListFunc         func(ctx context.Context) ([]entity.Product, error)

	UpdatePriceCalls  int
	UpsertPricesCalls int
}

func (m *mockProductRepository) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, errors.New("FindByIDFunc is not implemented")
}

func (m *mockProductRepository) FindByIDs(ctx context.Context, ids []string) ([]entity.Product, error) {
	if m.FindByIDsFunc != nil {
		return m.FindByIDsFunc(ctx, ids)
	}
	return nil, errors.New("FindByIDsFunc is not implemented")
}

func (m *mockProductRepository) UpdatePrice(ctx context.Context, id string, price float64, updatedAt time.Time) error {
	m.UpdatePriceCalls++
	if m.UpdatePriceFunc != nil {
		return m.UpdatePriceFunc(ctx, id, price, updatedAt)
	}
	return nil
}

func (m *mockProductRepository) UpsertPrices(ctx context.Context, products []entity.Product) error {
	m.UpsertPricesCalls++
	if m.UpsertPricesFunc != nil {
		return m.UpsertPricesFunc(ctx, products)
	}
	return nil
}

func (m *mockProductRepository) List(ctx context.Context) ([]entity.Product, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

// mockPriceChangeRepository is a mock implementation of the PriceChangeRepository interface.
type mockPriceChangeRepository struct {
	InsertFunc      func(ctx context.Context, change entity.PriceChange) error
	InsertBatchFunc func(ctx context.Context, changes []entity.PriceChange) error
	ListRecentFunc  func(ctx context.Context, limit int) ([]entity.PriceChangeView, error)

	InsertCalls      int
	InsertBatchCalls int
}

func (m *mockPriceChangeRepository) Insert(ctx context.Context, change entity.PriceChange) error {
	m.InsertCalls++
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, change)
	}
	return nil
}

func (m *mockPriceChangeRepository) InsertBatch(ctx context.Context, changes []entity.PriceChange) error {
	m.InsertBatchCalls++
	if m.InsertBatchFunc != nil {
		return m.InsertBatchFunc(ctx, changes)
	}
	return nil
}

func (m *mockPriceChangeRepository) ListRecent(ctx context.Context, limit int) ([]entity.PriceChangeView, error) {
	if m.ListRecentFunc != nil {
		return m.ListRecentFunc(ctx, limit)
	}
	return nil, nil
}

func cardamomProduct(id string, price float64) *entity.Product {
	return &entity.Product{ID: id, Name: "Green Cardamom 8mm", PriceINR: price}
}

func TestPricingUsecase_UpdatePrice(t *testing.T) {
	ctx := context.Background()

	t.Run("success: price written and audit appended", func(t *testing.T) {
		var wrote struct {
			price float64
			at    time.Time
		}
		var audit entity.PriceChange
		products := &mockProductRepository{
			FindByIDFunc: func(ctx context.Context, id string) (*entity.Product, error) {
				return cardamomProduct(id, 2800), nil
			},
			UpdatePriceFunc: func(ctx context.Context, id string, price float64, updatedAt time.Time) error {
				wrote.price = price
				wrote.at = updatedAt
				return nil
			},
		}
		changes := &mockPriceChangeRepository{
			InsertFunc: func(ctx context.Context, change entity.PriceChange) error {
				audit = change
				return nil
			},
		}

		uc := NewPricingUsecase(products, changes)
		warning, err := uc.UpdatePrice(ctx, "admin@tjk.example", "prod-1", 3200)

		require.NoError(t, err)
		assert.False(t, warning)
		assert.Equal(t, 3200.0, wrote.price)
		assert.Equal(t, "prod-1", audit.ProductID)
		assert.Equal(t, 2800.0, audit.OldPrice)
		assert.Equal(t, 3200.0, audit.NewPrice)
		assert.Equal(t, "admin@tjk.example", audit.ChangedBy)
		assert.Equal(t, wrote.at, audit.ChangedAt, "audit timestamp should match the write timestamp")
	})

	t.Run("success: negative price is clamped to zero", func(t *testing.T) {
		var wrotePrice float64
		var audit entity.PriceChange
		products := &mockProductRepository{
			FindByIDFunc: func(ctx context.Context, id string) (*entity.Product, error) {
				return cardamomProduct(id, 2800), nil
			},
			UpdatePriceFunc: func(ctx context.Context, id string, price float64, updatedAt time.Time) error {
				wrotePrice = price
				return nil
			},
		}
		changes := &mockPriceChangeRepository{
			InsertFunc: func(ctx context.Context, change entity.PriceChange) error {
				audit = change
				return nil
			},
		}

		uc := NewPricingUsecase(products, changes)
		warning, err := uc.UpdatePrice(ctx, "admin@tjk.example", "prod-1", -50)

		require.NoError(t, err)
		assert.False(t, warning)
		assert.Equal(t, 0.0, wrotePrice)
		assert.Equal(t, 0.0, audit.NewPrice, "audit records the clamped price")
	})

	t.Run("warning: audit failure does not undo the price write", func(t *testing.T) {
		products := &mockProductRepository{
			FindByIDFunc: func(ctx context.Context, id string) (*entity.Product, error) {
				return cardamomProduct(id, 2800), nil
			},
		}
		changes := &mockPriceChangeRepository{
			InsertFunc: func(ctx context.Context, change entity.PriceChange) error {
				return ErrDB
			},
		}

		uc := NewPricingUsecase(products, changes)
		warning, err := uc.UpdatePrice(ctx, "admin@tjk.example", "prod-1", 3200)

		require.NoError(t, err)
		assert.True(t, warning)
		assert.Equal(t, 1, products.UpdatePriceCalls, "price write should have happened")
	})

	t.Run("error: non-finite price is rejected", func(t *testing.T) {
		products := &mockProductRepository{}
		changes := &mockPriceChangeRepository{}

		uc := NewPricingUsecase(products, changes)
		for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
			_, err := uc.UpdatePrice(ctx, "admin@tjk.example", "prod-1", bad)
			assert.ErrorIs(t, err, domain.ErrInvalidPrice)
		}
		assert.Equal(t, 0, products.UpdatePriceCalls)
	})

	t.Run("error: unknown product", func(t *testing.T) {
		products := &mockProductRepository{
			FindByIDFunc: func(ctx context.Context, id string) (*entity.Product, error) {
				return nil, domain.ErrProductNotFound
			},
		}
		changes := &mockPriceChangeRepository{}

		uc := NewPricingUsecase(products, changes)
		_, err := uc.UpdatePrice(ctx, "admin@tjk.example", "missing", 3200)

		assert.ErrorIs(t, err, domain.ErrProductNotFound)
		assert.Equal(t, 0, changes.InsertCalls, "no audit row for a failed update")
	})

	t.Run("error: price write failure returns without audit", func(t *testing.T) {
		products := &mockProductRepository{
			FindByIDFunc: func(ctx context.Context, id string) (*entity.Product, error) {
				return cardamomProduct(id, 2800), nil
			},
			UpdatePriceFunc: func(ctx context.Context, id string, price float64, updatedAt time.Time) error {
				return ErrDB
			},
		}
		changes := &mockPriceChangeRepository{}

		uc := NewPricingUsecase(products, changes)
		_, err := uc.UpdatePrice(ctx, "admin@tjk.example", "prod-1", 3200)

		assert.ErrorIs(t, err, ErrDB)
		assert.Equal(t, 0, changes.InsertCalls)
	})
}

func TestPricingUsecase_BulkAdjust(t *testing.T) {
	ctx := context.Background()

	matched := func(ids []string) []entity.Product {
		return []entity.Product{
			{ID: "prod-1", Name: "Green Cardamom 8mm", PriceINR: 2800},
			{ID: "prod-2", Name: "Black Pepper", PriceINR: 650},
		}
	}

	t.Run("success: add mode raises every matched price", func(t *testing.T) {
		var updates []entity.Product
		var audits []entity.PriceChange
		products := &mockProductRepository{
			FindByIDsFunc: func(ctx context.Context, ids []string) ([]entity.Product, error) {
				return matched(ids), nil
			},
			UpsertPricesFunc: func(ctx context.Context, ps []entity.Product) error {
				updates = ps
				return nil
			},
		}
		changes := &mockPriceChangeRepository{
			InsertBatchFunc: func(ctx context.Context, cs []entity.PriceChange) error {
				audits = cs
				return nil
			},
		}

		uc := NewPricingUsecase(products, changes)
		count, warning, err := uc.BulkAdjust(ctx, "admin@tjk.example", []string{"prod-1", "prod-2"}, ModeAdd, 100)

		require.NoError(t, err)
		assert.False(t, warning)
		assert.Equal(t, 2, count)
		require.Len(t, updates, 2)
		assert.Equal(t, 2900.0, updates[0].PriceINR)
		assert.Equal(t, 750.0, updates[1].PriceINR)
		require.Len(t, audits, 2)
		assert.Equal(t, 2800.0, audits[0].OldPrice)
		assert.Equal(t, 2900.0, audits[0].NewPrice)
		assert.Equal(t, audits[0].ChangedAt, audits[1].ChangedAt, "one batch shares one timestamp")
	})

	t.Run("success: subtract clamps at zero", func(t *testing.T) {
		var updates []entity.Product
		var audits []entity.PriceChange
		products := &mockProductRepository{
			FindByIDsFunc: func(ctx context.Context, ids []string) ([]entity.Product, error) {
				return matched(ids), nil
			},
			UpsertPricesFunc: func(ctx context.Context, ps []entity.Product) error {
				updates = ps
				return nil
			},
		}
		changes := &mockPriceChangeRepository{
			InsertBatchFunc: func(ctx context.Context, cs []entity.PriceChange) error {
				audits = cs
				return nil
			},
		}

		uc := NewPricingUsecase(products, changes)
		count, warning, err := uc.BulkAdjust(ctx, "admin@tjk.example", []string{"prod-1", "prod-2"}, ModeSubtract, 1000)

		require.NoError(t, err)
		assert.False(t, warning)
		assert.Equal(t, 2, count)
		require.Len(t, updates, 2)
		assert.Equal(t, 1800.0, updates[0].PriceINR)
		assert.Equal(t, 0.0, updates[1].PriceINR, "price never goes below zero")
		require.Len(t, audits, 2)
		assert.Equal(t, 650.0, audits[1].OldPrice, "audit keeps the real old price")
		assert.Equal(t, 0.0, audits[1].NewPrice)
	})

	t.Run("warning: batch audit failure keeps the count", func(t *testing.T) {
		products := &mockProductRepository{
			FindByIDsFunc: func(ctx context.Context, ids []string) ([]entity.Product, error) {
				return matched(ids), nil
			},
		}
		changes := &mockPriceChangeRepository{
			InsertBatchFunc: func(ctx context.Context, cs []entity.PriceChange) error {
				return ErrDB
			},
		}

		uc := NewPricingUsecase(products, changes)
		count, warning, err := uc.BulkAdjust(ctx, "admin@tjk.example", []string{"prod-1", "prod-2"}, ModeAdd, 100)

		require.NoError(t, err)
		assert.True(t, warning)
		assert.Equal(t, 2, count)
		assert.Equal(t, 1, products.UpsertPricesCalls)
	})

	t.Run("error: validation", func(t *testing.T) {
		uc := NewPricingUsecase(&mockProductRepository{}, &mockPriceChangeRepository{})

		tests := []struct {
			name    string
			ids     []string
			mode    string
			amount  float64
			wantErr error
		}{
			{"empty id list", nil, ModeAdd, 100, domain.ErrNoProductIDs},
			{"unknown mode", []string{"prod-1"}, "multiply", 100, domain.ErrInvalidMode},
			{"zero amount", []string{"prod-1"}, ModeAdd, 0, domain.ErrInvalidAmount},
			{"negative amount", []string{"prod-1"}, ModeSubtract, -5, domain.ErrInvalidAmount},
			{"NaN amount", []string{"prod-1"}, ModeAdd, math.NaN(), domain.ErrInvalidAmount},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, _, err := uc.BulkAdjust(ctx, "admin@tjk.example", tt.ids, tt.mode, tt.amount)
				assert.ErrorIs(t, err, tt.wantErr)
			})
		}
	})

	t.Run("error: no products matched", func(t *testing.T) {
		products := &mockProductRepository{
			FindByIDsFunc: func(ctx context.Context, ids []string) ([]entity.Product, error) {
				return nil, nil
			},
		}
		changes := &mockPriceChangeRepository{}

		uc := NewPricingUsecase(products, changes)
		_, _, err := uc.BulkAdjust(ctx, "admin@tjk.example", []string{"ghost"}, ModeAdd, 100)

		assert.ErrorIs(t, err, domain.ErrNoProductsMatched)
		assert.Equal(t, 0, products.UpsertPricesCalls)
	})

	t.Run("error: upsert failure skips the audit", func(t *testing.T) {
		products := &mockProductRepository{
			FindByIDsFunc: func(ctx context.Context, ids []string) ([]entity.Product, error) {
				return matched(ids), nil
			},
			UpsertPricesFunc: func(ctx context.Context, ps []entity.Product) error {
				return ErrDB
			},
		}
		changes := &mockPriceChangeRepository{}

		uc := NewPricingUsecase(products, changes)
		_, _, err := uc.BulkAdjust(ctx, "admin@tjk.example", []string{"prod-1", "prod-2"}, ModeAdd, 100)

		assert.ErrorIs(t, err, ErrDB)
		assert.Equal(t, 0, changes.InsertBatchCalls)
	})
}

func TestPricingUsecase_ListPriceChanges(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		limit     int
		wantLimit int
	}{
		{"zero falls back to the default", 0, 50},
		{"negative falls back to the default", -3, 50},
		{"in range passes through", 120, 120},
		{"above the cap is clamped", 500, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotLimit int
			changes := &mockPriceChangeRepository{
				ListRecentFunc: func(ctx context.Context, limit int) ([]entity.PriceChangeView, error) {
					gotLimit = limit
					return nil, nil
				},
			}

			uc := NewPricingUsecase(&mockProductRepository{}, changes)
			_, err := uc.ListPriceChanges(ctx, tt.limit)

			require.NoError(t, err)
			assert.Equal(t, tt.wantLimit, gotLimit)
		})
	}
}
