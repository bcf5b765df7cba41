package adapters

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tjkspices_backend/internal/feature/auction/domain/entity"
	"tjkspices_backend/internal/feature/auction/usecase"
)

type auctionPostgres struct {
	db *gorm.DB
}

var _ usecase.AuctionRepository = (*auctionPostgres)(nil)

func NewAuctionRepository(db *gorm.DB) *auctionPostgres {
	return &auctionPostgres{db: db}
}

// snoAbsent is stored when the source row carries no serial number. A NULL
// sno would make the unique index useless (SQL treats NULLs as pairwise
// distinct), so absence is encoded as a sentinel the index can match on.
const snoAbsent int64 = -1

// AuctionModel is the persistence model for spices_auction_small. The unique
// index over (auction_date, auctioneer, sno) backs the upsert conflict target.
type AuctionModel struct {
	ID          uint   `gorm:"primaryKey"`
	AuctionDate string `gorm:"size:10;not null;uniqueIndex:auction_natural_key,priority:1"`
	Auctioneer  string `gorm:"size:255;not null;uniqueIndex:auction_natural_key,priority:2"`
	Sno         int64  `gorm:"column:sno;not null;default:-1;uniqueIndex:auction_natural_key,priority:3"`

	NoOfLots          *float64 `gorm:"column:no_of_lots"`
	TotalQtyArrivedKg *float64 `gorm:"column:total_qty_arrived_kg"`
	QtySoldKg         *float64 `gorm:"column:qty_sold_kg"`
	MaxPricePerKg     *float64 `gorm:"column:max_price_per_kg"`
	AvgPricePerKg     *float64 `gorm:"column:avg_price_per_kg"`
	SourceURL         string   `gorm:"column:source_url;size:512"`
}

func (AuctionModel) TableName() string {
	return "spices_auction_small"
}

func toModel(e entity.AuctionRecord) AuctionModel {
	sno := snoAbsent
	if e.Sno != nil {
		sno = *e.Sno
	}
	return AuctionModel{
		AuctionDate:       e.AuctionDate,
		Auctioneer:        e.Auctioneer,
		Sno:               sno,
		NoOfLots:          e.NoOfLots,
		TotalQtyArrivedKg: e.TotalQtyArrivedKg,
		QtySoldKg:         e.QtySoldKg,
		MaxPricePerKg:     e.MaxPricePerKg,
		AvgPricePerKg:     e.AvgPricePerKg,
		SourceURL:         e.SourceURL,
	}
}

func toEntity(m AuctionModel) entity.AuctionRecord {
	var sno *int64
	if m.Sno != snoAbsent {
		v := m.Sno
		sno = &v
	}
	return entity.AuctionRecord{
		AuctionDate:       m.AuctionDate,
		Auctioneer:        m.Auctioneer,
		Sno:               sno,
		NoOfLots:          m.NoOfLots,
		TotalQtyArrivedKg: m.TotalQtyArrivedKg,
		QtySoldKg:         m.QtySoldKg,
		MaxPricePerKg:     m.MaxPricePerKg,
		AvgPricePerKg:     m.AvgPricePerKg,
		SourceURL:         m.SourceURL,
	}
}

// UpsertBatch inserts records, replacing the non-key columns on natural-key
// conflict (last write wins).
func (r *auctionPostgres) UpsertBatch(ctx context.Context, records []entity.AuctionRecord) error {
	if len(records) == 0 {
		return nil
	}
	ms := make([]AuctionModel, 0, len(records))
	for _, e := range records {
		ms = append(ms, toModel(e))
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "auction_date"}, {Name: "auctioneer"}, {Name: "sno"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"no_of_lots", "total_qty_arrived_kg", "qty_sold_kg",
			"max_price_per_kg", "avg_price_per_kg", "source_url",
		}),
	}).Create(&ms).Error
}

func (r *auctionPostgres) History(ctx context.Context, from, to string) ([]entity.AuctionRecord, error) {
	var rows []AuctionModel
	q := r.db.WithContext(ctx).Model(&AuctionModel{})
	if from != "" {
		q = q.Where("auction_date >= ?", from)
	}
	if to != "" {
		q = q.Where("auction_date <= ?", to)
	}
	if err := q.Order("auction_date ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]entity.AuctionRecord, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out, nil
}
