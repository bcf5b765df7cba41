// Package usecase implements the business logic for the auction feature.
package usecase

import (
	"context"
	"errors"
	"log/slog"

	"tjkspices_backend/internal/feature/auction/domain"
	"tjkspices_backend/internal/feature/auction/domain/entity"
	"tjkspices_backend/internal/shared/pacer"
)

// ArchiveSource fetches one page of the upstream auction archive and returns
// its extracted rows. Abstracts the scraper implementation.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type ArchiveSource interface {
	FetchArchive(ctx context.Context, page int) (*entity.ScrapePage, error)
}

// AuctionRepository persists auction records keyed on their natural key and
// serves historical reads.
type AuctionRepository interface {
	// UpsertBatch inserts or refreshes records on conflict of
	// (auction_date, auctioneer, sno). Re-ingesting the same page must not
	// create duplicates.
	UpsertBatch(ctx context.Context, records []entity.AuctionRecord) error

	// History returns records with auction_date in [from, to] ascending.
	// Empty bounds are open-ended.
	History(ctx context.Context, from, to string) ([]entity.AuctionRecord, error)
}

// IngestUsecase orchestrates scrape, normalization and best-effort
// persistence of auction data.
type IngestUsecase struct {
	source ArchiveSource
	repo   AuctionRepository
	pacer  pacer.Pacer
}

// NewIngestUsecase creates a new IngestUsecase.
func NewIngestUsecase(source ArchiveSource, repo AuctionRepository, p pacer.Pacer) *IngestUsecase {
	return &IngestUsecase{source: source, repo: repo, pacer: p}
}

// Ingest scrapes the first archive page, upserts every row that produced a
// canonical date, and returns the scraped view. Persistence is best-effort:
// an upsert failure is logged but never fails the response, because the
// primary value to the caller is the live snapshot.
func (iu *IngestUsecase) Ingest(ctx context.Context) (*entity.ScrapePage, error) {
	page, err := iu.source.FetchArchive(ctx, 1)
	if err != nil {
		return nil, err
	}

	if records := toRecords(page); len(records) > 0 {
		if err := iu.repo.UpsertBatch(ctx, records); err != nil {
			slog.Error("failed to persist auction rows", "source", page.SourceURL, "rows", len(records), "error", err)
		}
	}

	return page, nil
}

// Backfill repeats fetch+extract+upsert across a page range, pausing between
// pages and stopping early when a page yields zero rows or no archive table;
// both mean the archive has run out. Other per-page errors are logged and
// skipped so one bad page does not abort the run.
func (iu *IngestUsecase) Backfill(ctx context.Context, startPage, endPage int) error {
	for page := startPage; page <= endPage; page++ {
		if page > startPage {
			iu.pacer.Wait()
		}

		result, err := iu.source.FetchArchive(ctx, page)
		if errors.Is(err, domain.ErrNoArchiveTable) {
			slog.Info("no archive table on page, stopping backfill", "page", page)
			break
		}
		if err != nil {
			slog.Error("backfill page failed", "page", page, "error", err)
			continue
		}
		if len(result.Rows) == 0 {
			slog.Info("no rows on page, stopping backfill", "page", page)
			break
		}

		records := toRecords(result)
		if err := iu.repo.UpsertBatch(ctx, records); err != nil {
			slog.Error("backfill upsert failed", "page", page, "rows", len(records), "error", err)
			continue
		}
		slog.Info("backfilled page", "page", page, "rows", len(records))
	}
	return nil
}

// History returns persisted records for the given date range.
func (iu *IngestUsecase) History(ctx context.Context, from, to string) ([]entity.AuctionRecord, error) {
	return iu.repo.History(ctx, from, to)
}

// toRecords keeps only rows with a canonical date; rows without one have no
// natural key and cannot be merged idempotently.
func toRecords(page *entity.ScrapePage) []entity.AuctionRecord {
	records := make([]entity.AuctionRecord, 0, len(page.Rows))
	for _, r := range page.Rows {
		if r.AuctionDate == "" {
			continue
		}
		records = append(records, entity.AuctionRecord{
			AuctionDate:       r.AuctionDate,
			Auctioneer:        r.Auctioneer,
			Sno:               r.Sno,
			NoOfLots:          r.NoOfLots,
			TotalQtyArrivedKg: r.TotalQtyArrivedKg,
			QtySoldKg:         r.QtySoldKg,
			MaxPricePerKg:     r.MaxPricePerKg,
			AvgPricePerKg:     r.AvgPricePerKg,
			SourceURL:         page.SourceURL,
		})
	}
	return records
}
