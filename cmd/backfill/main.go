// Command backfill walks the paginated auction archive and merges every page
// into the store. Run it once to seed history; re-running is safe because the
// merge is idempotent on the natural key.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	auctionadapters "tjkspices_backend/internal/feature/auction/adapters"
	"tjkspices_backend/internal/feature/auction/adapters/spicesboard"
	"tjkspices_backend/internal/feature/auction/usecase"
	infradb "tjkspices_backend/internal/platform/db"
	infrahttp "tjkspices_backend/internal/platform/http"
	"tjkspices_backend/internal/shared/pacer"
)

func main() {
	startPage := flag.Int("start", 1, "first archive page to fetch")
	endPage := flag.Int("end", 50, "last archive page to fetch")
	delay := flag.Duration("delay", 1500*time.Millisecond, "politeness delay between page fetches")
	flag.Parse()

	db := infradb.OpenDB()

	cfg := spicesboard.LoadConfig()
	scraper := spicesboard.NewScraper(cfg, infrahttp.NewHTTPClient(cfg.Timeout))
	repo := auctionadapters.NewAuctionRepository(db)
	uc := usecase.NewIngestUsecase(scraper, repo, pacer.NewFixedDelay(*delay))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	log.Printf("backfilling auction archive, pages %d to %d", *startPage, *endPage)
	if err := uc.Backfill(ctx, *startPage, *endPage); err != nil {
		log.Fatal(err)
	}
	log.Println("backfill ok")
}
