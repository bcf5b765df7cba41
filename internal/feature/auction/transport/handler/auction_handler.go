// Package handler provides HTTP handlers for the auction feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"tjkspices_backend/internal/api"
	"tjkspices_backend/internal/feature/auction/domain"
	"tjkspices_backend/internal/feature/auction/domain/entity"
	"tjkspices_backend/internal/feature/auction/transport/http/dto"
)

// AuctionUsecase defines the auction operations consumed by this handler.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type AuctionUsecase interface {
	Ingest(ctx context.Context) (*entity.ScrapePage, error)
	History(ctx context.Context, from, to string) ([]entity.AuctionRecord, error)
}

// AuctionHandler handles HTTP requests for auction market data.
type AuctionHandler struct {
	uc AuctionUsecase
}

// NewAuctionHandler creates a new AuctionHandler with the given usecase.
func NewAuctionHandler(uc AuctionUsecase) *AuctionHandler {
	return &AuctionHandler{uc: uc}
}

// ScrapeLatest scrapes the live archive page, merges it into the store and
// returns the scraped rows. An upstream outage maps to 502 so callers can
// tell it apart from an internal failure.
//
// GET /api/spicesboard-small
func (h *AuctionHandler) ScrapeLatest(c *gin.Context) {
	page, err := h.uc.Ingest(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUpstream):
			c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "failed to fetch Spices Board page"})
		case errors.Is(err, domain.ErrNoArchiveTable):
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		default:
			slog.Error("scrape failed", "error", err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "scrape failed"})
		}
		return
	}

	rows := make([]dto.ScrapedRowResponse, 0, len(page.Rows))
	for _, r := range page.Rows {
		rows = append(rows, dto.ScrapedRowResponse{
			Sno:               r.Sno,
			DateOfAuction:     r.DateOfAuction,
			Auctioneer:        r.Auctioneer,
			NoOfLots:          r.NoOfLots,
			TotalQtyArrivedKg: r.TotalQtyArrivedKg,
			QtySoldKg:         r.QtySoldKg,
			MaxPricePerKg:     r.MaxPricePerKg,
			AvgPricePerKg:     r.AvgPricePerKg,
		})
	}

	c.JSON(http.StatusOK, dto.ScrapeResponse{Source: page.SourceURL, Rows: rows})
}

// History returns persisted auction records in a date range.
//
// GET /api/spicesboard-history?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *AuctionHandler) History(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")

	records, err := h.uc.History(c.Request.Context(), from, to)
	if err != nil {
		slog.Error("history query failed", "from", from, "to", to, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "history query failed"})
		return
	}

	rows := make([]dto.HistoryRowResponse, 0, len(records))
	for _, r := range records {
		rows = append(rows, dto.HistoryRowResponse{
			AuctionDate:       r.AuctionDate,
			Auctioneer:        r.Auctioneer,
			NoOfLots:          r.NoOfLots,
			TotalQtyArrivedKg: r.TotalQtyArrivedKg,
			QtySoldKg:         r.QtySoldKg,
			MaxPricePerKg:     r.MaxPricePerKg,
			AvgPricePerKg:     r.AvgPricePerKg,
		})
	}

	c.JSON(http.StatusOK, dto.HistoryResponse{Rows: rows})
}
