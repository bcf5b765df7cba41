// Package entity defines the domain models for the auction feature.
package entity

// AuctionRecord is one persisted row of Spices Board small cardamom auction
// data. The natural key is (AuctionDate, Auctioneer, Sno); everything else is
// refreshed on re-ingest.
type AuctionRecord struct {
	AuctionDate       string // Canonical auction date, YYYY-MM-DD
	Auctioneer        string
	Sno               *int64 // Serial number as printed on the source page, nil when absent
	NoOfLots          *float64
	TotalQtyArrivedKg *float64
	QtySoldKg         *float64
	MaxPricePerKg     *float64
	AvgPricePerKg     *float64
	SourceURL         string
}

// ScrapedRow is one row as extracted from the archive table, before any
// persistence decision. DateOfAuction keeps the raw cell text so callers can
// see rows whose date failed to normalize; such rows have an empty
// AuctionDate and are never persisted.
type ScrapedRow struct {
	Sno               *int64
	DateOfAuction     string // Raw cell text
	AuctionDate       string // YYYY-MM-DD, empty when the raw date did not parse
	Auctioneer        string
	NoOfLots          *float64
	TotalQtyArrivedKg *float64
	QtySoldKg         *float64
	MaxPricePerKg     *float64
	AvgPricePerKg     *float64
}

// ScrapePage is the result of scraping one archive page.
type ScrapePage struct {
	SourceURL string
	Rows      []ScrapedRow
}
