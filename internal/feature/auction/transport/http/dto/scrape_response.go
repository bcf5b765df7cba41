// Package dto defines the JSON shapes served by the auction endpoints.
package dto

// ScrapedRowResponse mirrors one archive table row, raw date included, so the
// admin panel can show exactly what the source published. Numeric fields are
// null when the source cell was blank or unparseable.
type ScrapedRowResponse struct {
	Sno               *int64   `json:"sno"`
	DateOfAuction     string   `json:"dateOfAuction"`
	Auctioneer        string   `json:"auctioneer"`
	NoOfLots          *float64 `json:"noOfLots"`
	TotalQtyArrivedKg *float64 `json:"totalQtyArrivedKg"`
	QtySoldKg         *float64 `json:"qtySoldKg"`
	MaxPricePerKg     *float64 `json:"maxPricePerKg"`
	AvgPricePerKg     *float64 `json:"avgPricePerKg"`
}

// ScrapeResponse is the body of a successful scrape-and-ingest call.
type ScrapeResponse struct {
	Source string               `json:"source"`
	Rows   []ScrapedRowResponse `json:"rows"`
}

// HistoryRowResponse is one persisted auction record.
type HistoryRowResponse struct {
	AuctionDate       string   `json:"auction_date"`
	Auctioneer        string   `json:"auctioneer"`
	NoOfLots          *float64 `json:"no_of_lots"`
	TotalQtyArrivedKg *float64 `json:"total_qty_arrived_kg"`
	QtySoldKg         *float64 `json:"qty_sold_kg"`
	MaxPricePerKg     *float64 `json:"max_price_per_kg"`
	AvgPricePerKg     *float64 `json:"avg_price_per_kg"`
}

// HistoryResponse is the body of a history query.
type HistoryResponse struct {
	Rows []HistoryRowResponse `json:"rows"`
}
