// Package spicesboard scrapes the Spices Board daily auction price archive.
package spicesboard

import (
	"os"
	"time"
)

// DefaultBaseURL is the small cardamom daily price archive page.
const DefaultBaseURL = "https://www.indianspices.com/marketing/price/domestic/daily-price-small.html"

// Config holds configuration for the Spices Board scraper.
type Config struct {
	BaseURL          string        // Archive page URL
	Timeout          time.Duration // HTTP request timeout
	FetchesPerMinute int           // Upstream fetch cap
}

// LoadConfig loads scraper configuration from environment variables, falling
// back to the live archive URL.
func LoadConfig() Config {
	base := os.Getenv("SPICES_BOARD_URL")
	if base == "" {
		base = DefaultBaseURL
	}
	return Config{
		BaseURL:          base,
		Timeout:          20 * time.Second,
		FetchesPerMinute: 30,
	}
}
