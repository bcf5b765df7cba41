package spicesboard

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"tjkspices_backend/internal/feature/auction/domain"
	"tjkspices_backend/internal/feature/auction/domain/entity"
	"tjkspices_backend/internal/feature/auction/usecase"
	"tjkspices_backend/internal/shared/ratelimiter"
)

// archiveHeader is the flattened text of the 8-column header row of the
// auction archive table. Matching on content rather than a fixed table index
// keeps the extractor working when the page gains or loses decorative tables.
const archiveHeader = "Sno Date of Auction Auctioneer No.of Lots Total Qty Arrived (Kgs) Qty Sold (Kgs) MaxPrice (Rs./Kg) Avg.Price (Rs./Kg)"

// archiveColumns is the minimum cell count of a data row. Rows with fewer
// cells are spacers or malformed and are skipped.
const archiveColumns = 8

var whitespaceRe = regexp.MustCompile(`\s+`)

// TableSelector picks the archive data table out of a parsed page. The
// default heuristic is content sniffing, which is inherently fragile against
// upstream HTML changes; a layout change only requires plugging in a new
// selector, not rewriting the extractor.
type TableSelector interface {
	Select(doc *goquery.Document) *goquery.Selection
}

// headerTableSelector selects the first table whose whitespace-collapsed text
// contains the expected header phrase, falling back to the last table on the
// page (the data table is typically last). Returns nil when the page has no
// tables.
type headerTableSelector struct {
	header string
}

func (s headerTableSelector) Select(doc *goquery.Document) *goquery.Selection {
	var found *goquery.Selection
	doc.Find("table").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.TrimSpace(whitespaceRe.ReplaceAllString(sel.Text(), " "))
		if strings.Contains(text, s.header) {
			found = sel
			return false
		}
		return true
	})
	if found != nil {
		return found
	}
	tables := doc.Find("table")
	if tables.Length() > 0 {
		return tables.Last()
	}
	return nil
}

// DefaultTableSelector returns the header-heuristic selector used in
// production.
func DefaultTableSelector() TableSelector {
	return headerTableSelector{header: archiveHeader}
}

// Scraper fetches and extracts the Spices Board auction archive. It acts as
// an anti-corruption layer converting the unstable upstream HTML into domain
// rows.
type Scraper struct {
	client   *http.Client
	baseURL  string
	selector TableSelector
	limiter  ratelimiter.RateLimiterInterface
}

var _ usecase.ArchiveSource = (*Scraper)(nil)

// NewScraper creates a Scraper with the default table selector. Outbound
// fetches are capped so public callers cannot hammer the source site.
func NewScraper(cfg Config, client *http.Client) *Scraper {
	return NewScraperWithSelector(cfg, client, DefaultTableSelector())
}

// NewScraperWithSelector creates a Scraper with an explicit table selection
// strategy.
func NewScraperWithSelector(cfg Config, client *http.Client, selector TableSelector) *Scraper {
	perMinute := cfg.FetchesPerMinute
	if perMinute <= 0 {
		perMinute = 30
	}
	return &Scraper{
		client:   client,
		baseURL:  cfg.BaseURL,
		selector: selector,
		limiter:  ratelimiter.NewRateLimiter(perMinute, time.Minute),
	}
}

// FetchArchive fetches one archive page and extracts its data rows. Page 1 is
// the bare archive URL; later pages use the page query parameter.
func (s *Scraper) FetchArchive(ctx context.Context, page int) (*entity.ScrapePage, error) {
	url := s.baseURL
	if page > 1 {
		url = fmt.Sprintf("%s?page=%d", s.baseURL, page)
	}

	doc, err := s.fetchHTML(ctx, url)
	if err != nil {
		return nil, err
	}

	table := s.selector.Select(doc)
	if table == nil {
		return nil, domain.ErrNoArchiveTable
	}

	return &entity.ScrapePage{SourceURL: url, Rows: extractRows(table)}, nil
}

// fetchHTML performs the outbound request with browser-like identification
// headers. The source site rejects unidentified clients.
func (s *Scraper) fetchHTML(ctx context.Context, url string) (*goquery.Document, error) {
	s.limiter.WaitIfNeeded()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	res, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer func() {
		if closeErr := res.Body.Close(); closeErr != nil {
			slog.Warn("failed to close response body", "error", closeErr)
		}
	}()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", domain.ErrUpstream, res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

// extractRows walks the table rows, skipping the header row and anything with
// too few cells, and normalizes each cell. Rows whose date fails to normalize
// keep an empty AuctionDate; they stay visible in the result for transparency
// but carry no natural key and are never persisted.
func extractRows(table *goquery.Selection) []entity.ScrapedRow {
	rows := []entity.ScrapedRow{}
	table.Find("tr").Each(func(i int, tr *goquery.Selection) {
		if i == 0 {
			return // header
		}
		tds := tr.Find("td")
		if tds.Length() < archiveColumns {
			return
		}

		cell := func(n int) string {
			return strings.TrimSpace(tds.Eq(n).Text())
		}

		rawDate := cell(1)
		isoDate, ok := NormalizeDate(rawDate)
		if !ok {
			isoDate = ""
		}

		rows = append(rows, entity.ScrapedRow{
			Sno:               NormalizeInt(cell(0)),
			DateOfAuction:     rawDate,
			AuctionDate:       isoDate,
			Auctioneer:        cell(2),
			NoOfLots:          NormalizeNumber(cell(3)),
			TotalQtyArrivedKg: NormalizeNumber(cell(4)),
			QtySoldKg:         NormalizeNumber(cell(5)),
			MaxPricePerKg:     NormalizeNumber(cell(6)),
			AvgPricePerKg:     NormalizeNumber(cell(7)),
		})
	})
	return rows
}
