package cutoff_crawler

import "context"

// CutoffFile is one downloadable cutoff publication discovered on a
// counselling portal: a CSV or PDF with last-rank data for one cycle.
type CutoffFile struct {
	Title    string
	URL      string
	FileType string // "pdf" or "csv"
	Year     int
	Round    int
}

// CrawlerInterface defines the contract for cutoff publication crawlers
type CrawlerInterface interface {
	// GetName returns the unique identifier for this crawler
	GetName() string

	// GetBaseURL returns the base URL of the portal
	GetBaseURL() string

	// ListCutoffFiles discovers downloadable cutoff files on the portal.
	// year filters to one counselling cycle; 0 means all.
	ListCutoffFiles(ctx context.Context, year int) ([]CutoffFile, error)

	// Download fetches one discovered file
	Download(ctx context.Context, file CutoffFile) ([]byte, error)
}

// CrawlerConfig holds configuration for a crawler instance
type CrawlerConfig struct {
	Name           string
	BaseURL        string
	ListingPath    string
	Timeout        int // in seconds
	RateLimitDelay int // milliseconds between requests
	UserAgent      string
}

// BaseCrawler provides common functionality for all crawlers
type BaseCrawler struct {
	Config CrawlerConfig
}

// GetName implements CrawlerInterface
func (c *BaseCrawler) GetName() string {
	return c.Config.Name
}

// GetBaseURL implements CrawlerInterface
func (c *BaseCrawler) GetBaseURL() string {
	return c.Config.BaseURL
}
