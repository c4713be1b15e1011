package cutoff_crawler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// PortalCrawler crawls the counselling portal's downloads page, where each
// counselling cycle's last-rank files are published as anchor links.
type PortalCrawler struct {
	BaseCrawler
	httpClient *http.Client
}

// NewPortalCrawler creates a crawler for the official counselling portal
func NewPortalCrawler(baseURL string) *PortalCrawler {
	config := CrawlerConfig{
		Name:           "eapcet-portal",
		BaseURL:        baseURL,
		ListingPath:    "/EAPCET/downloads",
		Timeout:        30,
		RateLimitDelay: 1000, // 1 second between requests
		UserAgent:      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36",
	}

	return &PortalCrawler{
		BaseCrawler: BaseCrawler{Config: config},
		httpClient: &http.Client{
			Timeout: time.Duration(config.Timeout) * time.Second,
		},
	}
}

// yearRe and roundRe pull the counselling cycle out of link titles like
// "EAPCET 2024 Final Phase (Round 2) Last Ranks".
var (
	yearRe  = regexp.MustCompile(`\b(20\d{2})\b`)
	roundRe = regexp.MustCompile(`(?i)(?:round|phase)[\s-]*(\d)`)
)

// ListCutoffFiles implements CrawlerInterface
func (c *PortalCrawler) ListCutoffFiles(ctx context.Context, year int) ([]CutoffFile, error) {
	listingURL := c.Config.BaseURL + c.Config.ListingPath

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, listingURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.Config.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch portal listing: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("portal listing returned %d", resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse portal HTML: %w", err)
	}

	var files []CutoffFile
	c.collectLinks(doc, &files)

	if year == 0 {
		return files, nil
	}

	filtered := files[:0]
	for _, f := range files {
		if f.Year == year {
			filtered = append(filtered, f)
		}
	}
	return filtered, nil
}

// collectLinks walks the DOM and keeps anchors pointing at cutoff files
func (c *PortalCrawler) collectLinks(n *html.Node, files *[]CutoffFile) {
	if n.Type == html.ElementNode && n.Data == "a" {
		href := ""
		for _, attr := range n.Attr {
			if attr.Key == "href" {
				href = attr.Val
				break
			}
		}

		title := strings.TrimSpace(textContent(n))
		if file, ok := c.classifyLink(href, title); ok {
			*files = append(*files, file)
		}
	}

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.collectLinks(child, files)
	}
}

// classifyLink decides whether an anchor is a cutoff publication. Only links
// that are both rank-related by title and CSV/PDF by extension qualify.
func (c *PortalCrawler) classifyLink(href, title string) (CutoffFile, bool) {
	if href == "" {
		return CutoffFile{}, false
	}

	lowerHref := strings.ToLower(href)
	fileType := ""
	switch {
	case strings.HasSuffix(lowerHref, ".pdf"):
		fileType = "pdf"
	case strings.HasSuffix(lowerHref, ".csv"):
		fileType = "csv"
	default:
		return CutoffFile{}, false
	}

	lowerTitle := strings.ToLower(title)
	if !strings.Contains(lowerTitle, "rank") && !strings.Contains(lowerTitle, "cutoff") && !strings.Contains(lowerTitle, "cut-off") {
		return CutoffFile{}, false
	}

	file := CutoffFile{
		Title:    title,
		URL:      c.absoluteURL(href),
		FileType: fileType,
	}

	if m := yearRe.FindStringSubmatch(title); m != nil {
		file.Year, _ = strconv.Atoi(m[1])
	}
	if m := roundRe.FindStringSubmatch(title); m != nil {
		file.Round, _ = strconv.Atoi(m[1])
	}

	return file, true
}

func (c *PortalCrawler) absoluteURL(href string) string {
	parsed, err := url.Parse(href)
	if err != nil {
		return href
	}
	if parsed.IsAbs() {
		return href
	}

	base, err := url.Parse(c.Config.BaseURL)
	if err != nil {
		return href
	}
	return base.ResolveReference(parsed).String()
}

// Download implements CrawlerInterface
func (c *PortalCrawler) Download(ctx context.Context, file CutoffFile) ([]byte, error) {
	// Be polite to the portal between requests.
	time.Sleep(time.Duration(c.Config.RateLimitDelay) * time.Millisecond)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.Config.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", file.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download of %s returned %d", file.URL, resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// textContent flattens an anchor's nested text nodes
func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}

	var sb strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		sb.WriteString(textContent(child))
	}
	return sb.String()
}
