// Package crawler fetches campus web pages and saves them as cleaned text
// files ready for ingestion.
//
// The crawl is breadth-first from the seed URLs, stays inside the allowed
// domains, and is rate limited. Use responsibly and respect robots.txt and
// the site's terms of use.
package crawler

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/campuslabs/ubot/internal/core/domain"
	"github.com/campuslabs/ubot/internal/logger"
)

// Default crawl bounds.
const (
	DefaultMaxPages          = 15
	DefaultMaxDepth          = 2
	DefaultRequestsPerSecond = 2
	fetchTimeout             = 15 * time.Second
)

// strippedTags are removed from pages before text extraction.
var strippedTags = []string{"script", "style", "nav", "footer", "header"}

// unsafePathChars collapses URL path segments into filesystem-safe slugs.
var unsafePathChars = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// Config bounds one crawl run.
type Config struct {
	// SeedURLs are the starting points.
	SeedURLs []string

	// AllowedDomains restricts the crawl; a URL is followed only when its
	// host ends with one of these.
	AllowedDomains []string

	// MaxPages caps the number of pages saved.
	MaxPages int

	// MaxDepth caps link distance from the seeds.
	MaxDepth int

	// RequestsPerSecond throttles fetches.
	RequestsPerSecond float64
}

// Stats summarises one crawl run.
type Stats struct {
	// Fetched is the number of pages requested.
	Fetched int

	// Saved is the number of pages written to disk.
	Saved int

	// Failed is the number of fetches that errored.
	Failed int
}

// Crawler walks a site breadth-first and writes cleaned page text.
type Crawler struct {
	client  *http.Client
	limiter *rate.Limiter
	cfg     Config
}

// queued is one URL waiting to be fetched.
type queued struct {
	url   string
	depth int
}

// New creates a crawler. Zero bounds fall back to defaults.
func New(cfg Config) (*Crawler, error) {
	if len(cfg.SeedURLs) == 0 {
		return nil, fmt.Errorf("%w: no seed URLs configured", domain.ErrConfiguration)
	}
	if len(cfg.AllowedDomains) == 0 {
		return nil, fmt.Errorf("%w: no allowed domains configured", domain.ErrConfiguration)
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = DefaultMaxPages
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}

	return &Crawler{
		client:  &http.Client{Timeout: fetchTimeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		cfg:     cfg,
	}, nil
}

// Crawl walks the site breadth-first from the seeds and writes one text file
// per page into outDir. Each file starts with a "# <url>" heading line so
// ingestion can recover the page URL.
func (c *Crawler) Crawl(ctx context.Context, outDir string) (Stats, error) {
	var stats Stats

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return stats, fmt.Errorf("create output directory: %w", err)
	}

	logger.Section("Site Crawl")
	logger.Info("Crawling %d seeds within %v", len(c.cfg.SeedURLs), c.cfg.AllowedDomains)

	visited := make(map[string]bool)
	queue := make([]queued, 0, len(c.cfg.SeedURLs))
	for _, seed := range c.cfg.SeedURLs {
		queue = append(queue, queued{url: seed, depth: 0})
	}

	for len(queue) > 0 && stats.Saved < c.cfg.MaxPages {
		item := queue[0]
		queue = queue[1:]

		if visited[item.url] || item.depth > c.cfg.MaxDepth {
			continue
		}
		visited[item.url] = true

		if !c.isAllowed(item.url) {
			continue
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return stats, err
		}

		logger.Debug("Fetching [%d] %s", item.depth, item.url)
		doc, err := c.fetch(ctx, item.url)
		stats.Fetched++
		if err != nil {
			logger.Warn("Failed to fetch %s: %v", item.url, err)
			stats.Failed++
			continue
		}

		text := extractText(doc)
		path := filepath.Join(outDir, urlToFilename(item.url))
		content := fmt.Sprintf("# %s\n\n%s", item.url, text)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return stats, fmt.Errorf("write %s: %w", path, err)
		}
		stats.Saved++
		logger.Debug("Saved %s", path)

		for _, link := range c.extractLinks(doc, item.url) {
			if !visited[link] {
				queue = append(queue, queued{url: link, depth: item.depth + 1})
			}
		}
	}

	logger.Info("Crawl complete: saved %d pages to %s", stats.Saved, outDir)
	return stats, nil
}

// fetch retrieves and parses one page.
func (c *Crawler) fetch(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, http.NoBody)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	return goquery.NewDocumentFromReader(resp.Body)
}

// isAllowed reports whether a URL is inside the crawl boundary.
func (c *Crawler) isAllowed(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	for _, allowed := range c.cfg.AllowedDomains {
		if strings.HasSuffix(parsed.Hostname(), allowed) {
			return true
		}
	}
	return false
}

// extractLinks resolves every anchor href against the page URL and keeps
// the in-boundary ones.
func (c *Crawler) extractLinks(doc *goquery.Document, pageURL string) []string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}

	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		resolved, err := base.Parse(href)
		if err != nil {
			return
		}
		resolved.Fragment = ""
		link := resolved.String()
		if c.isAllowed(link) {
			links = append(links, link)
		}
	})
	return links
}

// extractText converts a page to readable plain text: chrome tags dropped,
// one non-empty line per text run.
func extractText(doc *goquery.Document) string {
	clone := doc.Selection.Clone()
	clone.Find(strings.Join(strippedTags, ", ")).Remove()

	raw := clone.Text()
	lines := make([]string, 0, 64)
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// urlToFilename converts a URL into a filesystem-safe .txt filename.
func urlToFilename(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return "page.txt"
	}

	path := parsed.Path
	if path == "" {
		path = "index"
	}
	if strings.HasSuffix(path, "/") {
		path += "index"
	}

	slug := unsafePathChars.ReplaceAllString(path, "_")
	return parsed.Hostname() + slug + ".txt"
}
