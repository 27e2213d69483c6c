package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/campuslabs/ubot/internal/core/domain"
	"github.com/campuslabs/ubot/internal/crawler"
)

var (
	crawlOut      string
	crawlMaxPages int
	crawlMaxDepth int
	crawlRate     float64
)

var crawlCmd = &cobra.Command{
	Use:   "crawl [seed-url...]",
	Short: "Crawl the campus site into text files",
	Long: `Crawls the campus site breadth-first from the seed URLs and saves one
cleaned text file per page, ready for "ubot ingest". Seeds from the command
line override the configured ones.

The crawl stays inside the allowed domains (configured, or derived from the
seed hosts) and is rate limited. Respect robots.txt and the site's terms of
use.`,
	RunE: runCrawl,
}

func init() {
	crawlCmd.Flags().StringVar(&crawlOut, "out", "", "output directory (default is the configured data directory)")
	crawlCmd.Flags().IntVar(&crawlMaxPages, "max-pages", 0, "maximum pages to save (default from config)")
	crawlCmd.Flags().IntVar(&crawlMaxDepth, "max-depth", 0, "maximum link depth from the seeds (default from config)")
	crawlCmd.Flags().Float64Var(&crawlRate, "rps", 0, "maximum requests per second (default from config)")
	rootCmd.AddCommand(crawlCmd)
}

func runCrawl(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	seeds := settings.Crawl.SeedURLs
	if len(args) > 0 {
		seeds = args
	}
	if len(seeds) == 0 {
		return fmt.Errorf("%w: no seed URLs configured; pass them as arguments", domain.ErrConfiguration)
	}

	domains := settings.Crawl.AllowedDomains
	if len(domains) == 0 {
		domains = seedHosts(seeds)
	}

	maxPages := crawlMaxPages
	if maxPages <= 0 {
		maxPages = settings.Crawl.MaxPages
	}
	maxDepth := crawlMaxDepth
	if maxDepth <= 0 {
		maxDepth = settings.Crawl.MaxDepth
	}
	rps := crawlRate
	if rps <= 0 {
		rps = settings.Crawl.RequestsPerSecond
	}

	out := crawlOut
	if out == "" {
		out = settings.Ingest.DataDir
	}
	if out == "" {
		out = "campus_content"
	}

	c, err := crawler.New(crawler.Config{
		SeedURLs:          seeds,
		AllowedDomains:    domains,
		MaxPages:          maxPages,
		MaxDepth:          maxDepth,
		RequestsPerSecond: rps,
	})
	if err != nil {
		return err
	}

	stats, err := c.Crawl(cmd.Context(), out)
	if err != nil {
		return err
	}

	cmd.Printf("Saved %d pages to %s (%d fetches failed).\n", stats.Saved, out, stats.Failed)
	return nil
}

// seedHosts derives the crawl boundary from the seed URL hosts.
func seedHosts(seeds []string) []string {
	hosts := make([]string, 0, len(seeds))
	seen := make(map[string]bool)
	for _, seed := range seeds {
		parsed, err := url.Parse(seed)
		if err != nil || parsed.Hostname() == "" {
			continue
		}
		if host := parsed.Hostname(); !seen[host] {
			seen[host] = true
			hosts = append(hosts, host)
		}
	}
	return hosts
}
