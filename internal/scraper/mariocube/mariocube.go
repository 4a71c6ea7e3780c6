// Package mariocube scrapes MarioCube plain-text directory listings, the
// ANSI-colored form the index serves to curl-style clients.
package mariocube

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/gamedex/catalog-crawler/internal/catalog"
	"github.com/gamedex/catalog-crawler/internal/fetch"
)

// HostName labels links produced by this scraper.
const HostName = "MarioCube"

var (
	ansiEscape  = regexp.MustCompile(`\x1B\[[0-?]*[ -/]*[@-~]`)
	listingLine = regexp.MustCompile(`^(\S+)\s+(\S+)\s+(.+)$`)
)

// Scraper streams entries from MarioCube listings.
type Scraper struct {
	client *fetch.Client
	logger *zap.Logger
}

// New constructs a Scraper.
func New(client *fetch.Client, logger *zap.Logger) *Scraper {
	return &Scraper{client: client, logger: logger}
}

// Scrape fetches each configured listing and yields the lines matching the
// source filter.
func (s *Scraper) Scrape(ctx context.Context, src catalog.Source, platform string, useCached bool) catalog.Stream {
	return func(yield func(*catalog.Entry) bool) {
		filter, err := regexp.Compile(src.Filter)
		if err != nil {
			s.logger.Error("invalid source filter",
				zap.String("filter", src.Filter), zap.Error(err))
			return
		}

		for _, listingURL := range src.URLs {
			body, err := s.client.Get(ctx, listingURL, useCached)
			if err != nil {
				s.logger.Warn("failed to get response",
					zap.String("url", listingURL), zap.Error(err))
				continue
			}

			for _, row := range parseListingLines(body) {
				m := filter.FindStringSubmatch(row.filename)
				if m == nil || len(m) < 2 {
					continue
				}
				if !yield(newEntry(row, m[1], src, platform, listingURL)) {
					return
				}
			}
		}
	}
}

type listingRow struct {
	filename string
	sizeStr  string
}

// parseListingLines yields filename and size pairs from the raw listing.
// Lines look like "<date> <size> <filename>", with ANSI color codes and
// comment lines mixed in.
func parseListingLines(body string) []listingRow {
	var rows []listingRow
	for _, rawLine := range strings.Split(body, "\n") {
		line := strings.TrimSpace(ansiEscape.ReplaceAllString(rawLine, ""))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		m := listingLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		rows = append(rows, listingRow{
			filename: strings.TrimSpace(m[3]),
			sizeStr:  m[2],
		})
	}
	return rows
}

func newEntry(row listingRow, title string, src catalog.Source, platform, baseURL string) *catalog.Entry {
	size := catalog.ParseSize(row.sizeStr)
	return &catalog.Entry{
		Title:    title,
		Platform: platform,
		Regions:  src.Regions,
		Links: []catalog.Link{{
			Name:      title,
			Type:      src.Type,
			Format:    src.Format,
			URL:       catalog.JoinURLs(baseURL, url.PathEscape(row.filename)),
			Filename:  row.filename,
			Host:      HostName,
			Size:      size,
			SizeStr:   row.sizeStr,
			SourceURL: baseURL,
		}},
	}
}
