// Package myrient scrapes Myrient HTML directory indexes.
package myrient

import (
	"context"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/gamedex/catalog-crawler/internal/catalog"
	"github.com/gamedex/catalog-crawler/internal/fetch"
)

// HostName labels links produced by this scraper.
const HostName = "Myrient"

// Scraper streams entries from Myrient directory listings.
type Scraper struct {
	client *fetch.Client
	logger *zap.Logger
}

// New constructs a Scraper.
func New(client *fetch.Client, logger *zap.Logger) *Scraper {
	return &Scraper{client: client, logger: logger}
}

// Scrape fetches each configured index page and yields the rows matching
// the source filter. Fetch failures are logged and skipped.
func (s *Scraper) Scrape(ctx context.Context, src catalog.Source, platform string, useCached bool) catalog.Stream {
	return func(yield func(*catalog.Entry) bool) {
		filter, err := regexp.Compile(src.Filter)
		if err != nil {
			s.logger.Error("invalid source filter",
				zap.String("filter", src.Filter), zap.Error(err))
			return
		}

		for _, url := range src.URLs {
			body, err := s.client.Get(ctx, url, useCached)
			if err != nil {
				s.logger.Warn("failed to get response",
					zap.String("url", url), zap.Error(err))
				continue
			}

			entries, err := extractEntries(body, filter, src, platform, url)
			if err != nil {
				s.logger.Warn("failed to parse index",
					zap.String("url", url), zap.Error(err))
				continue
			}
			if len(entries) == 0 {
				s.logger.Warn("no entries parsed", zap.String("url", url))
				continue
			}
			for _, entry := range entries {
				if !yield(entry) {
					return
				}
			}
		}
	}
}

// extractEntries walks the listing table: each row links a file and carries
// its display size.
func extractEntries(body string, filter *regexp.Regexp, src catalog.Source, platform, baseURL string) ([]*catalog.Entry, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, err
	}

	var entries []*catalog.Entry
	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		anchor := row.Find("td.link a")
		href, ok := anchor.Attr("href")
		if !ok {
			return
		}
		rawTitle := strings.TrimSpace(anchor.Text())
		sizeStr := strings.TrimSpace(row.Find("td.size").Text())

		m := filter.FindStringSubmatch(rawTitle)
		if m == nil {
			return
		}
		title := rawTitle
		if filter.NumSubexp() > 0 && m[1] != "" {
			title = m[1]
		}

		entries = append(entries, newEntry(href, rawTitle, title, sizeStr, src, platform, baseURL))
	})
	return entries, nil
}

func newEntry(link, filename, title, sizeStr string, src catalog.Source, platform, baseURL string) *catalog.Entry {
	size := catalog.ParseSize(sizeStr)
	return &catalog.Entry{
		Title:    title,
		Platform: platform,
		Regions:  src.Regions,
		Links: []catalog.Link{{
			Name:      title,
			Type:      src.Type,
			Format:    src.Format,
			URL:       catalog.JoinURLs(baseURL, link),
			Filename:  filename,
			Host:      HostName,
			Size:      size,
			SizeStr:   catalog.FormatSize(size),
			SourceURL: baseURL,
		}},
	}
}
