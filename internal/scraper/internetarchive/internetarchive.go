// Package internetarchive scrapes archive.org items through the metadata
// API. Configured /download/... URLs act as path filters inside an item,
// not as fetch targets.
package internetarchive

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/gamedex/catalog-crawler/internal/catalog"
	"github.com/gamedex/catalog-crawler/internal/fetch"
)

// HostName labels links produced by this scraper.
const HostName = "Internet Archive"

const (
	metadataURL  = "https://archive.org/metadata"
	downloadBase = "https://archive.org/download"
)

type itemMetadata struct {
	Files []itemFile `json:"files"`
}

type itemFile struct {
	Name   string      `json:"name"`
	Source string      `json:"source"`
	Size   json.Number `json:"size"`
}

// Scraper yields entries from archive.org item metadata.
type Scraper struct {
	client *fetch.Client
	logger *zap.Logger
}

// New constructs a Scraper.
func New(client *fetch.Client, logger *zap.Logger) *Scraper {
	return &Scraper{client: client, logger: logger}
}

// Scrape groups the configured URLs by archive identifier, fetches each
// item's metadata once, and yields the original files under a configured
// path prefix whose basename matches the source filter.
func (s *Scraper) Scrape(ctx context.Context, src catalog.Source, platform string, useCached bool) catalog.Stream {
	return func(yield func(*catalog.Entry) bool) {
		filter, err := regexp.Compile("(?i)" + src.Filter)
		if err != nil {
			s.logger.Error("invalid source filter",
				zap.String("filter", src.Filter), zap.Error(err))
			return
		}

		identifiers, prefixes, err := groupByIdentifier(src.URLs)
		if err != nil {
			s.logger.Error("invalid archive.org URL", zap.Error(err))
			return
		}

		for _, identifier := range identifiers {
			metadata, err := s.fetchMetadata(ctx, identifier, useCached)
			if err != nil {
				s.logger.Warn("failed to fetch item metadata",
					zap.String("identifier", identifier), zap.Error(err))
				continue
			}

			for _, file := range metadata.Files {
				if file.Source != "original" || file.Name == "" {
					continue
				}
				if !matchesAnyPrefix(file.Name, prefixes[identifier]) {
					continue
				}
				basename := file.Name[strings.LastIndex(file.Name, "/")+1:]
				if loc := filter.FindStringIndex(basename); loc == nil || loc[0] != 0 {
					continue
				}
				if !yield(newEntry(identifier, file, src, platform)) {
					return
				}
			}
		}
	}
}

func (s *Scraper) fetchMetadata(ctx context.Context, identifier string, useCached bool) (*itemMetadata, error) {
	body, err := s.client.Get(ctx, metadataURL+"/"+identifier, useCached)
	if err != nil {
		return nil, err
	}
	var metadata itemMetadata
	if err := json.Unmarshal([]byte(body), &metadata); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	if len(metadata.Files) == 0 {
		return nil, fmt.Errorf("metadata for %s has no files", identifier)
	}
	return &metadata, nil
}

// parseDownloadURL splits an archive.org /download URL into the item
// identifier and an optional internal path prefix.
func parseDownloadURL(rawURL string) (identifier, prefix string, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", err
	}
	parts := strings.SplitN(strings.Trim(u.Path, "/"), "/", 3)
	if len(parts) < 2 || parts[0] != "download" {
		return "", "", fmt.Errorf("not an archive.org download URL: %s", rawURL)
	}
	identifier = parts[1]
	if len(parts) == 3 {
		prefix = strings.TrimSuffix(parts[2], "/") + "/"
	}
	return identifier, prefix, nil
}

// groupByIdentifier returns identifiers in first-seen order with their
// path prefixes, so each item is fetched once.
func groupByIdentifier(urls []string) ([]string, map[string][]string, error) {
	var identifiers []string
	prefixes := map[string][]string{}
	for _, rawURL := range urls {
		identifier, prefix, err := parseDownloadURL(rawURL)
		if err != nil {
			return nil, nil, err
		}
		if _, seen := prefixes[identifier]; !seen {
			identifiers = append(identifiers, identifier)
		}
		prefixes[identifier] = append(prefixes[identifier], prefix)
	}
	return identifiers, prefixes, nil
}

func matchesAnyPrefix(name string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

func newEntry(identifier string, file itemFile, src catalog.Source, platform string) *catalog.Entry {
	size, _ := file.Size.Int64()
	name := file.Name
	return &catalog.Entry{
		Title:    name,
		Platform: platform,
		Regions:  src.Regions,
		Links: []catalog.Link{{
			Name:      name,
			Type:      src.Type,
			Format:    src.Format,
			URL:       fmt.Sprintf("%s/%s/%s", downloadBase, identifier, escapePath(name)),
			Filename:  name[strings.LastIndex(name, "/")+1:],
			Host:      HostName,
			Size:      size,
			SizeStr:   catalog.FormatSize(size),
			SourceURL: fmt.Sprintf("%s/%s", downloadBase, identifier),
		}},
	}
}

// escapePath percent-encodes a file path, keeping slashes.
func escapePath(name string) string {
	segments := strings.Split(name, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}
