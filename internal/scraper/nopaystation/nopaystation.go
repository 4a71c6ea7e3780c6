// Package nopaystation scrapes the NoPayStation TSV databases. Besides the
// PKG download links it materializes PS3 RAP files and PSV ZRIF strings as
// static content files served by the site.
package nopaystation

import (
	"context"
	"encoding/csv"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/gamedex/catalog-crawler/internal/catalog"
	"github.com/gamedex/catalog-crawler/internal/fetch"
	"github.com/gamedex/catalog-crawler/internal/storage"
)

// HostName labels links produced by this scraper.
const HostName = "NoPayStation"

// mainSite hosts the generated content files referenced by RAP/ZRIF links.
const mainSite = "https://gamedex.net"

const (
	ps3RapsPath     = "content/ps3/raps"
	ps3RapsBaseURL  = mainSite + "/static/content/ps3/raps"
	psvZrifsPath    = "content/psv/zrifs"
	psvZrifsBaseURL = mainSite + "/static/content/psv/zrifs"
)

var regionsMap = map[string]string{
	"US": "us",
	"EU": "eu",
	"JP": "jp",
}

// Scraper streams entries from NoPayStation TSV dumps.
type Scraper struct {
	client *fetch.Client
	blobs  storage.Provider
	logger *zap.Logger
}

// New constructs a Scraper. Generated RAP/ZRIF files go through blobs.
func New(client *fetch.Client, blobs storage.Provider, logger *zap.Logger) *Scraper {
	return &Scraper{client: client, blobs: blobs, logger: logger}
}

// Scrape fetches each TSV dump and yields one entry per row that carries a
// usable download link.
func (s *Scraper) Scrape(ctx context.Context, src catalog.Source, platform string, useCached bool) catalog.Stream {
	return func(yield func(*catalog.Entry) bool) {
		for _, url := range src.URLs {
			body, err := s.client.Get(ctx, url, useCached)
			if err != nil {
				s.logger.Warn("failed to get response",
					zap.String("url", url), zap.Error(err))
				continue
			}

			rows, err := parseTSV(body)
			if err != nil {
				s.logger.Warn("failed to parse TSV",
					zap.String("url", url), zap.Error(err))
				continue
			}

			for _, row := range rows {
				entry := s.newEntry(ctx, row, src, platform, url)
				if entry == nil || len(entry.Links) == 0 {
					continue
				}
				if !yield(entry) {
					return
				}
			}
		}
	}
}

type record map[string]string

// parseTSV reads a header-prefixed tab-separated dump into records.
func parseTSV(body string) ([]record, error) {
	reader := csv.NewReader(strings.NewReader(body))
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read TSV: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("TSV has no data rows")
	}

	header := rows[0]
	records := make([]record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := record{}
		for i, key := range header {
			if i < len(row) {
				rec[key] = row[i]
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

func (s *Scraper) newEntry(ctx context.Context, row record, src catalog.Source, platform, baseURL string) *catalog.Entry {
	region, ok := regionsMap[row["Region"]]
	if !ok {
		region = "other"
	}
	return &catalog.Entry{
		RomID:    row["Title ID"],
		Title:    row["Name"],
		Platform: platform,
		Regions:  []string{region},
		Links:    s.parseLinks(ctx, row, src, platform, baseURL),
	}
}

func (s *Scraper) parseLinks(ctx context.Context, row record, src catalog.Source, platform, baseURL string) []catalog.Link {
	var links []catalog.Link

	pkgURL := row["PKG direct link"]
	if !strings.HasPrefix(pkgURL, "http") {
		return links
	}

	name := row["Name"]
	var size int64
	if raw := row["File Size"]; isDigits(raw) {
		size, _ = strconv.ParseInt(raw, 10, 64)
	}
	sizeStr := ""
	if size > 0 {
		sizeStr = catalog.FormatSize(size)
	}

	if strings.HasSuffix(pkgURL, ".xml") {
		// Multi-piece packages list their segment URLs in an XML manifest.
		for i, pieceURL := range s.fetchPieceURLs(ctx, pkgURL) {
			links = append(links, catalog.Link{
				Name:      name,
				Type:      fmt.Sprintf("%s #%d", src.Type, i),
				Format:    src.Format,
				URL:       pieceURL,
				Filename:  filenameFromURL(pieceURL),
				Host:      HostName,
				Size:      size,
				SizeStr:   sizeStr,
				SourceURL: baseURL,
			})
		}
	} else {
		links = append(links, catalog.Link{
			Name:      name,
			Type:      src.Type,
			Format:    src.Format,
			URL:       pkgURL,
			Filename:  filenameFromURL(pkgURL),
			Host:      HostName,
			Size:      size,
			SizeStr:   sizeStr,
			SourceURL: baseURL,
		})
	}

	switch platform {
	case "ps3":
		links = s.appendRapLink(ctx, row, links, baseURL)
	case "psv":
		links = s.appendZrifLink(ctx, row, links, baseURL)
	}
	return links
}

type pieceManifest struct {
	Pieces []struct {
		URL string `xml:"url,attr"`
	} `xml:"pieces"`
}

func (s *Scraper) fetchPieceURLs(ctx context.Context, manifestURL string) []string {
	body, err := s.client.Get(ctx, manifestURL, false)
	if err != nil {
		s.logger.Warn("failed to fetch piece manifest",
			zap.String("url", manifestURL), zap.Error(err))
		return nil
	}
	var manifest pieceManifest
	if err := xml.Unmarshal([]byte(body), &manifest); err != nil {
		s.logger.Warn("invalid piece manifest",
			zap.String("url", manifestURL), zap.Error(err))
		return nil
	}
	urls := make([]string, 0, len(manifest.Pieces))
	for _, piece := range manifest.Pieces {
		urls = append(urls, piece.URL)
	}
	return urls
}

// appendRapLink writes the 16-byte RAP file decoded from the hex column and
// links it.
func (s *Scraper) appendRapLink(ctx context.Context, row record, links []catalog.Link, baseURL string) []catalog.Link {
	rap := row["RAP"]
	contentID := row["Content ID"]
	if len(rap) != 32 || contentID == "" {
		return links
	}
	data, err := hex.DecodeString(rap)
	if err != nil {
		s.logger.Warn("invalid RAP hex", zap.String("content_id", contentID))
		return links
	}

	filename := contentID + ".rap"
	if _, err := s.blobs.PutObject(ctx, ps3RapsPath+"/"+filename, "application/octet-stream", data); err != nil {
		s.logger.Warn("failed to write RAP file",
			zap.String("filename", filename), zap.Error(err))
		return links
	}

	return append(links, catalog.Link{
		Name:      row["Name"],
		Type:      "RAP file",
		Format:    "rap",
		URL:       ps3RapsBaseURL + "/" + filename,
		Filename:  filename,
		Host:      HostName,
		Size:      int64(len(data)),
		SizeStr:   catalog.FormatSize(int64(len(data))),
		SourceURL: baseURL,
	})
}

// appendZrifLink writes the ZRIF string as a content file and links it.
func (s *Scraper) appendZrifLink(ctx context.Context, row record, links []catalog.Link, baseURL string) []catalog.Link {
	zrif := row["zRIF"]
	contentID := row["Content ID"]
	if zrif == "" || contentID == "" {
		return links
	}

	if _, err := s.blobs.PutObject(ctx, psvZrifsPath+"/"+contentID, "text/plain", []byte(zrif)); err != nil {
		s.logger.Warn("failed to write ZRIF file",
			zap.String("filename", contentID), zap.Error(err))
		return links
	}

	return append(links, catalog.Link{
		Name:      row["Name"],
		Type:      "ZRIF string",
		Format:    "string",
		URL:       psvZrifsBaseURL + "/" + contentID,
		Filename:  contentID,
		Host:      HostName,
		Size:      int64(len(zrif)),
		SizeStr:   catalog.FormatSize(int64(len(zrif))),
		SourceURL: baseURL,
	})
}

func filenameFromURL(rawURL string) string {
	trimmed := strings.TrimRight(rawURL, "/")
	return trimmed[strings.LastIndex(trimmed, "/")+1:]
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
