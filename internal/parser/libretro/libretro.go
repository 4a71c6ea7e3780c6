// Package libretro enriches entries from libretro-database DAT files:
// ROM serials by exact title match, and box-art URLs from the libretro
// thumbnail index.
package libretro

import (
	"bufio"
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/gamedex/catalog-crawler/internal/catalog"
	"github.com/gamedex/catalog-crawler/internal/fetch"
)

const thumbnailsBaseURL = "https://thumbnails.libretro.com"

// Parser owns the parsed DAT tables and the per-platform box-art indexes.
// Both are loaded once and shared across sources.
type Parser struct {
	dataDir string
	client  *fetch.Client
	logger  *zap.Logger

	once    sync.Once
	serials map[string]map[string]string // platform -> title -> serial

	boxartMu sync.Mutex
	boxarts  map[string]map[string]bool // platform -> title -> available
}

// New constructs a Parser reading DATs from dataDir
// (conventionally data/libretro).
func New(dataDir string, client *fetch.Client, logger *zap.Logger) *Parser {
	return &Parser{
		dataDir: dataDir,
		client:  client,
		logger:  logger,
		boxarts: map[string]map[string]bool{},
	}
}

// Parse streams entries through, attaching ROM serials and box-art URLs
// where the libretro database knows the title.
func (p *Parser) Parse(entries catalog.Stream, _ catalog.Flags) catalog.Stream {
	return func(yield func(*catalog.Entry) bool) {
		p.once.Do(p.loadSerials)

		for entry := range entries {
			info, known := platforms[entry.Platform]
			if !known {
				if !yield(entry) {
					return
				}
				continue
			}

			if serial, ok := p.serials[entry.Platform][entry.Title]; ok {
				entry.RomID = serial
			}

			if p.boxartAvailable(entry.Platform, entry.Title) {
				entry.BoxartURL = fmt.Sprintf("%s/%s/Named_Boxarts/%s.png",
					thumbnailsBaseURL,
					url.PathEscape(info.system),
					url.PathEscape(entry.Title))
			}

			if !yield(entry) {
				return
			}
		}
	}
}

// loadSerials parses every configured DAT file. The DAT format is a flat
// "game ( ... )" block list; only name and serial are kept, first one wins.
func (p *Parser) loadSerials() {
	p.serials = map[string]map[string]string{}

	for platform, info := range platforms {
		p.serials[platform] = map[string]string{}
		for _, datFile := range info.dats {
			path := filepath.Join(p.dataDir, filepath.FromSlash(datFile))
			if err := p.loadDat(platform, path); err != nil {
				p.logger.Warn("skipping DAT file",
					zap.String("file", datFile), zap.Error(err))
			}
		}
	}
}

func (p *Parser) loadDat(platform, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open DAT: %w", err)
	}
	defer f.Close()

	var (
		game         map[string]string
		inRomSection bool
	)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, "game ("):
			game = map[string]string{}
			inRomSection = false
		case strings.HasPrefix(line, "rom ("):
			inRomSection = !strings.HasSuffix(line, ")")
		case line == ")":
			if inRomSection {
				inRomSection = false
				continue
			}
			if game == nil {
				continue
			}
			name, hasName := game["name"]
			serial, hasSerial := game["serial"]
			if hasName && hasSerial {
				if _, exists := p.serials[platform][name]; !exists {
					p.serials[platform][name] = serial
				}
			}
			game = nil
		default:
			if inRomSection || game == nil {
				continue
			}
			if strings.HasPrefix(line, "name") {
				game["name"] = quotedValue(line)
			} else if strings.HasPrefix(line, "serial") {
				game["serial"] = quotedValue(line)
			}
		}
	}
	return scanner.Err()
}

// quotedValue extracts the doubly-quoted payload of a DAT key line.
func quotedValue(line string) string {
	start := strings.Index(line, `"`)
	end := strings.LastIndex(line, `"`)
	if start < 0 || end <= start {
		return ""
	}
	return line[start+1 : end]
}

// boxartAvailable checks the thumbnail index for the platform, fetching
// and caching it on first use.
func (p *Parser) boxartAvailable(platform, title string) bool {
	p.boxartMu.Lock()
	defer p.boxartMu.Unlock()

	index, ok := p.boxarts[platform]
	if !ok {
		index = p.fetchBoxartIndex(platform)
		p.boxarts[platform] = index
	}
	return index[title]
}

func (p *Parser) fetchBoxartIndex(platform string) map[string]bool {
	index := map[string]bool{}
	info := platforms[platform]

	indexURL := fmt.Sprintf("%s/%s/Named_Boxarts/",
		thumbnailsBaseURL, url.PathEscape(info.system))
	body, err := p.client.Get(context.Background(), indexURL, false)
	if err != nil {
		p.logger.Warn("failed to fetch box-art index",
			zap.String("platform", platform), zap.Error(err))
		return index
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		p.logger.Warn("invalid box-art index page",
			zap.String("platform", platform), zap.Error(err))
		return index
	}

	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		if alt, _ := row.Find("img").Attr("alt"); alt != "[IMG]" {
			return
		}
		href, ok := row.Find("a").Attr("href")
		if !ok {
			return
		}
		decoded, err := url.PathUnescape(href)
		if err != nil {
			decoded = href
		}
		index[catalog.RemoveExt(decoded)] = true
	})

	p.logger.Info("box-art index loaded",
		zap.String("platform", platform), zap.Int("count", len(index)))
	return index
}
