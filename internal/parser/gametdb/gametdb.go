// Package gametdb resolves box-art URLs (and optionally canonical
// titles) for entries using the GameTDB title databases. Candidate
// artwork URLs are verified with HEAD probes against art.gametdb.com
// and the verdicts are cached on disk.
package gametdb

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/gamedex/catalog-crawler/internal/catalog"
)

const (
	artworkBaseURL   = "https://art.gametdb.com"
	urlCacheFilename = "boxart_urls.json"
	probeTimeout     = 5 * time.Second
)

// tdbFile matches the GameTDB XML database layout.
type tdbFile struct {
	XMLName xml.Name  `xml:"datafile"`
	Games   []tdbGame `xml:"game"`
}

type tdbGame struct {
	Name   string `xml:"name,attr"`
	ID     string `xml:"id"`
	Type   string `xml:"type"`
	Region string `xml:"region"`
}

// Parser holds the in-memory TDB tables plus the on-disk probe cache.
// The cache maps platform -> GameTDB ID -> URL, where a nil URL records
// that every candidate was probed and none exists.
type Parser struct {
	dataDir  string
	cacheDir string
	client   *http.Client
	logger   *zap.Logger

	once sync.Once
	tdbs map[string][]tdbGame

	cacheMu  sync.Mutex
	urlCache map[string]map[string]*string
}

// New constructs a Parser reading TDB XML from dataDir (conventionally
// data/gametdb) and keeping its probe cache under cacheDir.
func New(dataDir, cacheDir string, logger *zap.Logger) *Parser {
	return &Parser{
		dataDir:  dataDir,
		cacheDir: cacheDir,
		client:   &http.Client{Timeout: probeTimeout},
		logger:   logger,
	}
}

// Parse streams entries through, resolving box art by ROM ID when one is
// set and by fuzzy title match otherwise. The parse_boxart flag (default
// true) controls artwork lookup; parse_name (default false) additionally
// replaces the title with GameTDB's canonical name.
func (p *Parser) Parse(entries catalog.Stream, flags catalog.Flags) catalog.Stream {
	parseBoxart := flags.Bool("parse_boxart", true)
	parseName := flags.Bool("parse_name", false)

	return func(yield func(*catalog.Entry) bool) {
		p.once.Do(p.loadTDBs)

		for entry := range entries {
			xmlFilename, ok := platformXMLMap[entry.Platform]
			if !ok {
				if !yield(entry) {
					return
				}
				continue
			}

			if entry.RomID != "" {
				if parseBoxart {
					entry.BoxartURL = p.boxartURLByID(entry.RomID, entry.Platform)
				}
				if parseName {
					for _, game := range p.tdbs[xmlFilename] {
						if game.ID == entry.RomID {
							entry.Title = game.Name
							break
						}
					}
				}
				if !yield(entry) {
					return
				}
				continue
			}

			if match := p.matchByTitle(entry, xmlFilename); match != nil {
				if parseBoxart {
					entry.BoxartURL = p.boxartURLByID(match.ID, entry.Platform)
				}
				if parseName {
					entry.Title = match.Name
				}
			}

			if !yield(entry) {
				return
			}
		}
	}
}

func (p *Parser) loadTDBs() {
	p.tdbs = map[string][]tdbGame{}

	for _, xmlFilename := range xmlFilenames {
		path := filepath.Join(p.dataDir, xmlFilename)

		data, err := os.ReadFile(path)
		if err != nil {
			p.logger.Warn("missing TDB file, skipping",
				zap.String("file", xmlFilename))
			continue
		}

		var db tdbFile
		if err := xml.Unmarshal(data, &db); err != nil {
			p.logger.Warn("invalid TDB XML, skipping",
				zap.String("file", xmlFilename), zap.Error(err))
			continue
		}

		p.tdbs[xmlFilename] = db.Games
		p.logger.Info("TDB loaded",
			zap.String("file", xmlFilename), zap.Int("games", len(db.Games)))
	}
}

var truncateAtParen = regexp.MustCompile(`\(.*`)

// matchByTitle finds the TDB game whose normalized name contains the
// entry's normalized title, constrained to the entry's platform and
// regions. The shortest matching name wins, as longer names tend to be
// special editions of the same game.
func (p *Parser) matchByTitle(entry *catalog.Entry, xmlFilename string) *tdbGame {
	titleKey := catalog.SearchKey(truncateAtParen.ReplaceAllString(entry.Title, ""))

	var (
		best    *tdbGame
		bestKey string
	)
	games := p.tdbs[xmlFilename]
	for i := range games {
		game := &games[i]

		mapped, ok := typePlatformMap[xmlFilename][game.Type]
		if !ok {
			mapped = entry.Platform
		}
		if mapped != entry.Platform {
			continue
		}

		if len(entry.Regions) > 0 {
			gameRegion := regionRegionMap[game.Region]
			if !slices.Contains(entry.Regions, gameRegion) {
				continue
			}
		}

		nameKey := catalog.SearchKey(truncateAtParen.ReplaceAllString(game.Name, ""))
		if !strings.Contains(nameKey, titleKey) {
			continue
		}

		if best == nil || len(nameKey) < len(bestKey) {
			best = game
			bestKey = nameKey
		}
	}
	return best
}

// boxartURLByID maps a ROM serial to a GameTDB ID, derives the region
// country from the ID, and probes artwork URLs until one responds.
func (p *Parser) boxartURLByID(romID, platform string) string {
	xmlFilename := platformXMLMap[platform]

	match := serialIDPatterns[platform].FindStringSubmatch(romID)
	if match == nil {
		return ""
	}
	validID := strings.Join(match[1:], "")

	fullID := p.findFullID(validID, xmlFilename)
	if fullID == "" {
		return ""
	}

	codeMatch := idRegionCodePatterns[xmlFilename].FindStringSubmatch(fullID)
	if codeMatch == nil {
		return ""
	}
	regionCode := codeMatch[1]

	for _, rc := range regionCodeCountries[xmlFilename] {
		if loc := rc.pattern.FindStringIndex(regionCode); loc == nil || loc[0] != 0 {
			continue
		}
		return p.buildBoxartURL(platform, rc.country, fullID)
	}
	return ""
}

// findFullID returns the first TDB ID the serial fragment is a prefix of.
func (p *Parser) findFullID(id, xmlFilename string) string {
	for _, game := range p.tdbs[xmlFilename] {
		if strings.HasPrefix(game.ID, id) {
			return game.ID
		}
	}
	return ""
}

// buildBoxartURL probes candidate URLs for the ID, preferring the region
// country and falling back to every country GameTDB hosts. Verdicts,
// including misses, are cached so reruns skip the probes.
func (p *Parser) buildBoxartURL(platform, country, id string) string {
	if cached, ok := p.cachedURL(platform, id); ok {
		return cached
	}

	ext := "png"
	switch platform {
	case "3ds", "n3ds", "wiiu", "ps3":
		ext = "jpg"
	}
	basePath := boxartPlatformPaths[platform]

	candidate := fmt.Sprintf("%s/%s/%s/%s.%s", artworkBaseURL, basePath, country, id, ext)
	if p.probe(candidate) {
		p.cacheURL(platform, id, &candidate)
		return candidate
	}

	for _, fallback := range artworkCountries {
		if fallback == country {
			continue
		}
		candidate = fmt.Sprintf("%s/%s/%s/%s.%s", artworkBaseURL, basePath, fallback, id, ext)
		if p.probe(candidate) {
			p.cacheURL(platform, id, &candidate)
			return candidate
		}
	}

	p.cacheURL(platform, id, nil)
	return ""
}

func (p *Parser) probe(url string) bool {
	resp, err := p.client.Head(url)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func (p *Parser) cachedURL(platform, id string) (string, bool) {
	p.cacheMu.Lock()
	defer p.cacheMu.Unlock()

	p.loadURLCacheLocked()
	cached, ok := p.urlCache[platform][id]
	if !ok {
		return "", false
	}
	if cached == nil {
		return "", true
	}
	return *cached, true
}

func (p *Parser) cacheURL(platform, id string, url *string) {
	p.cacheMu.Lock()
	defer p.cacheMu.Unlock()

	p.loadURLCacheLocked()
	if p.urlCache[platform] == nil {
		p.urlCache[platform] = map[string]*string{}
	}
	p.urlCache[platform][id] = url

	data, err := json.Marshal(p.urlCache)
	if err != nil {
		return
	}
	if err := os.MkdirAll(p.cacheDir, 0o755); err != nil {
		p.logger.Warn("failed to create cache directory", zap.Error(err))
		return
	}
	path := filepath.Join(p.cacheDir, urlCacheFilename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		p.logger.Warn("failed to write box-art cache", zap.Error(err))
	}
}

func (p *Parser) loadURLCacheLocked() {
	if p.urlCache != nil {
		return
	}
	p.urlCache = map[string]map[string]*string{}

	data, err := os.ReadFile(filepath.Join(p.cacheDir, urlCacheFilename))
	if err != nil {
		return
	}
	// A corrupt cache is discarded rather than surfaced.
	_ = json.Unmarshal(data, &p.urlCache)
}
