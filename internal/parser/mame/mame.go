// Package mame resolves arcade titles against MAME software-list XML files.
package mame

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/gamedex/catalog-crawler/internal/catalog"
)

type softwareList struct {
	Software []struct {
		Name        string `xml:"name,attr"`
		Description string `xml:"description"`
	} `xml:"software"`
}

// Parser maps short MAME names to full descriptions. The reference table
// is owned by the parser and loaded once, on first use.
type Parser struct {
	dir    string
	logger *zap.Logger

	once sync.Once
	roms map[string]string
}

// New constructs a Parser reading software lists from dir
// (conventionally data/mame/hash).
func New(dir string, logger *zap.Logger) *Parser {
	return &Parser{dir: dir, logger: logger}
}

// Parse streams entries through; titles matching a known short name gain
// the short name as ROM ID and the description as title.
func (p *Parser) Parse(entries catalog.Stream, _ catalog.Flags) catalog.Stream {
	return func(yield func(*catalog.Entry) bool) {
		p.once.Do(p.load)

		for entry := range entries {
			if description, ok := p.roms[entry.Title]; ok {
				entry.RomID = entry.Title
				entry.Title = description
			}
			if !yield(entry) {
				return
			}
		}
	}
}

func (p *Parser) load() {
	p.roms = map[string]string{}

	files, err := os.ReadDir(p.dir)
	if err != nil {
		p.logger.Warn("cannot read MAME hash directory",
			zap.String("dir", p.dir), zap.Error(err))
		return
	}

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".xml") {
			continue
		}
		if err := p.loadFile(filepath.Join(p.dir, file.Name())); err != nil {
			p.logger.Warn("skipping software list",
				zap.String("file", file.Name()), zap.Error(err))
		}
	}
	p.logger.Info("MAME software lists loaded", zap.Int("titles", len(p.roms)))
}

func (p *Parser) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read software list: %w", err)
	}
	var list softwareList
	if err := xml.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("parse software list: %w", err)
	}
	for _, software := range list.Software {
		p.roms[software.Name] = software.Description
	}
	return nil
}
