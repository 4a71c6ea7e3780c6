// Package ghostware handles entries from the "WiiRomSetByGhostware" dumps,
// whose filenames embed a six-character ROM ID in the title.
package ghostware

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/gamedex/catalog-crawler/internal/catalog"
)

var titleIDPattern = regexp.MustCompile(`[_[({ ]{1,2}([A-Z0-9]{6}).*`)

// Parser extracts ROM IDs and strips them from titles.
type Parser struct {
	logger *zap.Logger
}

// New constructs a Parser.
func New(logger *zap.Logger) *Parser {
	return &Parser{logger: logger}
}

// Parse streams entries through, setting RomID and cleaning each title.
func (p *Parser) Parse(entries catalog.Stream, _ catalog.Flags) catalog.Stream {
	return func(yield func(*catalog.Entry) bool) {
		for entry := range entries {
			entry.RomID = ParseID(entry.Title)
			entry.Title = CleanTitle(entry.Title)
			if !yield(entry) {
				return
			}
		}
	}
}

// ParseID extracts the ROM ID from a title, or returns "".
func ParseID(title string) string {
	m := titleIDPattern.FindStringSubmatch(title)
	if m == nil {
		return ""
	}
	return m[1]
}

// CleanTitle removes the embedded ROM ID and surrounding separators.
func CleanTitle(title string) string {
	return strings.TrimSpace(titleIDPattern.ReplaceAllString(title, ""))
}
