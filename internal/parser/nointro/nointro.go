// Package nointro normalizes titles that follow the No-Intro naming
// convention: region inference from parenthesised groups, removal of
// region/language noise, and article repositioning.
package nointro

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/gamedex/catalog-crawler/internal/catalog"
)

// regionsMap maps No-Intro region names to database region codes.
var regionsMap = map[string]string{
	"USA":                  "us",
	"Canada":               "us",
	"Mexico":               "us",
	"Europe":               "eu",
	"Australia":            "eu",
	"Italy":                "eu",
	"Germany":              "eu",
	"France":               "eu",
	"Spain":                "eu",
	"United Kingdom":       "eu",
	"UK":                   "eu",
	"Netherlands":          "eu",
	"Austria":              "eu",
	"Belgium":              "eu",
	"Croatia":              "eu",
	"Denmark":              "eu",
	"Finland":              "eu",
	"Greece":               "eu",
	"Ireland":              "eu",
	"Poland":               "eu",
	"Portugal":             "eu",
	"Sweden":               "eu",
	"Turkey":               "eu",
	"Japan":                "jp",
	"Argentina":            "other",
	"Brazil":               "other",
	"China":                "other",
	"Hong Kong":            "other",
	"India":                "other",
	"Israel":               "other",
	"Korea":                "other",
	"Latin America":        "other",
	"New Zealand":          "other",
	"Norway":               "other",
	"Russia":               "other",
	"Scandinavia":          "other",
	"South Africa":         "other",
	"Switzerland":          "other",
	"Taiwan":               "other",
	"United Arab Emirates": "other",
	"Asia":                 "other",
	"Unknown":              "other",
}

// languages that can appear as parenthesised lists in a title.
var languages = []string{
	"En", "Ja", "Fr", "De", "Es", "It", "Nl", "Pt", "Sv", "No", "Da", "Fi",
	"Zh", "Ko", "Pl", "Ru", "Cs", "Hu", "Zh-Hant", "Zh-Hans", "El", "Es-XL",
	"Pt-BR", "Tr", "En-GB", "Ar", "En+En", "It+En", "Ro", "Af",
}

// titleRemoveSet holds parenthesised contents that are dropped from titles.
var titleRemoveSet = buildTitleRemoveSet()

func buildTitleRemoveSet() map[string]bool {
	set := map[string]bool{
		"Europe": true,
		"USA":    true,
		"Japan":  true,
		"World":  true,
	}
	for _, lang := range languages {
		set[lang] = true
	}
	return set
}

var languageSet = buildLanguageSet()

func buildLanguageSet() map[string]bool {
	set := make(map[string]bool, len(languages))
	for _, lang := range languages {
		set[lang] = true
	}
	return set
}

var (
	parenGroups  = regexp.MustCompile(`\((.*?)\)`)
	articleTitle = regexp.MustCompile(`^(.*?),\s*(\S+)(?:\s+(.*))?$`)
)

// Parser applies No-Intro title normalization.
type Parser struct {
	logger *zap.Logger
}

// New constructs a Parser.
func New(logger *zap.Logger) *Parser {
	return &Parser{logger: logger}
}

// Parse transforms the stream in place. This is a batch stage: it drains
// its input before yielding, so the incoming count can be reported.
func (p *Parser) Parse(entries catalog.Stream, flags catalog.Flags) catalog.Stream {
	parseTitleRegions := flags.Bool("parse_title_regions", true)
	cleanTitleContents := flags.Bool("clean_title_contents", true)
	moveTitleArticle := flags.Bool("move_title_article", true)

	return func(yield func(*catalog.Entry) bool) {
		var batch []*catalog.Entry
		for entry := range entries {
			batch = append(batch, entry)
		}
		p.logger.Info("no_intro incoming", zap.Int("count", len(batch)))

		for _, entry := range batch {
			if parseTitleRegions && len(entry.Regions) == 0 {
				entry.Regions = ParseRegions(entry.Title)
			}
			if cleanTitleContents {
				entry.Title = CleanTitle(entry.Title)
			}
			if moveTitleArticle {
				entry.Title = MoveArticle(entry.Title)
			}
			if !yield(entry) {
				return
			}
		}
	}
}

// ParseRegions extracts region codes from the first parenthesised group
// that names any known region.
func ParseRegions(title string) []string {
	var regions []string
	for _, group := range parenGroups.FindAllStringSubmatch(title, -1) {
		for _, content := range strings.Split(group[1], ",") {
			region, ok := regionsMap[strings.TrimSpace(content)]
			if !ok {
				continue
			}
			if !slices.Contains(regions, region) {
				regions = append(regions, region)
			}
		}
		// Later groups are version/revision noise once a region group hit.
		if len(regions) > 0 {
			break
		}
	}
	return regions
}

// CleanTitle removes parenthesised groups that consist entirely of
// removable contents (languages and world-region markers) and collapses
// the leftover whitespace.
func CleanTitle(title string) string {
	clean := title
	for _, group := range parenGroups.FindAllStringSubmatch(title, -1) {
		removeGroup := true
		for _, raw := range strings.Split(group[1], ",") {
			content := strings.TrimSpace(raw)
			_, isRegion := regionsMap[content]
			if !isRegion && !languageSet[content] && !titleRemoveSet[content] {
				removeGroup = false
				break
			}
			if isRegion && !titleRemoveSet[content] {
				removeGroup = false
				break
			}
		}
		if removeGroup {
			clean = removeGroupsWithContents(clean, strings.Split(group[1], ","))
		}
	}
	return catalog.NormalizeRepeated(clean, ' ')
}

// removeGroupsWithContents drops parenthesised groups made of exactly the
// given contents in any combination.
func removeGroupsWithContents(title string, contents []string) string {
	quoted := make([]string, 0, len(contents))
	for _, content := range contents {
		quoted = append(quoted, regexp.QuoteMeta(strings.TrimSpace(content)))
	}
	alternatives := strings.Join(quoted, "|")
	pattern, err := regexp.Compile(
		fmt.Sprintf(`\((?:%s)(?:,\s*(?:%s))*\)`, alternatives, alternatives))
	if err != nil {
		return title
	}
	return pattern.ReplaceAllString(title, "")
}

// MoveArticle moves a trailing article ("Legend of Zelda, The") to the
// front of the title.
func MoveArticle(title string) string {
	m := articleTitle.FindStringSubmatch(title)
	if m == nil {
		return title
	}
	name := m[1]
	// A parenthesis in the main name means the comma was not an article
	// separator.
	if strings.Contains(name, "(") {
		return title
	}
	article, other := m[2], m[3]

	sep := " "
	if strings.HasSuffix(article, "'") {
		sep = ""
	}
	if other != "" {
		return article + sep + name + " " + other
	}
	return article + sep + name
}
