// Package catalog defines core types shared across subsystems.
package catalog

// Link describes one downloadable artifact attached to an entry.
type Link struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Format    string `json:"format"`
	URL       string `json:"url"`
	Filename  string `json:"filename"`
	Host      string `json:"host"`
	Size      int64  `json:"size"`
	SizeStr   string `json:"size_str"`
	SourceURL string `json:"source_url"`
}

// Entry is one normalized catalog item flowing through the pipeline.
// Parsers may mutate it freely; once enqueued it is read-only.
type Entry struct {
	Title     string   `json:"title"`
	Platform  string   `json:"platform"`
	Regions   []string `json:"regions"`
	RomID     string   `json:"rom_id,omitempty"`
	BoxartURL string   `json:"boxart_url,omitempty"`
	Links     []Link   `json:"links"`
}

// Flags carries per-parser options from the source configuration.
type Flags map[string]any

// Bool reads a boolean flag, falling back to def when the key is absent
// or not a boolean.
func (f Flags) Bool(key string, def bool) bool {
	if f == nil {
		return def
	}
	v, ok := f[key]
	if !ok {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		return def
	}
	return b
}

// ParserSpec names one parser stage and its flags.
type ParserSpec struct {
	Name  string
	Flags Flags
}

// Source describes one scrape target and its parser chain.
type Source struct {
	Scraper string      `json:"scraper"`
	Type    string      `json:"type"`
	Format  string      `json:"format"`
	Regions []string    `json:"regions"`
	URLs    []string    `json:"urls"`
	Filter  string      `json:"filter"`
	Parsers ParserChain `json:"parsers"`
}

// PlatformSources groups the sources configured for one platform.
type PlatformSources struct {
	Platform string
	Sources  []Source
}

// SourceSet is the full sources configuration in declaration order.
type SourceSet struct {
	Platforms []PlatformSources
}
