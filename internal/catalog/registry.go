package catalog

import (
	"context"
	"fmt"
	"iter"
)

// Stream is a lazy, single-pass sequence of entries. Stages must not
// reorder the entries that survive them.
type Stream = iter.Seq[*Entry]

// Scraper produces entries from one configured source. Recoverable fetch
// failures are logged by the scraper and degrade to a reduced or empty
// stream instead of an error.
type Scraper interface {
	Scrape(ctx context.Context, src Source, platform string, useCached bool) Stream
}

// Parser transforms a stream of entries. Implementations are single-pass
// and must preserve the relative order of surviving entries.
type Parser interface {
	Parse(entries Stream, flags Flags) Stream
}

// ConfigError reports a source descriptor referencing a capability name
// that was never registered.
type ConfigError struct {
	Kind string // "scraper" or "parser"
	Name string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s %q is not registered", e.Kind, e.Name)
}

// Registry resolves scraper and parser capabilities by name.
type Registry struct {
	scrapers map[string]Scraper
	parsers  map[string]Parser
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		scrapers: map[string]Scraper{},
		parsers:  map[string]Parser{},
	}
}

// RegisterScraper binds a scraper capability to a name.
func (r *Registry) RegisterScraper(name string, s Scraper) {
	r.scrapers[name] = s
}

// RegisterParser binds a parser capability to a name.
func (r *Registry) RegisterParser(name string, p Parser) {
	r.parsers[name] = p
}

// Scraper looks up a scraper by name.
func (r *Registry) Scraper(name string) (Scraper, bool) {
	s, ok := r.scrapers[name]
	return s, ok
}

// Parser looks up a parser by name.
func (r *Registry) Parser(name string) (Parser, bool) {
	p, ok := r.parsers[name]
	return p, ok
}

// Validate checks that every capability name referenced by the source set
// resolves, so a run can fail before any side effects.
func (r *Registry) Validate(set SourceSet) error {
	for _, ps := range set.Platforms {
		for _, src := range ps.Sources {
			if _, ok := r.scrapers[src.Scraper]; !ok {
				return &ConfigError{Kind: "scraper", Name: src.Scraper}
			}
			for _, spec := range src.Parsers {
				if _, ok := r.parsers[spec.Name]; !ok {
					return &ConfigError{Kind: "parser", Name: spec.Name}
				}
			}
		}
	}
	return nil
}
