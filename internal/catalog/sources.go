package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ParserChain is an ordered list of parser stages. It decodes from a JSON
// object whose key order defines the chain order, which standard map
// decoding would lose.
type ParserChain []ParserSpec

// UnmarshalJSON walks the object tokens so the declaration order of the
// parser names survives decoding.
func (c *ParserChain) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("read parsers object: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("parsers: expected object, got %v", tok)
	}

	chain := ParserChain{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("read parser name: %w", err)
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("parsers: non-string key %v", keyTok)
		}
		var flags Flags
		if err := dec.Decode(&flags); err != nil {
			return fmt.Errorf("decode flags for parser %q: %w", name, err)
		}
		chain = append(chain, ParserSpec{Name: name, Flags: flags})
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("close parsers object: %w", err)
	}
	*c = chain
	return nil
}

// UnmarshalJSON decodes the top-level sources object, preserving the
// platform iteration order from the file.
func (s *SourceSet) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("read sources object: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("sources: expected object, got %v", tok)
	}

	set := SourceSet{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("read platform name: %w", err)
		}
		platform, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("sources: non-string key %v", keyTok)
		}
		var list []Source
		if err := dec.Decode(&list); err != nil {
			return fmt.Errorf("decode sources for platform %q: %w", platform, err)
		}
		set.Platforms = append(set.Platforms, PlatformSources{
			Platform: platform,
			Sources:  list,
		})
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("close sources object: %w", err)
	}
	*s = set
	return nil
}

// LoadSources reads a sources.json file.
func LoadSources(path string) (SourceSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return SourceSet{}, fmt.Errorf("open sources file: %w", err)
	}
	defer f.Close()
	return ReadSources(f)
}

// ReadSources decodes a sources configuration from r.
func ReadSources(r io.Reader) (SourceSet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return SourceSet{}, fmt.Errorf("read sources: %w", err)
	}
	var set SourceSet
	if err := json.Unmarshal(data, &set); err != nil {
		return SourceSet{}, fmt.Errorf("parse sources: %w", err)
	}
	return set, nil
}
