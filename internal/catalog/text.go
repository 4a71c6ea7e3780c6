package catalog

import (
	"net/url"
	"path"
	"strings"
	"unicode"
)

// JoinURLs resolves ref against base, treating base as a directory.
// Absolute refs pass through untouched.
func JoinURLs(base, ref string) string {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	b, err := url.Parse(base)
	if err != nil {
		return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(ref, "/")
	}
	if !strings.HasSuffix(b.Path, "/") {
		b.Path += "/"
		b.RawPath = ""
	}
	r, err := url.Parse(ref)
	if err != nil {
		return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(ref, "/")
	}
	return b.ResolveReference(r).String()
}

// NormalizeRepeated collapses runs of ch into a single occurrence and trims
// the result.
func NormalizeRepeated(s string, ch rune) string {
	var b strings.Builder
	b.Grow(len(s))
	var prev rune
	for _, r := range s {
		if r == ch && prev == ch {
			continue
		}
		b.WriteRune(r)
		prev = r
	}
	return strings.Trim(b.String(), string(ch))
}

// SearchKey reduces a title to lowercase alphanumerics for fuzzy lookups.
func SearchKey(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// RemoveExt strips the final file extension, if any.
func RemoveExt(s string) string {
	return strings.TrimSuffix(s, path.Ext(s))
}
