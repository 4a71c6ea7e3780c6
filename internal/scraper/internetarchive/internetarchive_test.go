package internetarchive

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gamedex/catalog-crawler/internal/catalog"
)

func TestParseDownloadURL(t *testing.T) {
	t.Parallel()

	identifier, prefix, err := parseDownloadURL("https://archive.org/download/mame-merged/mame-merged/")
	require.NoError(t, err)
	require.Equal(t, "mame-merged", identifier)
	require.Equal(t, "mame-merged/", prefix)

	identifier, prefix, err = parseDownloadURL("https://archive.org/download/some-item")
	require.NoError(t, err)
	require.Equal(t, "some-item", identifier)
	require.Empty(t, prefix)

	_, _, err = parseDownloadURL("https://archive.org/details/some-item")
	require.Error(t, err)
}

func TestGroupByIdentifierKeepsFirstSeenOrder(t *testing.T) {
	t.Parallel()

	identifiers, prefixes, err := groupByIdentifier([]string{
		"https://archive.org/download/item-b/discs/",
		"https://archive.org/download/item-a/roms/",
		"https://archive.org/download/item-b/extras/",
	})
	require.NoError(t, err)
	require.Equal(t, []string{"item-b", "item-a"}, identifiers)
	require.Equal(t, []string{"discs/", "extras/"}, prefixes["item-b"])
	require.Equal(t, []string{"roms/"}, prefixes["item-a"])
}

func TestMatchesAnyPrefix(t *testing.T) {
	t.Parallel()

	require.True(t, matchesAnyPrefix("roms/game.zip", []string{"roms/"}))
	require.False(t, matchesAnyPrefix("extras/game.zip", []string{"roms/"}))
	// An item configured without an internal path matches everything.
	require.True(t, matchesAnyPrefix("anything.zip", []string{""}))
}

func TestEscapePathKeepsSlashes(t *testing.T) {
	t.Parallel()

	require.Equal(t, "dir%20one/file%20%231.zip", escapePath("dir one/file #1.zip"))
}

func TestNewEntryBuildsDownloadLink(t *testing.T) {
	t.Parallel()

	src := catalog.Source{Type: "rom", Format: "zip"}
	file := itemFile{
		Name:   "mame-merged/sf2.zip",
		Source: "original",
		Size:   json.Number("3774873"),
	}

	e := newEntry("mame-merged", file, src, "mame")
	require.Equal(t, "mame-merged/sf2.zip", e.Title)
	require.Len(t, e.Links, 1)

	link := e.Links[0]
	require.Equal(t, "https://archive.org/download/mame-merged/mame-merged/sf2.zip", link.URL)
	require.Equal(t, "sf2.zip", link.Filename)
	require.Equal(t, int64(3774873), link.Size)
	require.Equal(t, HostName, link.Host)
	require.Equal(t, "https://archive.org/download/mame-merged", link.SourceURL)
}
