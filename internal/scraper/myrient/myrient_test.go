package myrient

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gamedex/catalog-crawler/internal/catalog"
)

const listingHTML = `<html><body><table id="list">
<tr><td class="link"><a href="../">Parent directory/</a></td><td class="size">-</td></tr>
<tr><td class="link"><a href="Super%20Game%20%28USA%29.zip">Super Game (USA).zip</a></td><td class="size">14.2 MiB</td></tr>
<tr><td class="link"><a href="Other%20Game%20%28Japan%29.zip">Other Game (Japan).zip</a></td><td class="size">2.0 KiB</td></tr>
<tr><td class="link"><a href="Readme.txt">Readme.txt</a></td><td class="size">1.0 KiB</td></tr>
</table></body></html>`

func testSource() catalog.Source {
	return catalog.Source{
		Scraper: "myrient",
		Type:    "rom",
		Format:  "zip",
		Regions: []string{"us"},
	}
}

func TestExtractEntriesFiltersAndResolvesLinks(t *testing.T) {
	t.Parallel()

	filter := regexp.MustCompile(`^(.*) \(USA\)\.zip$`)
	baseURL := "https://myrient.example/files/nes/"

	entries, err := extractEntries(listingHTML, filter, testSource(), "nes", baseURL)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	require.Equal(t, "Super Game", e.Title, "filter capture group becomes the title")
	require.Equal(t, "nes", e.Platform)
	require.Equal(t, []string{"us"}, e.Regions)

	require.Len(t, e.Links, 1)
	link := e.Links[0]
	require.Equal(t, "https://myrient.example/files/nes/Super%20Game%20%28USA%29.zip", link.URL)
	require.Equal(t, "Super Game (USA).zip", link.Filename)
	require.Equal(t, HostName, link.Host)
	require.Equal(t, catalog.ParseSize("14.2 MiB"), link.Size)
	require.Equal(t, baseURL, link.SourceURL)
}

func TestExtractEntriesWithoutCaptureKeepsRawTitle(t *testing.T) {
	t.Parallel()

	filter := regexp.MustCompile(`\.zip$`)
	entries, err := extractEntries(listingHTML, filter, testSource(), "nes", "https://myrient.example/files/nes/")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "Super Game (USA).zip", entries[0].Title)
	require.Equal(t, "Other Game (Japan).zip", entries[1].Title)
}

func TestExtractEntriesEmptyDocument(t *testing.T) {
	t.Parallel()

	entries, err := extractEntries("<html></html>", regexp.MustCompile(`.*`), testSource(), "nes", "https://myrient.example/")
	require.NoError(t, err)
	require.Empty(t, entries)
}
