package mariocube

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gamedex/catalog-crawler/internal/catalog"
)

const listing = "# WBFS drive listing\n" +
	"\x1b[1;34m2024-01-02\x1b[0m   4.3G   Super Game [RSPE01].wbfs\n" +
	"2024-01-03   512M   Other Game [ROGE01].wbfs\n" +
	"\n" +
	"malformed\n"

func TestParseListingLines(t *testing.T) {
	t.Parallel()

	rows := parseListingLines(listing)
	require.Len(t, rows, 2)

	require.Equal(t, "Super Game [RSPE01].wbfs", rows[0].filename,
		"ANSI escapes must be stripped before parsing")
	require.Equal(t, "4.3G", rows[0].sizeStr)

	require.Equal(t, "Other Game [ROGE01].wbfs", rows[1].filename)
	require.Equal(t, "512M", rows[1].sizeStr)
}

func TestNewEntryEscapesFilename(t *testing.T) {
	t.Parallel()

	src := catalog.Source{Type: "rom", Format: "wbfs", Regions: []string{"us", "eu"}}
	row := listingRow{filename: "Super Game [RSPE01].wbfs", sizeStr: "4.3G"}

	e := newEntry(row, "Super Game [RSPE01]", src, "wii", "https://repo.mariocube.example/WBFS/")
	require.Equal(t, "Super Game [RSPE01]", e.Title)
	require.Equal(t, "wii", e.Platform)

	require.Len(t, e.Links, 1)
	link := e.Links[0]
	require.Equal(t, HostName, link.Host)
	require.Equal(t,
		"https://repo.mariocube.example/WBFS/Super%20Game%20%5BRSPE01%5D.wbfs",
		link.URL)
	require.Equal(t, catalog.ParseSize("4.3G"), link.Size)
	require.Equal(t, "4.3G", link.SizeStr)
}
