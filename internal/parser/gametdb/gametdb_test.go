package gametdb

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/gamedex/catalog-crawler/internal/catalog"
)

const ps3TDB = `<?xml version="1.0"?>
<datafile>
	<game name="Demon's Souls (USA)">
		<id>BLUS30443</id>
		<type>PS3</type>
		<region>NTSC-U</region>
	</game>
	<game name="Super Game">
		<id>BLUS00001</id>
		<type>PS3</type>
		<region>NTSC-U</region>
	</game>
	<game name="Super Game 2">
		<id>BLUS00002</id>
		<type>PS3</type>
		<region>NTSC-U</region>
	</game>
	<game name="Japan Only Game">
		<id>BLJS00003</id>
		<type>PS3</type>
		<region>NTSC-J</region>
	</game>
</datafile>`

// noProbeFlags disables artwork probing so tests stay offline.
var noProbeFlags = catalog.Flags{"parse_boxart": false, "parse_name": true}

func newTestParser(t *testing.T) *Parser {
	t.Helper()
	dataDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "ps3tdb.xml"), []byte(ps3TDB), 0o600))
	return New(dataDir, t.TempDir(), zaptest.NewLogger(t))
}

func stream(entries ...*catalog.Entry) catalog.Stream {
	return func(yield func(*catalog.Entry) bool) {
		for _, e := range entries {
			if !yield(e) {
				return
			}
		}
	}
}

func TestParseResolvesNameByRomID(t *testing.T) {
	t.Parallel()

	p := newTestParser(t)
	out := slices.Collect(p.Parse(stream(
		&catalog.Entry{Title: "demons souls dump", Platform: "ps3", RomID: "BLUS30443"},
	), noProbeFlags))

	require.Len(t, out, 1)
	require.Equal(t, "Demon's Souls (USA)", out[0].Title)
}

func TestParseMatchesByTitlePrefersShortestName(t *testing.T) {
	t.Parallel()

	p := newTestParser(t)
	out := slices.Collect(p.Parse(stream(
		&catalog.Entry{Title: "Super Game", Platform: "ps3"},
	), noProbeFlags))

	require.Equal(t, "Super Game", out[0].Title)
}

func TestParseMatchesByTitleIgnoresParentheticals(t *testing.T) {
	t.Parallel()

	p := newTestParser(t)
	out := slices.Collect(p.Parse(stream(
		&catalog.Entry{Title: "Demon's Souls (Europe)", Platform: "ps3"},
	), noProbeFlags))

	require.Equal(t, "Demon's Souls (USA)", out[0].Title)
}

func TestParseRespectsRegionConstraint(t *testing.T) {
	t.Parallel()

	p := newTestParser(t)
	out := slices.Collect(p.Parse(stream(
		&catalog.Entry{Title: "Japan Only Game", Platform: "ps3", Regions: []string{"us"}},
	), noProbeFlags))

	require.Equal(t, "Japan Only Game", out[0].Title,
		"a region-mismatched candidate must not match")
}

func TestParsePassesThroughUnknownPlatforms(t *testing.T) {
	t.Parallel()

	p := newTestParser(t)
	out := slices.Collect(p.Parse(stream(
		&catalog.Entry{Title: "PC Game", Platform: "pc98"},
	), noProbeFlags))

	require.Equal(t, "PC Game", out[0].Title)
	require.Empty(t, out[0].BoxartURL)
}

func TestBoxartURLCacheRoundTrip(t *testing.T) {
	t.Parallel()

	p := newTestParser(t)

	url := "https://art.gametdb.com/ps3/cover/US/BLUS30443.jpg"
	p.cacheURL("ps3", "BLUS30443", &url)
	p.cacheURL("ps3", "BLUS99999", nil)

	// A fresh parser sharing the cache directory sees the persisted verdicts.
	fresh := New(p.dataDir, p.cacheDir, zaptest.NewLogger(t))

	got, ok := fresh.cachedURL("ps3", "BLUS30443")
	require.True(t, ok)
	require.Equal(t, url, got)

	got, ok = fresh.cachedURL("ps3", "BLUS99999")
	require.True(t, ok, "negative verdicts are cached too")
	require.Empty(t, got)

	_, ok = fresh.cachedURL("ps3", "NEVERSEEN")
	require.False(t, ok)
}
