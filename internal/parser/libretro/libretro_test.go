package libretro

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const nesDat = `clrmamepro (
	name "Nintendo - Nintendo Entertainment System"
	version "20240101"
)

game (
	name "Super Mario Bros. (World)"
	serial "NES-SM"
	rom ( name "Super Mario Bros. (World).nes" size 40976 crc 3337ec46 )
)

game (
	name "Metroid (USA)"
	serial "NES-MT"
	rom (
		name "Metroid (USA).nes"
		size 131088
		serial "ROM-LEVEL-SERIAL"
	)
)

game (
	name "Homebrew Title"
	rom ( name "Homebrew Title.nes" size 1024 )
)

game (
	name "Super Mario Bros. (World)"
	serial "DUPLICATE"
)
`

func TestLoadSerials(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	datPath := filepath.Join(dir, "metadat", "no-intro",
		"Nintendo - Nintendo Entertainment System.dat")
	require.NoError(t, os.MkdirAll(filepath.Dir(datPath), 0o750))
	require.NoError(t, os.WriteFile(datPath, []byte(nesDat), 0o600))

	p := New(dir, nil, zaptest.NewLogger(t))
	p.loadSerials()

	nes := p.serials["nes"]
	require.Equal(t, "NES-SM", nes["Super Mario Bros. (World)"],
		"first serial wins over later duplicates")
	require.Equal(t, "NES-MT", nes["Metroid (USA)"],
		"rom-section serials must not leak into the game record")
	require.NotContains(t, nes, "Homebrew Title",
		"games without a serial are skipped")

	// Platforms whose DAT files are absent still get an empty table.
	require.NotNil(t, p.serials["snes"])
	require.Empty(t, p.serials["snes"])
}

func TestQuotedValue(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Super Mario Bros. (World)",
		quotedValue(`name "Super Mario Bros. (World)"`))
	require.Equal(t, "", quotedValue(`name`))
	require.Equal(t, "", quotedValue(`name "`))
}
