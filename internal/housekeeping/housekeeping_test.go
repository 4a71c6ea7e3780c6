package housekeeping

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
}

func TestMoveStaticReplacesExisting(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	staticDir := filepath.Join(root, "static")
	destDir := filepath.Join(root, "site")

	writeFile(t, filepath.Join(staticDir, "content", "ps3", "raps", "a.rap"), "new")
	writeFile(t, filepath.Join(destDir, "content", "stale.txt"), "old")

	require.NoError(t, MoveStatic(staticDir, destDir, zaptest.NewLogger(t)))

	// The whole content tree is replaced, not merged.
	body, err := os.ReadFile(filepath.Join(destDir, "content", "ps3", "raps", "a.rap"))
	require.NoError(t, err)
	require.Equal(t, "new", string(body))

	_, err = os.Stat(filepath.Join(destDir, "content", "stale.txt"))
	require.True(t, os.IsNotExist(err))

	_, err = os.Stat(filepath.Join(staticDir, "content"))
	require.True(t, os.IsNotExist(err))
}

func TestMoveStaticMissingSource(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, MoveStatic(
		filepath.Join(root, "does-not-exist"),
		filepath.Join(root, "site"),
		zaptest.NewLogger(t)))
}

func TestCleanRemovesWorkDirectories(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "cache", "abc123"), "body")
	writeFile(t, filepath.Join(root, "data", "libretro", "nes.dat"), "dat")
	writeFile(t, filepath.Join(root, "static", "content", "x.rap"), "rap")
	writeFile(t, filepath.Join(root, "keep", "sources.json"), "{}")

	require.NoError(t, Clean(root, zaptest.NewLogger(t)))

	for _, name := range []string{"cache", "data", "static"} {
		_, err := os.Stat(filepath.Join(root, name))
		require.True(t, os.IsNotExist(err), name)
	}
	_, err := os.Stat(filepath.Join(root, "keep", "sources.json"))
	require.NoError(t, err)
}

func TestCleanKeepsRootWhenNamedLikeWorkDir(t *testing.T) {
	t.Parallel()

	// A root itself named "data" must not be deleted.
	root := filepath.Join(t.TempDir(), "data")
	writeFile(t, filepath.Join(root, "file.txt"), "x")

	require.NoError(t, Clean(root, zaptest.NewLogger(t)))

	_, err := os.Stat(filepath.Join(root, "file.txt"))
	require.NoError(t, err)
}
