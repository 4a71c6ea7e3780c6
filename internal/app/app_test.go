// Package app_test contains unit tests for the app package.
package app_test

import (
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamedex/catalog-crawler/internal/app"
	"github.com/gamedex/catalog-crawler/internal/logging"
)

func TestMain(m *testing.M) {
	// Initialize the logger for all tests in this package.
	logging.InitLogger()
	// Run the tests.
	m.Run()
}

// setupTest configures Viper for a self-contained test environment.
func setupTest(t *testing.T) {
	t.Helper()
	viper.Reset()
	root := t.TempDir()
	viper.Set("fetch.cache_dir", filepath.Join(root, "cache"))
	viper.Set("data.static_dir", filepath.Join(root, "static"))
	viper.Set("data.libretro_dir", filepath.Join(root, "libretro"))
	viper.Set("data.mame_dir", filepath.Join(root, "mame"))
	viper.Set("data.gametdb_dir", filepath.Join(root, "gametdb"))
	viper.Set("database.enabled", false)
	viper.Set("server.enabled", false)
	viper.Set("pipeline.queue_capacity", 100)
}

func TestNewApp_Success(t *testing.T) {
	setupTest(t)

	a, err := app.NewApp()
	require.NoError(t, err)
	require.NotNil(t, a)
	defer a.Close()

	assert.NotNil(t, a.GetLogger())
	assert.NotNil(t, a.GetFetcher())
	assert.NotNil(t, a.GetPipeline())

	// Every scraper and parser a source file can name must be registered.
	registry := a.GetRegistry()
	require.NotNil(t, registry)
	for _, name := range []string{"myrient", "internet_archive", "mariocube", "nopaystation"} {
		_, ok := registry.Scraper(name)
		assert.True(t, ok, name)
	}
	for _, name := range []string{"no_intro", "wii_rom_set_by_ghostware", "mame", "libretro", "gametdb"} {
		_, ok := registry.Parser(name)
		assert.True(t, ok, name)
	}
}

func TestNewApp_DatabaseEnabledWithoutDSN(t *testing.T) {
	setupTest(t)
	viper.Set("database.enabled", true)
	viper.Set("database.dsn", "")

	_, err := app.NewApp()
	require.ErrorContains(t, err, "database.dsn is not set")
}

func TestNewApp_MissingCacheDir(t *testing.T) {
	setupTest(t)
	viper.Set("fetch.cache_dir", "")

	_, err := app.NewApp()
	require.ErrorContains(t, err, "response cache")
}
