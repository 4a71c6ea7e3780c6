package housekeeping

import (
	"archive/zip"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

const downloadUserAgent = "Mozilla/5.0 (Windows NT 6.0) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/49.0.2623.75 Safari/537.36"

// gametdbDownloads pairs each GameTDB archive URL with the XML file it
// contains.
var gametdbDownloads = []struct {
	url     string
	xmlFile string
}{
	{"https://www.gametdb.com/dstdb.zip?LANG=EN", "dstdb.xml"},
	{"https://www.gametdb.com/wiitdb.zip?LANG=EN&WIIWARE=1&GAMECUBE=1", "wiitdb.xml"},
	{"https://www.gametdb.com/3dstdb.zip?LANG=EN", "3dstdb.xml"},
	{"https://www.gametdb.com/wiiutdb.zip?LANG=EN", "wiiutdb.xml"},
	{"https://www.gametdb.com/ps3tdb.zip?LANG=EN", "ps3tdb.xml"},
}

// DownloadGameTDB fetches the GameTDB title database archives into destDir
// and extracts them. A failed download is tolerated when a previously
// extracted copy of the XML is already present.
func DownloadGameTDB(destDir string, logger *zap.Logger) error {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("create destination directory: %w", err)
	}

	client := &http.Client{Timeout: 5 * time.Minute}

	for _, dl := range gametdbDownloads {
		if err := downloadAndExtract(client, dl.url, destDir); err != nil {
			xmlPath := filepath.Join(destDir, dl.xmlFile)
			if _, statErr := os.Stat(xmlPath); statErr == nil {
				logger.Warn("download failed, keeping existing copy",
					zap.String("file", dl.xmlFile), zap.Error(err))
				continue
			}
			return fmt.Errorf("download %s: %w", dl.url, err)
		}
	}
	return nil
}

func downloadAndExtract(client *http.Client, rawURL, destDir string) error {
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", downloadUserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch archive: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	zipPath := filepath.Join(destDir, zipFilename(rawURL))
	f, err := os.Create(zipPath)
	if err != nil {
		return fmt.Errorf("create archive file: %w", err)
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		return fmt.Errorf("save archive: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close archive file: %w", err)
	}

	if err := extractZip(zipPath, destDir); err != nil {
		return err
	}
	return os.Remove(zipPath)
}

func zipFilename(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "download.zip"
	}
	return filepath.Base(u.Path)
}

func extractZip(zipPath, destDir string) error {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer r.Close()

	for _, file := range r.File {
		// Flatten: the archives hold a single XML at the root, anything
		// else is unexpected and skipped.
		name := filepath.Base(file.Name)
		if file.FileInfo().IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		src, err := file.Open()
		if err != nil {
			return fmt.Errorf("open archived file: %w", err)
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return fmt.Errorf("read archived file: %w", err)
		}
		if err := os.WriteFile(filepath.Join(destDir, name), data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	return nil
}
