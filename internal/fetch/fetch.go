// Package fetch implements one-shot page retrieval with response caching.
package fetch

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"

	"github.com/gamedex/catalog-crawler/internal/cache"
	"github.com/gamedex/catalog-crawler/internal/metrics"
)

// Config controls client behavior.
type Config struct {
	UserAgent string
	Timeout   time.Duration
}

// Some indexes gate non-browser clients, so requests present a desktop
// browser profile.
var browserHeaders = map[string]string{
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.5",
	"Connection":      "keep-alive",
}

const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Client fetches source pages via Colly and mirrors successful responses
// into the cache.
type Client struct {
	base   *colly.Collector
	cache  *cache.Cache
	logger *zap.Logger
}

// New builds a Client. The cache may be nil to disable caching.
func New(cfg Config, responseCache *cache.Cache, logger *zap.Logger) *Client {
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}

	c := colly.NewCollector(
		colly.UserAgent(cfg.UserAgent),
		colly.AllowURLRevisit(),
	)
	c.SetRequestTimeout(cfg.Timeout)

	return &Client{
		base:   c,
		cache:  responseCache,
		logger: logger,
	}
}

// Get returns the body at rawURL. With useCached set, a cached response is
// served without touching the network; every fresh success refreshes the
// cache.
func (c *Client) Get(ctx context.Context, rawURL string, useCached bool) (string, error) {
	host := hostLabel(rawURL)

	if useCached && c.cache != nil {
		if body, ok := c.cache.Get(rawURL); ok {
			metrics.ObserveFetch(host, "cache_hit")
			return body, nil
		}
	}

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("fetch canceled: %w", err)
	}

	var (
		body     []byte
		fetchErr error
	)
	collector := c.base.Clone()
	collector.OnRequest(func(r *colly.Request) {
		for k, v := range browserHeaders {
			r.Headers.Set(k, v)
		}
	})
	collector.OnResponse(func(r *colly.Response) {
		body = r.Body
	})
	collector.OnError(func(_ *colly.Response, err error) {
		fetchErr = err
	})

	if err := collector.Visit(rawURL); err != nil && fetchErr == nil {
		fetchErr = err
	}
	if fetchErr != nil {
		metrics.ObserveFetch(host, "error")
		return "", fmt.Errorf("fetch %s: %w", rawURL, fetchErr)
	}

	text := string(body)
	if c.cache != nil {
		if err := c.cache.Put(rawURL, text); err != nil {
			c.logger.Warn("response cache write failed",
				zap.String("url", rawURL), zap.Error(err))
		}
	}
	metrics.ObserveFetch(host, "ok")
	return text, nil
}

func hostLabel(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return "unknown"
	}
	return u.Hostname()
}
