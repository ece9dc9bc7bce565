package gateway

import (
	"net/http"
	"time"

	"github.com/gregjones/httpcache"
	"github.com/gregjones/httpcache/diskcache"
)

// NewCachingHTTPClient creates an HTTP client with disk-based caching.
// Used for cacheable backend listings (e.g. the job board, which the
// backend serves with Cache-Control headers).
func NewCachingHTTPClient(cacheDir string) *http.Client {
	if cacheDir == "" {
		// Use in-memory cache if no cache directory specified
		return &http.Client{
			Timeout:   30 * time.Second,
			Transport: httpcache.NewTransport(httpcache.NewMemoryCache()),
		}
	}

	// Use disk-based cache for persistence across restarts
	cache := diskcache.New(cacheDir)

	return &http.Client{
		Timeout:   30 * time.Second,
		Transport: httpcache.NewTransport(cache),
	}
}

// NewInMemoryCachingHTTPClient creates an HTTP client with in-memory
// caching only. Suitable for testing or when disk caching is not desired.
func NewInMemoryCachingHTTPClient() *http.Client {
	return &http.Client{
		Timeout:   30 * time.Second,
		Transport: httpcache.NewTransport(httpcache.NewMemoryCache()),
	}
}
