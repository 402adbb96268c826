// FILE: pkg/ingest/fetch.go
package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultMaxBodySize = 10 * 1024 * 1024 // 10MB
	defaultTimeout     = 30 * time.Second
)

// Fetcher downloads pages and sitemaps for url/sitemap datasources.
// Responses are size-capped so one huge page cannot exhaust the worker.
type Fetcher struct {
	Client      *http.Client
	MaxBodySize int64
}

// NewFetcher builds a fetcher with the given per-request timeout.
// A non-positive timeout falls back to 30 seconds.
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Fetcher{
		Client: &http.Client{
			Timeout: timeout,
		},
		MaxBodySize: defaultMaxBodySize,
	}
}

// FetchPage downloads a URL and extracts its readable text.
func (f *Fetcher) FetchPage(ctx context.Context, url string) (*Page, error) {
	body, err := f.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	page, err := ExtractReadableText(body)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", url, err)
	}
	return page, nil
}

// FetchSitemap downloads and parses a sitemap, expanding one level of
// nested sitemap indexes into the final page URL list.
func (f *Fetcher) FetchSitemap(ctx context.Context, url string) ([]string, error) {
	sm, err := f.fetchSitemapDoc(ctx, url)
	if err != nil {
		return nil, err
	}

	pages := append([]string{}, sm.PageURLs...)
	for _, nested := range sm.NestedMaps {
		nestedSm, err := f.fetchSitemapDoc(ctx, nested)
		if err != nil {
			return nil, fmt.Errorf("nested sitemap %s: %w", nested, err)
		}
		pages = append(pages, nestedSm.PageURLs...)
	}
	return pages, nil
}

func (f *Fetcher) fetchSitemapDoc(ctx context.Context, url string) (*Sitemap, error) {
	body, err := f.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	sm, err := ParseSitemap(body)
	if err != nil {
		return nil, fmt.Errorf("sitemap %s: %w", url, err)
	}
	return sm, nil
}

func (f *Fetcher) get(ctx context.Context, url string) (io.ReadCloser, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return nil, fmt.Errorf("unsupported url scheme: %s", url)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "rag-admin-ingest/1.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	return &limitedBody{
		Reader: io.LimitReader(resp.Body, f.MaxBodySize),
		closer: resp.Body,
	}, nil
}

type limitedBody struct {
	io.Reader
	closer io.Closer
}

func (b *limitedBody) Close() error {
	return b.closer.Close()
}
