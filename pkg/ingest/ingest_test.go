package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractReadableText(t *testing.T) {
	html := `<!DOCTYPE html>
<html>
<head>
  <title>TiKV Overview</title>
  <style>body { color: red; }</style>
  <script>console.log("tracking");</script>
</head>
<body>
  <nav><a href="/">Home</a><a href="/docs">Docs</a></nav>
  <header>Site header</header>
  <h1>TiKV   Overview</h1>
  <p>TiKV is a distributed key-value database.</p>
  <ul>
    <li>Strong consistency</li>
    <li>Horizontal scaling</li>
  </ul>
  <footer>Copyright</footer>
</body>
</html>`

	page, err := ExtractReadableText(strings.NewReader(html))
	require.NoError(t, err)

	assert.Equal(t, "TiKV Overview", page.Title)
	assert.Contains(t, page.Text, "TiKV Overview")
	assert.Contains(t, page.Text, "TiKV is a distributed key-value database.")
	assert.Contains(t, page.Text, "Strong consistency")
	assert.NotContains(t, page.Text, "tracking")
	assert.NotContains(t, page.Text, "color: red")
	assert.NotContains(t, page.Text, "Home")
	assert.NotContains(t, page.Text, "Site header")
	assert.NotContains(t, page.Text, "Copyright")
}

func TestExtractReadableTextNestedBlocks(t *testing.T) {
	html := `<body><ul><li><p>Only once</p></li></ul></body>`

	page, err := ExtractReadableText(strings.NewReader(html))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(page.Text, "Only once"))
}

func TestExtractReadableTextPlainDocument(t *testing.T) {
	page, err := ExtractReadableText(strings.NewReader("<body><div>bare text in a div</div></body>"))
	require.NoError(t, err)
	assert.Equal(t, "bare text in a div", page.Text)
}

func TestParseSitemapURLSet(t *testing.T) {
	xml := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>https://example.com/docs/a</loc><lastmod>2024-01-01</lastmod></url>
  <url><loc> https://example.com/docs/b </loc></url>
  <url><loc></loc></url>
</urlset>`

	sm, err := ParseSitemap(strings.NewReader(xml))
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/docs/a", "https://example.com/docs/b"}, sm.PageURLs)
	assert.Empty(t, sm.NestedMaps)
}

func TestParseSitemapIndex(t *testing.T) {
	xml := `<?xml version="1.0"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <sitemap><loc>https://example.com/sitemap-docs.xml</loc></sitemap>
  <sitemap><loc>https://example.com/sitemap-blog.xml</loc></sitemap>
</sitemapindex>`

	sm, err := ParseSitemap(strings.NewReader(xml))
	require.NoError(t, err)
	assert.Empty(t, sm.PageURLs)
	assert.Equal(t, []string{"https://example.com/sitemap-docs.xml", "https://example.com/sitemap-blog.xml"}, sm.NestedMaps)
}

func TestParseSitemapRejectsJunk(t *testing.T) {
	_, err := ParseSitemap(strings.NewReader("not xml at all"))
	assert.Error(t, err)

	_, err = ParseSitemap(strings.NewReader("<html><body>a page</body></html>"))
	assert.Error(t, err)
}

func TestParseSitemapEmptyURLSet(t *testing.T) {
	sm, err := ParseSitemap(strings.NewReader(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"></urlset>`))
	require.NoError(t, err)
	assert.Empty(t, sm.PageURLs)
}

func TestFetcherFetchPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title>Doc</title></head><body><p>content here</p></body></html>`))
	}))
	defer server.Close()

	page, err := NewFetcher(0).FetchPage(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "Doc", page.Title)
	assert.Equal(t, "content here", page.Text)
}

func TestFetcherFetchSitemapExpandsIndex(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<sitemapindex><sitemap><loc>` + server.URL + `/nested.xml</loc></sitemap></sitemapindex>`))
	})
	mux.HandleFunc("/nested.xml", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<urlset><url><loc>https://example.com/page-1</loc></url></urlset>`))
	})

	pages, err := NewFetcher(0).FetchSitemap(context.Background(), server.URL+"/sitemap.xml")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/page-1"}, pages)
}

func TestFetcherRejectsBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := NewFetcher(0).FetchPage(context.Background(), server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestFetcherRejectsNonHTTPScheme(t *testing.T) {
	_, err := NewFetcher(0).FetchPage(context.Background(), "file:///etc/passwd")
	assert.Error(t, err)
}
