// FILE: pkg/ingest/sitemap.go
package ingest

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Sitemap holds the targets found in one sitemap document. A <urlset>
// yields page URLs; a <sitemapindex> yields nested sitemap URLs which the
// caller expands one level (no deeper recursion).
type Sitemap struct {
	PageURLs   []string
	NestedMaps []string
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	URLs    []sitemapLoc `xml:"url"`
}

type sitemapIndex struct {
	XMLName  xml.Name     `xml:"sitemapindex"`
	Sitemaps []sitemapLoc `xml:"sitemap"`
}

type sitemapLoc struct {
	Loc string `xml:"loc"`
}

// ParseSitemap decodes sitemap XML in either the urlset or sitemapindex
// flavor. Empty and whitespace-only <loc> entries are dropped.
func ParseSitemap(r io.Reader) (*Sitemap, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read sitemap: %w", err)
	}

	var urlSet sitemapURLSet
	if err := xml.Unmarshal(data, &urlSet); err == nil && len(urlSet.URLs) > 0 {
		return &Sitemap{PageURLs: locValues(urlSet.URLs)}, nil
	}

	var index sitemapIndex
	if err := xml.Unmarshal(data, &index); err == nil && len(index.Sitemaps) > 0 {
		return &Sitemap{NestedMaps: locValues(index.Sitemaps)}, nil
	}

	// Distinguish bad XML from a well-formed but empty document.
	var probe struct {
		XMLName xml.Name
	}
	if err := xml.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("parse sitemap: %w", err)
	}
	switch probe.XMLName.Local {
	case "urlset", "sitemapindex":
		return &Sitemap{}, nil
	default:
		return nil, fmt.Errorf("parse sitemap: unexpected root element <%s>", probe.XMLName.Local)
	}
}

func locValues(locs []sitemapLoc) []string {
	out := make([]string, 0, len(locs))
	for _, l := range locs {
		if v := strings.TrimSpace(l.Loc); v != "" {
			out = append(out, v)
		}
	}
	return out
}
