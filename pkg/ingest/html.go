// FILE: pkg/ingest/html.go
package ingest

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Page is the readable content extracted from one fetched HTML document.
type Page struct {
	Title string
	Text  string
}

// chrome that never carries document content
var strippedSelectors = []string{"script", "style", "noscript", "nav", "header", "footer", "iframe", "svg", "form"}

// ExtractReadableText parses HTML and returns the page title plus the
// visible text with navigation chrome removed and whitespace collapsed.
func ExtractReadableText(r io.Reader) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())

	for _, selector := range strippedSelectors {
		doc.Find(selector).Remove()
	}

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}

	const blockSelector = "h1, h2, h3, h4, h5, h6, p, li, pre, blockquote, td, th"

	var blocks []string
	root.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		// Containers are skipped; their leaf blocks are visited on their own.
		if s.Find(blockSelector).Length() > 0 {
			return
		}
		if text := collapseWhitespace(s.Text()); text != "" {
			blocks = append(blocks, text)
		}
	})

	// Pages without block structure still deserve their raw text.
	if len(blocks) == 0 {
		if text := collapseWhitespace(root.Text()); text != "" {
			blocks = append(blocks, text)
		}
	}

	return &Page{
		Title: title,
		Text:  strings.Join(blocks, "\n\n"),
	}, nil
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
