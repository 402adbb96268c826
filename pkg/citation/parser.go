package citation

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ChunkScheme is the pseudo-URL prefix assistant messages use to cite a
// retrieved chunk, e.g. [3](knowledge://chunk/6f1d...-...).
const ChunkScheme = "knowledge://chunk/"

// Citation is one chunk reference extracted from message markdown.
type Citation struct {
	ChunkId uuid.UUID
	Anchor  string // link text, usually a footnote-style marker like "3"
	Ordinal int    // 1-based order of first appearance
}

// Raw knowledge://chunk/... occurrences outside proper markdown links,
// e.g. pasted as plain text or inside footnote definitions.
var rawChunkPattern = regexp.MustCompile(`knowledge://chunk/([0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12})`)

// Parse extracts chunk citations from markdown content. Links are taken
// from the goldmark AST so nested emphasis, images and reference-style
// definitions resolve the same way a renderer would; bare pseudo-URLs in
// plain text are caught by a regex sweep afterwards. Duplicate chunk ids
// keep their first anchor and ordinal.
func Parse(content string) []Citation {
	if content == "" || !strings.Contains(content, ChunkScheme) {
		return nil
	}

	var (
		out  []Citation
		seen = map[uuid.UUID]bool{}
	)
	add := func(id uuid.UUID, anchor string) {
		if seen[id] {
			return
		}
		seen[id] = true
		out = append(out, Citation{ChunkId: id, Anchor: anchor, Ordinal: len(out) + 1})
	}

	source := []byte(content)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		var dest string
		switch link := n.(type) {
		case *ast.Link:
			dest = string(link.Destination)
		case *ast.AutoLink:
			dest = string(link.URL(source))
		default:
			return ast.WalkContinue, nil
		}

		id, ok := parseChunkURL(dest)
		if !ok {
			return ast.WalkContinue, nil
		}
		add(id, nodeText(n, source))
		return ast.WalkSkipChildren, nil
	})

	// Sweep for pseudo-URLs goldmark left as plain text.
	for _, match := range rawChunkPattern.FindAllStringSubmatch(content, -1) {
		if id, err := uuid.Parse(match[1]); err == nil {
			add(id, "")
		}
	}

	return out
}

// ChunkIds returns just the cited chunk ids, in order of appearance.
func ChunkIds(content string) []uuid.UUID {
	citations := Parse(content)
	ids := make([]uuid.UUID, len(citations))
	for i, c := range citations {
		ids[i] = c.ChunkId
	}
	return ids
}

func parseChunkURL(dest string) (uuid.UUID, bool) {
	if !strings.HasPrefix(dest, ChunkScheme) {
		return uuid.Nil, false
	}
	raw := strings.TrimPrefix(dest, ChunkScheme)
	// Tolerate trailing slashes or query fragments some renderers append.
	if i := strings.IndexAny(raw, "/?#"); i >= 0 {
		raw = raw[:i]
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func nodeText(n ast.Node, source []byte) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			sb.Write(t.Segment.Value(source))
			continue
		}
		sb.WriteString(nodeText(c, source))
	}
	return sb.String()
}
