package citation

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	idA := "0b8f1c1e-5a3d-4f8e-9c2b-7d4a6e1f2a3b"
	idB := "9d2e4f6a-1b3c-4d5e-8f9a-0b1c2d3e4f5a"

	tests := []struct {
		name        string
		content     string
		wantIds     []string
		wantAnchors []string
	}{
		{
			name:    "no citations",
			content: "Plain answer with a [regular link](https://example.com).",
		},
		{
			name:        "inline link citation",
			content:     "TiKV stores data in regions [1](knowledge://chunk/" + idA + ").",
			wantIds:     []string{idA},
			wantAnchors: []string{"1"},
		},
		{
			name:        "multiple citations keep order",
			content:     "First [1](knowledge://chunk/" + idA + ") then [2](knowledge://chunk/" + idB + ").",
			wantIds:     []string{idA, idB},
			wantAnchors: []string{"1", "2"},
		},
		{
			name:        "duplicate chunk counted once",
			content:     "[1](knowledge://chunk/" + idA + ") and again [1](knowledge://chunk/" + idA + ")",
			wantIds:     []string{idA},
			wantAnchors: []string{"1"},
		},
		{
			name: "reference style definition",
			content: "Regions split automatically [1][ref].\n\n" +
				"[ref]: knowledge://chunk/" + idA,
			wantIds:     []string{idA},
			wantAnchors: []string{"1"},
		},
		{
			name:        "bare pseudo-url in text",
			content:     "source: knowledge://chunk/" + idA,
			wantIds:     []string{idA},
			wantAnchors: []string{""},
		},
		{
			name:        "emphasised anchor text",
			content:     "[*see docs*](knowledge://chunk/" + idA + ")",
			wantIds:     []string{idA},
			wantAnchors: []string{"see docs"},
		},
		{
			name:    "malformed uuid ignored",
			content: "[1](knowledge://chunk/not-a-uuid)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.content)
			assert.Len(t, got, len(tt.wantIds))
			for i, c := range got {
				assert.Equal(t, tt.wantIds[i], c.ChunkId.String())
				assert.Equal(t, tt.wantAnchors[i], c.Anchor)
				assert.Equal(t, i+1, c.Ordinal)
			}
		})
	}
}

func TestChunkIds(t *testing.T) {
	id := uuid.New()
	content := "answer [1](knowledge://chunk/" + id.String() + ")"

	ids := ChunkIds(content)

	assert.Equal(t, []uuid.UUID{id}, ids)
	assert.Empty(t, ChunkIds("nothing cited here"))
}
