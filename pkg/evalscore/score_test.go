package evalscore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeywordRecall(t *testing.T) {
	tests := []struct {
		name      string
		answer    string
		reference string
		want      float64
	}{
		{
			name:      "all reference words present",
			answer:    "TiKV is a distributed transactional key-value database.",
			reference: "distributed key-value database",
			want:      1.0,
		},
		{
			name:      "half the reference words present",
			answer:    "TiKV stores data in regions.",
			reference: "regions replicas",
			want:      0.5,
		},
		{
			name:      "nothing recalled",
			answer:    "I do not know.",
			reference: "raft consensus protocol",
			want:      0.0,
		},
		{
			name:      "short words ignored",
			answer:    "completely unrelated",
			reference: "is a of",
			want:      1.0,
		},
		{
			name:      "case and punctuation insensitive",
			answer:    "The RAFT protocol!",
			reference: "Raft protocol",
			want:      1.0,
		},
		{
			name:      "empty reference recalls trivially",
			answer:    "anything",
			reference: "",
			want:      1.0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := KeywordRecall(tc.answer, tc.reference, 3)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, CosineSimilarity([]float32{1, 0}, []float32{1, 0}), 1e-9)
	assert.InDelta(t, 0.0, CosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, CosineSimilarity([]float32{1, 0}, []float32{-1, 0}), 1e-9)

	// Scale invariance.
	assert.InDelta(t, 1.0, CosineSimilarity([]float32{2, 2}, []float32{5, 5}), 1e-6)

	// Degenerate inputs.
	assert.Equal(t, 0.0, CosineSimilarity([]float32{1, 0}, []float32{1, 0, 0}))
	assert.Equal(t, 0.0, CosineSimilarity([]float32{0, 0}, []float32{1, 0}))
}

func TestJaccardSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, JaccardSimilarity("raft consensus", "consensus raft"), 1e-9)
	assert.InDelta(t, 0.0, JaccardSimilarity("apples oranges", "trains planes"), 1e-9)
	assert.InDelta(t, 1.0, JaccardSimilarity("", ""), 1e-9)
	assert.InDelta(t, 0.0, JaccardSimilarity("something", ""), 1e-9)

	// "raft" shared; union is {raft, rules, laws} -> 1/3.
	assert.InDelta(t, 1.0/3.0, JaccardSimilarity("raft rules", "raft laws"), 1e-9)
}

func TestTokenize(t *testing.T) {
	tokens := Tokenize("The Raft protocol, explained.", 2)
	assert.Contains(t, tokens, "raft")
	assert.Contains(t, tokens, "protocol")
	assert.Contains(t, tokens, "explained")
	assert.Contains(t, tokens, "the")
	assert.NotContains(t, tokens, "protocol,")
}
