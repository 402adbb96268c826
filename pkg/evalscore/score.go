// FILE: pkg/evalscore/score.go

// Package evalscore computes the two scores an evaluation run records per
// dataset item: keyword recall against the reference answer and semantic
// similarity between generated and reference answers. Semantic similarity
// uses embedding cosine when an embedding client is reachable and falls
// back to lexical Jaccard overlap when it is not.
package evalscore

import (
	"math"
	"strings"
)

const wordTrimCutset = ".,;:!?\"'()[]{}/-"

// KeywordRecall returns the fraction of distinct reference words of at
// least minWordLen runes that appear in the answer. An empty reference
// scores 1: there was nothing to recall.
func KeywordRecall(answer, reference string, minWordLen int) float64 {
	if minWordLen < 1 {
		minWordLen = 1
	}

	wanted := map[string]struct{}{}
	for _, word := range strings.Fields(strings.ToLower(reference)) {
		word = strings.Trim(word, wordTrimCutset)
		if len([]rune(word)) >= minWordLen {
			wanted[word] = struct{}{}
		}
	}
	if len(wanted) == 0 {
		return 1.0
	}

	got := Tokenize(answer, 1)
	hits := 0
	for word := range wanted {
		if _, ok := got[word]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(wanted))
}

// CosineSimilarity computes cosine similarity between two vectors.
// Mismatched lengths and zero vectors score 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0.0
	}
	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i] * b[i])
		normA += float64(a[i] * a[i])
		normB += float64(b[i] * b[i])
	}
	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}

// JaccardSimilarity computes the Jaccard index between the token sets of
// two texts. Both empty counts as identical.
func JaccardSimilarity(a, b string) float64 {
	tokensA := Tokenize(a, 2)
	tokensB := Tokenize(b, 2)

	if len(tokensA) == 0 && len(tokensB) == 0 {
		return 1.0
	}
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0.0
	}

	intersection := 0
	for k := range tokensA {
		if _, ok := tokensB[k]; ok {
			intersection++
		}
	}
	union := len(tokensA) + len(tokensB) - intersection
	return float64(intersection) / float64(union)
}

// Tokenize lowercases, trims punctuation and splits text into a token set,
// dropping words shorter than minLen runes.
func Tokenize(s string, minLen int) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, word := range strings.Fields(strings.ToLower(s)) {
		word = strings.Trim(word, wordTrimCutset)
		if len([]rune(word)) >= minLen {
			tokens[word] = struct{}{}
		}
	}
	return tokens
}
