package meta

import (
	"errors"
	"math"
	"sort"
)

// LexRankConfig holds configuration options for the LexRank summarizer.
type LexRankConfig struct {
	// SimilarityThreshold is the minimum cosine similarity for two sentences
	// to be connected in the sentence graph.
	SimilarityThreshold float64

	// Damping is the PageRank damping factor.
	Damping float64

	// MaxIterations bounds the power iteration.
	MaxIterations int

	// Tolerance stops the iteration once scores change less than this.
	Tolerance float64
}

// DefaultLexRankConfig returns sensible defaults for LexRank.
func DefaultLexRankConfig() LexRankConfig {
	return LexRankConfig{
		SimilarityThreshold: 0.1,
		Damping:             0.85,
		MaxIterations:       50,
		Tolerance:           1e-4,
	}
}

// LexRankSummarizer is the default Summarizer. It builds a sentence graph
// weighted by idf-modified cosine similarity and scores sentences with
// power iteration, so sentences similar to many other sentences rank
// highest.
type LexRankSummarizer struct {
	config    LexRankConfig
	segmenter Segmenter
}

// NewLexRankSummarizer creates a LexRank summarizer with default
// configuration.
func NewLexRankSummarizer() *LexRankSummarizer {
	return NewLexRankSummarizerWithConfig(DefaultLexRankConfig())
}

// NewLexRankSummarizerWithConfig creates a LexRank summarizer with custom
// configuration.
func NewLexRankSummarizerWithConfig(config LexRankConfig) *LexRankSummarizer {
	if config.SimilarityThreshold <= 0 {
		config.SimilarityThreshold = 0.1
	}
	if config.Damping <= 0 || config.Damping >= 1 {
		config.Damping = 0.85
	}
	if config.MaxIterations <= 0 {
		config.MaxIterations = 50
	}
	if config.Tolerance <= 0 {
		config.Tolerance = 1e-4
	}
	return &LexRankSummarizer{
		config:    config,
		segmenter: NewSegmenter(),
	}
}

// RankSentences returns up to k sentence indices ranked by importance.
// Equal scores rank the earlier sentence first.
func (l *LexRankSummarizer) RankSentences(sentences []string, k int) ([]int, error) {
	if len(sentences) == 0 {
		return nil, errors.New("no sentences to rank")
	}
	if k < 1 {
		return nil, errors.New("sentence count must be at least 1")
	}

	scores := l.score(sentences)

	indices := make([]int, len(sentences))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		if scores[indices[a]] != scores[indices[b]] {
			return scores[indices[a]] > scores[indices[b]]
		}
		return indices[a] < indices[b]
	})

	if k > len(indices) {
		k = len(indices)
	}
	return indices[:k], nil
}

// score runs the LexRank computation and returns one score per sentence.
func (l *LexRankSummarizer) score(sentences []string) []float64 {
	n := len(sentences)
	if n == 1 {
		return []float64{1}
	}

	vectors, idf := l.vectorize(sentences)

	// Adjacency from thresholded cosine similarity.
	adj := make([][]float64, n)
	degree := make([]float64, n)
	for i := range adj {
		adj[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			if sim := cosine(vectors[i], vectors[j], idf); sim >= l.config.SimilarityThreshold {
				adj[i][j] = sim
				degree[i] += sim
			}
		}
	}

	scores := make([]float64, n)
	next := make([]float64, n)
	for i := range scores {
		scores[i] = 1.0 / float64(n)
	}

	base := (1 - l.config.Damping) / float64(n)
	for iter := 0; iter < l.config.MaxIterations; iter++ {
		for i := 0; i < n; i++ {
			sum := 0.0
			for j := 0; j < n; j++ {
				if adj[j][i] > 0 && degree[j] > 0 {
					sum += scores[j] * adj[j][i] / degree[j]
				}
			}
			next[i] = base + l.config.Damping*sum
		}

		delta := 0.0
		for i := range scores {
			delta += math.Abs(next[i] - scores[i])
		}
		copy(scores, next)
		if delta < l.config.Tolerance {
			break
		}
	}

	return scores
}

// vectorize builds term-frequency vectors for each sentence and inverse
// document frequencies across the sentence set.
func (l *LexRankSummarizer) vectorize(sentences []string) ([]map[string]float64, map[string]float64) {
	n := len(sentences)
	vectors := make([]map[string]float64, n)
	docFreq := make(map[string]int)

	for i, s := range sentences {
		vec := make(map[string]float64)
		for _, token := range l.segmenter.Words(s) {
			vec[NormalizeTerm(token)]++
		}
		vectors[i] = vec
		for term := range vec {
			docFreq[term]++
		}
	}

	idf := make(map[string]float64, len(docFreq))
	for term, df := range docFreq {
		idf[term] = math.Log(float64(n)/float64(df)) + 1
	}
	return vectors, idf
}

// cosine computes the idf-modified cosine similarity of two term vectors.
func cosine(a, b map[string]float64, idf map[string]float64) float64 {
	var dot, normA, normB float64
	for term, tfA := range a {
		w := tfA * idf[term]
		normA += w * w
		if tfB, ok := b[term]; ok {
			dot += w * tfB * idf[term]
		}
	}
	for term, tfB := range b {
		w := tfB * idf[term]
		normB += w * w
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
