package meta

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSummarizer struct {
	indices []int
	err     error
}

func (s *stubSummarizer) RankSentences(sentences []string, k int) ([]int, error) {
	return s.indices, s.err
}

type stubRanker struct {
	keywords []Keyword
	err      error
}

func (s *stubRanker) Rank(tokens []string, n int) ([]Keyword, error) {
	return s.keywords, s.err
}

func TestExtractEmptyText(t *testing.T) {
	m := NewExtractor().Extract("")
	assert.Zero(t, m.CharCount)
	assert.Zero(t, m.WordCount)
	assert.Empty(t, m.Summary)
	assert.Empty(t, m.Keywords)
	assert.False(t, m.Degraded)
}

func TestExtractCounts(t *testing.T) {
	m := NewExtractor().Extract("héllo wörld")
	assert.Equal(t, 11, m.CharCount, "char count is runes, not bytes")
	assert.Equal(t, 2, m.WordCount)
}

func TestExtractSummaryKeepsSourceOrder(t *testing.T) {
	text := "First sentence here. Second sentence here. Third sentence here."

	// Ranked scores put the third sentence above the first; the summary
	// must still read first-then-third.
	e := NewExtractorWithConfig(Config{SummarySentences: 2, KeywordsTopN: 5}).
		WithSummarizer(&stubSummarizer{indices: []int{2, 0}})

	m := e.Extract(text)
	assert.Equal(t, "First sentence here. Third sentence here.", m.Summary)
	assert.False(t, m.Degraded)
}

func TestExtractSummarizerFailureDegrades(t *testing.T) {
	e := NewExtractor().WithSummarizer(&stubSummarizer{err: errors.New("model unavailable")})
	m := e.Extract("Some document text with enough words to rank keywords properly.")

	assert.True(t, m.Degraded)
	assert.Contains(t, m.DegradedReason, "model unavailable")
	assert.Empty(t, m.Summary)
	assert.NotEmpty(t, m.Keywords, "keyword extraction proceeds despite summary failure")
	assert.NotZero(t, m.CharCount)
	assert.NotZero(t, m.WordCount)
}

func TestExtractKeywordFailureDegrades(t *testing.T) {
	e := NewExtractor().WithKeywordRanker(&stubRanker{err: errors.New("text too short")})
	m := e.Extract("One full sentence of perfectly ordinary text. Another follows it.")

	assert.True(t, m.Degraded)
	assert.Contains(t, m.DegradedReason, "text too short")
	assert.Empty(t, m.Keywords)
	assert.NotEmpty(t, m.Summary)
}

func TestExtractSanitizesProviderKeywords(t *testing.T) {
	e := NewExtractorWithConfig(Config{SummarySentences: 1, KeywordsTopN: 3}).
		WithKeywordRanker(&stubRanker{keywords: []Keyword{
			{Term: "Alpha", Score: 0.4},
			{Term: "beta", Score: 0.9},
			{Term: "alpha", Score: 0.7},
			{Term: "gamma", Score: 0.7},
			{Term: "delta", Score: 0.1},
		}})

	m := e.Extract("A document mentioning alpha and beta and gamma and delta.")
	require.Len(t, m.Keywords, 3)

	// Duplicate alpha collapses keeping the max score; the 0.7 tie between
	// alpha and gamma keeps alpha first because it appeared earlier.
	assert.Equal(t, "beta", m.Keywords[0].Term)
	assert.InDelta(t, 0.9, m.Keywords[0].Score, 1e-9)
	assert.InDelta(t, 0.7, m.Keywords[1].Score, 1e-9)
	assert.InDelta(t, 0.7, m.Keywords[2].Score, 1e-9)
	assert.Equal(t, "gamma", m.Keywords[2].Term)

	for i := 1; i < len(m.Keywords); i++ {
		assert.LessOrEqual(t, m.Keywords[i].Score, m.Keywords[i-1].Score)
	}
}

func TestMetadataJSONShape(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	m := Metadata{
		Summary:   "A summary.",
		Keywords:  []Keyword{{Term: "alpha", Score: 1.0}, {Term: "beta", Score: 0.5}},
		CharCount: 42,
		WordCount: 7,
		Title:     "Report",
		Created:   &created,
	}

	raw, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, "A summary.", decoded["summary"])
	assert.Equal(t, float64(42), decoded["char_count"])
	assert.Equal(t, float64(7), decoded["word_count"])
	assert.Equal(t, "Report", decoded["title"])
	assert.Nil(t, decoded["author"])
	assert.Equal(t, "2024-03-01T10:30:00Z", decoded["created"])
	assert.Nil(t, decoded["modified"])
	assert.NotContains(t, decoded, "degraded")

	pairs, ok := decoded["keywords"].([]interface{})
	require.True(t, ok)
	require.Len(t, pairs, 2)
	first, ok := pairs[0].([]interface{})
	require.True(t, ok)
	require.Len(t, first, 2)
	assert.Equal(t, "alpha", first[0])
	assert.Equal(t, 1.0, first[1])
}

func TestMetadataJSONDegraded(t *testing.T) {
	m := Metadata{Degraded: true, DegradedReason: "summary: too short"}
	raw, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, true, decoded["degraded"])
	assert.Equal(t, "summary: too short", decoded["degraded_reason"])
	assert.Equal(t, []interface{}{}, decoded["keywords"], "keywords serialize as empty array, not null")
}
