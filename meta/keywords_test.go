package meta

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrequencyRankerEmptyTokens(t *testing.T) {
	_, err := NewFrequencyRanker().Rank(nil, 5)
	assert.Error(t, err)
}

func TestFrequencyRankerOnlyStopWords(t *testing.T) {
	_, err := NewFrequencyRanker().Rank([]string{"the", "and", "of"}, 5)
	assert.Error(t, err)
}

func TestFrequencyRankerScoresNormalized(t *testing.T) {
	tokens := strings.Fields("pipeline pipeline pipeline document document render")
	keywords, err := NewFrequencyRanker().Rank(tokens, 10)
	require.NoError(t, err)
	require.Len(t, keywords, 3)

	assert.Equal(t, "pipeline", keywords[0].Term)
	assert.Equal(t, 1.0, keywords[0].Score)
	assert.InDelta(t, 2.0/3.0, keywords[1].Score, 1e-9)
	assert.InDelta(t, 1.0/3.0, keywords[2].Score, 1e-9)
	for _, kw := range keywords {
		assert.GreaterOrEqual(t, kw.Score, 0.0)
		assert.LessOrEqual(t, kw.Score, 1.0)
	}
}

func TestFrequencyRankerCaseFoldsDuplicates(t *testing.T) {
	tokens := []string{"Markdown", "markdown", "MARKDOWN", "render"}
	keywords, err := NewFrequencyRanker().Rank(tokens, 10)
	require.NoError(t, err)
	require.Len(t, keywords, 2)
	assert.Equal(t, "markdown", keywords[0].Term)
	assert.Equal(t, 1.0, keywords[0].Score)
}

func TestFrequencyRankerTieKeepsOccurrenceOrder(t *testing.T) {
	tokens := []string{"zebra", "apple", "zebra", "apple"}
	keywords, err := NewFrequencyRanker().Rank(tokens, 10)
	require.NoError(t, err)
	require.Len(t, keywords, 2)
	assert.Equal(t, "zebra", keywords[0].Term, "equal counts keep first occurrence first")
	assert.Equal(t, "apple", keywords[1].Term)
}

func TestFrequencyRankerTruncatesToN(t *testing.T) {
	tokens := strings.Fields("alpha beta gamma delta epsilon")
	keywords, err := NewFrequencyRanker().Rank(tokens, 2)
	require.NoError(t, err)
	assert.Len(t, keywords, 2)
}

func TestFrequencyRankerDropsNumbersAndShortTerms(t *testing.T) {
	tokens := []string{"2024", "x", "conversion", "conversion"}
	keywords, err := NewFrequencyRanker().Rank(tokens, 10)
	require.NoError(t, err)
	require.Len(t, keywords, 1)
	assert.Equal(t, "conversion", keywords[0].Term)
}

func TestFrequencyRankerExtraStopWords(t *testing.T) {
	r := NewFrequencyRankerWithConfig(FrequencyRankerConfig{
		ExtraStopWords: []string{"Document"},
	})
	keywords, err := r.Rank([]string{"document", "pipeline"}, 10)
	require.NoError(t, err)
	require.Len(t, keywords, 1)
	assert.Equal(t, "pipeline", keywords[0].Term)
}
