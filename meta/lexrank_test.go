package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexRankEmptyInput(t *testing.T) {
	_, err := NewLexRankSummarizer().RankSentences(nil, 3)
	assert.Error(t, err)
}

func TestLexRankInvalidCount(t *testing.T) {
	_, err := NewLexRankSummarizer().RankSentences([]string{"One sentence."}, 0)
	assert.Error(t, err)
}

func TestLexRankSingleSentence(t *testing.T) {
	indices, err := NewLexRankSummarizer().RankSentences([]string{"Only one sentence."}, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, indices)
}

func TestLexRankCapsAtSentenceCount(t *testing.T) {
	sentences := []string{"Alpha beta gamma.", "Delta epsilon zeta."}
	indices, err := NewLexRankSummarizer().RankSentences(sentences, 10)
	require.NoError(t, err)
	assert.Len(t, indices, 2)
}

func TestLexRankPrefersCentralSentence(t *testing.T) {
	// Three sentences about databases and one outlier; a database sentence
	// must outrank the outlier.
	sentences := []string{
		"The database stores documents in tables.",
		"Every database table holds document rows.",
		"Purple elephants enjoy trampolines enormously.",
		"Documents live in database tables permanently.",
	}
	indices, err := NewLexRankSummarizer().RankSentences(sentences, 1)
	require.NoError(t, err)
	require.Len(t, indices, 1)
	assert.NotEqual(t, 2, indices[0], "outlier sentence must not rank first")
}

func TestLexRankTieBreaksEarlier(t *testing.T) {
	// Identical sentences score identically; the earlier index must come
	// first in the ranking.
	sentences := []string{
		"Same sentence content here.",
		"Same sentence content here.",
		"Same sentence content here.",
	}
	indices, err := NewLexRankSummarizer().RankSentences(sentences, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, indices)
}

func TestLexRankDeterministic(t *testing.T) {
	sentences := []string{
		"Conversion pipelines normalize documents.",
		"The pipeline renders markdown output.",
		"Output metadata accompanies each document.",
	}
	s := NewLexRankSummarizer()
	first, err := s.RankSentences(sentences, 3)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := s.RankSentences(sentences, 3)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
