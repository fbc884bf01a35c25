package meta

// Keyword is a ranked term with a relevance score in [0, 1].
type Keyword struct {
	Term  string
	Score float64
}

// Summarizer ranks sentences by importance. RankSentences returns up to k
// sentence indices into the input slice, most important first. An error
// signals that no ranking could be produced; the extractor treats that as
// degradation, not failure.
type Summarizer interface {
	RankSentences(sentences []string, k int) ([]int, error)
}

// KeywordRanker scores tokens by relevance. Rank returns up to n keywords in
// descending score order.
type KeywordRanker interface {
	Rank(tokens []string, n int) ([]Keyword, error)
}

// Segmenter splits raw text into language-aware tokens and sentences. It
// must handle text without whitespace word boundaries.
type Segmenter interface {
	Words(text string) []string
	Sentences(text string) []string
}
