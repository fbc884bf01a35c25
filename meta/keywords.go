package meta

import (
	"errors"
	"sort"
	"unicode"
)

// FrequencyRankerConfig holds configuration options for the frequency-based
// keyword ranker.
type FrequencyRankerConfig struct {
	// MinTermLength drops terms shorter than this many runes.
	MinTermLength int

	// ExtraStopWords adds to the built-in stop-word set. Terms are matched
	// after normalization.
	ExtraStopWords []string
}

// DefaultFrequencyRankerConfig returns sensible defaults for keyword
// ranking.
func DefaultFrequencyRankerConfig() FrequencyRankerConfig {
	return FrequencyRankerConfig{
		MinTermLength: 2,
	}
}

// FrequencyRanker is the default KeywordRanker. It scores terms by their
// frequency relative to the most frequent term, which keeps scores in
// [0, 1] regardless of document length.
type FrequencyRanker struct {
	config    FrequencyRankerConfig
	stopWords map[string]bool
}

// NewFrequencyRanker creates a ranker with default configuration.
func NewFrequencyRanker() *FrequencyRanker {
	return NewFrequencyRankerWithConfig(DefaultFrequencyRankerConfig())
}

// NewFrequencyRankerWithConfig creates a ranker with custom configuration.
func NewFrequencyRankerWithConfig(config FrequencyRankerConfig) *FrequencyRanker {
	if config.MinTermLength < 1 {
		config.MinTermLength = 2
	}
	stop := make(map[string]bool, len(defaultStopWords)+len(config.ExtraStopWords))
	for _, w := range defaultStopWords {
		stop[w] = true
	}
	for _, w := range config.ExtraStopWords {
		stop[NormalizeTerm(w)] = true
	}
	return &FrequencyRanker{config: config, stopWords: stop}
}

// Rank returns up to n keywords in descending score order. Duplicate terms
// collapse on their normalized form, keeping the first surface form seen;
// score ties keep first-occurrence order.
func (r *FrequencyRanker) Rank(tokens []string, n int) ([]Keyword, error) {
	if len(tokens) == 0 {
		return nil, errors.New("no tokens to rank")
	}
	if n < 1 {
		return nil, errors.New("keyword count must be at least 1")
	}

	type entry struct {
		surface string
		count   int
		first   int
	}
	counts := make(map[string]*entry)
	var order []string

	for i, token := range tokens {
		term := NormalizeTerm(token)
		if term == "" || r.stopWords[term] || !r.keepTerm(term) {
			continue
		}
		e, ok := counts[term]
		if !ok {
			e = &entry{surface: term, first: i}
			counts[term] = e
			order = append(order, term)
		}
		e.count++
	}
	if len(order) == 0 {
		return nil, errors.New("no rankable terms after filtering")
	}

	maxCount := 0
	for _, term := range order {
		if counts[term].count > maxCount {
			maxCount = counts[term].count
		}
	}

	sort.SliceStable(order, func(a, b int) bool {
		ea, eb := counts[order[a]], counts[order[b]]
		if ea.count != eb.count {
			return ea.count > eb.count
		}
		return ea.first < eb.first
	})

	if n > len(order) {
		n = len(order)
	}
	keywords := make([]Keyword, 0, n)
	for _, term := range order[:n] {
		e := counts[term]
		keywords = append(keywords, Keyword{
			Term:  e.surface,
			Score: float64(e.count) / float64(maxCount),
		})
	}
	return keywords, nil
}

// keepTerm drops terms below the length floor and terms with no letter at
// all, so bare numbers and symbol runs never rank.
func (r *FrequencyRanker) keepTerm(term string) bool {
	runes := 0
	hasLetter := false
	for _, c := range term {
		runes++
		if unicode.IsLetter(c) {
			hasLetter = true
		}
	}
	return runes >= r.config.MinTermLength && hasLetter
}

// defaultStopWords is a compact English stop-word list. Callers working in
// other languages extend it through FrequencyRankerConfig.
var defaultStopWords = []string{
	"a", "an", "and", "are", "as", "at", "be", "been", "but", "by",
	"can", "did", "do", "does", "for", "from", "had", "has", "have",
	"he", "her", "his", "i", "if", "in", "is", "it", "its", "may",
	"more", "most", "no", "not", "of", "on", "or", "other", "our",
	"she", "should", "so", "some", "such", "than", "that", "the",
	"their", "them", "then", "there", "these", "they", "this", "to",
	"was", "we", "were", "which", "will", "with", "would", "you",
}
