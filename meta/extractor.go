package meta

import (
	"encoding/json"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tsawler/docmark/model"
)

// Config holds configuration options for metadata extraction.
type Config struct {
	// SummarySentences is the number of sentences in the extractive summary.
	SummarySentences int

	// KeywordsTopN is the maximum number of ranked keywords.
	KeywordsTopN int
}

// DefaultConfig returns sensible defaults for extraction.
func DefaultConfig() Config {
	return Config{
		SummarySentences: 3,
		KeywordsTopN:     10,
	}
}

// Metadata is the derived metadata record for one converted document.
type Metadata struct {
	// Summary is the extractive summary, sentences in source order.
	Summary string

	// Keywords are ranked terms, scores descending in [0, 1].
	Keywords []Keyword

	// CharCount counts every character of the source text including
	// whitespace.
	CharCount int

	// WordCount counts segmenter tokens, not whitespace splits.
	WordCount int

	// Document properties carried over from the source file; zero values
	// serialize as null.
	Title    string
	Author   string
	Created  *time.Time
	Modified *time.Time

	// Degraded is set when a provider failed and the affected fields were
	// left empty. The document itself still converted.
	Degraded       bool
	DegradedReason string
}

// ApplyProperties copies source document properties onto the metadata.
func (m *Metadata) ApplyProperties(props model.DocProperties) {
	m.Title = props.Title
	m.Author = props.Author
	m.Created = props.Created
	m.Modified = props.Modified
}

// MarshalJSON serializes the metadata in its persisted shape: keywords as
// [term, score] pairs and absent properties as null.
func (m Metadata) MarshalJSON() ([]byte, error) {
	pairs := make([][2]interface{}, len(m.Keywords))
	for i, kw := range m.Keywords {
		pairs[i] = [2]interface{}{kw.Term, kw.Score}
	}

	out := struct {
		Summary        string             `json:"summary"`
		Keywords       [][2]interface{}   `json:"keywords"`
		CharCount      int                `json:"char_count"`
		WordCount      int                `json:"word_count"`
		Title          *string            `json:"title"`
		Author         *string            `json:"author"`
		Created        *string            `json:"created"`
		Modified       *string            `json:"modified"`
		Degraded       bool               `json:"degraded,omitempty"`
		DegradedReason string             `json:"degraded_reason,omitempty"`
	}{
		Summary:        m.Summary,
		Keywords:       pairs,
		CharCount:      m.CharCount,
		WordCount:      m.WordCount,
		Title:          optString(m.Title),
		Author:         optString(m.Author),
		Created:        optTime(m.Created),
		Modified:       optTime(m.Modified),
		Degraded:       m.Degraded,
		DegradedReason: m.DegradedReason,
	}
	return json.Marshal(out)
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

// Extractor derives metadata from document text.
type Extractor struct {
	config     Config
	summarizer Summarizer
	ranker     KeywordRanker
	segmenter  Segmenter
}

// NewExtractor creates an extractor with default configuration and the
// built-in providers.
func NewExtractor() *Extractor {
	return NewExtractorWithConfig(DefaultConfig())
}

// NewExtractorWithConfig creates an extractor with custom configuration.
func NewExtractorWithConfig(config Config) *Extractor {
	if config.SummarySentences < 1 {
		config.SummarySentences = 3
	}
	if config.KeywordsTopN < 1 {
		config.KeywordsTopN = 10
	}
	return &Extractor{
		config:     config,
		summarizer: NewLexRankSummarizer(),
		ranker:     NewFrequencyRanker(),
		segmenter:  NewSegmenter(),
	}
}

// WithSummarizer replaces the summarization provider.
func (e *Extractor) WithSummarizer(s Summarizer) *Extractor {
	if s != nil {
		e.summarizer = s
	}
	return e
}

// WithKeywordRanker replaces the keyword provider.
func (e *Extractor) WithKeywordRanker(r KeywordRanker) *Extractor {
	if r != nil {
		e.ranker = r
	}
	return e
}

// WithSegmenter replaces the segmentation provider.
func (e *Extractor) WithSegmenter(s Segmenter) *Extractor {
	if s != nil {
		e.segmenter = s
	}
	return e
}

// Extract derives metadata from plain document text. Empty text yields zero
// counts and empty fields without touching any provider. Provider errors
// degrade the affected field and set Degraded; Extract itself never fails.
func (e *Extractor) Extract(text string) Metadata {
	m := Metadata{CharCount: utf8.RuneCountInString(text)}
	if strings.TrimSpace(text) == "" {
		return m
	}

	tokens := e.segmenter.Words(text)
	m.WordCount = len(tokens)

	var reasons []string

	sentences := e.segmenter.Sentences(text)
	if indices, err := e.summarizer.RankSentences(sentences, e.config.SummarySentences); err != nil {
		reasons = append(reasons, "summary: "+err.Error())
	} else {
		m.Summary = assembleSummary(sentences, indices, e.config.SummarySentences)
	}

	if keywords, err := e.ranker.Rank(tokens, e.config.KeywordsTopN); err != nil {
		reasons = append(reasons, "keywords: "+err.Error())
	} else {
		m.Keywords = sanitizeKeywords(keywords, e.config.KeywordsTopN)
	}

	if len(reasons) > 0 {
		m.Degraded = true
		m.DegradedReason = strings.Join(reasons, "; ")
	}
	return m
}

// assembleSummary takes the top-k ranked indices and joins the selected
// sentences in their original source order, preserving narrative flow.
func assembleSummary(sentences []string, ranked []int, k int) string {
	if k > len(ranked) {
		k = len(ranked)
	}
	selected := make([]int, 0, k)
	for _, idx := range ranked[:k] {
		if idx >= 0 && idx < len(sentences) {
			selected = append(selected, idx)
		}
	}
	sort.Ints(selected)

	parts := make([]string, 0, len(selected))
	seen := make(map[int]bool)
	for _, idx := range selected {
		if seen[idx] {
			continue
		}
		seen[idx] = true
		parts = append(parts, sentences[idx])
	}
	return strings.Join(parts, " ")
}

// sanitizeKeywords enforces the output contract regardless of provider
// behavior: duplicates collapse on the normalized term keeping the maximum
// score, order is descending by score with ties kept in provider order, and
// the list never exceeds n.
func sanitizeKeywords(keywords []Keyword, n int) []Keyword {
	type slot struct {
		kw    Keyword
		first int
	}
	best := make(map[string]*slot)
	var order []string

	for i, kw := range keywords {
		term := NormalizeTerm(kw.Term)
		if term == "" {
			continue
		}
		if s, ok := best[term]; ok {
			if kw.Score > s.kw.Score {
				s.kw = kw
			}
			continue
		}
		best[term] = &slot{kw: kw, first: i}
		order = append(order, term)
	}

	sort.SliceStable(order, func(a, b int) bool {
		sa, sb := best[order[a]], best[order[b]]
		if sa.kw.Score != sb.kw.Score {
			return sa.kw.Score > sb.kw.Score
		}
		return sa.first < sb.first
	})

	if n > len(order) {
		n = len(order)
	}
	out := make([]Keyword, 0, n)
	for _, term := range order[:n] {
		out = append(out, best[term].kw)
	}
	return out
}
