package meta

import (
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/v2/sentences"
	"github.com/clipperhouse/uax29/v2/words"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// UnicodeSegmenter is the default Segmenter, built on Unicode text
// segmentation (UAX #29). It splits CJK and other unspaced scripts the same
// way it splits spaced text, so word counts stay meaningful across
// languages.
type UnicodeSegmenter struct{}

// NewSegmenter creates a Unicode segmenter.
func NewSegmenter() *UnicodeSegmenter {
	return &UnicodeSegmenter{}
}

// Words returns the text's word tokens. Whitespace and punctuation-only
// segments are dropped.
func (s *UnicodeSegmenter) Words(text string) []string {
	var tokens []string
	iter := words.FromString(text)
	for iter.Next() {
		token := iter.Value()
		if isWordToken(token) {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// Sentences returns the text's sentences with surrounding whitespace
// trimmed.
func (s *UnicodeSegmenter) Sentences(text string) []string {
	var out []string
	iter := sentences.FromString(text)
	for iter.Next() {
		sentence := strings.TrimSpace(iter.Value())
		if sentence != "" {
			out = append(out, sentence)
		}
	}
	return out
}

// isWordToken reports whether the segment carries at least one letter or
// digit.
func isWordToken(token string) bool {
	for _, r := range token {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// NormalizeTerm canonicalizes a term for comparison: compatibility
// normalization followed by Unicode case folding. Terms equal after
// normalization count as duplicates. A fresh caser per call keeps this safe
// for concurrent batch workers.
func NormalizeTerm(term string) string {
	return cases.Fold().String(norm.NFKC.String(strings.TrimSpace(term)))
}
