package docmark

import (
	"github.com/tsawler/docmark/meta"
	"github.com/tsawler/docmark/pdf"
)

// convertOptions holds configuration for a conversion run.
type convertOptions struct {
	// Metadata derivation
	summarySentences int
	topKeywords      int

	// DOCX fragment merging
	shortTextThreshold int

	// OCR
	ocrEnabled   bool
	ocrLanguages []string

	// Injectable providers; nil means the built-in implementation.
	recognizer    pdf.Recognizer
	summarizer    meta.Summarizer
	keywordRanker meta.KeywordRanker
	segmenter     meta.Segmenter
}

// defaultConvertOptions returns the default conversion options.
func defaultConvertOptions() convertOptions {
	return convertOptions{
		summarySentences:   3,
		topKeywords:        10,
		shortTextThreshold: 20,
		ocrEnabled:         true,
		ocrLanguages:       []string{"eng"},
	}
}

// clone creates a deep copy of convertOptions.
func (o convertOptions) clone() convertOptions {
	newOpts := o
	if o.ocrLanguages != nil {
		newOpts.ocrLanguages = make([]string, len(o.ocrLanguages))
		copy(newOpts.ocrLanguages, o.ocrLanguages)
	}
	return newOpts
}
