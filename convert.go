package docmark

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/tsawler/docmark/docx"
	"github.com/tsawler/docmark/format"
	"github.com/tsawler/docmark/layout"
	"github.com/tsawler/docmark/markdown"
	"github.com/tsawler/docmark/meta"
	"github.com/tsawler/docmark/model"
	"github.com/tsawler/docmark/ocr"
	"github.com/tsawler/docmark/pdf"
)

// Converter provides a fluent interface for converting a single document.
// Each configuration method returns a new Converter instance, making it
// safe to share a configured base across goroutines.
type Converter struct {
	filename string
	options  convertOptions

	// Accumulated error (fail-fast)
	err error
}

// Result holds the artifacts of a successful conversion.
type Result struct {
	Format     format.Format
	Tree       *model.DocumentTree
	Markdown   string
	Meta       meta.Metadata
	Properties model.DocProperties
}

// clone creates a copy of the Converter with a deep copy of options.
func (c *Converter) clone() *Converter {
	return &Converter{
		filename: c.filename,
		options:  c.options.clone(),
		err:      c.err,
	}
}

// SummarySentences sets how many sentences the derived summary keeps.
func (c *Converter) SummarySentences(n int) *Converter {
	nc := c.clone()
	if n < 1 {
		nc.err = fmt.Errorf("summary sentences must be at least 1, got %d", n)
		return nc
	}
	nc.options.summarySentences = n
	return nc
}

// TopKeywords sets how many ranked keywords the metadata keeps.
func (c *Converter) TopKeywords(n int) *Converter {
	nc := c.clone()
	if n < 1 {
		nc.err = fmt.Errorf("top keywords must be at least 1, got %d", n)
		return nc
	}
	nc.options.topKeywords = n
	return nc
}

// ShortTextThreshold sets the rune length below which DOCX paragraph
// fragments merge into the following paragraph. Zero disables merging.
func (c *Converter) ShortTextThreshold(n int) *Converter {
	nc := c.clone()
	if n < 0 {
		n = 0
	}
	nc.options.shortTextThreshold = n
	return nc
}

// WithOCR enables or disables OCR for scanned pages and image inputs.
func (c *Converter) WithOCR(enabled bool) *Converter {
	nc := c.clone()
	nc.options.ocrEnabled = enabled
	return nc
}

// OCRLanguages sets the traineddata languages used for OCR.
func (c *Converter) OCRLanguages(langs ...string) *Converter {
	nc := c.clone()
	nc.options.ocrLanguages = append([]string(nil), langs...)
	return nc
}

// WithRecognizer injects an OCR recognizer, replacing the built-in
// Tesseract client. Useful for pooling one client per worker and for tests.
func (c *Converter) WithRecognizer(rec pdf.Recognizer) *Converter {
	nc := c.clone()
	nc.options.recognizer = rec
	return nc
}

// WithSummarizer injects a sentence ranking provider.
func (c *Converter) WithSummarizer(s meta.Summarizer) *Converter {
	nc := c.clone()
	nc.options.summarizer = s
	return nc
}

// WithKeywordRanker injects a keyword ranking provider.
func (c *Converter) WithKeywordRanker(r meta.KeywordRanker) *Converter {
	nc := c.clone()
	nc.options.keywordRanker = r
	return nc
}

// WithSegmenter injects a word/sentence segmentation provider.
func (c *Converter) WithSegmenter(s meta.Segmenter) *Converter {
	nc := c.clone()
	nc.options.segmenter = s
	return nc
}

// Convert runs the full pipeline: format detection, block extraction,
// structure reconstruction, Markdown rendering and metadata derivation.
// Failures come back as *ConversionError so callers can classify them
// with KindOf.
func (c *Converter) Convert(ctx context.Context) (*Result, error) {
	if c.err != nil {
		return nil, c.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := format.DetectFile(c.filename)
	if err != nil {
		return nil, convErr(IOFailure, c.filename, err)
	}

	var (
		blocks []model.ContentBlock
		props  model.DocProperties
	)
	switch f {
	case format.DOCX, format.DOC:
		blocks, props, err = c.extractDOCX()
	case format.PDF:
		blocks, props, err = c.extractPDF()
	case format.Image:
		blocks, err = c.extractImage()
	default:
		return nil, convErr(UnsupportedFormat, c.filename, fmt.Errorf("unrecognized format"))
	}
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tree := layout.NewReconstructor().Reconstruct(blocks)
	md := markdown.NewRenderer().Render(tree)

	extractor := meta.NewExtractorWithConfig(meta.Config{
		SummarySentences: c.options.summarySentences,
		KeywordsTopN:     c.options.topKeywords,
	})
	if c.options.summarizer != nil {
		extractor = extractor.WithSummarizer(c.options.summarizer)
	}
	if c.options.keywordRanker != nil {
		extractor = extractor.WithKeywordRanker(c.options.keywordRanker)
	}
	if c.options.segmenter != nil {
		extractor = extractor.WithSegmenter(c.options.segmenter)
	}

	// Metadata derives from the rendered document, not the tree, so counts
	// and summary reflect exactly what the Markdown artifact says.
	m := extractor.Extract(markdown.Strip(md))
	m.ApplyProperties(props)

	return &Result{
		Format:     f,
		Tree:       tree,
		Markdown:   md,
		Meta:       m,
		Properties: props,
	}, nil
}

func (c *Converter) extractDOCX() ([]model.ContentBlock, model.DocProperties, error) {
	r, err := docx.OpenWithConfig(c.filename, docx.Config{
		MergeFragmentThreshold: c.options.shortTextThreshold,
	})
	if err != nil {
		if errors.Is(err, docx.ErrCorrupt) {
			return nil, model.DocProperties{}, convErr(CorruptDocument, c.filename, err)
		}
		return nil, model.DocProperties{}, convErr(IOFailure, c.filename, err)
	}
	defer r.Close()

	blocks, err := r.Blocks()
	if err != nil {
		return nil, model.DocProperties{}, convErr(CorruptDocument, c.filename, err)
	}
	return blocks, r.Properties(), nil
}

func (c *Converter) extractPDF() ([]model.ContentBlock, model.DocProperties, error) {
	r, err := pdf.Open(c.filename)
	if err != nil {
		if errors.Is(err, pdf.ErrCorrupt) {
			return nil, model.DocProperties{}, convErr(CorruptDocument, c.filename, err)
		}
		return nil, model.DocProperties{}, convErr(IOFailure, c.filename, err)
	}

	var blocks []model.ContentBlock
	if c.options.ocrEnabled && len(r.ScannedPages()) > 0 {
		rec, release, err := c.acquireRecognizer()
		if err != nil {
			return nil, model.DocProperties{}, err
		}
		defer release()
		blocks, err = r.BlocksWithOCR(rec)
		if err != nil {
			return nil, model.DocProperties{}, convErr(OCRUnavailable, c.filename, err)
		}
	} else {
		blocks, err = r.Blocks()
		if err != nil {
			return nil, model.DocProperties{}, convErr(CorruptDocument, c.filename, err)
		}
	}
	return blocks, r.Properties(), nil
}

func (c *Converter) extractImage() ([]model.ContentBlock, error) {
	if !c.options.ocrEnabled {
		return nil, convErr(OCRUnavailable, c.filename, fmt.Errorf("image input requires OCR"))
	}

	data, err := os.ReadFile(c.filename)
	if err != nil {
		return nil, convErr(IOFailure, c.filename, err)
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return nil, convErr(CorruptDocument, c.filename, fmt.Errorf("decoding image: %w", err))
	}

	rec, release, err := c.acquireRecognizer()
	if err != nil {
		return nil, err
	}
	defer release()

	blocks, err := rec.RecognizeBlocks(data, 1)
	if err != nil {
		return nil, convErr(OCRUnavailable, c.filename, err)
	}
	return blocks, nil
}

// acquireRecognizer returns the injected recognizer or creates a Tesseract
// client for the duration of this conversion. The release func closes a
// client we created and is a no-op for injected recognizers.
func (c *Converter) acquireRecognizer() (pdf.Recognizer, func(), error) {
	if c.options.recognizer != nil {
		return c.options.recognizer, func() {}, nil
	}
	client, err := ocr.NewWithOptions(ocr.Options{
		Languages:   c.options.ocrLanguages,
		PageSegMode: ocr.PSM_AUTO,
	})
	if err != nil {
		return nil, nil, convErr(OCRUnavailable, c.filename, err)
	}
	return client, func() { client.Close() }, nil
}
