// Package pdf reads PDF documents and exposes their text as content blocks.
// Text is recovered from page content streams; image-only pages can be
// handed to an OCR recognizer to produce positioned blocks instead.
package pdf

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/tsawler/docmark/model"
)

// ErrCorrupt indicates the file could not be parsed as a PDF document.
var ErrCorrupt = errors.New("corrupt pdf document")

// Recognizer turns an encoded page image into positioned content blocks.
// The ocr package's Client satisfies this.
type Recognizer interface {
	RecognizeBlocks(image []byte, page int) ([]model.ContentBlock, error)
}

// Reader provides access to a parsed PDF document.
type Reader struct {
	path string
	ctx  *pdfmodel.Context
	conf *pdfmodel.Configuration
}

// Open reads, validates and optimizes a PDF document.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	conf := pdfmodel.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	return &Reader{path: path, ctx: ctx, conf: conf}, nil
}

// PageCount returns the number of pages in the document.
func (r *Reader) PageCount() int {
	return r.ctx.PageCount
}

// Blocks extracts stream-ordered paragraph blocks from every page with
// text content. Pages without text are skipped.
func (r *Reader) Blocks() ([]model.ContentBlock, error) {
	var blocks []model.ContentBlock
	for pageNr := 1; pageNr <= r.ctx.PageCount; pageNr++ {
		blocks = append(blocks, r.pageBlocks(pageNr)...)
	}
	for i := range blocks {
		blocks[i].Seq = i
	}
	return blocks, nil
}

// BlocksWithOCR behaves like Blocks but additionally runs the recognizer
// over pages that carry images and no extractable text, yielding positioned
// blocks for scanned pages. Recognizer errors abort the extraction so the
// caller can surface OCR availability problems.
func (r *Reader) BlocksWithOCR(rec Recognizer) ([]model.ContentBlock, error) {
	var blocks []model.ContentBlock
	for pageNr := 1; pageNr <= r.ctx.PageCount; pageNr++ {
		pb := r.pageBlocks(pageNr)
		if len(pb) == 0 && r.pageHasImages(pageNr) {
			ocrBlocks, err := r.recognizePage(rec, pageNr)
			if err != nil {
				return nil, err
			}
			pb = ocrBlocks
		}
		blocks = append(blocks, pb...)
	}
	for i := range blocks {
		blocks[i].Seq = i
	}
	return blocks, nil
}

// ScannedPages lists pages that carry images but no extractable text.
// These are the pages OCR can recover.
func (r *Reader) ScannedPages() []int {
	var scanned []int
	for pageNr := 1; pageNr <= r.ctx.PageCount; pageNr++ {
		if len(r.pageBlocks(pageNr)) == 0 && r.pageHasImages(pageNr) {
			scanned = append(scanned, pageNr)
		}
	}
	return scanned
}

func (r *Reader) pageBlocks(pageNr int) []model.ContentBlock {
	cr, err := pdfcpu.ExtractPageContent(r.ctx, pageNr)
	if err != nil || cr == nil {
		return nil
	}
	data, err := io.ReadAll(cr)
	if err != nil || len(data) == 0 {
		return nil
	}

	lines := paragraphLines(extractTextFromStream(data))
	blocks := make([]model.ContentBlock, 0, len(lines))
	for _, line := range lines {
		blocks = append(blocks, model.ContentBlock{
			Kind: model.KindParagraph,
			Text: line,
			Page: pageNr,
		})
	}
	return blocks
}

func (r *Reader) pageHasImages(pageNr int) bool {
	if r.ctx.Optimize == nil {
		return false
	}
	return len(pdfcpu.ImageObjNrs(r.ctx, pageNr)) > 0
}

// recognizePage extracts the page's images to a temp directory and runs
// the recognizer over each, in file name order.
func (r *Reader) recognizePage(rec Recognizer, pageNr int) ([]model.ContentBlock, error) {
	outDir, err := os.MkdirTemp("", "docmark-pdf-ocr")
	if err != nil {
		return nil, fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(outDir)

	pages := []string{strconv.Itoa(pageNr)}
	if err := api.ExtractImagesFile(r.path, outDir, pages, r.conf); err != nil {
		return nil, fmt.Errorf("extracting page %d images: %w", pageNr, err)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		return nil, fmt.Errorf("reading extracted images: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var blocks []model.ContentBlock
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(outDir, name))
		if err != nil {
			return nil, fmt.Errorf("reading extracted image %s: %w", name, err)
		}
		recognized, err := rec.RecognizeBlocks(data, pageNr)
		if err != nil {
			return nil, fmt.Errorf("recognizing page %d: %w", pageNr, err)
		}
		blocks = append(blocks, recognized...)
	}
	return blocks, nil
}

// Properties returns the document's Info dictionary fields. Missing or
// unreadable entries are left zero.
func (r *Reader) Properties() model.DocProperties {
	var props model.DocProperties

	if r.ctx.Info == nil {
		return props
	}
	d, err := r.ctx.DereferenceDict(*r.ctx.Info)
	if err != nil || d == nil {
		return props
	}

	props.Title = r.infoString(d, "Title")
	props.Author = r.infoString(d, "Author")
	props.Subject = r.infoString(d, "Subject")
	if kw := r.infoString(d, "Keywords"); kw != "" {
		props.Keywords = splitKeywords(kw)
	}
	props.Created = r.infoDate(d, "CreationDate")
	props.Modified = r.infoDate(d, "ModDate")

	return props
}

func (r *Reader) infoString(d types.Dict, key string) string {
	obj, found := d.Find(key)
	if !found {
		return ""
	}
	obj, err := r.ctx.Dereference(obj)
	if err != nil {
		return ""
	}
	switch s := obj.(type) {
	case types.StringLiteral:
		v, err := types.StringLiteralToString(s)
		if err != nil {
			return ""
		}
		return strings.TrimSpace(v)
	case types.HexLiteral:
		v, err := types.HexLiteralToString(s)
		if err != nil {
			return ""
		}
		return strings.TrimSpace(v)
	}
	return ""
}

// infoDate parses a PDF date string of the form "D:YYYYMMDDHHmmSS...".
func (r *Reader) infoDate(d types.Dict, key string) *time.Time {
	s := r.infoString(d, key)
	if s == "" {
		return nil
	}
	t, ok := types.DateTime(s, true)
	if !ok {
		return nil
	}
	return &t
}

// splitKeywords breaks an Info dictionary keyword string on commas and
// semicolons.
func splitKeywords(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';'
	})
	var out []string
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
