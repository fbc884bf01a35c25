//go:build ocr

// Package ocr provides optical character recognition for scanned pages and
// embedded images. It is gated behind the "ocr" build tag because it links
// against the Tesseract C library via cgo.
package ocr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/otiai10/gosseract/v2"
	"github.com/tsawler/docmark/model"
)

// ErrOCRNotEnabled is returned by the stub build when OCR support was not
// compiled in. It is declared here as well so callers can test against it
// regardless of build tags.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Client wraps a Tesseract engine instance. It is not safe for concurrent
// use; create one Client per worker.
type Client struct {
	engine *gosseract.Client
	opts   Options
}

// New creates an OCR client with default options.
func New() (*Client, error) {
	return NewWithOptions(DefaultOptions())
}

// NewWithOptions creates an OCR client with the given options.
func NewWithOptions(opts Options) (*Client, error) {
	engine := gosseract.NewClient()

	if opts.DataPath != "" {
		if err := engine.SetTessdataPrefix(opts.DataPath); err != nil {
			engine.Close()
			return nil, fmt.Errorf("set tessdata path: %w", err)
		}
	}
	if len(opts.Languages) > 0 {
		if err := engine.SetLanguage(opts.Languages...); err != nil {
			engine.Close()
			return nil, fmt.Errorf("set languages: %w", err)
		}
	}
	if err := engine.SetPageSegMode(gosseract.PageSegMode(opts.PageSegMode)); err != nil {
		engine.Close()
		return nil, fmt.Errorf("set page segmentation mode: %w", err)
	}
	if opts.DPI > 0 {
		if err := engine.SetVariable(gosseract.SettableVariable("user_defined_dpi"), strconv.Itoa(opts.DPI)); err != nil {
			engine.Close()
			return nil, fmt.Errorf("set dpi: %w", err)
		}
	}

	return &Client{engine: engine, opts: opts}, nil
}

// Close releases the underlying Tesseract engine. Safe to call on a nil
// client.
func (c *Client) Close() error {
	if c == nil || c.engine == nil {
		return nil
	}
	err := c.engine.Close()
	c.engine = nil
	return err
}

// RecognizeImage runs OCR on an encoded image and returns the recognized
// text as a single string.
func (c *Client) RecognizeImage(image []byte) (string, error) {
	if err := c.engine.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	text, err := c.engine.Text()
	if err != nil {
		return "", fmt.Errorf("recognize: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// RecognizeBlocks runs OCR on an encoded image and returns one positioned
// block per recognized text line. Coordinates are pixels in the image's
// coordinate space, origin top-left. Confidence is normalized to [0, 1].
// Line height stands in for font size so downstream heading inference has
// a relative size signal to work with.
func (c *Client) RecognizeBlocks(image []byte, page int) ([]model.ContentBlock, error) {
	if err := c.engine.SetImageFromBytes(image); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}
	boxes, err := c.engine.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("recognize: %w", err)
	}
	if len(boxes) == 0 {
		return nil, nil
	}

	blocks := make([]model.ContentBlock, 0, len(boxes))
	for _, b := range boxes {
		text := strings.TrimSpace(b.Word)
		if text == "" {
			continue
		}
		r := b.Box
		blocks = append(blocks, model.ContentBlock{
			Kind:       model.KindParagraph,
			Text:       text,
			Page:       page,
			BBox:       model.NewBBox(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy())),
			FontSize:   float64(r.Dy()),
			Confidence: b.Confidence / 100,
		})
	}
	return blocks, nil
}
