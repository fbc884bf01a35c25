//go:build !ocr

// Package ocr provides optical character recognition for scanned pages and
// embedded images. This stub build returns ErrOCRNotEnabled everywhere;
// build with -tags ocr to enable the Tesseract backend.
package ocr

import (
	"errors"

	"github.com/tsawler/docmark/model"
)

// ErrOCRNotEnabled is returned when OCR support was not compiled in.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Client is a placeholder for the Tesseract-backed client.
type Client struct{}

// New returns ErrOCRNotEnabled.
func New() (*Client, error) {
	return nil, ErrOCRNotEnabled
}

// NewWithOptions returns ErrOCRNotEnabled.
func NewWithOptions(opts Options) (*Client, error) {
	return nil, ErrOCRNotEnabled
}

// Close is a no-op. Safe to call on a nil client.
func (c *Client) Close() error {
	return nil
}

// RecognizeImage returns ErrOCRNotEnabled.
func (c *Client) RecognizeImage(image []byte) (string, error) {
	return "", ErrOCRNotEnabled
}

// RecognizeBlocks returns ErrOCRNotEnabled.
func (c *Client) RecognizeBlocks(image []byte, page int) ([]model.ContentBlock, error) {
	return nil, ErrOCRNotEnabled
}
