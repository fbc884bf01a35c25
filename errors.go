package docmark

import (
	"errors"
	"fmt"

	"github.com/tsawler/docmark/docx"
	"github.com/tsawler/docmark/ocr"
	"github.com/tsawler/docmark/pdf"
)

// ErrorKind classifies conversion failures for batch reporting.
type ErrorKind int

const (
	// UnknownError is any failure that fits no other kind.
	UnknownError ErrorKind = iota
	// UnsupportedFormat means the input is not a format docmark converts.
	UnsupportedFormat
	// CorruptDocument means the parser could not produce blocks.
	CorruptDocument
	// OCRUnavailable means OCR was required but the provider is missing
	// or failed.
	OCRUnavailable
	// MetadataDegraded means the document converted but summary/keyword
	// derivation failed. Never fatal.
	MetadataDegraded
	// IOFailure means the input could not be read or an output could not
	// be written.
	IOFailure
)

// String returns the string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case UnsupportedFormat:
		return "UnsupportedFormat"
	case CorruptDocument:
		return "CorruptDocument"
	case OCRUnavailable:
		return "OCRUnavailable"
	case MetadataDegraded:
		return "MetadataDegraded"
	case IOFailure:
		return "IOFailure"
	default:
		return "UnknownError"
	}
}

// ConversionError wraps a failure in converting a single document.
type ConversionError struct {
	Kind ErrorKind
	Path string
	Err  error
}

// Error implements the error interface.
func (e *ConversionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Path)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ConversionError) Unwrap() error {
	return e.Err
}

func convErr(kind ErrorKind, path string, err error) *ConversionError {
	return &ConversionError{Kind: kind, Path: path, Err: err}
}

// KindOf classifies an error into an ErrorKind. Errors produced by the
// conversion pipeline keep their recorded kind; raw parser and OCR errors
// map onto the taxonomy by cause.
func KindOf(err error) ErrorKind {
	if err == nil {
		return UnknownError
	}
	var ce *ConversionError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	switch {
	case errors.Is(err, docx.ErrCorrupt), errors.Is(err, pdf.ErrCorrupt):
		return CorruptDocument
	case errors.Is(err, ocr.ErrOCRNotEnabled):
		return OCRUnavailable
	}
	return UnknownError
}
