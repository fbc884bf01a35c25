// Package format provides file format detection for the docmark pipeline.
package format

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format represents a supported document format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// DOCX indicates a Microsoft Word (.docx) document.
	DOCX
	// DOC indicates a legacy Microsoft Word (.doc) document.
	DOC
	// PDF indicates a PDF document.
	PDF
	// Image indicates a raster image (jpg, png, bmp, tiff).
	Image
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case DOCX:
		return "DOCX"
	case DOC:
		return "DOC"
	case PDF:
		return "PDF"
	case Image:
		return "Image"
	default:
		return "Unknown"
	}
}

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// Detect determines file format from the filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch {
	case ext == ".docx":
		return DOCX
	case ext == ".doc":
		return DOC
	case ext == ".pdf":
		return PDF
	case imageExtensions[ext]:
		return Image
	default:
		return Unknown
	}
}

// DetectFromMagic checks leading magic bytes to determine format.
// A bare ZIP signature returns Unknown; use DetectFromReader to tell
// DOCX apart from other ZIP-based containers.
func DetectFromMagic(data []byte) Format {
	if len(data) < 4 {
		return Unknown
	}

	switch {
	case bytes.HasPrefix(data, []byte("%PDF")):
		return PDF
	case bytes.HasPrefix(data, []byte{0xD0, 0xCF, 0x11, 0xE0}):
		// OLE compound file, the legacy Word container.
		return DOC
	case bytes.HasPrefix(data, []byte{0xFF, 0xD8, 0xFF}):
		return Image // JPEG
	case bytes.HasPrefix(data, []byte{0x89, 'P', 'N', 'G'}):
		return Image // PNG
	case bytes.HasPrefix(data, []byte("BM")):
		return Image // BMP
	case bytes.HasPrefix(data, []byte{'I', 'I', 0x2A, 0x00}),
		bytes.HasPrefix(data, []byte{'M', 'M', 0x00, 0x2A}):
		return Image // TIFF little/big endian
	}

	return Unknown
}

// DetectFromReader inspects file content to determine format. It is more
// reliable than extension-based detection and can distinguish a DOCX
// archive from other ZIP-based containers.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, 8)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	magic = magic[:n]

	if len(magic) >= 4 && magic[0] == 0x50 && magic[1] == 0x4B && magic[2] == 0x03 && magic[3] == 0x04 {
		return detectZIPFormat(r, size)
	}

	return DetectFromMagic(magic), nil
}

// DetectFile combines extension and content detection for a path on disk.
// Content wins when the two disagree; the extension is the fallback when
// the content is inconclusive.
func DetectFile(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return Unknown, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Unknown, err
	}

	detected, err := DetectFromReader(f, info.Size())
	if err != nil || detected == Unknown {
		return Detect(path), nil
	}
	return detected, nil
}

// detectZIPFormat inspects a ZIP archive for the Word document part.
func detectZIPFormat(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}

	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "word/") {
			return DOCX, nil
		}
	}

	return Unknown, nil
}
