package format

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"report.docx", DOCX},
		{"REPORT.DOCX", DOCX},
		{"legacy.doc", DOC},
		{"manual.pdf", PDF},
		{"scan.jpg", Image},
		{"scan.jpeg", Image},
		{"scan.png", Image},
		{"scan.bmp", Image},
		{"scan.tif", Image},
		{"scan.tiff", Image},
		{"notes.txt", Unknown},
		{"noextension", Unknown},
		{"dir/nested.pdf", PDF},
	}

	for _, tt := range tests {
		if got := Detect(tt.filename); got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestDetectFromMagic(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"pdf", []byte("%PDF-1.7\n"), PDF},
		{"ole doc", []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, DOC},
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0}, Image},
		{"png", []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A}, Image},
		{"bmp", []byte("BM\x36\x00"), Image},
		{"tiff le", []byte{'I', 'I', 0x2A, 0x00}, Image},
		{"tiff be", []byte{'M', 'M', 0x00, 0x2A}, Image},
		{"zip is ambiguous", []byte{0x50, 0x4B, 0x03, 0x04}, Unknown},
		{"plain text", []byte("hello world"), Unknown},
		{"too short", []byte{0x01}, Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFromMagic(tt.data); got != tt.want {
				t.Errorf("DetectFromMagic = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectFromReaderDOCX(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range []string{"[Content_Types].xml", "word/document.xml"} {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte("<x/>")); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	data := buf.Bytes()
	got, err := DetectFromReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("DetectFromReader: %v", err)
	}
	if got != DOCX {
		t.Errorf("got %v, want DOCX", got)
	}
}

func TestDetectFromReaderZIPWithoutWordPart(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("data.csv")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("a,b\n")); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	data := buf.Bytes()
	got, err := DetectFromReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("DetectFromReader: %v", err)
	}
	if got != Unknown {
		t.Errorf("got %v, want Unknown", got)
	}
}

func TestDetectFile(t *testing.T) {
	dir := t.TempDir()

	// Content says PDF even though the extension lies.
	pdfPath := filepath.Join(dir, "mislabeled.docx")
	if err := os.WriteFile(pdfPath, []byte("%PDF-1.4\nstuff"), 0644); err != nil {
		t.Fatal(err)
	}
	if got, err := DetectFile(pdfPath); err != nil || got != PDF {
		t.Errorf("DetectFile(pdf content) = %v, %v; want PDF", got, err)
	}

	// Inconclusive content falls back to the extension.
	txtPath := filepath.Join(dir, "scan.png")
	if err := os.WriteFile(txtPath, []byte("not really an image"), 0644); err != nil {
		t.Fatal(err)
	}
	if got, err := DetectFile(txtPath); err != nil || got != Image {
		t.Errorf("DetectFile(extension fallback) = %v, %v; want Image", got, err)
	}

	if _, err := DetectFile(filepath.Join(dir, "missing.pdf")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFormatString(t *testing.T) {
	tests := []struct {
		f    Format
		want string
	}{
		{DOCX, "DOCX"},
		{DOC, "DOC"},
		{PDF, "PDF"},
		{Image, "Image"},
		{Unknown, "Unknown"},
		{Format(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.f.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.f, got, tt.want)
		}
	}
}
