// Package docx parses DOCX (Office Open XML) documents into ordered content
// blocks and document properties.
package docx

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/tsawler/docmark/model"
)

// ErrCorrupt marks an archive that cannot be read as a DOCX document:
// not a ZIP file, or missing the required document parts.
var ErrCorrupt = errors.New("corrupt docx document")

// Config holds configuration options for reading.
type Config struct {
	// MergeFragmentThreshold merges a plain paragraph shorter than this
	// many runes into the following paragraph. Word processors often split
	// one logical paragraph across elements; merging restores it.
	// Zero disables merging.
	MergeFragmentThreshold int
}

// DefaultConfig returns sensible defaults for reading.
func DefaultConfig() Config {
	return Config{
		MergeFragmentThreshold: 20,
	}
}

// Reader provides access to DOCX document content.
type Reader struct {
	config    Config
	zipReader *zip.ReadCloser
	document  *documentXML
	styles    *stylesXML
	rels      *relationshipsXML
	coreProps *corePropertiesXML
	numbering *NumberingResolver
}

// Open opens a DOCX file for reading with default configuration.
func Open(filename string) (*Reader, error) {
	return OpenWithConfig(filename, DefaultConfig())
}

// OpenWithConfig opens a DOCX file with custom configuration.
func OpenWithConfig(filename string, config Config) (*Reader, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	if config.MergeFragmentThreshold < 0 {
		config.MergeFragmentThreshold = 0
	}
	r := &Reader{
		config:    config,
		zipReader: zr,
	}

	if err := r.validate(); err != nil {
		zr.Close()
		return nil, err
	}
	if err := r.parseDocument(); err != nil {
		zr.Close()
		return nil, err
	}

	// Optional parts; absence is normal.
	r.parseRelationships()
	r.parseStyles()
	r.parseNumbering()
	r.parseCoreProperties()

	return r, nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	if r.zipReader != nil {
		err := r.zipReader.Close()
		r.zipReader = nil
		return err
	}
	return nil
}

// validate checks that required DOCX parts exist.
func (r *Reader) validate() error {
	required := []string{
		"[Content_Types].xml",
		"word/document.xml",
	}

	fileMap := make(map[string]bool)
	for _, f := range r.zipReader.File {
		fileMap[f.Name] = true
	}

	for _, name := range required {
		if !fileMap[name] {
			return fmt.Errorf("%w: missing %s", ErrCorrupt, name)
		}
	}
	return nil
}

// getFileContent reads the content of a file from the ZIP archive.
func (r *Reader) getFileContent(name string) ([]byte, error) {
	for _, f := range r.zipReader.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("file not found: %s", name)
}

// parseDocument parses the main document content.
func (r *Reader) parseDocument() error {
	data, err := r.getFileContent("word/document.xml")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	r.document = &documentXML{}
	if err := xml.Unmarshal(data, r.document); err != nil {
		return fmt.Errorf("%w: unmarshaling document.xml: %v", ErrCorrupt, err)
	}
	return nil
}

// parseRelationships parses the document relationships file.
func (r *Reader) parseRelationships() {
	data, err := r.getFileContent("word/_rels/document.xml.rels")
	if err != nil {
		return
	}
	r.rels = &relationshipsXML{}
	xml.Unmarshal(data, r.rels)
}

// parseStyles parses the styles definition file.
func (r *Reader) parseStyles() {
	data, err := r.getFileContent("word/styles.xml")
	if err != nil {
		return
	}
	r.styles = &stylesXML{}
	xml.Unmarshal(data, r.styles)
}

// parseNumbering parses the numbering definitions file.
func (r *Reader) parseNumbering() {
	data, err := r.getFileContent("word/numbering.xml")
	if err != nil {
		r.numbering = NewNumberingResolver(nil)
		return
	}
	numbering := &numberingXML{}
	xml.Unmarshal(data, numbering)
	r.numbering = NewNumberingResolver(numbering)
}

// parseCoreProperties parses Dublin Core metadata.
func (r *Reader) parseCoreProperties() {
	data, err := r.getFileContent("docProps/core.xml")
	if err != nil {
		return
	}
	r.coreProps = &corePropertiesXML{}
	xml.Unmarshal(data, r.coreProps)
}

// Properties returns the document's core properties.
func (r *Reader) Properties() model.DocProperties {
	props := model.DocProperties{}
	if r.coreProps == nil {
		return props
	}

	props.Title = strings.TrimSpace(r.coreProps.Title)
	props.Author = strings.TrimSpace(r.coreProps.Creator)
	props.Subject = strings.TrimSpace(r.coreProps.Subject)
	if r.coreProps.Keywords != "" {
		for _, kw := range strings.Split(r.coreProps.Keywords, ",") {
			if kw = strings.TrimSpace(kw); kw != "" {
				props.Keywords = append(props.Keywords, kw)
			}
		}
	}
	props.Created = parseW3CDTF(r.coreProps.Created)
	props.Modified = parseW3CDTF(r.coreProps.Modified)
	return props
}

// parseW3CDTF parses the W3C date-time profile used by Dublin Core
// properties. Returns nil when the value is absent or malformed.
func parseW3CDTF(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02",
		"2006-01",
		"2006",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// resolveImageTarget maps a relationship ID to its media target name.
func (r *Reader) resolveImageTarget(relID string) string {
	if r.rels == nil || relID == "" {
		return ""
	}
	for _, rel := range r.rels.Relationships {
		if rel.ID == relID {
			target := rel.Target
			if i := strings.LastIndex(target, "/"); i >= 0 {
				target = target[i+1:]
			}
			return target
		}
	}
	return ""
}
