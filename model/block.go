package model

// BlockKind represents the type of an extracted content block.
type BlockKind int

const (
	KindUnknown BlockKind = iota
	KindHeading
	KindParagraph
	KindListItem
	KindTableCell
	KindImageRef
)

// String returns a string representation of the block kind.
func (k BlockKind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindParagraph:
		return "paragraph"
	case KindListItem:
		return "list-item"
	case KindTableCell:
		return "table-cell"
	case KindImageRef:
		return "image-ref"
	default:
		return "unknown"
	}
}

// ContentBlock is one atomic unit of extracted document content prior to
// structural grouping. A provider produces each block exactly once; blocks are
// treated as immutable values after production.
//
// Stream-ordered providers set Seq and leave BBox empty. Positioned providers
// (OCR) set Page and BBox, and may additionally report FontSize and Confidence
// when the engine supplies them.
type ContentBlock struct {
	Kind BlockKind
	Text string

	// Level is the heading depth (1-6) for KindHeading, or the list nesting
	// depth (0-based) for KindListItem. Zero means unset.
	Level int

	// Ordered marks a KindListItem as belonging to a numbered list.
	Ordered bool

	// Seq is the position in the source stream for stream-ordered input.
	Seq int

	// Page is the 1-indexed page number for positioned input.
	Page int

	// BBox is the block position for positioned input. A zero BBox means the
	// block is stream-ordered.
	BBox BBox

	// Row and Col are the 0-indexed table coordinates for KindTableCell.
	Row, Col int

	// FontSize is the text height signal from a positioned source, in the
	// source's units. Zero means no style signal is available.
	FontSize float64

	// Confidence is the provider's recognition confidence in [0, 1].
	// Zero means not reported.
	Confidence float64

	// RefID identifies the referenced image for KindImageRef.
	RefID string
}

// Positioned reports whether the block carries spatial position information.
func (b ContentBlock) Positioned() bool {
	return b.BBox.IsValid()
}
