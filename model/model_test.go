package model

import (
	"strings"
	"testing"
)

func TestBlockKindString(t *testing.T) {
	tests := []struct {
		kind     BlockKind
		expected string
	}{
		{KindUnknown, "unknown"},
		{KindHeading, "heading"},
		{KindParagraph, "paragraph"},
		{KindListItem, "list-item"},
		{KindTableCell, "table-cell"},
		{KindImageRef, "image-ref"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Errorf("BlockKind(%d).String() = %q, want %q", tt.kind, got, tt.expected)
		}
	}
}

func TestContentBlockPositioned(t *testing.T) {
	stream := ContentBlock{Kind: KindParagraph, Text: "hello", Seq: 3}
	if stream.Positioned() {
		t.Error("stream block should not be positioned")
	}

	positioned := ContentBlock{
		Kind: KindParagraph,
		Text: "hello",
		Page: 1,
		BBox: NewBBox(10, 20, 100, 12),
	}
	if !positioned.Positioned() {
		t.Error("block with valid BBox should be positioned")
	}
}

func TestBBoxEdges(t *testing.T) {
	b := NewBBox(10, 20, 100, 50)

	if b.Left() != 10 {
		t.Errorf("Left() = %f, want 10", b.Left())
	}
	if b.Right() != 110 {
		t.Errorf("Right() = %f, want 110", b.Right())
	}
	if b.Top() != 20 {
		t.Errorf("Top() = %f, want 20", b.Top())
	}
	if b.Bottom() != 70 {
		t.Errorf("Bottom() = %f, want 70", b.Bottom())
	}
	if b.CenterX() != 60 {
		t.Errorf("CenterX() = %f, want 60", b.CenterX())
	}
	if b.CenterY() != 45 {
		t.Errorf("CenterY() = %f, want 45", b.CenterY())
	}
}

func TestBBoxVerticalOverlapRatio(t *testing.T) {
	tests := []struct {
		name     string
		a, b     BBox
		expected float64
	}{
		{
			name:     "identical boxes overlap fully",
			a:        NewBBox(0, 10, 50, 10),
			b:        NewBBox(100, 10, 50, 10),
			expected: 1.0,
		},
		{
			name:     "half overlap",
			a:        NewBBox(0, 10, 50, 10),
			b:        NewBBox(100, 15, 50, 10),
			expected: 0.5,
		},
		{
			name:     "disjoint vertical ranges",
			a:        NewBBox(0, 0, 50, 10),
			b:        NewBBox(0, 30, 50, 10),
			expected: 0,
		},
		{
			name:     "contained box overlaps fully",
			a:        NewBBox(0, 0, 50, 40),
			b:        NewBBox(0, 10, 50, 10),
			expected: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.VerticalOverlapRatio(tt.b)
			if got != tt.expected {
				t.Errorf("VerticalOverlapRatio = %f, want %f", got, tt.expected)
			}
			// Ratio is symmetric.
			if rev := tt.b.VerticalOverlapRatio(tt.a); rev != got {
				t.Errorf("ratio not symmetric: %f vs %f", got, rev)
			}
		})
	}
}

func TestBBoxUnion(t *testing.T) {
	a := NewBBox(0, 0, 10, 10)
	b := NewBBox(20, 20, 10, 10)

	u := a.Union(b)
	if u.X != 0 || u.Y != 0 || u.Width != 30 || u.Height != 30 {
		t.Errorf("Union = %+v, want {0 0 30 30}", u)
	}
}

func TestDocumentTreeHeadingLevels(t *testing.T) {
	tree := &DocumentTree{Nodes: []Node{
		&Heading{Level: 1, Text: "Title"},
		&Paragraph{Text: "Intro."},
		&Heading{Level: 2, Text: "Section"},
		&Table{Rows: [][]string{{"a", "b"}}},
		&Heading{Level: 3, Text: "Subsection"},
	}}

	levels := tree.HeadingLevels()
	want := []int{1, 2, 3}
	if len(levels) != len(want) {
		t.Fatalf("HeadingLevels() = %v, want %v", levels, want)
	}
	for i := range want {
		if levels[i] != want[i] {
			t.Errorf("HeadingLevels()[%d] = %d, want %d", i, levels[i], want[i])
		}
	}
}

func TestDocumentTreePlainText(t *testing.T) {
	tree := &DocumentTree{Nodes: []Node{
		&Heading{Level: 1, Text: "Title"},
		&Paragraph{Text: "Body text."},
		&ImagePlaceholder{ID: "img-1"},
		&ListGroup{Items: []ListItem{{Text: "first"}, {Text: "second"}}},
	}}

	text := tree.PlainText()
	if !strings.Contains(text, "Title") || !strings.Contains(text, "Body text.") {
		t.Errorf("PlainText missing content: %q", text)
	}
	if !strings.Contains(text, "first\nsecond") {
		t.Errorf("PlainText missing list items: %q", text)
	}
	// Image placeholders contribute no text.
	if strings.Contains(text, "img-1") {
		t.Errorf("PlainText should not contain image IDs: %q", text)
	}
}

func TestEmptyDocumentTree(t *testing.T) {
	var nilTree *DocumentTree
	if !nilTree.IsEmpty() {
		t.Error("nil tree should be empty")
	}
	if nilTree.PlainText() != "" {
		t.Error("nil tree should render empty plain text")
	}

	empty := &DocumentTree{}
	if !empty.IsEmpty() {
		t.Error("tree without nodes should be empty")
	}
}

func TestTableDimensions(t *testing.T) {
	table := &Table{Rows: [][]string{
		{"a", "b", "c"},
		{"d", "e"},
	}}

	if table.RowCount() != 2 {
		t.Errorf("RowCount() = %d, want 2", table.RowCount())
	}
	if table.ColCount() != 3 {
		t.Errorf("ColCount() = %d, want 3", table.ColCount())
	}
}
