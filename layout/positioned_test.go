package layout

import (
	"reflect"
	"testing"

	"github.com/tsawler/docmark/model"
)

func posBlock(text string, x, y, w, h float64) model.ContentBlock {
	return model.ContentBlock{
		Kind: model.KindParagraph,
		Text: text,
		Page: 1,
		BBox: model.NewBBox(x, y, w, h),
	}
}

func TestPositionedReadingOrderWithinBand(t *testing.T) {
	// Input order deliberately scrambled; left-to-right order must win.
	blocks := []model.ContentBlock{
		posBlock("gamma", 200, 10, 40, 12),
		posBlock("alpha", 10, 10, 40, 12),
		posBlock("beta", 100, 10, 40, 12),
	}
	tree := NewReconstructor().Reconstruct(blocks)
	if len(tree.Nodes) != 1 {
		t.Fatalf("expected 1 node, got %d", len(tree.Nodes))
	}
	p, ok := tree.Nodes[0].(*model.Paragraph)
	if !ok {
		t.Fatalf("expected paragraph, got %T", tree.Nodes[0])
	}
	if p.Text != "alpha beta gamma" {
		t.Errorf("expected %q, got %q", "alpha beta gamma", p.Text)
	}
}

func TestPositionedBandsTopToBottom(t *testing.T) {
	blocks := []model.ContentBlock{
		posBlock("second line", 10, 100, 200, 12),
		posBlock("first line", 10, 10, 200, 12),
	}
	tree := NewReconstructor().Reconstruct(blocks)
	got := tree.PlainText()
	want := "first line\n\nsecond line"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestPositionedTableDetection(t *testing.T) {
	blocks := []model.ContentBlock{
		posBlock("Name", 0, 0, 60, 12),
		posBlock("Age", 100, 0, 40, 12),
		posBlock("Ada", 0, 30, 60, 12),
		posBlock("36", 100, 30, 40, 12),
		posBlock("Grace", 0, 60, 60, 12),
		posBlock("45", 100, 60, 40, 12),
	}
	tree := NewReconstructor().Reconstruct(blocks)
	if len(tree.Nodes) != 1 {
		t.Fatalf("expected 1 table node, got %d nodes", len(tree.Nodes))
	}
	table, ok := tree.Nodes[0].(*model.Table)
	if !ok {
		t.Fatalf("expected table, got %T", tree.Nodes[0])
	}
	want := [][]string{{"Name", "Age"}, {"Ada", "36"}, {"Grace", "45"}}
	if !reflect.DeepEqual(table.Rows, want) {
		t.Errorf("expected rows %v, got %v", want, table.Rows)
	}
}

func TestPositionedTableDegradesToParagraphs(t *testing.T) {
	// Second row's right cell does not align with any recurring column.
	blocks := []model.ContentBlock{
		posBlock("Name", 0, 0, 40, 12),
		posBlock("Age", 100, 0, 40, 12),
		posBlock("Bob", 0, 30, 40, 12),
		posBlock("42", 50, 30, 40, 12),
	}
	tree := NewReconstructor().Reconstruct(blocks)
	if len(tree.Nodes) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d nodes", len(tree.Nodes))
	}
	for i, n := range tree.Nodes {
		if _, ok := n.(*model.Paragraph); !ok {
			t.Errorf("node %d: expected paragraph, got %T", i, n)
		}
	}
	if got := tree.PlainText(); got != "Name Age\n\nBob 42" {
		t.Errorf("unexpected degraded text: %q", got)
	}
}

func TestPositionedHeadingFromFontSize(t *testing.T) {
	tests := []struct {
		size      float64
		wantLevel int // 0 means paragraph
	}{
		{18, 1},
		{14, 2},
		{12.5, 3},
		{10.5, 0},
	}

	for _, tt := range tests {
		title := posBlock("Section Title", 10, 0, 200, 20)
		title.FontSize = tt.size
		body1 := posBlock("Plenty of ordinary body text follows the title line.", 10, 40, 400, 12)
		body1.FontSize = 10
		body2 := posBlock("More ordinary body text to anchor the baseline.", 10, 70, 400, 12)
		body2.FontSize = 10

		tree := NewReconstructor().Reconstruct([]model.ContentBlock{title, body1, body2})
		if len(tree.Nodes) != 3 {
			t.Fatalf("size %v: expected 3 nodes, got %d", tt.size, len(tree.Nodes))
		}
		if tt.wantLevel == 0 {
			if _, ok := tree.Nodes[0].(*model.Paragraph); !ok {
				t.Errorf("size %v: expected paragraph, got %T", tt.size, tree.Nodes[0])
			}
			continue
		}
		h, ok := tree.Nodes[0].(*model.Heading)
		if !ok {
			t.Fatalf("size %v: expected heading, got %T", tt.size, tree.Nodes[0])
		}
		if h.Level != tt.wantLevel {
			t.Errorf("size %v: expected level %d, got %d", tt.size, tt.wantLevel, h.Level)
		}
	}
}

func TestPositionedHeadingFromLength(t *testing.T) {
	blocks := []model.ContentBlock{
		posBlock("Overview", 10, 0, 100, 12),
		posBlock("A considerably longer run of prose that follows the short standalone line.", 10, 40, 400, 12),
	}
	tree := NewReconstructor().Reconstruct(blocks)
	h, ok := tree.Nodes[0].(*model.Heading)
	if !ok {
		t.Fatalf("expected heading, got %T", tree.Nodes[0])
	}
	if h.Level != DefaultReconstructConfig().DefaultHeadingLevel {
		t.Errorf("expected default level, got %d", h.Level)
	}
}

func TestPositionedShortLastLineStaysParagraph(t *testing.T) {
	blocks := []model.ContentBlock{
		posBlock("A longer run of prose that comes first in the document flow.", 10, 0, 400, 12),
		posBlock("Short tail", 10, 40, 100, 12),
	}
	tree := NewReconstructor().Reconstruct(blocks)
	if _, ok := tree.Nodes[1].(*model.Paragraph); !ok {
		t.Errorf("expected trailing paragraph, got %T", tree.Nodes[1])
	}
}

func TestPositionedImageInMixedBand(t *testing.T) {
	// A figure sitting beside text in the same band must still surface as
	// a placeholder, and its identifier must not leak into the prose.
	blocks := []model.ContentBlock{
		posBlock("Caption text beside the figure.", 10, 10, 200, 12),
		{
			Kind:  model.KindImageRef,
			Text:  "inline-figure",
			Page:  1,
			BBox:  model.NewBBox(250, 8, 120, 16),
		},
		posBlock("A following paragraph with plenty of additional words.", 10, 60, 400, 12),
	}
	tree := NewReconstructor().Reconstruct(blocks)
	if len(tree.Nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(tree.Nodes))
	}
	p, ok := tree.Nodes[0].(*model.Paragraph)
	if !ok {
		t.Fatalf("expected paragraph first, got %T", tree.Nodes[0])
	}
	if p.Text != "Caption text beside the figure." {
		t.Errorf("image id leaked into prose: %q", p.Text)
	}
	ph, ok := tree.Nodes[1].(*model.ImagePlaceholder)
	if !ok {
		t.Fatalf("expected image placeholder second, got %T", tree.Nodes[1])
	}
	if ph.ID != "inline-figure" {
		t.Errorf("expected placeholder id %q, got %q", "inline-figure", ph.ID)
	}
}

func TestPositionedImagePlaceholder(t *testing.T) {
	img := model.ContentBlock{
		Kind:  model.KindImageRef,
		RefID: "page1-img2",
		Page:  1,
		BBox:  model.NewBBox(10, 40, 100, 80),
	}
	blocks := []model.ContentBlock{
		posBlock("Text above the figure.", 10, 0, 400, 12),
		img,
		posBlock("Text below the figure.", 10, 160, 400, 12),
	}
	tree := NewReconstructor().Reconstruct(blocks)
	if len(tree.Nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(tree.Nodes))
	}
	ph, ok := tree.Nodes[1].(*model.ImagePlaceholder)
	if !ok {
		t.Fatalf("expected image placeholder, got %T", tree.Nodes[1])
	}
	if ph.ID != "page1-img2" {
		t.Errorf("expected id page1-img2, got %q", ph.ID)
	}
}

func TestPositionedPagesInOrder(t *testing.T) {
	p2 := posBlock("page two text", 10, 10, 200, 12)
	p2.Page = 2
	p1 := posBlock("page one text", 10, 10, 200, 12)
	p1.Page = 1

	tree := NewReconstructor().Reconstruct([]model.ContentBlock{p2, p1})
	got := tree.PlainText()
	want := "page one text\n\npage two text"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestPositionedMixedWithStreamBlocks(t *testing.T) {
	loose := model.ContentBlock{Kind: model.KindParagraph, Text: "loose text", Page: 1, Seq: 5}
	blocks := []model.ContentBlock{
		loose,
		posBlock("positioned text", 10, 10, 200, 12),
	}
	tree := NewReconstructor().Reconstruct(blocks)
	got := tree.PlainText()
	want := "positioned text\n\nloose text"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
