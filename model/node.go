package model

import "strings"

// NodeKind represents the type of a document tree node.
type NodeKind int

const (
	NodeHeading NodeKind = iota
	NodeParagraph
	NodeListGroup
	NodeTable
	NodeImagePlaceholder
)

// String returns a string representation of the node kind.
func (k NodeKind) String() string {
	switch k {
	case NodeHeading:
		return "heading"
	case NodeParagraph:
		return "paragraph"
	case NodeListGroup:
		return "list"
	case NodeTable:
		return "table"
	case NodeImagePlaceholder:
		return "image"
	default:
		return "unknown"
	}
}

// Node is the interface implemented by all document tree nodes.
type Node interface {
	NodeKind() NodeKind

	// PlainText returns the node's text content without any markup.
	PlainText() string
}

// Heading is a section heading with a level between 1 and 6.
type Heading struct {
	Level int
	Text  string
}

func (h *Heading) NodeKind() NodeKind { return NodeHeading }
func (h *Heading) PlainText() string  { return h.Text }

// Paragraph is a run of body text.
type Paragraph struct {
	Text string
}

func (p *Paragraph) NodeKind() NodeKind { return NodeParagraph }
func (p *Paragraph) PlainText() string  { return p.Text }

// ListItem is a single entry of a ListGroup.
type ListItem struct {
	Text  string
	Depth int // 0-based nesting depth
}

// ListGroup is a run of consecutive list items.
type ListGroup struct {
	Items   []ListItem
	Ordered bool
}

func (l *ListGroup) NodeKind() NodeKind { return NodeListGroup }
func (l *ListGroup) PlainText() string {
	var sb strings.Builder
	for i, item := range l.Items {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(item.Text)
	}
	return sb.String()
}

// Table holds cell text organized in rows and columns. Rows may be ragged
// when the source table was; the renderer pads to the widest row.
type Table struct {
	Rows [][]string
}

func (t *Table) NodeKind() NodeKind { return NodeTable }
func (t *Table) PlainText() string {
	var sb strings.Builder
	for i, row := range t.Rows {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(strings.Join(row, "\t"))
	}
	return sb.String()
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColCount returns the number of columns in the widest row.
func (t *Table) ColCount() int {
	max := 0
	for _, row := range t.Rows {
		if len(row) > max {
			max = len(row)
		}
	}
	return max
}

// ImagePlaceholder marks the position of an image whose bytes may or may not
// be available. The identifier always persists so no content position is lost.
type ImagePlaceholder struct {
	ID string
}

func (i *ImagePlaceholder) NodeKind() NodeKind { return NodeImagePlaceholder }
func (i *ImagePlaceholder) PlainText() string  { return "" }

// DocumentTree is the ordered structural representation of one converted
// document. It is built exactly once from a ContentBlock sequence and owned
// by the conversion run that built it; callers must not mutate it afterward.
//
// Invariant: heading levels are monotonic-consistent. A node's level may
// increase by any amount relative to the previous heading, but may decrease
// only to a level that a preceding heading already opened. The layout package
// enforces this during construction.
type DocumentTree struct {
	Nodes []Node
}

// IsEmpty reports whether the tree has no nodes.
func (t *DocumentTree) IsEmpty() bool {
	return t == nil || len(t.Nodes) == 0
}

// HeadingLevels returns the level of every heading node in document order.
func (t *DocumentTree) HeadingLevels() []int {
	if t == nil {
		return nil
	}
	var levels []int
	for _, n := range t.Nodes {
		if h, ok := n.(*Heading); ok {
			levels = append(levels, h.Level)
		}
	}
	return levels
}

// PlainText concatenates the plain text of all nodes, one node per line
// group, in document order.
func (t *DocumentTree) PlainText() string {
	if t.IsEmpty() {
		return ""
	}
	var sb strings.Builder
	for _, n := range t.Nodes {
		text := n.PlainText()
		if text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(text)
	}
	return sb.String()
}
