package markdown

import (
	"fmt"
	"strings"

	"github.com/tsawler/docmark/model"
)

// RenderConfig holds configuration options for Markdown rendering.
type RenderConfig struct {
	// Bullet is the marker used for unordered list items.
	Bullet string

	// Indent is the per-depth indentation prefix for nested list items.
	Indent string
}

// DefaultRenderConfig returns sensible defaults for rendering.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Bullet: "-",
		Indent: "  ",
	}
}

// Renderer converts a document tree to Markdown text.
type Renderer struct {
	config RenderConfig
}

// NewRenderer creates a renderer with default configuration.
func NewRenderer() *Renderer {
	return &Renderer{config: DefaultRenderConfig()}
}

// NewRendererWithConfig creates a renderer with custom configuration.
func NewRendererWithConfig(config RenderConfig) *Renderer {
	if config.Bullet == "" {
		config.Bullet = "-"
	}
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// Render produces the Markdown representation of the tree. Identical trees
// render to byte-identical strings. An empty tree renders to an empty string.
func (r *Renderer) Render(tree *model.DocumentTree) string {
	if tree.IsEmpty() {
		return ""
	}

	var blocks []string
	for _, n := range tree.Nodes {
		if block := r.renderNode(n); block != "" {
			blocks = append(blocks, block)
		}
	}
	if len(blocks) == 0 {
		return ""
	}
	return strings.Join(blocks, "\n\n") + "\n"
}

func (r *Renderer) renderNode(n model.Node) string {
	switch node := n.(type) {
	case *model.Heading:
		text := strings.TrimSpace(node.Text)
		if text == "" {
			return ""
		}
		level := node.Level
		if level < 1 {
			level = 1
		}
		if level > 6 {
			level = 6
		}
		return strings.Repeat("#", level) + " " + escapeInline(text)

	case *model.Paragraph:
		text := strings.TrimSpace(node.Text)
		if text == "" {
			return ""
		}
		return escapeInline(text)

	case *model.ListGroup:
		return r.renderList(node)

	case *model.Table:
		return r.renderTable(node)

	case *model.ImagePlaceholder:
		if node.ID == "" {
			return ""
		}
		return "![image](" + node.ID + ")"

	default:
		return ""
	}
}

// renderList emits one line per item, indented by recorded depth. Ordered
// lists number sequentially within each depth, restarting whenever the list
// returns to a shallower depth.
func (r *Renderer) renderList(list *model.ListGroup) string {
	if len(list.Items) == 0 {
		return ""
	}

	var lines []string
	counters := make(map[int]int)
	prevDepth := -1
	for _, item := range list.Items {
		depth := item.Depth
		if depth < 0 {
			depth = 0
		}
		if depth < prevDepth {
			for d := range counters {
				if d > depth {
					delete(counters, d)
				}
			}
		}
		prevDepth = depth

		text := strings.TrimSpace(item.Text)
		if text == "" {
			continue
		}

		prefix := strings.Repeat(r.config.Indent, depth)
		if list.Ordered {
			counters[depth]++
			lines = append(lines, fmt.Sprintf("%s%d. %s", prefix, counters[depth], escapeInline(text)))
		} else {
			lines = append(lines, prefix+r.config.Bullet+" "+escapeInline(text))
		}
	}
	return strings.Join(lines, "\n")
}

// renderTable emits pipe-table rows padded to the widest row. The header
// separator appears only when the first row reads as a header: every cell
// non-empty and at least one more row below it.
func (r *Renderer) renderTable(table *model.Table) string {
	cols := table.ColCount()
	if cols == 0 || table.RowCount() == 0 {
		return ""
	}

	var lines []string
	for i, row := range table.Rows {
		cells := make([]string, cols)
		for c := 0; c < cols; c++ {
			if c < len(row) {
				cells[c] = escapeCell(row[c])
			}
		}
		lines = append(lines, "| "+strings.Join(cells, " | ")+" |")

		if i == 0 && tableHasHeader(table) {
			seps := make([]string, cols)
			for c := range seps {
				seps[c] = "---"
			}
			lines = append(lines, "| "+strings.Join(seps, " | ")+" |")
		}
	}
	return strings.Join(lines, "\n")
}

// tableHasHeader applies the header heuristic: first row fully populated and
// at least two rows total.
func tableHasHeader(table *model.Table) bool {
	if table.RowCount() < 2 {
		return false
	}
	first := table.Rows[0]
	if len(first) == 0 {
		return false
	}
	for _, cell := range first {
		if strings.TrimSpace(cell) == "" {
			return false
		}
	}
	return len(first) == table.ColCount()
}

// escapeInline neutralizes characters that would change block structure when
// they appear at the start of a line.
func escapeInline(text string) string {
	text = strings.ReplaceAll(text, "\r\n", " ")
	text = strings.ReplaceAll(text, "\n", " ")
	return escapeLeadingMarker(text)
}

// escapeLeadingMarker backslash-escapes text that would otherwise re-parse
// as a heading, blockquote, or list marker at the start of a line.
func escapeLeadingMarker(text string) string {
	if text == "" {
		return text
	}
	switch text[0] {
	case '#', '>':
		return "\\" + text
	case '-', '*', '+':
		if len(text) == 1 || text[1] == ' ' {
			return "\\" + text
		}
		return text
	}
	i := 0
	for i < len(text) && text[i] >= '0' && text[i] <= '9' {
		i++
	}
	if i > 0 && i < len(text) && (text[i] == '.' || text[i] == ')') {
		if i+1 == len(text) || text[i+1] == ' ' {
			return text[:i] + "\\" + text[i:]
		}
	}
	return text
}

// escapeCell additionally escapes pipes so cell boundaries survive.
func escapeCell(text string) string {
	text = escapeInline(strings.TrimSpace(text))
	return strings.ReplaceAll(text, "|", "\\|")
}
