package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Strip converts Markdown to plain text by parsing it and collecting the
// text content of each block-level node, one block per double-newline group.
// Inline markup is dropped; heading and list structure collapses to plain
// lines.
func Strip(source string) string {
	src := []byte(source)
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	var blocks []string
	collectBlocks(doc, src, &blocks)
	return strings.Join(blocks, "\n\n")
}

func collectBlocks(node ast.Node, source []byte, blocks *[]string) {
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch n := child.(type) {
		case *ast.Heading:
			if t := blockText(n, source); t != "" {
				*blocks = append(*blocks, t)
			}
		case *ast.Paragraph, *ast.TextBlock:
			if t := blockText(child, source); t != "" {
				*blocks = append(*blocks, t)
			}
		case *ast.List:
			var items []string
			for item := n.FirstChild(); item != nil; item = item.NextSibling() {
				if t := blockText(item, source); t != "" {
					items = append(items, t)
				}
			}
			if len(items) > 0 {
				*blocks = append(*blocks, strings.Join(items, "\n"))
			}
		case *ast.Blockquote:
			collectBlocks(n, source, blocks)
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			if t := codeText(child, source); t != "" {
				*blocks = append(*blocks, t)
			}
		default:
			if child.HasChildren() {
				collectBlocks(child, source, blocks)
			}
		}
	}
}

// blockText flattens a block node and its descendants into a single line.
func blockText(node ast.Node, source []byte) string {
	var sb strings.Builder
	appendText(node, source, &sb)
	return strings.TrimSpace(sb.String())
}

func appendText(node ast.Node, source []byte, sb *strings.Builder) {
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch t := child.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(t.Value)
		default:
			appendText(child, source, sb)
		}
	}
}

func codeText(node ast.Node, source []byte) string {
	var sb strings.Builder
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(source))
	}
	return strings.TrimSpace(sb.String())
}
