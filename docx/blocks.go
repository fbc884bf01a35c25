package docx

import (
	"strings"
	"unicode/utf8"

	"github.com/tsawler/docmark/model"
)

// Blocks returns the document content as ordered blocks: headings, list
// items, table cells, image references and paragraphs, in the order they
// appear in the body.
func (r *Reader) Blocks() ([]model.ContentBlock, error) {
	if r.document == nil || r.document.Body == nil {
		return nil, nil
	}

	var blocks []model.ContentBlock
	for _, el := range r.document.Body.Elements {
		switch {
		case el.Paragraph != nil:
			blocks = append(blocks, r.paragraphBlocks(*el.Paragraph)...)
		case el.Table != nil:
			blocks = append(blocks, r.tableBlocks(*el.Table)...)
		}
	}

	blocks = mergeShortFragments(blocks, r.config.MergeFragmentThreshold)
	for i := range blocks {
		blocks[i].Seq = i
		blocks[i].Page = 1
	}
	return blocks, nil
}

// paragraphBlocks converts one paragraph into zero or more blocks: a text
// block classified by style and numbering, plus one image block per
// embedded drawing.
func (r *Reader) paragraphBlocks(p paragraphXML) []model.ContentBlock {
	var blocks []model.ContentBlock

	text := r.paragraphText(p)
	if text != "" {
		block := model.ContentBlock{Kind: model.KindParagraph, Text: text}

		numID := p.Properties.NumPr.NumID.Val
		if r.numbering != nil && r.numbering.IsListParagraph(numID) {
			level := parseListLevel(p.Properties.NumPr.ILvl.Val)
			block.Kind = model.KindListItem
			block.Level = level
			block.Ordered = r.numbering.Ordered(numID, level)
		} else if isHeading, level := r.headingLevel(p); isHeading {
			block.Kind = model.KindHeading
			block.Level = level
		}
		blocks = append(blocks, block)
	}

	for _, run := range p.Runs {
		for _, d := range run.Drawing {
			if id := r.imageID(d); id != "" {
				blocks = append(blocks, model.ContentBlock{
					Kind:  model.KindImageRef,
					RefID: id,
				})
			}
		}
	}
	return blocks
}

// paragraphText flattens the paragraph's runs into one string. Hyperlink
// runs were already folded into the run sequence in source order.
func (r *Reader) paragraphText(p paragraphXML) string {
	var sb strings.Builder
	for _, run := range p.Runs {
		sb.WriteString(runText(run))
	}
	return strings.TrimSpace(sb.String())
}

// runText extracts text from a run element.
func runText(run runXML) string {
	var parts []string
	for _, t := range run.Text {
		parts = append(parts, t.Value)
	}
	for range run.Tabs {
		parts = append(parts, "\t")
	}
	for range run.Breaks {
		parts = append(parts, " ")
	}
	return strings.Join(parts, "")
}

// imageID resolves a drawing to a stable identifier: the media file name
// from the relationship when available, otherwise the drawing's name.
func (r *Reader) imageID(d drawingXML) string {
	pic := d.Inline
	if pic == nil {
		pic = d.Anchor
	}
	if pic == nil {
		return ""
	}
	if pic.Blip != nil {
		if target := r.resolveImageTarget(pic.Blip.Embed); target != "" {
			return target
		}
	}
	if pic.DocPr.Name != "" {
		return pic.DocPr.Name
	}
	return pic.DocPr.ID
}

// headingLevel classifies a paragraph as a heading from its style or
// outline level.
func (r *Reader) headingLevel(p paragraphXML) (bool, int) {
	if lvl := p.Properties.OutlineLvl.Val; lvl != "" {
		if level := parseOutlineLevel(lvl); level >= 0 {
			return true, level + 1
		}
	}

	styleID := p.Properties.Style.Val
	if styleID == "" {
		return false, 0
	}
	return r.isHeadingStyle(styleID)
}

// isHeadingStyle determines if a style ID represents a heading.
func (r *Reader) isHeadingStyle(styleID string) (bool, int) {
	headingMap := map[string]int{
		"heading1": 1, "heading2": 2, "heading3": 3,
		"heading4": 4, "heading5": 5, "heading6": 6,
		"heading7": 7, "heading8": 8, "heading9": 9,
		"title": 1,
	}
	if level, ok := headingMap[strings.ToLower(styleID)]; ok {
		return true, level
	}

	if r.styles != nil {
		for _, style := range r.styles.Styles {
			if !strings.EqualFold(style.StyleID, styleID) {
				continue
			}
			if style.PPr.OutlineLvl.Val != "" {
				// OutlineLvl is 0-based in OOXML.
				if level := parseOutlineLevel(style.PPr.OutlineLvl.Val); level >= 0 {
					return true, level + 1
				}
			}
			if strings.Contains(strings.ToLower(style.Name.Val), "heading") {
				return true, 1
			}
		}
	}
	return false, 0
}

// parseOutlineLevel parses an outline level string to an integer.
func parseOutlineLevel(s string) int {
	level := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return -1
		}
		level = level*10 + int(c-'0')
	}
	if level >= 0 && level <= 8 {
		return level
	}
	return -1
}

// tableBlocks converts a table into one cell block per grid position.
// Horizontally merged cells occupy their full span with the text on the
// first column; vertically merged continuation cells are skipped.
func (r *Reader) tableBlocks(tbl tableXML) []model.ContentBlock {
	var blocks []model.ContentBlock
	for rowIdx, row := range tbl.Rows {
		col := 0
		for _, cell := range row.Cells {
			span := 1
			if s := cell.Properties.GridSpan.Val; s != "" {
				if parsed := parseListLevel(s); parsed > 1 {
					span = parsed
				}
			}

			// A vMerge without "restart" continues the cell above.
			if cell.Properties.VMerge.XMLName.Local != "" && cell.Properties.VMerge.Val != "restart" {
				col += span
				continue
			}

			blocks = append(blocks, model.ContentBlock{
				Kind: model.KindTableCell,
				Text: r.cellText(cell),
				Row:  rowIdx,
				Col:  col,
			})
			col += span
		}
	}
	return blocks
}

// cellText joins all paragraph text inside a cell with spaces.
func (r *Reader) cellText(cell tableCellXML) string {
	var parts []string
	for _, p := range cell.Paragraphs {
		if t := r.paragraphText(p); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// mergeShortFragments folds plain paragraphs shorter than the threshold
// into the following paragraph. Only paragraph blocks merge; headings,
// lists, tables and images keep their position.
func mergeShortFragments(blocks []model.ContentBlock, threshold int) []model.ContentBlock {
	if threshold <= 0 || len(blocks) < 2 {
		return blocks
	}

	out := make([]model.ContentBlock, 0, len(blocks))
	for i := 0; i < len(blocks); i++ {
		b := blocks[i]
		if b.Kind == model.KindParagraph &&
			utf8.RuneCountInString(b.Text) < threshold &&
			i+1 < len(blocks) &&
			blocks[i+1].Kind == model.KindParagraph {
			blocks[i+1].Text = b.Text + " " + blocks[i+1].Text
			continue
		}
		out = append(out, b)
	}
	return out
}
