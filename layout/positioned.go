package layout

import (
	"sort"
	"strings"

	"github.com/tsawler/docmark/model"
)

// reconstructPositioned rebuilds reading order for spatially positioned
// blocks page by page: group into vertical bands, lift aligned band runs
// into tables, infer headings from font and length signals, and emit the
// rest as prose. Blocks without coordinates in a mixed input are folded in
// stream order after the positioned content of their page.
func (r *Reconstructor) reconstructPositioned(blocks []model.ContentBlock) *model.DocumentTree {
	positioned := make(map[int][]model.ContentBlock)
	loose := make(map[int][]model.ContentBlock)
	for _, b := range blocks {
		if b.Positioned() {
			positioned[b.Page] = append(positioned[b.Page], b)
		} else {
			loose[b.Page] = append(loose[b.Page], b)
		}
	}

	pages := make([]int, 0, len(positioned)+len(loose))
	seen := make(map[int]bool)
	for p := range positioned {
		pages = append(pages, p)
		seen[p] = true
	}
	for p := range loose {
		if !seen[p] {
			pages = append(pages, p)
		}
	}
	sort.Ints(pages)

	tree := &model.DocumentTree{}
	levels := newLevelStack()

	for _, page := range pages {
		r.appendPage(tree, levels, positioned[page])
		r.foldStream(tree, levels, loose[page])
	}

	return tree
}

// appendPage emits one page's bands into the tree.
func (r *Reconstructor) appendPage(tree *model.DocumentTree, levels *levelStack, blocks []model.ContentBlock) {
	if len(blocks) == 0 {
		return
	}

	bands := groupIntoBands(blocks, r.config.BandOverlapRatio)
	body := bodyFontSize(bands)
	runs := r.detectTableRuns(bands)

	runIdx := 0
	for i := 0; i < len(bands); {
		if runIdx < len(runs) && runs[runIdx].Start == i {
			run := runs[runIdx]
			if table := r.buildTableFromRun(bands, run); table != nil && tableHasText(table) {
				tree.Nodes = append(tree.Nodes, table)
			}
			i = run.End
			runIdx++
			continue
		}

		b := bands[i]
		switch {
		case b.isImage():
			for _, blk := range b.Blocks {
				id := blk.RefID
				if id == "" {
					id = blk.Text
				}
				tree.Nodes = append(tree.Nodes, &model.ImagePlaceholder{ID: id})
			}

		default:
			lvl := 0
			if len(b.Blocks) == 1 && b.Blocks[0].Kind == model.KindHeading {
				// Block already tagged upstream; only the level is inferred.
				lvl = b.Blocks[0].Level
				if lvl == 0 {
					lvl = r.config.DefaultHeadingLevel
				}
			} else {
				lvl = r.inferHeadingLevel(bands, i, body)
			}
			text := strings.TrimSpace(b.text())
			switch {
			case lvl > 0 && text != "":
				tree.Nodes = append(tree.Nodes, &model.Heading{
					Level: levels.resolve(lvl),
					Text:  text,
				})
			case text != "":
				tree.Nodes = append(tree.Nodes, &model.Paragraph{Text: text})
			}
			// Image blocks sharing a band with text keep their position as
			// placeholders after the band's prose.
			for _, blk := range b.Blocks {
				if blk.Kind != model.KindImageRef {
					continue
				}
				id := blk.RefID
				if id == "" {
					id = blk.Text
				}
				tree.Nodes = append(tree.Nodes, &model.ImagePlaceholder{ID: id})
			}
		}
		i++
	}
}

// tableHasText reports whether any cell holds text.
func tableHasText(t *model.Table) bool {
	for _, row := range t.Rows {
		for _, cell := range row {
			if cell != "" {
				return true
			}
		}
	}
	return false
}
