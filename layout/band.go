package layout

import (
	"sort"
	"strings"

	"github.com/tsawler/docmark/model"
)

// band is a horizontal strip of positioned blocks that share a vertical
// range — one visual line or table row.
type band struct {
	Blocks []model.ContentBlock
	BBox   model.BBox
	Page   int
}

// text joins the band's block texts left to right. Image references carry
// identifiers, not prose, and are excluded.
func (b *band) text() string {
	parts := make([]string, 0, len(b.Blocks))
	for _, blk := range b.Blocks {
		if blk.Kind == model.KindImageRef {
			continue
		}
		t := strings.TrimSpace(blk.Text)
		if t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// maxFontSize returns the largest font-size signal in the band, or zero when
// no block carries one.
func (b *band) maxFontSize() float64 {
	max := 0.0
	for _, blk := range b.Blocks {
		if blk.FontSize > max {
			max = blk.FontSize
		}
	}
	return max
}

// isImage reports whether the band consists solely of image references.
func (b *band) isImage() bool {
	for _, blk := range b.Blocks {
		if blk.Kind != model.KindImageRef {
			return false
		}
	}
	return len(b.Blocks) > 0
}

// groupIntoBands resolves a page's positioned blocks into reading order:
// blocks whose vertical ranges overlap beyond the configured threshold share
// a band; bands are ordered top to bottom, blocks within a band left to
// right. Input order is irrelevant.
func groupIntoBands(blocks []model.ContentBlock, overlapRatio float64) []*band {
	if len(blocks) == 0 {
		return nil
	}

	sorted := make([]model.ContentBlock, len(blocks))
	copy(sorted, blocks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].BBox.Top() < sorted[j].BBox.Top()
	})

	var bands []*band
	for _, blk := range sorted {
		joined := false
		// Only the most recent band can still overlap, since blocks arrive
		// in ascending top order, but sparse OCR boxes make that assumption
		// unsafe; check all open bands.
		for i := len(bands) - 1; i >= 0; i-- {
			if bands[i].BBox.VerticalOverlapRatio(blk.BBox) >= overlapRatio {
				bands[i].Blocks = append(bands[i].Blocks, blk)
				bands[i].BBox = bands[i].BBox.Union(blk.BBox)
				joined = true
				break
			}
		}
		if !joined {
			bands = append(bands, &band{
				Blocks: []model.ContentBlock{blk},
				BBox:   blk.BBox,
				Page:   blk.Page,
			})
		}
	}

	sort.SliceStable(bands, func(i, j int) bool {
		return bands[i].BBox.Top() < bands[j].BBox.Top()
	})
	for _, b := range bands {
		sort.SliceStable(b.Blocks, func(i, j int) bool {
			return b.Blocks[i].BBox.Left() < b.Blocks[j].BBox.Left()
		})
	}

	return bands
}
