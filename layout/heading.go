package layout

import (
	"sort"
	"strings"
)

// bodyFontSize estimates the dominant body-text size as the median of all
// positive font-size signals. Returns zero when no block carries a size.
func bodyFontSize(bands []*band) float64 {
	var sizes []float64
	for _, b := range bands {
		for _, blk := range b.Blocks {
			if blk.FontSize > 0 {
				sizes = append(sizes, blk.FontSize)
			}
		}
	}
	if len(sizes) == 0 {
		return 0
	}
	sort.Float64s(sizes)
	mid := len(sizes) / 2
	if len(sizes)%2 == 0 {
		return (sizes[mid-1] + sizes[mid]) / 2
	}
	return sizes[mid]
}

// headingLevelForSize maps a font size to a heading level relative to the
// body baseline. Returns zero when the size does not clear the heading
// ratio.
func (r *Reconstructor) headingLevelForSize(size, body float64) int {
	if body <= 0 || size <= 0 {
		return 0
	}
	ratio := size / body
	switch {
	case ratio >= 1.6:
		return 1
	case ratio >= 1.35:
		return 2
	case ratio >= r.config.HeadingSizeRatio:
		return 3
	default:
		return 0
	}
}

// inferHeadingLevel decides whether band i reads as a heading and at what
// level. Font size relative to the body baseline is the primary signal;
// without one, a short standalone line followed by larger prose is promoted
// to the default level.
func (r *Reconstructor) inferHeadingLevel(bands []*band, i int, body float64) int {
	b := bands[i]
	if len(b.Blocks) != 1 || b.isImage() {
		return 0
	}
	if lvl := r.headingLevelForSize(b.maxFontSize(), body); lvl > 0 {
		return lvl
	}
	if b.maxFontSize() > 0 {
		// A measured size that did not clear the ratio is body text.
		return 0
	}

	text := b.text()
	if text == "" || len(strings.Fields(text)) > r.config.HeadingMaxTokens {
		return 0
	}
	if i+1 >= len(bands) {
		return 0
	}
	next := bands[i+1]
	if next.isImage() {
		return 0
	}
	if len(strings.Fields(next.text())) <= len(strings.Fields(text)) {
		return 0
	}
	return r.config.DefaultHeadingLevel
}
