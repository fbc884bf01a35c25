package layout

import (
	"sort"
	"strings"

	"github.com/tsawler/docmark/model"
)

// ReconstructConfig holds configuration for structure reconstruction.
type ReconstructConfig struct {
	// BandOverlapRatio is the minimum vertical overlap (as a fraction of the
	// smaller block height) for two positioned blocks to share a band.
	// Default: 0.5
	BandOverlapRatio float64

	// ColumnAlignTolerance is the maximum horizontal distance, in source
	// units, between block left edges considered aligned to the same column.
	// Default: 12
	ColumnAlignTolerance float64

	// MinTableBands is the minimum number of consecutive aligned bands
	// required to form a table. Default: 2
	MinTableBands int

	// MinTableColumns is the minimum number of recurring column clusters
	// required to form a table. Default: 2
	MinTableColumns int

	// HeadingSizeRatio is the factor by which a block's font size must exceed
	// the body-text baseline to be promoted to a heading. Default: 1.2
	HeadingSizeRatio float64

	// HeadingMaxTokens is the maximum token count for the length-based
	// heading heuristic used when no font-size signal exists. Default: 12
	HeadingMaxTokens int

	// DefaultHeadingLevel is assigned when no size bucket applies. Default: 2
	DefaultHeadingLevel int
}

// DefaultReconstructConfig returns sensible default configuration.
func DefaultReconstructConfig() ReconstructConfig {
	return ReconstructConfig{
		BandOverlapRatio:     0.5,
		ColumnAlignTolerance: 12.0,
		MinTableBands:        2,
		MinTableColumns:      2,
		HeadingSizeRatio:     1.2,
		HeadingMaxTokens:     12,
		DefaultHeadingLevel:  2,
	}
}

// Reconstructor builds a document tree from a content block sequence.
type Reconstructor struct {
	config ReconstructConfig
}

// NewReconstructor creates a reconstructor with default configuration.
func NewReconstructor() *Reconstructor {
	return &Reconstructor{config: DefaultReconstructConfig()}
}

// NewReconstructorWithConfig creates a reconstructor with custom configuration.
func NewReconstructorWithConfig(config ReconstructConfig) *Reconstructor {
	if config.BandOverlapRatio <= 0 {
		config.BandOverlapRatio = 0.5
	}
	if config.ColumnAlignTolerance <= 0 {
		config.ColumnAlignTolerance = 12.0
	}
	if config.MinTableBands < 2 {
		config.MinTableBands = 2
	}
	if config.MinTableColumns < 2 {
		config.MinTableColumns = 2
	}
	if config.HeadingSizeRatio <= 1 {
		config.HeadingSizeRatio = 1.2
	}
	if config.HeadingMaxTokens <= 0 {
		config.HeadingMaxTokens = 12
	}
	if config.DefaultHeadingLevel < 1 || config.DefaultHeadingLevel > 6 {
		config.DefaultHeadingLevel = 2
	}
	return &Reconstructor{config: config}
}

// Reconstruct converts an ordered block sequence into a document tree.
// An empty sequence yields an empty tree.
func (r *Reconstructor) Reconstruct(blocks []model.ContentBlock) *model.DocumentTree {
	if len(blocks) == 0 {
		return &model.DocumentTree{}
	}

	positioned := false
	for _, b := range blocks {
		if b.Positioned() {
			positioned = true
			break
		}
	}

	if positioned {
		return r.reconstructPositioned(blocks)
	}
	return r.reconstructStream(blocks)
}

// reconstructStream folds stream-ordered blocks directly into a tree.
func (r *Reconstructor) reconstructStream(blocks []model.ContentBlock) *model.DocumentTree {
	tree := &model.DocumentTree{}
	r.foldStream(tree, newLevelStack(), blocks)
	return tree
}

// foldStream appends stream-ordered blocks to the tree, sorting by sequence
// number first. The caller owns the level stack so positioned and stream
// content in the same document share heading continuity.
func (r *Reconstructor) foldStream(tree *model.DocumentTree, levels *levelStack, blocks []model.ContentBlock) {
	if len(blocks) == 0 {
		return
	}
	ordered := make([]model.ContentBlock, len(blocks))
	copy(ordered, blocks)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Seq < ordered[j].Seq
	})

	var pendingList []model.ListItem
	pendingOrdered := false
	var pendingCells []model.ContentBlock

	flushList := func() {
		if len(pendingList) == 0 {
			return
		}
		tree.Nodes = append(tree.Nodes, &model.ListGroup{
			Items:   pendingList,
			Ordered: pendingOrdered,
		})
		pendingList = nil
	}
	flushTable := func() {
		if len(pendingCells) == 0 {
			return
		}
		if table := buildTableFromCells(pendingCells); table != nil {
			tree.Nodes = append(tree.Nodes, table)
		}
		pendingCells = nil
	}

	for _, b := range ordered {
		switch b.Kind {
		case model.KindListItem:
			flushTable()
			if len(pendingList) > 0 && pendingOrdered != b.Ordered {
				flushList()
			}
			pendingOrdered = b.Ordered
			pendingList = append(pendingList, model.ListItem{
				Text:  b.Text,
				Depth: b.Level,
			})

		case model.KindTableCell:
			flushList()
			pendingCells = append(pendingCells, b)

		case model.KindHeading:
			flushList()
			flushTable()
			text := strings.TrimSpace(b.Text)
			if text == "" {
				continue
			}
			level := b.Level
			if level == 0 {
				level = r.config.DefaultHeadingLevel
			}
			tree.Nodes = append(tree.Nodes, &model.Heading{
				Level: levels.resolve(level),
				Text:  text,
			})

		case model.KindImageRef:
			flushList()
			flushTable()
			id := b.RefID
			if id == "" {
				id = b.Text
			}
			tree.Nodes = append(tree.Nodes, &model.ImagePlaceholder{ID: id})

		default:
			flushList()
			flushTable()
			text := strings.TrimSpace(b.Text)
			if text == "" {
				continue
			}
			tree.Nodes = append(tree.Nodes, &model.Paragraph{Text: text})
		}
	}

	flushList()
	flushTable()
}

// buildTableFromCells assembles a table node from a run of table cell blocks
// using their recorded row/column coordinates. Returns nil when no cell holds
// any text.
func buildTableFromCells(cells []model.ContentBlock) *model.Table {
	minRow, maxRow := cells[0].Row, cells[0].Row
	maxCol := cells[0].Col
	for _, c := range cells {
		if c.Row < minRow {
			minRow = c.Row
		}
		if c.Row > maxRow {
			maxRow = c.Row
		}
		if c.Col > maxCol {
			maxCol = c.Col
		}
	}

	rows := make([][]string, maxRow-minRow+1)
	for i := range rows {
		rows[i] = make([]string, maxCol+1)
	}

	hasText := false
	for _, c := range cells {
		text := strings.TrimSpace(c.Text)
		if text != "" {
			hasText = true
		}
		row := c.Row - minRow
		if existing := rows[row][c.Col]; existing != "" {
			rows[row][c.Col] = existing + " " + text
		} else {
			rows[row][c.Col] = text
		}
	}

	if !hasText {
		return nil
	}
	return &model.Table{Rows: rows}
}

// levelStack enforces the monotonic-consistency invariant on heading levels:
// a level may increase by any amount, but may decrease only to a previously
// opened ancestor level. Violating levels are clamped to the nearest open
// level.
type levelStack struct {
	open []int // strictly increasing open section levels
}

func newLevelStack() *levelStack {
	return &levelStack{}
}

// resolve returns the level to assign for a requested heading level and
// updates the open-section state.
func (s *levelStack) resolve(level int) int {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}

	if len(s.open) == 0 {
		s.open = append(s.open, level)
		return level
	}

	top := s.open[len(s.open)-1]
	if level == top {
		return level
	}
	if level > top {
		s.open = append(s.open, level)
		return level
	}

	// Decreasing: allowed only onto a previously opened ancestor.
	for i := len(s.open) - 1; i >= 0; i-- {
		if s.open[i] == level {
			s.open = s.open[:i+1]
			return level
		}
		if s.open[i] < level {
			// The requested level sits between two ancestors; clamp to the
			// open level just above the nearest shallower ancestor.
			clamped := s.open[i+1]
			s.open = s.open[:i+2]
			return clamped
		}
	}

	// Shallower than anything seen so far; clamp to the document's root level.
	clamped := s.open[0]
	s.open = s.open[:1]
	return clamped
}
