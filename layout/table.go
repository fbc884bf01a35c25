package layout

import (
	"sort"
	"strings"

	"github.com/tsawler/docmark/model"
)

// tableRun is a run of consecutive bands whose blocks align on shared column
// positions, interpreted as a table.
type tableRun struct {
	Start int // index of first band in the run
	End   int // index one past the last band
	Cols  []float64
}

// detectTableRuns scans the band sequence for maximal runs of at least
// MinTableBands consecutive multi-block bands whose left edges align on at
// least MinTableColumns recurring column positions. Bands that fail the
// alignment test stay prose.
func (r *Reconstructor) detectTableRuns(bands []*band) []tableRun {
	var runs []tableRun
	i := 0
	for i < len(bands) {
		if len(bands[i].Blocks) < r.config.MinTableColumns || bands[i].isImage() {
			i++
			continue
		}
		j := i + 1
		for j < len(bands) && len(bands[j].Blocks) >= r.config.MinTableColumns && !bands[j].isImage() {
			j++
		}
		if j-i >= r.config.MinTableBands {
			cols := r.recurringClusters(bands[i:j], r.columnClusters(bands[i:j]))
			if len(cols) >= r.config.MinTableColumns && r.runAligns(bands[i:j], cols) {
				runs = append(runs, tableRun{Start: i, End: j, Cols: cols})
			}
		}
		i = j
	}
	return runs
}

// columnClusters collects the distinct left-edge positions seen across the
// run, merging edges closer than ColumnAlignTolerance.
func (r *Reconstructor) columnClusters(bands []*band) []float64 {
	var edges []float64
	for _, b := range bands {
		for _, blk := range b.Blocks {
			edges = append(edges, blk.BBox.Left())
		}
	}
	sort.Float64s(edges)

	var clusters []float64
	var sum float64
	var count int
	for _, e := range edges {
		if count > 0 && e-sum/float64(count) > r.config.ColumnAlignTolerance {
			clusters = append(clusters, sum/float64(count))
			sum, count = 0, 0
		}
		sum += e
		count++
	}
	if count > 0 {
		clusters = append(clusters, sum/float64(count))
	}
	return clusters
}

// recurringClusters drops clusters occupied in fewer than half the run's
// bands. A true table column recurs row after row; a one-off edge does not.
func (r *Reconstructor) recurringClusters(bands []*band, cols []float64) []float64 {
	counts := make([]int, len(cols))
	for _, b := range bands {
		hit := make(map[int]bool)
		for _, blk := range b.Blocks {
			if c := nearestColumn(cols, blk.BBox.Left(), r.config.ColumnAlignTolerance); c >= 0 {
				hit[c] = true
			}
		}
		for c := range hit {
			counts[c]++
		}
	}
	need := (len(bands) + 1) / 2
	if need < 2 {
		need = 2
	}
	var out []float64
	for i, c := range cols {
		if counts[i] >= need {
			out = append(out, c)
		}
	}
	return out
}

// runAligns verifies every block in the run falls on one of the column
// clusters. A single stray edge disqualifies the whole run.
func (r *Reconstructor) runAligns(bands []*band, cols []float64) bool {
	for _, b := range bands {
		for _, blk := range b.Blocks {
			if nearestColumn(cols, blk.BBox.Left(), r.config.ColumnAlignTolerance) < 0 {
				return false
			}
		}
	}
	return true
}

// nearestColumn returns the index of the cluster within tolerance of x, or -1.
func nearestColumn(cols []float64, x, tolerance float64) int {
	best := -1
	bestDist := tolerance
	for i, c := range cols {
		d := x - c
		if d < 0 {
			d = -d
		}
		if d <= bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// buildTableFromRun converts a run of aligned bands into a table node. Each
// band becomes a row; blocks are assigned to the column cluster nearest
// their left edge, with same-cell collisions joined by a space and missing
// cells left empty.
func (r *Reconstructor) buildTableFromRun(bands []*band, run tableRun) *model.Table {
	rows := make([][]string, 0, run.End-run.Start)
	for _, b := range bands[run.Start:run.End] {
		row := make([]string, len(run.Cols))
		for _, blk := range b.Blocks {
			col := nearestColumn(run.Cols, blk.BBox.Left(), r.config.ColumnAlignTolerance)
			if col < 0 {
				continue
			}
			t := strings.TrimSpace(blk.Text)
			if t == "" {
				continue
			}
			if row[col] != "" {
				row[col] += " " + t
			} else {
				row[col] = t
			}
		}
		rows = append(rows, row)
	}
	return &model.Table{Rows: rows}
}
