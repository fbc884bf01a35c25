package batch

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// DocumentStatus is the terminal state of one document in a run.
type DocumentStatus int

const (
	// Succeeded means both artifacts were written.
	Succeeded DocumentStatus = iota
	// Failed means the document was skipped after an error; no artifacts
	// remain on disk.
	Failed
)

// String returns the string representation of the status.
func (s DocumentStatus) String() string {
	if s == Succeeded {
		return "succeeded"
	}
	return "failed"
}

// DocumentResult records the outcome for a single input document.
type DocumentResult struct {
	// Path is the input file path.
	Path string

	Status DocumentStatus

	// ErrorKind names the failure class for failed documents.
	ErrorKind string

	// Detail is the failure reason, or the degradation reason for
	// documents that converted with degraded metadata.
	Detail string

	// Degraded marks documents that converted but whose metadata
	// derivation partially failed.
	Degraded bool

	Elapsed time.Duration
}

// Report summarizes one batch run.
type Report struct {
	// RunID uniquely identifies this run in logs and reports.
	RunID string

	Started time.Time
	Elapsed time.Duration

	Results []DocumentResult
}

// Succeeded counts documents that produced both artifacts.
func (r *Report) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.Status == Succeeded {
			n++
		}
	}
	return n
}

// Failed counts documents that produced no artifacts.
func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Status == Failed {
			n++
		}
	}
	return n
}

// Degraded counts converted documents with degraded metadata.
func (r *Report) Degraded() int {
	n := 0
	for _, res := range r.Results {
		if res.Status == Succeeded && res.Degraded {
			n++
		}
	}
	return n
}

// Summary renders a console report listing counts and per-document
// outcomes. Results are listed in path order regardless of completion
// order.
func (r *Report) Summary() string {
	results := append([]DocumentResult(nil), r.Results...)
	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })

	var sb strings.Builder
	fmt.Fprintf(&sb, "run %s: %d documents in %s\n", r.RunID, len(results), r.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(&sb, "  succeeded: %d  failed: %d  degraded: %d\n", r.Succeeded(), r.Failed(), r.Degraded())

	for _, res := range results {
		switch {
		case res.Status == Failed:
			fmt.Fprintf(&sb, "  FAIL %s [%s] %s\n", res.Path, res.ErrorKind, res.Detail)
		case res.Degraded:
			fmt.Fprintf(&sb, "  OK   %s (degraded: %s)\n", res.Path, res.Detail)
		default:
			fmt.Fprintf(&sb, "  OK   %s\n", res.Path)
		}
	}
	return sb.String()
}
