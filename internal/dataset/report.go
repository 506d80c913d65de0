package dataset

import (
	"fmt"
	"strings"

	"github.com/reefguard/benthic-survey-poc/internal/utils"
)

// Report accumulates the data-quality findings of one pipeline run. Findings
// are not errors: the run completes, the affected rows stay visible, and the
// caller decides what to do with them.
type Report struct {
	// RowCounts records how many rows each stage produced, in stage order.
	RowCounts []StageCount
	// UnmappedCodes counts survey classification codes with no label-map
	// entry, per code.
	UnmappedCodes map[string]int
	// NullClassifications counts points whose machine or human call was
	// simply absent. These are unavailable observations, not data errors.
	NullClassifications int
	// CodesWithoutWeight lists mapped codes missing a TAU weight; they
	// contribute 1.0 to weighted tallies.
	CodesWithoutWeight []string
	// IncompleteContexts lists image contexts with no observed tally at all,
	// whose TOTAL could not be recovered during zero-fill.
	IncompleteContexts []string
}

type StageCount struct {
	Stage string
	Rows  int
}

func NewReport() *Report {
	return &Report{UnmappedCodes: map[string]int{}}
}

func (r *Report) AddStage(stage string, rows int) {
	r.RowCounts = append(r.RowCounts, StageCount{Stage: stage, Rows: rows})
}

func (r *Report) AddUnmappedCode(code string) {
	r.UnmappedCodes[code]++
}

// HasFindings reports whether anything in the run deserves attention.
func (r *Report) HasFindings() bool {
	return len(r.UnmappedCodes) > 0 || len(r.IncompleteContexts) > 0 || r.NullClassifications > 0
}

// Summary renders the report as plain text, one finding per line.
func (r *Report) Summary() string {
	var b strings.Builder

	b.WriteString("Data quality report\n")
	b.WriteString("===================\n")
	for _, sc := range r.RowCounts {
		fmt.Fprintf(&b, "%-28s %d rows\n", sc.Stage, sc.Rows)
	}

	if len(r.UnmappedCodes) > 0 {
		total := 0
		for _, n := range r.UnmappedCodes {
			total += n
		}
		fmt.Fprintf(&b, "\nUnmapped classification codes (%d points affected):\n", total)
		for _, code := range utils.GetSortedStringKeys(r.UnmappedCodes) {
			fmt.Fprintf(&b, "  %-12s %d\n", code, r.UnmappedCodes[code])
		}
	}

	if r.NullClassifications > 0 {
		fmt.Fprintf(&b, "\nNull classification calls: %d\n", r.NullClassifications)
	}

	if len(r.CodesWithoutWeight) > 0 {
		fmt.Fprintf(&b, "\nMapped codes without a TAU weight (weighted as 1.0): %s\n",
			strings.Join(r.CodesWithoutWeight, ", "))
	}

	if len(r.IncompleteContexts) > 0 {
		fmt.Fprintf(&b, "\nContexts with no observed points (TOTAL not recoverable):\n")
		for _, ctx := range r.IncompleteContexts {
			fmt.Fprintf(&b, "  %s\n", ctx)
		}
	}

	if !r.HasFindings() {
		b.WriteString("\nNo findings.\n")
	}

	return b.String()
}
