package dataset

import "fmt"

// ZeroFill materializes the full cross product of every observed context and
// every functional group in the design. Cells absent from the tally get an
// explicit zero count; their TOTAL is recovered from the sibling rows of the
// same context (any observed group carries it). A context with no observed
// group at all has no TOTAL to recover: it keeps zero totals and is recorded
// on the report, never backfilled from an unrelated context.
func ZeroFill(tallies ImageTallies, groups []string, report *Report) ImageTallies {
	filled := make(ImageTallies, len(tallies))

	for _, ctx := range SortedContexts(tallies) {
		observed := tallies[ctx]

		var total float64
		for _, cell := range observed {
			if cell.Total > total {
				total = cell.Total
			}
		}

		if len(observed) == 0 && report != nil {
			report.IncompleteContexts = append(report.IncompleteContexts,
				fmt.Sprintf("%s %s image %s", ctx.TransectID, ctx.Type, ctx.ImageID))
		}

		cells := make(map[string]Tally, len(groups))
		for _, group := range groups {
			cell, ok := observed[group]
			if !ok {
				cell = Tally{Count: 0, Total: total}
			}
			cells[group] = cell
		}
		filled[ctx] = cells
	}

	return filled
}
