package dataset

// TransectTallies maps every transect context to its per-group counts summed
// across the transect's images.
type TransectTallies map[TransectContext]map[string]Tally

// AggregateTransects sums COUNT and TOTAL over all images within a transect,
// per functional group. A pure reduction: image order cannot affect the
// result.
func AggregateTransects(tallies ImageTallies) TransectTallies {
	transects := make(TransectTallies)

	for ctx, groups := range tallies {
		key := ctx.TransectContext
		if transects[key] == nil {
			transects[key] = make(map[string]Tally)
		}
		for group, cell := range groups {
			agg := transects[key][group]
			agg.Count += cell.Count
			agg.Total += cell.Total
			transects[key][group] = agg
		}
	}

	return transects
}
