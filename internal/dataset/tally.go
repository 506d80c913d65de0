package dataset

import (
	"sort"
)

// Tally is one cell of the design: the tallied value for a functional group
// within a context, and the context's total across every group.
type Tally struct {
	Count float64 `json:"count"`
	Total float64 `json:"total"`
}

// ValueFunc is the contribution of one observation to its group's tally. The
// plain cover pipeline counts points; the weighted pipeline sums TAU weights.
// The two are otherwise the same pipeline.
type ValueFunc func(Observation) float64

func CountValue(Observation) float64 { return 1 }

// WeightValue returns the TAU weight the label join resolved for the row. A
// weight of 0 is a real value: the code counts for nothing in weighted cover.
func WeightValue(o Observation) float64 {
	return o.Weight
}

// ImageTallies maps every image context to its per-group tallies. Contexts
// whose every observation lacks a functional group still appear, with an
// empty inner map, so the zero-fill stage can flag them instead of losing
// them.
type ImageTallies map[ImageContext]map[string]Tally

// TallyPoints groups observations by (image context, functional group) and
// accumulates the value function over them. Rows without a group are kept out
// of every group tally and out of TOTAL, but still register their context.
// TOTAL per context is the observed sum of its group counts, nothing
// external.
func TallyPoints(observations []Observation, value ValueFunc) ImageTallies {
	tallies := make(ImageTallies)

	for _, o := range observations {
		ctx := o.Context()
		if tallies[ctx] == nil {
			tallies[ctx] = make(map[string]Tally)
		}
		if o.Group == "" {
			continue
		}
		cell := tallies[ctx][o.Group]
		cell.Count += value(o)
		tallies[ctx][o.Group] = cell
	}

	for ctx, groups := range tallies {
		var total float64
		for _, cell := range groups {
			total += cell.Count
		}
		for group, cell := range groups {
			cell.Total = total
			tallies[ctx][group] = cell
		}
	}

	return tallies
}

// DistinctGroups returns the sorted set of functional groups observed across
// the whole table. This is the dimension set the zero-fill expands against.
func DistinctGroups(observations []Observation) []string {
	seen := make(map[string]bool)
	for _, o := range observations {
		if o.Group != "" {
			seen[o.Group] = true
		}
	}

	groups := make([]string, 0, len(seen))
	for g := range seen {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	return groups
}

// SortedContexts returns the tally's contexts in a stable order, keyed by
// transect id, type and image id.
func SortedContexts(tallies ImageTallies) []ImageContext {
	contexts := make([]ImageContext, 0, len(tallies))
	for ctx := range tallies {
		contexts = append(contexts, ctx)
	}
	sort.Slice(contexts, func(i, j int) bool {
		a, b := contexts[i], contexts[j]
		if a.TransectID != b.TransectID {
			return a.TransectID < b.TransectID
		}
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		return a.ImageID < b.ImageID
	})
	return contexts
}
