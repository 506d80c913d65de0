// Package labels maps fine-grained classification codes onto coarse
// functional groups via the label-map table, carrying the optional TAU
// weights used by weighted tallies.
package labels

import (
	"fmt"
	"strconv"

	"github.com/reefguard/benthic-survey-poc/internal/dataset"
	"github.com/reefguard/benthic-survey-poc/internal/table"
)

// DuplicateLabelError reports a code appearing more than once in the label
// map. The join is many-to-one; a duplicated code makes it ambiguous.
type DuplicateLabelError struct {
	Code string
}

func (e *DuplicateLabelError) Error() string {
	return fmt.Sprintf("label map contains duplicate code %q", e.Code)
}

// Entry is one label-map row.
type Entry struct {
	Code      string
	Group     string
	Weight    float64
	HasWeight bool
}

// Config names the label-map columns. The group column header varies per
// data set, so it is injected.
type Config struct {
	CodeColumn   string
	GroupColumn  string
	WeightColumn string
}

func DefaultConfig() Config {
	return Config{
		CodeColumn:   "CODE",
		GroupColumn:  "FUNCTIONAL GROUP",
		WeightColumn: "TAU",
	}
}

// Load reads a label map keyed by code. Codes must be unique; the weight
// column is optional.
func Load(path string, cfg Config) (map[string]Entry, error) {
	t, err := table.Load(path)
	if err != nil {
		return nil, err
	}

	columns := []string{cfg.CodeColumn, cfg.GroupColumn}
	hasWeight := cfg.WeightColumn != "" && t.HasColumn(cfg.WeightColumn)
	if hasWeight {
		columns = append(columns, cfg.WeightColumn)
	}
	t, err = t.Select(columns)
	if err != nil {
		return nil, err
	}

	entries := make(map[string]Entry, len(t.Rows))
	for i, row := range t.Rows {
		entry := Entry{Code: row[0], Group: row[1]}
		if entry.Code == "" {
			continue
		}
		if _, exists := entries[entry.Code]; exists {
			return nil, &DuplicateLabelError{Code: entry.Code}
		}
		if hasWeight && row[2] != "" {
			weight, err := strconv.ParseFloat(row[2], 64)
			if err != nil {
				return nil, fmt.Errorf("label map row %d: bad %s value %q: %w", i+1, cfg.WeightColumn, row[2], err)
			}
			entry.Weight = weight
			entry.HasWeight = true
		}
		entries[entry.Code] = entry
	}

	return entries, nil
}

// Join resolves every observation's functional group from the label map.
// Unmapped codes and null calls keep their rows, resolve to an empty group
// and are tallied on the report; they are never silently dropped. Mapped
// codes without a weight contribute a neutral 1.0 to weighted tallies.
func Join(observations []dataset.Observation, labelMap map[string]Entry, report *dataset.Report) []dataset.Observation {
	joined := make([]dataset.Observation, len(observations))
	unweighted := make(map[string]bool)

	for i, o := range observations {
		switch entry, ok := labelMap[o.Classification]; {
		case o.Classification == "":
			report.NullClassifications++
		case !ok:
			report.AddUnmappedCode(o.Classification)
		default:
			o.Group = entry.Group
			if entry.HasWeight {
				o.Weight = entry.Weight
			} else {
				o.Weight = 1
				if !unweighted[o.Classification] {
					unweighted[o.Classification] = true
					report.CodesWithoutWeight = append(report.CodesWithoutWeight, o.Classification)
				}
			}
		}
		joined[i] = o
	}

	return joined
}
