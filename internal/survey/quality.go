package survey

import (
	"strconv"
	"strings"

	"github.com/reefguard/benthic-survey-poc/internal/table"
)

// QualityMode selects how low-quality images are excluded. The two survey
// back ends in the field export different flags, so this is configuration,
// not code.
type QualityMode int

const (
	// QualityKeepAll disables image filtering.
	QualityKeepAll QualityMode = iota
	// QualityScoreSentinel drops rows whose numeric quality score equals the
	// bad-quality sentinel. Rows with a missing score are kept.
	QualityScoreSentinel
	// QualityDisabledFlag drops rows whose disabled flag is set, then drops
	// the flag column itself.
	QualityDisabledFlag
)

type QualityPolicy struct {
	Mode           QualityMode
	ScoreColumn    string
	BadScore       float64
	DisabledColumn string
}

// Columns lists the extra columns the policy needs projected.
func (p QualityPolicy) Columns() []string {
	switch p.Mode {
	case QualityScoreSentinel:
		return []string{p.ScoreColumn}
	case QualityDisabledFlag:
		return []string{p.DisabledColumn}
	}
	return nil
}

// Apply filters the table under the policy. A missing indicator is always
// acceptable.
func (p QualityPolicy) Apply(t table.Table) table.Table {
	switch p.Mode {
	case QualityScoreSentinel:
		return t.Filter(func(get func(string) string) bool {
			raw := get(p.ScoreColumn)
			if raw == "" {
				return true
			}
			score, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return true
			}
			return score != p.BadScore
		})
	case QualityDisabledFlag:
		filtered := t.Filter(func(get func(string) string) bool {
			return !isTruthy(get(p.DisabledColumn))
		})
		return filtered.Drop(p.DisabledColumn)
	}
	return t
}

func isTruthy(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "t", "1", "yes", "y":
		return true
	}
	return false
}
