package dataset

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// BuildTransectKeys fills TransectID and TransectName on every observation
// from (site, survey year, transect number). The format is fixed so two
// observations of the same transect always produce the same key, whatever
// order they arrive in.
func BuildTransectKeys(observations []Observation) []Observation {
	out := make([]Observation, len(observations))
	for i, o := range observations {
		year := o.SurveyDate.Year()
		o.TransectID = fmt.Sprintf("%s-%04d-T%d", o.SiteID, year, o.TransectNumber)
		o.TransectName = fmt.Sprintf("%s %04d T%d", o.SiteName, year, o.TransectNumber)
		out[i] = o
	}
	return out
}

// Year is the calendar year of the survey date.
func Year(date time.Time) int {
	return date.Year()
}

// TropYear shifts the survey date forward three months before taking the
// calendar year, so sampling seasons that straddle the new year land in one
// nominal year on both hemispheres.
func TropYear(date time.Time) int {
	return date.AddDate(0, 3, 0).Year()
}

var trailingSiteNumber = regexp.MustCompile(`[\s-]+\d+$`)

// GroupingScheme selects the reef/group identifier written to model-ready
// rows.
type GroupingScheme int

const (
	// GroupBySite keeps each site as its own group.
	GroupBySite GroupingScheme = iota
	// GroupByReef strips the trailing site number from the site name, so
	// "North Reef 2" and "North Reef 3" fold into "North Reef".
	GroupByReef
)

func (s GroupingScheme) String() string {
	if s == GroupByReef {
		return "reef"
	}
	return "site"
}

// ReefName derives the reef/group identifier for a site name under the given
// scheme.
func ReefName(siteName string, scheme GroupingScheme) string {
	if scheme == GroupByReef {
		if trimmed := strings.TrimSpace(trailingSiteNumber.ReplaceAllString(siteName, "")); trimmed != "" {
			return trimmed
		}
	}
	return siteName
}
