package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTransectKeysDeterministic(t *testing.T) {
	date := time.Date(2023, 11, 27, 0, 0, 0, 0, time.UTC)
	a := Observation{SiteID: "S1", SiteName: "North Reef 1", SurveyDate: date, TransectNumber: 2, ImageID: "IMG1"}
	b := Observation{SiteID: "S1", SiteName: "North Reef 1", SurveyDate: date, TransectNumber: 2, ImageID: "IMG9"}

	// Same (site, year, transect number) in either input order yields the
	// same keys.
	first := BuildTransectKeys([]Observation{a, b})
	second := BuildTransectKeys([]Observation{b, a})

	assert.Equal(t, "S1-2023-T2", first[0].TransectID)
	assert.Equal(t, "North Reef 1 2023 T2", first[0].TransectName)
	assert.Equal(t, first[0].TransectID, second[1].TransectID)
	assert.Equal(t, first[0].TransectName, second[1].TransectName)
	assert.Equal(t, first[1].TransectID, first[0].TransectID)
}

func TestBuildTransectKeysDoesNotMutateInput(t *testing.T) {
	observations := []Observation{{SiteID: "S1", SurveyDate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)}}
	keyed := BuildTransectKeys(observations)

	require.NotEmpty(t, keyed[0].TransectID)
	assert.Empty(t, observations[0].TransectID)
}

func TestTemporalFields(t *testing.T) {
	date := time.Date(2023, 11, 27, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 2023, Year(date))
	// Shifting 2023-11-27 forward three months lands in February 2024.
	assert.Equal(t, 2024, TropYear(date))

	midYear := time.Date(2023, 5, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 2023, Year(midYear))
	assert.Equal(t, 2023, TropYear(midYear))
}

func TestReefName(t *testing.T) {
	assert.Equal(t, "North Reef", ReefName("North Reef 2", GroupByReef))
	assert.Equal(t, "North Reef", ReefName("North Reef-3", GroupByReef))
	assert.Equal(t, "North Reef 2", ReefName("North Reef 2", GroupBySite))
	// A purely numeric site name has nothing to strip.
	assert.Equal(t, "42", ReefName("42", GroupByReef))
}
