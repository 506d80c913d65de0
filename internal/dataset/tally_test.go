package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDate = time.Date(2023, 11, 27, 0, 0, 0, 0, time.UTC)

func testObservation(imageID, group string, weight float64) Observation {
	o := Observation{
		SiteID:         "S1",
		SiteName:       "North Reef 1",
		SurveyDate:     testDate,
		TransectNumber: 1,
		ImageID:        imageID,
		Type:           "machine",
		Group:          group,
		Weight:         weight,
	}
	keyed := BuildTransectKeys([]Observation{o})
	return keyed[0]
}

func TestTallyPointsCountsAndTotals(t *testing.T) {
	observations := []Observation{
		testObservation("IMG1", "Algae", 1),
		testObservation("IMG1", "Algae", 1),
		testObservation("IMG1", "Hard coral", 1),
		testObservation("IMG2", "Hard coral", 1),
	}

	tallies := TallyPoints(observations, CountValue)
	require.Len(t, tallies, 2)

	img1 := testObservation("IMG1", "", 0).Context()
	require.Contains(t, tallies, img1)
	assert.Equal(t, Tally{Count: 2, Total: 3}, tallies[img1]["Algae"])
	assert.Equal(t, Tally{Count: 1, Total: 3}, tallies[img1]["Hard coral"])

	// Invariant: per-image total equals the sum of its group counts.
	var sum float64
	for _, cell := range tallies[img1] {
		sum += cell.Count
		assert.InDelta(t, 3, cell.Total, 1e-9)
	}
	assert.InDelta(t, 3, sum, 1e-9)
}

func TestTallyPointsExcludesMissingGroupsButKeepsContext(t *testing.T) {
	observations := []Observation{
		testObservation("IMG1", "Algae", 1),
		testObservation("IMG1", "", 0), // unmapped: no group tally, no TOTAL share
		testObservation("IMG2", "", 0), // an image with only unmapped points
	}

	tallies := TallyPoints(observations, CountValue)
	require.Len(t, tallies, 2)

	img1 := testObservation("IMG1", "", 0).Context()
	assert.Equal(t, Tally{Count: 1, Total: 1}, tallies[img1]["Algae"])

	// The all-unmapped image still registers its context, with no group
	// cells, so the zero-fill stage can flag it.
	img2 := testObservation("IMG2", "", 0).Context()
	require.Contains(t, tallies, img2)
	assert.Empty(t, tallies[img2])
}

func TestTallyPointsWeighted(t *testing.T) {
	observations := []Observation{
		testObservation("IMG1", "Algae", 0.5),
		testObservation("IMG1", "Algae", 0.5),
		testObservation("IMG1", "Hard coral", 2),
	}

	tallies := TallyPoints(observations, WeightValue)

	img1 := testObservation("IMG1", "", 0).Context()
	assert.InDelta(t, 1.0, tallies[img1]["Algae"].Count, 1e-9)
	assert.InDelta(t, 2.0, tallies[img1]["Hard coral"].Count, 1e-9)
	assert.InDelta(t, 3.0, tallies[img1]["Algae"].Total, 1e-9)
}

func TestTallyPointsZeroWeight(t *testing.T) {
	observations := []Observation{
		testObservation("IMG1", "Algae", 0),
		testObservation("IMG1", "Algae", 0),
		testObservation("IMG1", "Hard coral", 2),
	}

	tallies := TallyPoints(observations, WeightValue)

	img1 := testObservation("IMG1", "", 0).Context()
	assert.InDelta(t, 0.0, tallies[img1]["Algae"].Count, 1e-9)
	assert.InDelta(t, 2.0, tallies[img1]["Hard coral"].Count, 1e-9)
	assert.InDelta(t, 2.0, tallies[img1]["Algae"].Total, 1e-9)
}

func TestDistinctGroupsSortedAndNonEmpty(t *testing.T) {
	observations := []Observation{
		testObservation("IMG1", "Sand", 1),
		testObservation("IMG1", "Algae", 1),
		testObservation("IMG1", "", 0),
		testObservation("IMG2", "Algae", 1),
	}

	assert.Equal(t, []string{"Algae", "Sand"}, DistinctGroups(observations))
}
