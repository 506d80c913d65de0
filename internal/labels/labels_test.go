package labels

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/reefguard/benthic-survey-poc/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLabelMap(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "labels.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadLabelMap(t *testing.T) {
	path := writeLabelMap(t, "CODE,FUNCTIONAL GROUP,TAU\nALG,Algae,0.8\nACR,Hard coral,\nSND,Sand,1.2\n")

	entries, err := Load(path, DefaultConfig())
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "Algae", entries["ALG"].Group)
	assert.True(t, entries["ALG"].HasWeight)
	assert.InDelta(t, 0.8, entries["ALG"].Weight, 1e-9)

	// Empty TAU cell means no weight for that code.
	assert.Equal(t, "Hard coral", entries["ACR"].Group)
	assert.False(t, entries["ACR"].HasWeight)
}

func TestLoadLabelMapWithoutWeightColumn(t *testing.T) {
	path := writeLabelMap(t, "CODE,FUNCTIONAL GROUP\nALG,Algae\n")

	entries, err := Load(path, DefaultConfig())
	require.NoError(t, err)
	assert.False(t, entries["ALG"].HasWeight)
}

func TestLoadLabelMapDuplicateCode(t *testing.T) {
	path := writeLabelMap(t, "CODE,FUNCTIONAL GROUP\nALG,Algae\nALG,Hard coral\n")

	_, err := Load(path, DefaultConfig())
	var dupErr *DuplicateLabelError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, "ALG", dupErr.Code)
}

func TestLoadLabelMapBadWeight(t *testing.T) {
	path := writeLabelMap(t, "CODE,FUNCTIONAL GROUP,TAU\nALG,Algae,heavy\n")

	_, err := Load(path, DefaultConfig())
	assert.ErrorContains(t, err, "TAU")
}

func TestJoinResolvesGroupsAndReportsUnmapped(t *testing.T) {
	labelMap := map[string]Entry{
		"ALG": {Code: "ALG", Group: "Algae", Weight: 0.8, HasWeight: true},
		"ACR": {Code: "ACR", Group: "Hard coral"},
		"SND": {Code: "SND", Group: "Sand", Weight: 0, HasWeight: true},
	}

	observations := []dataset.Observation{
		{PointID: "P1", Classification: "ALG"},
		{PointID: "P2", Classification: "ACR"},
		{PointID: "P3", Classification: "XX"}, // not in the label map
		{PointID: "P4", Classification: ""},   // null call
		{PointID: "P5", Classification: "SND"},
	}

	report := dataset.NewReport()
	joined := Join(observations, labelMap, report)
	require.Len(t, joined, 5)

	assert.Equal(t, "Algae", joined[0].Group)
	assert.InDelta(t, 0.8, joined[0].Weight, 1e-9)

	// Mapped but unweighted codes contribute a neutral weight.
	assert.Equal(t, "Hard coral", joined[1].Group)
	assert.InDelta(t, 1.0, joined[1].Weight, 1e-9)
	assert.Equal(t, []string{"ACR"}, report.CodesWithoutWeight)

	// Unmapped codes keep their row with a missing group and are surfaced.
	assert.Equal(t, "", joined[2].Group)
	assert.Equal(t, map[string]int{"XX": 1}, report.UnmappedCodes)

	assert.Equal(t, "", joined[3].Group)
	assert.Equal(t, 1, report.NullClassifications)

	// An explicit zero weight is kept, not replaced by the neutral 1.0.
	assert.Equal(t, "Sand", joined[4].Group)
	assert.InDelta(t, 0.0, joined[4].Weight, 1e-9)
	assert.NotContains(t, report.CodesWithoutWeight, "SND")

	assert.True(t, report.HasFindings())
}
