package delivery

import (
	"testing"

	"github.com/reefguard/benthic-survey-poc/internal/dataset"
	"github.com/stretchr/testify/assert"
)

func TestFileStem(t *testing.T) {
	assert.Equal(t, "lizard_2023", FileStem("lizard_2023.csv"))
	assert.Equal(t, "lizard_2023", FileStem("data/surveys/lizard_2023.csv"))
	assert.Equal(t, "lizard", FileStem("lizard"))
}

func TestDatasetName(t *testing.T) {
	opts := PrepareOptions{
		SurveyFile:  "lizard_2023.csv",
		LabelFile:   "labelset.csv",
		TargetGroup: "Hard coral",
		Grouping:    dataset.GroupByReef,
	}
	assert.Equal(t, "lizard_2023_labelset_hard-coral_cover_reef", opts.DatasetName())

	opts.Weighted = true
	opts.TargetGroup = ""
	opts.Grouping = dataset.GroupBySite
	assert.Equal(t, "lizard_2023_labelset_all_tau_site", opts.DatasetName())
}
