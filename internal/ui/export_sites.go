package ui

import (
	"fmt"

	"github.com/reefguard/benthic-survey-poc/internal/dataset"
	"github.com/reefguard/benthic-survey-poc/internal/delivery"
	"github.com/reefguard/benthic-survey-poc/internal/labels"
	"github.com/reefguard/benthic-survey-poc/internal/properties"
	"github.com/reefguard/benthic-survey-poc/internal/survey"
	"github.com/reefguard/benthic-survey-poc/output"
)

// ExportSites handles the UI for exporting surveyed site locations as
// GeoJSON.
func ExportSites() {
	surveyFile, err := SelectFile(properties.RootPath()+"/data/surveys", ".csv", "survey export")
	if err != nil {
		PrintError(err.Error())
		return
	}

	opts := delivery.PrepareOptions{
		SurveyFile: surveyFile,
		Survey:     survey.DefaultConfig(),
		Labels:     labels.DefaultConfig(),
	}

	observations, err := delivery.LoadObservations(opts)
	if err != nil {
		PrintError(fmt.Sprintf("Error loading survey: %s", err.Error()))
		return
	}

	sites := dataset.Sites(observations)
	path, err := output.CreateSitesGeoJson(sites, delivery.FileStem(surveyFile)+"_sites")
	if err != nil {
		PrintError(fmt.Sprintf("Error exporting sites: %s", err.Error()))
		return
	}

	PrintSuccess(fmt.Sprintf("Exported %d site(s) to %s", len(sites), path))
}
