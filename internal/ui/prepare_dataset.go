package ui

import (
	"fmt"

	"github.com/reefguard/benthic-survey-poc/internal/dataset"
	"github.com/reefguard/benthic-survey-poc/internal/delivery"
	"github.com/reefguard/benthic-survey-poc/internal/labels"
	"github.com/reefguard/benthic-survey-poc/internal/properties"
	"github.com/reefguard/benthic-survey-poc/internal/survey"
)

// PrepareDataset handles the UI for building a model-ready cover dataset.
func PrepareDataset() {
	runPrepare(false)
}

// PrepareWeightedDataset handles the UI for the TAU-weighted variant.
func PrepareWeightedDataset() {
	runPrepare(true)
}

func runPrepare(weighted bool) {
	opts, err := readPrepareOptions(weighted)
	if err != nil {
		PrintError(err.Error())
		return
	}

	opts.TargetGroup = ReadString("Enter the target functional group (e.g. Hard coral): ")
	if opts.TargetGroup == "" {
		PrintError("a target functional group is required")
		return
	}

	path, report, err := delivery.CreateModelDataset(opts)
	if err != nil {
		PrintError(fmt.Sprintf("Error preparing dataset: %s", err.Error()))
		return
	}

	if report != nil && report.HasFindings() {
		PrintWarning(report.Summary())
	}
	PrintSuccess(fmt.Sprintf("Dataset prepared successfully!\nFile: %s", path))
}

// readPrepareOptions collects the run parameters shared by every pipeline
// action.
func readPrepareOptions(weighted bool) (delivery.PrepareOptions, error) {
	PrintWarning("Survey exports are read from data/surveys, label maps from data/labels.")

	surveyFile, err := SelectFile(properties.RootPath()+"/data/surveys", ".csv", "survey export")
	if err != nil {
		return delivery.PrepareOptions{}, err
	}

	labelFile, err := SelectFile(properties.RootPath()+"/data/labels", ".csv", "label map")
	if err != nil {
		return delivery.PrepareOptions{}, err
	}

	quality, err := SelectQualityPolicy()
	if err != nil {
		return delivery.PrepareOptions{}, err
	}

	grouping := dataset.GroupBySite
	if ReadYesNo("Group sites by reef name (strip trailing site number)? [y/N]: ") {
		grouping = dataset.GroupByReef
	}

	surveyConfig := survey.DefaultConfig()
	surveyConfig.Quality = quality

	return delivery.PrepareOptions{
		SurveyFile: surveyFile,
		LabelFile:  labelFile,
		Weighted:   weighted,
		Grouping:   grouping,
		Survey:     surveyConfig,
		Labels:     labels.DefaultConfig(),
	}, nil
}
