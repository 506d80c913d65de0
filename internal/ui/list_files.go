package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/reefguard/benthic-survey-poc/internal/properties"
)

// ListSurveys handles the UI for viewing the available survey exports
func ListSurveys() {
	listCsvFiles("data/surveys", "survey exports",
		"To add a survey, place its '.csv' export in the 'data/surveys' folder.")
}

// ListLabelMaps handles the UI for viewing the available label maps
func ListLabelMaps() {
	listCsvFiles("data/labels", "label maps",
		"To add a label map, place its '.csv' file in the 'data/labels' folder.")
}

func listCsvFiles(subDir, what, hint string) {
	files, err := os.ReadDir(properties.RootPath() + "/" + subDir)
	if err != nil {
		PrintError(fmt.Sprintf("Error reading %s folder: %s", subDir, err.Error()))
		return
	}

	PrintWarning(hint)

	fmt.Printf("\n%sAvailable %s:%s\n", ColorGreen, what, ColorReset)
	for _, file := range files {
		if strings.HasSuffix(file.Name(), ".csv") {
			fmt.Printf("%s- %s%s\n", ColorGreen, file.Name(), ColorReset)
		}
	}
}
