package dataset

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/reefguard/benthic-survey-poc/internal/properties"
)

// ModelReadyRow is the table handed to the external statistics backend: one
// transect-level count for the target functional group, with the derived
// temporal and reef fields the models condition on.
type ModelReadyRow struct {
	Reef           string    `csv:"reef" json:"reef"`
	SiteID         string    `csv:"site_id" json:"site_id"`
	SiteName       string    `csv:"site_name" json:"site_name"`
	Latitude       float64   `csv:"site_latitude" json:"site_latitude"`
	Longitude      float64   `csv:"site_longitude" json:"site_longitude"`
	SurveyDate     time.Time `csv:"survey_start_date" json:"survey_start_date"`
	Depth          float64   `csv:"survey_depth" json:"survey_depth"`
	TransectID     string    `csv:"transect_id" json:"transect_id"`
	TransectName   string    `csv:"transect_name" json:"transect_name"`
	TransectNumber int       `csv:"transect_number" json:"transect_number"`
	Type           string    `csv:"type" json:"type"`
	Group          string    `csv:"functional_group" json:"functional_group"`
	Count          float64   `csv:"count" json:"count"`
	Total          float64   `csv:"total" json:"total"`
	Year           int       `csv:"year" json:"year"`
	TropYear       int       `csv:"trop_year" json:"trop_year"`
}

// ModelReady filters transect counts down to one target functional group and
// derives Year, TropYear and the reef identifier. Rows come back sorted by
// transect id then type, so output files are reproducible.
func ModelReady(transects TransectTallies, targetGroup string, scheme GroupingScheme) []ModelReadyRow {
	rows := []ModelReadyRow{}

	for ctx, groups := range transects {
		cell, ok := groups[targetGroup]
		if !ok {
			continue
		}
		rows = append(rows, ModelReadyRow{
			Reef:           ReefName(ctx.SiteName, scheme),
			SiteID:         ctx.SiteID,
			SiteName:       ctx.SiteName,
			Latitude:       ctx.Latitude,
			Longitude:      ctx.Longitude,
			SurveyDate:     ctx.SurveyDate,
			Depth:          ctx.Depth,
			TransectID:     ctx.TransectID,
			TransectName:   ctx.TransectName,
			TransectNumber: ctx.TransectNumber,
			Type:           ctx.Type,
			Group:          targetGroup,
			Count:          cell.Count,
			Total:          cell.Total,
			Year:           Year(ctx.SurveyDate),
			TropYear:       TropYear(ctx.SurveyDate),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TransectID != rows[j].TransectID {
			return rows[i].TransectID < rows[j].TransectID
		}
		return rows[i].Type < rows[j].Type
	})

	return rows
}

// ModelFilePath is where a named model-ready dataset lives on disk.
func ModelFilePath(name string) string {
	return fmt.Sprintf("%s/data/model/%s.csv", properties.RootPath(), name)
}

// GetSavedModelData loads a previously written model-ready dataset, or nil
// when none exists yet.
func GetSavedModelData(name string) ([]ModelReadyRow, error) {
	filePath := ModelFilePath(name)
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, nil
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open existing model data file: %w", err)
	}
	defer file.Close()

	var rows []ModelReadyRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("failed to read existing model data: %w", err)
	}

	fmt.Printf("Model data already exists at %s.\n", filePath)
	return rows, nil
}

// SaveModelData writes the model-ready dataset to data/model and returns the
// file path.
func SaveModelData(rows []ModelReadyRow, name string) (string, error) {
	if len(rows) == 0 {
		return "", fmt.Errorf("no model data to save")
	}

	filePath := ModelFilePath(name)
	file, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create model data file: %w", err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return "", fmt.Errorf("failed to save model data to file: %w", err)
	}

	fmt.Printf("Model data with %d rows successfully saved to %s.\n", len(rows), filePath)
	return filePath, nil
}
