package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/reefguard/benthic-survey-poc/internal/dataset"
	"github.com/reefguard/benthic-survey-poc/internal/properties"
)

// CreateSitesGeoJson writes the surveyed sites as a GeoJSON feature
// collection under data/result, one point feature per site with its survey
// summary, and returns the file path.
func CreateSitesGeoJson(sites []dataset.Site, outputName string) (string, error) {
	if len(sites) == 0 {
		return "", fmt.Errorf("no sites to export")
	}

	fc := geojson.NewFeatureCollection()
	for _, site := range sites {
		feature := geojson.NewFeature(orb.Point{site.Longitude, site.Latitude})
		feature.Properties["site_id"] = site.SiteID
		feature.Properties["site_name"] = site.SiteName
		feature.Properties["surveys"] = site.Surveys
		feature.Properties["first_survey"] = site.FirstSurvey.Format("2006-01-02")
		feature.Properties["last_survey"] = site.LastSurvey.Format("2006-01-02")
		fc.Append(feature)
	}

	payload, err := fc.MarshalJSON()
	if err != nil {
		return "", fmt.Errorf("failed to marshal GeoJSON: %w", err)
	}

	var indented json.RawMessage = payload
	pretty, err := json.MarshalIndent(indented, "", "  ")
	if err != nil {
		pretty = payload
	}

	outputPath := filepath.Join(properties.RootPath(), "data", "result", outputName+".geojson")
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create result directory: %w", err)
	}
	if err := os.WriteFile(outputPath, pretty, 0644); err != nil {
		return "", fmt.Errorf("failed to write GeoJSON file: %w", err)
	}

	fmt.Println("GeoJSON file created successfully at", outputPath)
	return outputPath, nil
}
