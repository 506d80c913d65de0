package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/reefguard/benthic-survey-poc/internal/dataset"
	"github.com/reefguard/benthic-survey-poc/internal/properties"
)

// WriteReport writes the data-quality report of a pipeline run to
// data/result and returns the file path.
func WriteReport(report *dataset.Report, outputName string) (string, error) {
	outputPath := filepath.Join(properties.RootPath(), "data", "result", outputName+"_quality.txt")
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create result directory: %w", err)
	}

	if err := os.WriteFile(outputPath, []byte(report.Summary()), 0644); err != nil {
		return "", fmt.Errorf("failed to write quality report: %w", err)
	}

	return outputPath, nil
}
