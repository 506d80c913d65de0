// Package survey turns a raw photo-quadrat export into typed observations:
// project the required columns, apply the quality policy, unpivot the
// machine/human classification columns and parse the result.
package survey

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/reefguard/benthic-survey-poc/internal/dataset"
	"github.com/reefguard/benthic-survey-poc/internal/table"
)

// RequiredColumns is the fixed set of context columns every survey export
// must carry. Quality and classification columns come from the Config on top
// of these.
var RequiredColumns = []string{
	"site_id",
	"site_name",
	"site_latitude",
	"site_longitude",
	"survey_start_date",
	"survey_depth",
	"transect_number",
	"image_id",
	"point_id",
	"point_num",
}

// DefaultClassificationKinds maps the type tag to the wide column holding
// that kind of call. Injected rather than discovered by pattern so the schema
// dependency stays static.
func DefaultClassificationKinds() map[string]string {
	return map[string]string{
		"machine": "point_machine_classification",
		"human":   "point_human_classification",
	}
}

type Config struct {
	// Kinds maps classification type tags to their wide column names.
	Kinds map[string]string
	// Quality decides which images are acceptable.
	Quality QualityPolicy
}

func DefaultConfig() Config {
	return Config{
		Kinds:   DefaultClassificationKinds(),
		Quality: QualityPolicy{Mode: QualityScoreSentinel, ScoreColumn: "image_quality", BadScore: 0},
	}
}

// Load reads a survey export, projects it to the configured column set and
// applies the quality policy. Row order survives both steps.
func Load(path string, cfg Config) (table.Table, error) {
	t, err := table.Load(path)
	if err != nil {
		return table.Table{}, err
	}

	required := append([]string{}, RequiredColumns...)
	required = append(required, cfg.Quality.Columns()...)
	kindColumns := make([]string, 0, len(cfg.Kinds))
	for _, c := range cfg.Kinds {
		kindColumns = append(kindColumns, c)
	}
	sort.Strings(kindColumns)
	required = append(required, kindColumns...)

	t, err = t.Select(required)
	if err != nil {
		return table.Table{}, err
	}

	return cfg.Quality.Apply(t), nil
}

// Unpivot converts the wide classification columns into long form, one row
// per point per classification kind, tagged with a type column. Null calls
// survive as empty classification cells.
func Unpivot(t table.Table, cfg Config) (table.Table, error) {
	return t.Unpivot(cfg.Kinds, "type", "classification")
}

// ParseObservations converts an unpivoted table into typed observations.
// Numeric and date columns are parsed strictly; a bad cell fails the load
// with its row number.
func ParseObservations(t table.Table) ([]dataset.Observation, error) {
	needed := append([]string{}, RequiredColumns...)
	needed = append(needed, "type", "classification")
	missing := []string{}
	for _, c := range needed {
		if !t.HasColumn(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, &table.SchemaError{Table: t.Name, Missing: missing}
	}

	idx := func(name string) int { return t.ColumnIndex(name) }
	observations := make([]dataset.Observation, 0, len(t.Rows))

	for i, row := range t.Rows {
		latitude, err := parseFloat(row[idx("site_latitude")])
		if err != nil {
			return nil, fmt.Errorf("row %d: bad site_latitude: %w", i+1, err)
		}
		longitude, err := parseFloat(row[idx("site_longitude")])
		if err != nil {
			return nil, fmt.Errorf("row %d: bad site_longitude: %w", i+1, err)
		}
		surveyDate, err := ParseSurveyDate(row[idx("survey_start_date")])
		if err != nil {
			return nil, fmt.Errorf("row %d: bad survey_start_date: %w", i+1, err)
		}
		depth, err := parseFloat(row[idx("survey_depth")])
		if err != nil {
			return nil, fmt.Errorf("row %d: bad survey_depth: %w", i+1, err)
		}
		transectNumber, err := strconv.Atoi(row[idx("transect_number")])
		if err != nil {
			return nil, fmt.Errorf("row %d: bad transect_number: %w", i+1, err)
		}
		pointNumber := 0
		if raw := row[idx("point_num")]; raw != "" {
			pointNumber, err = strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("row %d: bad point_num: %w", i+1, err)
			}
		}

		observations = append(observations, dataset.Observation{
			SiteID:         row[idx("site_id")],
			SiteName:       row[idx("site_name")],
			Latitude:       latitude,
			Longitude:      longitude,
			SurveyDate:     surveyDate,
			Depth:          depth,
			TransectNumber: transectNumber,
			ImageID:        row[idx("image_id")],
			PointID:        row[idx("point_id")],
			PointNumber:    pointNumber,
			Type:           row[idx("type")],
			Classification: row[idx("classification")],
		})
	}

	return observations, nil
}

var surveyDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// ParseSurveyDate accepts the date formats seen across survey exports.
func ParseSurveyDate(raw string) (time.Time, error) {
	for _, layout := range surveyDateLayouts {
		if date, err := time.Parse(layout, raw); err == nil {
			return date, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}

func parseFloat(raw string) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseFloat(raw, 64)
}
