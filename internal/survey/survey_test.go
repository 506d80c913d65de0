package survey

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/reefguard/benthic-survey-poc/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const surveyHeader = "site_id,site_name,site_latitude,site_longitude,survey_start_date," +
	"survey_depth,transect_number,image_id,point_id,point_num," +
	"point_machine_classification,point_human_classification"

func writeSurvey(t *testing.T, rows string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "survey.csv")
	content := surveyHeader + ",image_quality,image_disabled\n" + rows
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func surveyRow(imageID, quality, disabled, machine, human string) string {
	return "S1,North Reef 1,-14.68,145.46,2023-11-27,6.5,1," + imageID +
		",P-" + imageID + ",1," + machine + "," + human + "," + quality + "," + disabled + "\n"
}

func TestLoadProjectsRequiredColumns(t *testing.T) {
	path := writeSurvey(t, surveyRow("IMG1", "5", "false", "ALG", "HC"))

	cfg := DefaultConfig()
	tbl, err := Load(path, cfg)
	require.NoError(t, err)

	expected := append([]string{}, RequiredColumns...)
	expected = append(expected, "image_quality",
		"point_human_classification", "point_machine_classification")
	assert.Equal(t, expected, tbl.Columns)
	assert.Len(t, tbl.Rows, 1)
}

func TestLoadMissingColumnFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "survey.csv")
	require.NoError(t, os.WriteFile(path, []byte("site_id,site_name\nS1,Reef\n"), 0644))

	_, err := Load(path, DefaultConfig())
	var schemaErr *table.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Contains(t, schemaErr.Missing, "survey_start_date")
}

func TestQualityScoreSentinel(t *testing.T) {
	// Scenario: quality 0 removed, missing kept, 5 kept.
	rows := surveyRow("IMG1", "0", "false", "ALG", "") +
		surveyRow("IMG2", "", "false", "ALG", "") +
		surveyRow("IMG3", "5", "false", "ALG", "")
	path := writeSurvey(t, rows)

	tbl, err := Load(path, DefaultConfig())
	require.NoError(t, err)

	require.Len(t, tbl.Rows, 2)
	ids := []string{tbl.Rows[0][tbl.ColumnIndex("image_id")], tbl.Rows[1][tbl.ColumnIndex("image_id")]}
	assert.Equal(t, []string{"IMG2", "IMG3"}, ids)
}

func TestQualityDisabledFlagDropsRowsAndColumn(t *testing.T) {
	rows := surveyRow("IMG1", "", "true", "ALG", "") +
		surveyRow("IMG2", "", "false", "ALG", "") +
		surveyRow("IMG3", "", "", "ALG", "")
	path := writeSurvey(t, rows)

	cfg := DefaultConfig()
	cfg.Quality = QualityPolicy{Mode: QualityDisabledFlag, DisabledColumn: "image_disabled"}

	tbl, err := Load(path, cfg)
	require.NoError(t, err)

	require.Len(t, tbl.Rows, 2)
	assert.False(t, tbl.HasColumn("image_disabled"))
	assert.Equal(t, "IMG2", tbl.Rows[0][tbl.ColumnIndex("image_id")])
	assert.Equal(t, "IMG3", tbl.Rows[1][tbl.ColumnIndex("image_id")])
}

func TestUnpivotAndParseObservations(t *testing.T) {
	path := writeSurvey(t, surveyRow("IMG1", "5", "false", "ALG", ""))

	cfg := DefaultConfig()
	tbl, err := Load(path, cfg)
	require.NoError(t, err)

	long, err := Unpivot(tbl, cfg)
	require.NoError(t, err)
	require.Len(t, long.Rows, 2)

	observations, err := ParseObservations(long)
	require.NoError(t, err)
	require.Len(t, observations, 2)

	byType := map[string]string{}
	for _, o := range observations {
		byType[o.Type] = o.Classification

		assert.Equal(t, "S1", o.SiteID)
		assert.Equal(t, "North Reef 1", o.SiteName)
		assert.InDelta(t, -14.68, o.Latitude, 1e-9)
		assert.InDelta(t, 145.46, o.Longitude, 1e-9)
		assert.Equal(t, time.Date(2023, 11, 27, 0, 0, 0, 0, time.UTC), o.SurveyDate)
		assert.InDelta(t, 6.5, o.Depth, 1e-9)
		assert.Equal(t, 1, o.TransectNumber)
		assert.Equal(t, "IMG1", o.ImageID)
	}

	assert.Equal(t, "ALG", byType["machine"])
	// The human call was null and must survive as an empty classification.
	assert.Equal(t, "", byType["human"])
}

func TestParseObservationsBadNumberIncludesRow(t *testing.T) {
	long := table.Table{
		Columns: append([]string{}, "site_id", "site_name", "site_latitude", "site_longitude",
			"survey_start_date", "survey_depth", "transect_number", "image_id", "point_id",
			"point_num", "type", "classification"),
		Rows: [][]string{
			{"S1", "Reef", "1.0", "2.0", "2023-01-01", "5", "not-a-number", "IMG1", "P1", "1", "machine", "ALG"},
		},
	}

	_, err := ParseObservations(long)
	assert.ErrorContains(t, err, "row 1")
	assert.ErrorContains(t, err, "transect_number")
}

func TestParseSurveyDateLayouts(t *testing.T) {
	for _, raw := range []string{"2023-11-27", "2023-11-27 08:30:00", "2023-11-27T08:30:00Z"} {
		date, err := ParseSurveyDate(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, 2023, date.Year())
		assert.Equal(t, time.November, date.Month())
	}

	_, err := ParseSurveyDate("27/11/2023")
	assert.Error(t, err)
}
