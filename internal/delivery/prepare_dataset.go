package delivery

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/reefguard/benthic-survey-poc/internal/cache"
	"github.com/reefguard/benthic-survey-poc/internal/dataset"
	"github.com/reefguard/benthic-survey-poc/internal/labels"
	"github.com/reefguard/benthic-survey-poc/internal/notification"
	"github.com/reefguard/benthic-survey-poc/internal/properties"
	"github.com/reefguard/benthic-survey-poc/internal/survey"
	"github.com/reefguard/benthic-survey-poc/internal/table"
	"github.com/reefguard/benthic-survey-poc/output"
	"golang.org/x/sync/errgroup"
)

type PrepareOptions struct {
	// SurveyFile and LabelFile are file names under data/surveys and
	// data/labels.
	SurveyFile string
	LabelFile  string
	// TargetGroup is the functional group the model-ready rows keep.
	TargetGroup string
	// Weighted switches the tally from point counts to TAU-weighted sums.
	Weighted bool
	Grouping dataset.GroupingScheme
	Survey   survey.Config
	Labels   labels.Config
}

func (o PrepareOptions) valueFunc() dataset.ValueFunc {
	if o.Weighted {
		return dataset.WeightValue
	}
	return dataset.CountValue
}

func (o PrepareOptions) tallyKind() string {
	if o.Weighted {
		return "tau"
	}
	return "cover"
}

// DatasetName is the stem of every artifact a run produces.
func (o PrepareOptions) DatasetName() string {
	group := strings.ToLower(strings.ReplaceAll(o.TargetGroup, " ", "-"))
	if group == "" {
		group = "all"
	}
	return fmt.Sprintf("%s_%s_%s_%s_%s",
		FileStem(o.SurveyFile), FileStem(o.LabelFile), group, o.tallyKind(), o.Grouping)
}

func SurveyPath(name string) string {
	return fmt.Sprintf("%s/data/surveys/%s", properties.RootPath(), name)
}

func LabelPath(name string) string {
	return fmt.Sprintf("%s/data/labels/%s", properties.RootPath(), name)
}

// FileStem strips the directory and extension from a file name.
func FileStem(name string) string {
	return strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
}

// BuildTransectTallies runs the pipeline from the two input files up to
// transect-level counts: load, project, filter, unpivot, join, key, tally,
// zero-fill, aggregate. Returns the counts, the global group set and the
// data-quality report of the run.
func BuildTransectTallies(opts PrepareOptions) (dataset.TransectTallies, []string, *dataset.Report, error) {
	var (
		surveyTable table.Table
		labelMap    map[string]labels.Entry
	)

	// The two inputs are independent; load them together.
	var g errgroup.Group
	g.Go(func() error {
		var err error
		surveyTable, err = survey.Load(SurveyPath(opts.SurveyFile), opts.Survey)
		return err
	})
	g.Go(func() error {
		var err error
		labelMap, err = labels.Load(LabelPath(opts.LabelFile), opts.Labels)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}

	report := dataset.NewReport()
	report.AddStage("survey rows (filtered)", len(surveyTable.Rows))

	unpivoted, err := survey.Unpivot(surveyTable, opts.Survey)
	if err != nil {
		return nil, nil, nil, err
	}
	report.AddStage("unpivoted observations", len(unpivoted.Rows))

	observations, err := survey.ParseObservations(unpivoted)
	if err != nil {
		return nil, nil, nil, err
	}

	observations = labels.Join(observations, labelMap, report)
	observations = dataset.BuildTransectKeys(observations)

	tallies := dataset.TallyPoints(observations, opts.valueFunc())
	groups := dataset.DistinctGroups(observations)
	report.AddStage("image contexts", len(tallies))
	report.AddStage("functional groups", len(groups))

	filled := dataset.ZeroFill(tallies, groups, report)
	transects := dataset.AggregateTransects(filled)
	report.AddStage("transect contexts", len(transects))

	return transects, groups, report, nil
}

// LoadObservations runs the survey side of the pipeline only: load, project,
// filter, unpivot and parse, without the label join. Enough for site-level
// summaries and exports.
func LoadObservations(opts PrepareOptions) ([]dataset.Observation, error) {
	surveyTable, err := survey.Load(SurveyPath(opts.SurveyFile), opts.Survey)
	if err != nil {
		return nil, err
	}

	unpivoted, err := survey.Unpivot(surveyTable, opts.Survey)
	if err != nil {
		return nil, err
	}

	observations, err := survey.ParseObservations(unpivoted)
	if err != nil {
		return nil, err
	}

	return dataset.BuildTransectKeys(observations), nil
}

// PrepareDataset runs the full pipeline down to model-ready rows for the
// target functional group.
func PrepareDataset(opts PrepareOptions) ([]dataset.ModelReadyRow, *dataset.Report, error) {
	if opts.TargetGroup == "" {
		return nil, nil, fmt.Errorf("no target functional group given")
	}

	transects, groups, report, err := BuildTransectTallies(opts)
	if err != nil {
		return nil, nil, err
	}

	rows := dataset.ModelReady(transects, opts.TargetGroup, opts.Grouping)
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("functional group %q not present in the joined data (groups: %s)",
			opts.TargetGroup, strings.Join(groups, ", "))
	}
	report.AddStage("model-ready rows", len(rows))

	return rows, report, nil
}

// CreateModelDataset prepares the model-ready dataset and writes the run's
// artifacts: the CSV under data/model, the quality report under data/result,
// and a Discord warning when the report has findings. Re-runs reuse the
// saved CSV or the pipeline cache when inputs have not changed.
func CreateModelDataset(opts PrepareOptions) (string, *dataset.Report, error) {
	name := opts.DatasetName()

	if saved, err := dataset.GetSavedModelData(name); err == nil && saved != nil {
		return dataset.ModelFilePath(name), nil, nil
	}

	rowCache := cache.NewFileCache[[]dataset.ModelReadyRow]("cache", 0)
	cacheKey := rowCache.GenerateKey(
		SurveyPath(opts.SurveyFile), LabelPath(opts.LabelFile),
		opts.TargetGroup, opts.tallyKind(), opts.Grouping.String())

	var (
		rows   []dataset.ModelReadyRow
		report *dataset.Report
		err    error
	)
	if cached, ok := rowCache.Get(cacheKey); ok {
		fmt.Println("Using cached pipeline output")
		rows = cached
	} else {
		rows, report, err = PrepareDataset(opts)
		if err != nil {
			return "", nil, err
		}
		if err := rowCache.Set(cacheKey, rows); err != nil {
			fmt.Printf("Failed to cache pipeline output: %v\n", err)
		}
	}

	path, err := dataset.SaveModelData(rows, name)
	if err != nil {
		return "", report, err
	}

	if report != nil {
		reportPath, err := output.WriteReport(report, name)
		if err != nil {
			fmt.Printf("Failed to write quality report: %v\n", err)
		} else {
			fmt.Printf("Quality report written to %s\n", reportPath)
		}

		if report.HasFindings() {
			notification.SendDiscordWarnNotification(fmt.Sprintf(
				"Dataset %s prepared with findings.\n\n%s", name, report.Summary()))
		}
	}

	return path, report, nil
}
