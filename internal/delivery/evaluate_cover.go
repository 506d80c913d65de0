package delivery

import (
	"fmt"
	"sort"
	"sync"

	"github.com/gammazero/workerpool"
	"github.com/reefguard/benthic-survey-poc/internal/dataset"
	"github.com/reefguard/benthic-survey-poc/internal/model"
	"github.com/schollz/progressbar/v3"
)

const fitRetries = 3

// EvaluateCover prepares the transect counts once, then fits one model per
// functional group on the external backend. The pipeline itself stays
// sequential; only the blocking fit calls fan out.
func EvaluateCover(opts PrepareOptions, family, formula string) ([]model.FitResult, *dataset.Report, error) {
	transects, groups, report, err := BuildTransectTallies(opts)
	if err != nil {
		return nil, nil, err
	}

	if opts.TargetGroup != "" {
		groups = []string{opts.TargetGroup}
	}
	if len(groups) == 0 {
		return nil, nil, fmt.Errorf("no functional groups to fit")
	}

	var (
		mu          sync.Mutex
		results     []model.FitResult
		progressBar = progressbar.Default(int64(len(groups)), "Fitting cover models")
	)

	wp := workerpool.New(4)
	errChan := make(chan error, 1)
	var stopProcessing sync.Once

	for _, group := range groups {
		g := group
		wp.Submit(func() {
			rows := dataset.ModelReady(transects, g, opts.Grouping)
			if len(rows) == 0 {
				progressBar.Add(1)
				return
			}

			result, err := model.FitCoverModel(rows, family, formula, fitRetries)
			if err != nil {
				stopProcessing.Do(func() { errChan <- fmt.Errorf("fit failed for group %s: %w", g, err) })
				return
			}
			result.Group = g

			mu.Lock()
			results = append(results, *result)
			progressBar.Add(1)
			mu.Unlock()
		})
	}

	go func() {
		wp.StopWait()
		close(errChan)
	}()

	if err := <-errChan; err != nil {
		return nil, report, err
	}

	if len(results) == 0 {
		return nil, report, fmt.Errorf("no group had model-ready rows to fit")
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Group < results[j].Group })
	return results, report, nil
}
