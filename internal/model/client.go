// Package model hands prepared tables to the external Bayesian statistics
// backend and returns what the sampler reported. Fitting itself (MCMC,
// convergence checks) happens on the other side of the wire.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/reefguard/benthic-survey-poc/internal/dataset"
	"github.com/reefguard/benthic-survey-poc/internal/properties"
)

type FitRequest struct {
	Family     string                  `json:"family"`
	Formula    string                  `json:"formula"`
	Chains     int                     `json:"chains"`
	Iterations int                     `json:"iterations"`
	Data       []dataset.ModelReadyRow `json:"data"`
}

// TermSummary is the posterior summary of one model term.
type TermSummary struct {
	Term    string  `json:"term"`
	Mean    float64 `json:"mean"`
	SD      float64 `json:"sd"`
	Lower95 float64 `json:"lower_95"`
	Upper95 float64 `json:"upper_95"`
}

// Diagnostics is what the sampler reported about its own run.
type Diagnostics struct {
	MaxRhat     float64 `json:"max_rhat"`
	MinESS      float64 `json:"min_ess"`
	Divergences int     `json:"divergences"`
}

type FitResult struct {
	Group       string        `json:"group"`
	Terms       []TermSummary `json:"terms"`
	Diagnostics Diagnostics   `json:"diagnostics"`
}

// Converged applies the usual sampler thresholds to the diagnostics.
func (r FitResult) Converged() bool {
	return r.Diagnostics.MaxRhat <= 1.01 && r.Diagnostics.Divergences == 0
}

const (
	defaultChains     = 4
	defaultIterations = 2000
	fitTimeout        = 15 * time.Minute
)

// FitCoverModel posts the model-ready table to the statistics backend and
// blocks until the sampler is done. Transport failures are retried with a
// pause, like every other flaky research service.
func FitCoverModel(rows []dataset.ModelReadyRow, family, formula string, retries int) (*FitResult, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("no model data to fit")
	}

	req := FitRequest{
		Family:     family,
		Formula:    formula,
		Chains:     defaultChains,
		Iterations: defaultIterations,
		Data:       rows,
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal fit request: %w", err)
	}

	client := &http.Client{Timeout: fitTimeout}
	url := properties.StatsBackendUrl() + "/v1/fit"

	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			fmt.Printf("Retrying fit request... (%d/%d)\n", attempt, retries)
			time.Sleep(10 * time.Second)
		}

		resp, err := client.Post(url, "application/json", bytes.NewReader(payload))
		if err != nil {
			lastErr = err
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("stats backend returned status %d: %s", resp.StatusCode, body)
		}

		var result FitResult
		if err := json.Unmarshal(body, &result); err != nil {
			return nil, fmt.Errorf("failed to parse fit response: %w", err)
		}
		if len(rows) > 0 && result.Group == "" {
			result.Group = rows[0].Group
		}
		return &result, nil
	}

	return nil, fmt.Errorf("fit request failed after %d retries: %w", retries, lastErr)
}
