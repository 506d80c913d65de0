package ui

import (
	"fmt"

	"github.com/reefguard/benthic-survey-poc/internal/delivery"
	"github.com/reefguard/benthic-survey-poc/internal/notification"
)

// AnalyzeCover handles the UI for fitting cover models on the external
// statistics backend.
func AnalyzeCover() {
	opts, err := readPrepareOptions(false)
	if err != nil {
		PrintError(err.Error())
		return
	}

	opts.TargetGroup = ReadString("Enter the functional group to model (empty fits every group): ")

	family := ReadString("Model family [beta-binomial]: ")
	if family == "" {
		family = "beta-binomial"
	}
	formula := ReadString("Model formula [count | trials(total) ~ trop_year + (1|reef/site_id)]: ")
	if formula == "" {
		formula = "count | trials(total) ~ trop_year + (1|reef/site_id)"
	}

	results, report, err := delivery.EvaluateCover(opts, family, formula)
	if err != nil {
		PrintError(fmt.Sprintf("Error fitting cover models: %s", err.Error()))
		notification.SendDiscordErrorNotification(fmt.Sprintf("Benthic survey CLI\n\nError fitting cover models: %s", err.Error()))
		return
	}

	if report != nil && report.HasFindings() {
		PrintWarning(report.Summary())
	}

	for _, result := range results {
		fmt.Printf("%s\nGroup: %s%s\n", ColorGreen, result.Group, ColorReset)
		fmt.Printf("%-28s %10s %10s %10s %10s\n", "term", "mean", "sd", "2.5%", "97.5%")
		for _, term := range result.Terms {
			fmt.Printf("%-28s %10.4f %10.4f %10.4f %10.4f\n",
				term.Term, term.Mean, term.SD, term.Lower95, term.Upper95)
		}
		fmt.Printf("max Rhat %.3f, min ESS %.0f, divergences %d\n",
			result.Diagnostics.MaxRhat, result.Diagnostics.MinESS, result.Diagnostics.Divergences)
		if !result.Converged() {
			PrintWarning(fmt.Sprintf("Sampler diagnostics look off for group %s; treat these estimates as unreliable.", result.Group))
		}
	}

	PrintSuccess(fmt.Sprintf("Fitted %d cover model(s).", len(results)))
	notification.SendDiscordSuccessNotification(fmt.Sprintf("Benthic survey CLI\n\nFitted %d cover model(s) for %s.", len(results), opts.DatasetName()))
}
