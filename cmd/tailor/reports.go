package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fwojciec/tailor"
)

// Run executes the reports command.
func (c *ReportsCmd) Run(deps *Dependencies) error {
	filter := tailor.ReportFilter{Limit: c.Limit}
	if c.Hash != "" {
		filter.ContentHash = &c.Hash
	}

	reports, err := deps.Reports.FindReports(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tailor.ErrorMessage(err))
		return err
	}

	if len(reports) == 0 {
		fmt.Fprintln(deps.Stdout, "No reports found. Use 'tailor analyze' to create one.")
		return nil
	}

	for _, r := range reports {
		fmt.Fprintf(deps.Stdout, "%s  %s  %3s%%  %s\n",
			r.ID, r.CreatedAt.Local().Format(time.DateTime), formatScore(r.Analysis.Score), r.FileName)
	}
	return nil
}

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	report, err := deps.Reports.FindReportByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tailor.ErrorMessage(err))
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Fprintf(deps.Stdout, "Report:  %s\n", report.ID)
	fmt.Fprintf(deps.Stdout, "File:    %s (%s)\n", report.FileName, report.ContentHash)
	fmt.Fprintf(deps.Stdout, "Text:    %s, %s\n", report.Method, report.Outcome)
	fmt.Fprintf(deps.Stdout, "Created: %s\n\n", report.CreatedAt.Local().Format(time.DateTime))
	fmt.Fprint(deps.Stdout, tailor.FormatAnalysis(&report.Analysis))
	if c.Text {
		fmt.Fprintf(deps.Stdout, "\nResume Text:\n%s\n", report.ResumeText)
	}
	return nil
}

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return tailor.Errorf(tailor.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Reports.DeleteReport(deps.Ctx, c.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tailor.ErrorMessage(err))
		if tailor.ErrorCode(err) == tailor.ENOTFOUND {
			fmt.Fprintln(deps.Stderr, "Hint: Use 'tailor reports' to see saved reports")
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted report %s\n", c.ID)
	return nil
}

func formatScore(score float64) string {
	if score == float64(int64(score)) {
		return fmt.Sprintf("%d", int64(score))
	}
	return fmt.Sprintf("%.1f", score)
}
