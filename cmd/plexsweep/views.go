package main

import (
	"fmt"
	"strconv"
	"strings"

	"plexsweep/internal/sweep"
)

// renderPlan shows the operator what the run found before anything happens.
func renderPlan(plan sweep.Plan, dryRun bool) string {
	var b strings.Builder

	mode := "EXECUTE"
	if dryRun {
		mode = "DRY RUN"
	}
	fmt.Fprintf(&b, "Mode: %s\n", mode)

	headers := []string{"Library", "Collection", "Items", "Decision", "Reason"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft}

	var rows [][]string
	for _, lp := range plan.Libraries {
		if lp.ScanErr != nil {
			rows = append(rows, []string{lp.Library.Title, "-", "-", "skipped", lp.ScanErr.Error()})
			continue
		}
		for _, record := range lp.Keep {
			rows = append(rows, planRow(record))
		}
		for _, record := range lp.Remove {
			rows = append(rows, planRow(record))
		}
	}
	if len(rows) == 0 {
		b.WriteString("No collections found.")
		return b.String()
	}

	b.WriteString(renderTable(headers, rows, aligns))
	fmt.Fprintf(&b, "\n%d collections: %d to keep, %d removal candidates",
		plan.TotalCollections, plan.KeepCount, plan.RemoveCount)
	if plan.SkippedLibraries > 0 {
		fmt.Fprintf(&b, ", %d libraries skipped", plan.SkippedLibraries)
	}
	return b.String()
}

func planRow(record sweep.Record) []string {
	return []string{
		record.Library.Title,
		record.Collection.Title,
		strconv.Itoa(record.Collection.ChildCount),
		record.Decision.String(),
		record.Reason,
	}
}

// renderOutcomes summarizes execute-mode results. Empty for dry runs.
func renderOutcomes(outcomes []sweep.Outcome) string {
	if len(outcomes) == 0 {
		return ""
	}

	headers := []string{"Library", "Collection", "Outcome", "Error"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft}

	rows := make([][]string, 0, len(outcomes))
	for _, outcome := range outcomes {
		errText := ""
		if outcome.Err != nil {
			errText = outcome.Err.Error()
		}
		rows = append(rows, []string{
			outcome.Library.Title,
			outcome.Collection.Title,
			outcome.Status.String(),
			errText,
		})
	}
	return renderTable(headers, rows, aligns)
}
