package sweep

import (
	"fmt"
	"strings"
)

// Summary is the end-of-run report. Pure value; rendering beyond String is
// the CLI's concern.
type Summary struct {
	DryRun           bool
	LibrariesScanned int
	LibrariesSkipped int
	TotalCollections int
	KeepCount        int
	RemoveCandidates int
	Deleted          int
	Failed           int
	Skipped          int
}

// Summarize aggregates the plan and execution outcomes into final totals.
func Summarize(plan Plan, outcomes []Outcome, dryRun bool) Summary {
	summary := Summary{
		DryRun:           dryRun,
		LibrariesScanned: len(plan.Libraries) - plan.SkippedLibraries,
		LibrariesSkipped: plan.SkippedLibraries,
		TotalCollections: plan.TotalCollections,
		KeepCount:        plan.KeepCount,
		RemoveCandidates: plan.RemoveCount,
	}
	for _, outcome := range outcomes {
		switch outcome.Status {
		case OutcomeDeleted:
			summary.Deleted++
		case OutcomeFailed:
			summary.Failed++
		case OutcomeSkipped:
			summary.Skipped++
		}
	}
	return summary
}

func (s Summary) String() string {
	var b strings.Builder
	if s.DryRun {
		b.WriteString("dry run complete: ")
		fmt.Fprintf(&b, "%d collections across %d libraries, %d would be removed, %d would remain",
			s.TotalCollections, s.LibrariesScanned, s.RemoveCandidates, s.KeepCount)
	} else {
		b.WriteString("cleanup complete: ")
		fmt.Fprintf(&b, "%d collections across %d libraries, %d removed, %d failed, %d skipped, %d kept",
			s.TotalCollections, s.LibrariesScanned, s.Deleted, s.Failed, s.Skipped, s.KeepCount)
	}
	if s.LibrariesSkipped > 0 {
		fmt.Fprintf(&b, " (%d libraries skipped due to scan errors)", s.LibrariesSkipped)
	}
	return b.String()
}
