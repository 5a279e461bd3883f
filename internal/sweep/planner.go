package sweep

import (
	"plexsweep/internal/policy"
	"plexsweep/internal/services/plex"
)

// LibraryPlan partitions one library's classified collections.
type LibraryPlan struct {
	Library plex.Library
	Keep    []Record
	Remove  []Record
	ScanErr error
}

// Total returns the number of classified collections in the library.
func (lp LibraryPlan) Total() int {
	return len(lp.Keep) + len(lp.Remove)
}

// Plan aggregates scan results into a run-wide view. Built once per run and
// read-only afterward; global totals reflect only successfully scanned
// libraries.
type Plan struct {
	Libraries        []LibraryPlan
	TotalCollections int
	KeepCount        int
	RemoveCount      int
	SkippedLibraries int
}

// BuildPlan partitions scan results into keep/remove lists and computes
// per-library and global totals. Pure aggregation; no I/O.
func BuildPlan(scans []LibraryScan) Plan {
	plan := Plan{Libraries: make([]LibraryPlan, 0, len(scans))}
	for _, scan := range scans {
		lp := LibraryPlan{Library: scan.Library, ScanErr: scan.Err}
		if scan.Err != nil {
			plan.SkippedLibraries++
			plan.Libraries = append(plan.Libraries, lp)
			continue
		}
		for _, record := range scan.Records {
			if record.Decision == policy.RemovalCandidate {
				lp.Remove = append(lp.Remove, record)
			} else {
				lp.Keep = append(lp.Keep, record)
			}
		}
		plan.TotalCollections += lp.Total()
		plan.KeepCount += len(lp.Keep)
		plan.RemoveCount += len(lp.Remove)
		plan.Libraries = append(plan.Libraries, lp)
	}
	return plan
}
