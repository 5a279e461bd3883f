package sweep

import (
	"plexsweep/internal/policy"
	"plexsweep/internal/services/plex"
)

// Record is the classification of one collection. Immutable after creation.
type Record struct {
	Library    plex.Library
	Collection plex.Collection
	Decision   policy.Decision
	// MatchedLabels lists the labels that satisfied the keep criterion.
	MatchedLabels []string
	Reason        string
}

// LibraryScan holds one library's classified collections, or the error that
// prevented listing them.
type LibraryScan struct {
	Library plex.Library
	Records []Record
	Err     error
}
