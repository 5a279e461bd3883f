package sweep

import (
	"context"
	"fmt"
	"log/slog"

	"plexsweep/internal/logging"
	"plexsweep/internal/policy"
	"plexsweep/internal/services/plex"
)

// OutcomeStatus records what happened to one removal candidate.
type OutcomeStatus int

const (
	OutcomeDeleted OutcomeStatus = iota
	OutcomeSkipped
	OutcomeFailed
)

func (s OutcomeStatus) String() string {
	switch s {
	case OutcomeDeleted:
		return "deleted"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(s))
	}
}

// Outcome is the execution result for one collection. Created only when not
// in dry-run mode.
type Outcome struct {
	Library    plex.Library
	Collection plex.Collection
	Status     OutcomeStatus
	Err        error
}

// ConfirmFunc asks the caller whether a library's candidates may be deleted.
// A non-interactive caller supplies a function returning a fixed answer.
type ConfirmFunc func(lib plex.Library, candidates []Record) (bool, error)

// Gate enforces the dry-run default and per-library confirmation before any
// deletion reaches the server.
type Gate struct {
	conn    plex.Connection
	confirm ConfirmFunc
	dryRun  bool
	logger  *slog.Logger
}

// NewGate constructs a gate. A nil confirm function declines every library.
func NewGate(conn plex.Connection, confirm ConfirmFunc, dryRun bool, logger *slog.Logger) *Gate {
	return &Gate{
		conn:    conn,
		confirm: confirm,
		dryRun:  dryRun,
		logger:  logging.NewComponentLogger(logger, "gate"),
	}
}

// Execute walks the plan and deletes confirmed removal candidates. In
// dry-run mode nothing is deleted and no outcomes are produced. Confirmation
// scope is per library: a decline skips that library only. Delete failures
// are isolated per collection. A record classified Keep is never deleted,
// regardless of confirmation or force flags.
func (g *Gate) Execute(ctx context.Context, plan Plan) ([]Outcome, error) {
	if g.dryRun {
		g.logger.Info("dry run: no collections will be removed",
			logging.Int("candidates", plan.RemoveCount))
		return nil, nil
	}

	var outcomes []Outcome
	for _, lp := range plan.Libraries {
		if lp.ScanErr != nil || len(lp.Remove) == 0 {
			continue
		}

		confirmed := false
		if g.confirm != nil {
			ok, err := g.confirm(lp.Library, lp.Remove)
			if err != nil {
				return outcomes, fmt.Errorf("confirm removal for library %q: %w", lp.Library.Title, err)
			}
			confirmed = ok
		}
		if !confirmed {
			g.logger.Info("skipping library, removal declined",
				logging.String("library", lp.Library.Title),
				logging.Int("candidates", len(lp.Remove)))
			for _, record := range lp.Remove {
				outcomes = append(outcomes, Outcome{
					Library:    lp.Library,
					Collection: record.Collection,
					Status:     OutcomeSkipped,
				})
			}
			continue
		}

		outcomes = append(outcomes, g.deleteCandidates(ctx, lp)...)
	}
	return outcomes, nil
}

func (g *Gate) deleteCandidates(ctx context.Context, lp LibraryPlan) []Outcome {
	outcomes := make([]Outcome, 0, len(lp.Remove))
	for _, record := range lp.Remove {
		// Label-based preservation is absolute within a run.
		if record.Decision != policy.RemovalCandidate {
			continue
		}
		outcome := Outcome{Library: lp.Library, Collection: record.Collection}
		if err := g.conn.Delete(ctx, record.Collection); err != nil {
			g.logger.Error("failed to remove collection",
				logging.String("collection", record.Collection.Title),
				logging.Error(err))
			outcome.Status = OutcomeFailed
			outcome.Err = err
		} else {
			g.logger.Info("removed collection",
				logging.String("library", lp.Library.Title),
				logging.String("collection", record.Collection.Title))
			outcome.Status = OutcomeDeleted
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}
