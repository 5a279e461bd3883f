package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"plexsweep/internal/config"
	"plexsweep/internal/history"
	"plexsweep/internal/logging"
	"plexsweep/internal/policy"
	"plexsweep/internal/services/plex"
	"plexsweep/internal/sweep"
)

func newCleanCommand(ctx *commandContext) *cobra.Command {
	var (
		execute       bool
		noConfirm     bool
		libraryFilter string
		labels        []string
		patterns      []string
		debug         bool
	)

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Scan libraries and remove unprotected collections",
		Long: `Scan Plex libraries, classify every collection against the configured
keep labels and patterns, and remove the unprotected ones.

Runs in dry-run mode unless --execute is given. In execute mode each
library's removals must be confirmed by typing DELETE, unless --no-confirm
is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			if cfg == nil {
				return errors.New("configuration not loaded")
			}

			logger, err := newCommandLogger(cfg, cmd.ErrOrStderr(), debug)
			if err != nil {
				return err
			}

			opts := cleanOptions{
				execute:       execute,
				noConfirm:     noConfirm || cfg.Cleanup.NoConfirm,
				libraryFilter: firstNonEmpty(libraryFilter, cfg.Cleanup.Library),
				labels:        overrideList(labels, cfg.Cleanup.DeleteLabels),
				patterns:      overrideList(patterns, cfg.Cleanup.DeleteLabelPatterns),
			}
			return runClean(cmd, cfg, logger, opts)
		},
	}

	cmd.Flags().BoolVar(&execute, "execute", false, "Perform deletions instead of the default dry run")
	cmd.Flags().BoolVar(&noConfirm, "no-confirm", false, "Skip the per-library confirmation prompt")
	cmd.Flags().StringVarP(&libraryFilter, "library", "l", "", "Restrict the run to one library by name")
	cmd.Flags().StringArrayVar(&labels, "delete-label", nil, "Label name that protects a collection (repeatable, overrides config)")
	cmd.Flags().StringArrayVar(&patterns, "delete-label-pattern", nil, "Glob pattern for protecting labels (repeatable, overrides config)")
	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")

	return cmd
}

type cleanOptions struct {
	execute       bool
	noConfirm     bool
	libraryFilter string
	labels        []string
	patterns      []string
}

func runClean(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, opts cleanOptions) error {
	out := cmd.OutOrStdout()
	started := time.Now()
	runID := uuid.NewString()

	dryRun := cfg.Cleanup.DryRun
	if opts.execute {
		dryRun = false
	}

	pol, err := policy.New(opts.labels, opts.patterns)
	if err != nil {
		return err
	}

	logger.Info("starting run",
		logging.String("run_id", runID),
		logging.Bool("dry_run", dryRun),
		logging.Bool("restricted_policy", pol.Restricted()))

	conn := plex.NewConnection(cfg)
	identity, err := conn.Identity(cmd.Context())
	if err != nil {
		return fmt.Errorf("connect to Plex server at %s: %w", cfg.Plex.URL, err)
	}
	logger.Info("connected to server",
		logging.String("server", identity.Name),
		logging.String("version", identity.Version))

	if !dryRun {
		lock := flock.New(cfg.LockPath())
		locked, err := lock.TryLock()
		if err != nil {
			return fmt.Errorf("acquire run lock: %w", err)
		}
		if !locked {
			return fmt.Errorf("another plexsweep run holds the lock at %s", cfg.LockPath())
		}
		defer func() {
			_ = lock.Unlock()
		}()
	}

	scanner := sweep.NewScanner(conn, pol, opts.libraryFilter, logger)
	scans, err := scanner.Scan(cmd.Context())
	if err != nil {
		return err
	}
	if len(scans) == 0 {
		if opts.libraryFilter != "" {
			fmt.Fprintf(out, "No libraries matched filter %q; nothing to do.\n", opts.libraryFilter)
		} else {
			fmt.Fprintln(out, "Server reported no libraries; nothing to do.")
		}
		return nil
	}

	plan := sweep.BuildPlan(scans)
	fmt.Fprintln(out, renderPlan(plan, dryRun))

	var confirm sweep.ConfirmFunc
	if opts.noConfirm {
		confirm = func(plex.Library, []sweep.Record) (bool, error) { return true, nil }
	} else {
		confirm = newLibraryConfirm(out, logger)
	}

	gate := sweep.NewGate(conn, confirm, dryRun, logger)
	outcomes, execErr := gate.Execute(cmd.Context(), plan)

	summary := sweep.Summarize(plan, outcomes, dryRun)
	if section := renderOutcomes(outcomes); section != "" {
		fmt.Fprintln(out, section)
	}
	fmt.Fprintln(out, summary.String())

	recordHistory(cmd, cfg, logger, runID, started, summary)

	return execErr
}

// recordHistory persists the run summary. Failures are logged, never fatal;
// history is an audit aid, not part of the run contract.
func recordHistory(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, runID string, started time.Time, summary sweep.Summary) {
	if !cfg.History.Enabled {
		return
	}
	store, err := history.Open(cfg.HistoryDBPath())
	if err != nil {
		logger.Warn("could not open history store", logging.Error(err))
		return
	}
	defer store.Close()
	if _, err := store.RecordRun(cmd.Context(), history.NewRun(runID, started, time.Now(), summary)); err != nil {
		logger.Warn("could not record run history", logging.Error(err))
	}
}

func newCommandLogger(cfg *config.Config, w io.Writer, debug bool) (*slog.Logger, error) {
	level := cfg.Logging.Level
	if debug {
		level = "debug"
	}
	return logging.New(logging.Options{
		Level:  level,
		Format: cfg.Logging.Format,
		Writer: w,
	})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// overrideList returns the flag values when any were given, otherwise the
// configured ones. Flags replace rather than extend config.
func overrideList(flagValues, configValues []string) []string {
	if len(flagValues) > 0 {
		return flagValues
	}
	return configValues
}
