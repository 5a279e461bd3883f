package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"plexsweep/internal/services/plex"
)

func newLibrariesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "libraries",
		Short: "List libraries on the configured Plex server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			if cfg == nil {
				return errors.New("configuration not loaded")
			}

			conn := plex.NewConnection(cfg)
			identity, err := conn.Identity(cmd.Context())
			if err != nil {
				return fmt.Errorf("connect to Plex server at %s: %w", cfg.Plex.URL, err)
			}

			libraries, err := conn.Libraries(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Server: %s (version %s)\n", identity.Name, identity.Version)
			if len(libraries) == 0 {
				fmt.Fprintln(out, "No libraries found.")
				return nil
			}

			rows := make([][]string, 0, len(libraries))
			for _, lib := range libraries {
				collections, err := conn.Collections(cmd.Context(), lib)
				count := "-"
				if err == nil {
					count = strconv.Itoa(len(collections))
				}
				rows = append(rows, []string{lib.Key, lib.Title, lib.Type, count})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Key", "Title", "Type", "Collections"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight},
			))
			return nil
		},
	}
}
