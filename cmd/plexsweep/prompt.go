package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"

	"plexsweep/internal/logging"
	"plexsweep/internal/services/plex"
	"plexsweep/internal/sweep"
)

// confirmWord is what the operator must type before a library's collections
// are deleted.
const confirmWord = "DELETE"

// newLibraryConfirm builds the per-library confirmation prompt used in
// execute mode. When stdin is not a terminal the prompt cannot be answered,
// so every library is declined rather than deleted silently.
func newLibraryConfirm(out io.Writer, logger *slog.Logger) sweep.ConfirmFunc {
	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())

	return func(lib plex.Library, candidates []sweep.Record) (bool, error) {
		if !interactive {
			logger.Warn("stdin is not a terminal, declining removal",
				logging.String("library", lib.Title),
				logging.Int("candidates", len(candidates)))
			return false, nil
		}

		fmt.Fprintf(out, "\nAbout to delete %d collection(s) from library %q:\n", len(candidates), lib.Title)
		for _, record := range candidates {
			fmt.Fprintf(out, "  - %s (%d items)\n", record.Collection.Title, record.Collection.ChildCount)
		}

		prompt := promptui.Prompt{
			Label: fmt.Sprintf("Delete these collections from %q? (type '%s' to confirm)", lib.Title, confirmWord),
			Validate: func(input string) error {
				if input != confirmWord && input != "" {
					return fmt.Errorf("type '%s' to confirm or press Enter to skip", confirmWord)
				}
				return nil
			},
		}

		result, err := prompt.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) {
				return false, errors.New("confirmation interrupted")
			}
			if errors.Is(err, promptui.ErrAbort) {
				return false, nil
			}
			return false, err
		}
		return result == confirmWord, nil
	}
}
