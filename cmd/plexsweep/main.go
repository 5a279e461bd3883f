package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"plexsweep/internal/services"
)

// Exit codes: 0 on a completed run (dry runs and declined confirmations
// included), 2 when a connection or configuration failure aborts before any
// scanning, 1 for everything else.
func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		if services.IsFatal(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
