package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dsoni/quizdrill/internal/app"
	"github.com/dsoni/quizdrill/internal/deck"
	"github.com/dsoni/quizdrill/internal/store"
)

// runApp loads the decks, opens the store, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	decksDir, err := resolveDecksDir(cmd)
	if err != nil {
		return fmt.Errorf("resolve decks dir: %w", err)
	}
	catalog, err := deck.Load(decksDir)
	if err != nil {
		return fmt.Errorf("load decks: %w", err)
	}

	opts := app.Options{
		Catalog: catalog,
		User:    resolveUser(cmd),
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "History database unavailable:", err)
		fmt.Fprintln(os.Stderr, "Running without history.")
		opts.User = ""
	} else {
		defer st.Close()
		opts.Store = st
	}

	return app.Run(opts)
}
