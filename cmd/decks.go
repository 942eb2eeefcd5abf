package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dsoni/quizdrill/internal/deck"
)

var decksCmd = &cobra.Command{
	Use:   "decks",
	Short: "List the loaded decks",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveDecksDir(cmd)
		if err != nil {
			return fmt.Errorf("resolve decks dir: %w", err)
		}
		catalog, err := deck.Load(dir)
		if err != nil {
			return fmt.Errorf("load decks: %w", err)
		}

		if catalog.Len() == 0 {
			fmt.Printf("No decks in %s\n", dir)
			return nil
		}

		for _, d := range catalog.Decks() {
			fmt.Printf("%-24s %-36s %3d questions  [%s]\n",
				d.ID, d.Title, len(d.Questions), strings.Join(d.Tags(), ", "))
		}
		return nil
	},
}
