package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dsoni/quizdrill/internal/deck"
	"github.com/dsoni/quizdrill/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "quizdrill",
	Short: "Tag-balanced quiz drills in the terminal",
	Long: "Quizdrill loads multiple-choice decks from YAML files and runs adaptive\n" +
		"drills: questions you miss often come up first, every tag gets a fair\n" +
		"share, and wrong answers can be repeated until they stick.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides QUIZDRILL_DB env var)")
	rootCmd.PersistentFlags().String("decks", "", "Path to the deck directory (overrides QUIZDRILL_DECKS env var)")
	rootCmd.PersistentFlags().String("user", "", "History user ID (overrides QUIZDRILL_USER env var)")

	rootCmd.AddCommand(decksCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then QUIZDRILL_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// resolveDecksDir returns the deck directory using --decks flag, then
// QUIZDRILL_DECKS env var, then the default XDG path.
func resolveDecksDir(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("decks"); p != "" {
		return p, nil
	}
	return deck.DefaultDir()
}

// resolveUser returns the history user using --user flag, then
// QUIZDRILL_USER env var, then the OS username.
func resolveUser(cmd *cobra.Command) string {
	if u, _ := cmd.Flags().GetString("user"); u != "" {
		return u
	}
	return store.CurrentUser()
}
