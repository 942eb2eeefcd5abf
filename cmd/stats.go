package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dsoni/quizdrill/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show all-time accuracy per deck",
	RunE: func(cmd *cobra.Command, args []string) error {
		user := resolveUser(cmd)
		if user == "" {
			fmt.Println("No user configured; history is not recorded anonymously.")
			return nil
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		acc, err := st.AccuracyByTest(cmd.Context(), user)
		if err != nil {
			return fmt.Errorf("query accuracy: %w", err)
		}
		if len(acc) == 0 {
			fmt.Printf("No answers recorded for %s yet.\n", user)
			return nil
		}

		fmt.Printf("Accuracy for %s\n\n", user)
		for _, a := range acc {
			percent := a.Correct * 100 / a.Total
			fmt.Printf("%-24s %4d answered  %4d correct  %3d%%\n",
				a.TestID, a.Total, a.Correct, percent)
		}
		return nil
	},
}
