package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dsoni/quizdrill/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past quiz sessions",
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

		recs, err := st.ListSessions(cmd.Context(), user)
		if err != nil {
			return fmt.Errorf("list sessions: %w", err)
		}
		if len(recs) == 0 {
			fmt.Printf("No sessions recorded for %s yet.\n", user)
			return nil
		}

		for _, rec := range recs {
			percent := 0
			if rec.Total > 0 {
				percent = rec.Score * 100 / rec.Total
			}
			fmt.Printf("%s  %-24s %3d / %-3d  %3d%%\n",
				rec.CreatedAt.Format("2006-01-02 15:04"), rec.TestID, rec.Score, rec.Total, percent)
		}
		return nil
	},
}
