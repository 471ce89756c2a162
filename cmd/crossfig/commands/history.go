package commands

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/bushrat011899/crossfig/pkg/crossfig/snapshot"
)

func newHistoryCommand() *cobra.Command {
	var (
		snapshotDB string
		limit      int
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs for the manifest",
		Long: `List runs previously recorded with "crossfig generate --snapshot-db",
newest first. Each entry shows the run ID, when it happened, and which
blocks every switch selected.`,
		Example: `  crossfig history --snapshot-db .crossfig/history.db
  crossfig history --snapshot-db .crossfig/history.db --limit 5 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := snapshot.NewSQLiteStore(snapshotDB)
			if err != nil {
				return err
			}
			defer store.Close()

			recs, err := store.List(manifestPath, limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(recs)
			}

			if len(recs) == 0 {
				fmt.Fprintf(out, "no recorded runs for %s\n", manifestPath)
				return nil
			}
			for _, rec := range recs {
				fmt.Fprintf(out, "%s  %s\n", rec.RunID, rec.CreatedAt.Format("2006-01-02 15:04:05 MST"))
				for _, name := range sortedKeys(rec.Identities) {
					fmt.Fprintf(out, "  alias  %-20s %v\n", name, rec.Identities[name])
				}
				for _, name := range sortedKeys(rec.Selections) {
					fmt.Fprintf(out, "  switch %-20s %s\n", name, rec.Selections[name])
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&snapshotDB, "snapshot-db", ".crossfig/history.db", "SQLite database holding recorded runs")
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum runs to list; negative for all")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print records as JSON")

	return cmd
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
