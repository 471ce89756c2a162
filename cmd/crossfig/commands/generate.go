package commands

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/bushrat011899/crossfig/pkg/crossfig/gen"
	"github.com/bushrat011899/crossfig/pkg/crossfig/manifest"
	"github.com/bushrat011899/crossfig/pkg/crossfig/observability"
	"github.com/bushrat011899/crossfig/pkg/crossfig/snapshot"
)

func newGenerateCommand() *cobra.Command {
	var (
		outputDir  string
		snapshotDB string
		trace      bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Resolve the manifest and write the generated files",
		Long: `Resolve the manifest against its build facts and write the generated
files: one constants file for the aliases and one file per switch,
holding only the selected block.

With --snapshot-db, the resolved configuration is also recorded so
later runs can be listed with "crossfig history".`,
		Example: `  # Generate into the manifest's output directory
  crossfig generate -m crossfig.yaml

  # Generate and record the run
  crossfig generate --snapshot-db .crossfig/history.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manifest.FromFile(manifestPath)
			if err != nil {
				return err
			}

			opts := []gen.Option{gen.WithLogger(slog.Default())}
			if trace {
				opts = append(opts,
					gen.WithSpanManager(observability.NewSpanManager()),
					gen.WithMetrics(observability.NewMetricsRecorder()),
				)
			}

			res, err := gen.NewResolver(opts...).Resolve(cmd.Context(), m, manifestPath)
			if err != nil {
				return err
			}

			files, err := gen.Render(res)
			if err != nil {
				return err
			}

			dir := outputDir
			if dir == "" {
				dir = res.Output
			}
			if err := gen.Write(dir, files); err != nil {
				return err
			}

			if snapshotDB != "" {
				if err := recordSnapshot(snapshotDB, res); err != nil {
					return fmt.Errorf("record snapshot: %w", err)
				}
			}

			for name := range files {
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", name)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory (default: manifest's output)")
	cmd.Flags().StringVar(&snapshotDB, "snapshot-db", "", "record the run in this SQLite database")
	cmd.Flags().BoolVar(&trace, "trace", false, "emit OpenTelemetry spans and metrics")

	return cmd
}

// recordSnapshot saves a run's outcome to the history database.
func recordSnapshot(path string, res *gen.Result) error {
	store, err := snapshot.NewSQLiteStore(path)
	if err != nil {
		return err
	}
	defer store.Close()

	rec := snapshot.Record{
		RunID:      res.RunID,
		CreatedAt:  time.Now().UTC(),
		Manifest:   res.Manifest,
		Identities: make(map[string]bool, len(res.Aliases)),
		Selections: make(map[string]string, len(res.Selections)),
	}
	for _, a := range res.Aliases {
		rec.Identities[a.Name()] = a.Bool()
	}
	for _, sel := range res.Selections {
		rec.Selections[sel.Switch] = armLabel(sel.Arm, sel.Fallback)
	}
	return store.Save(rec)
}

func armLabel(arm int, fallback bool) string {
	if fallback {
		return "fallback"
	}
	return fmt.Sprintf("arm %d", arm)
}
