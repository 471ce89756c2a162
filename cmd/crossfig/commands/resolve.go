package commands

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/bushrat011899/crossfig/pkg/crossfig/gen"
	"github.com/bushrat011899/crossfig/pkg/crossfig/manifest"
)

func newResolveCommand() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve the manifest and print the outcome without writing files",
		Long: `Resolve the manifest against its build facts and print every alias's
resolved state and every switch's selected arm. Nothing is written;
use this to inspect what "generate" would do.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manifest.FromFile(manifestPath)
			if err != nil {
				return err
			}

			res, err := gen.NewResolver(gen.WithLogger(slog.Default())).
				Resolve(cmd.Context(), m, manifestPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				return json.NewEncoder(out).Encode(resolveReport(res))
			}

			for _, a := range res.Aliases {
				vis := "private"
				if a.Exported() {
					vis = "pub"
				}
				fmt.Fprintf(out, "alias %-20s %-8s %-8s %s\n", a.Name(), a.Kind(), vis, a.Cond)
			}
			for _, sel := range res.Selections {
				fmt.Fprintf(out, "switch %-19s selected %s -> %s\n",
					sel.Switch, armLabel(sel.Arm, sel.Fallback), sel.File)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output in JSON format")

	return cmd
}

type aliasReport struct {
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
	Pub     bool   `json:"pub"`
	Cond    string `json:"cond"`
}

type switchReport struct {
	Name     string `json:"name"`
	Selected string `json:"selected"`
	File     string `json:"file"`
}

type report struct {
	RunID    string         `json:"run_id"`
	Aliases  []aliasReport  `json:"aliases"`
	Switches []switchReport `json:"switches"`
}

func resolveReport(res *gen.Result) report {
	r := report{RunID: res.RunID}
	for _, a := range res.Aliases {
		r.Aliases = append(r.Aliases, aliasReport{
			Name:    a.Name(),
			Enabled: a.Bool(),
			Pub:     a.Exported(),
			Cond:    a.Cond,
		})
	}
	for _, sel := range res.Selections {
		r.Switches = append(r.Switches, switchReport{
			Name:     sel.Switch,
			Selected: armLabel(sel.Arm, sel.Fallback),
			File:     sel.File,
		})
	}
	return r
}
