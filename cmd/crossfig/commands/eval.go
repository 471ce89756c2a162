package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bushrat011899/crossfig/pkg/crossfig"
	"github.com/bushrat011899/crossfig/pkg/crossfig/buildenv"
	"github.com/bushrat011899/crossfig/pkg/crossfig/manifest"
)

func newEvalCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval <condition>",
		Short: "Evaluate one condition expression against the manifest",
		Long: `Evaluate a condition expression in the manifest's scope: its aliases
are declared first, then the expression is resolved against the same
build facts. Prints "enabled" or "disabled".`,
		Example: `  crossfig eval 'all(std, not(log))'
  crossfig eval 'cfg(os=linux)'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manifest.FromFile(manifestPath)
			if err != nil {
				return err
			}
			if err := m.Validate(); err != nil {
				return err
			}

			cond, err := crossfig.ParseCond(args[0])
			if err != nil {
				return err
			}

			env := buildenv.New(
				buildenv.WithFeatures(m.Build.Features...),
				buildenv.WithTags(m.Build.Tags...),
				buildenv.WithTarget(m.Build.OS, m.Build.Arch),
			)

			scope := crossfig.NewScope()
			for _, a := range m.Aliases {
				aliasCond, err := crossfig.ParseCond(a.Cond)
				if err != nil {
					return fmt.Errorf("alias %q: %w", a.Name, err)
				}
				if _, err := scope.Declare(env, crossfig.AliasDecl{
					Name: a.Name, Doc: a.Doc, Pub: a.Pub, Cond: aliasCond,
				}); err != nil {
					return err
				}
			}

			kind, err := crossfig.NewEvaluator(scope, env).Eval(cond)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), kind)
			return nil
		},
	}

	return cmd
}
