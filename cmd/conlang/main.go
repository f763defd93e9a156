// Command conlang applies a constructed language's phonology and morphology
// rules to its lexicon: spelling, derivation of compounds, declension,
// deduplication and alphabetical ordering. Languages live in JSON or YAML
// files, or in PostgreSQL for the db subcommands.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/conlang/internal/app"
	"github.com/heartmarshall/conlang/internal/config"
)

// cli carries state shared by every subcommand once the root command has
// bootstrapped.
type cli struct {
	configPath string
	env        *app.Env
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	c := &cli{}

	cmd := &cobra.Command{
		Use:           "conlang",
		Short:         "Constructed language rule engine",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.Bootstrap(c.configPath)
			if err != nil {
				return err
			}
			c.env = env
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "Config file path (YAML); overrides "+config.PathEnv)

	cmd.AddCommand(
		c.spellCmd(),
		c.soundOutCmd(),
		c.inflectCmd(),
		c.phaseCmd(app.PhaseDerive, "Expand the derived word list into lexicon entries"),
		c.phaseCmd(app.PhaseDecline, "Add every declined form of every lexicon word"),
		c.processCmd(),
		c.cleanCmd(),
		c.exportCSVCmd(),
		c.batchCmd(),
		c.watchCmd(),
		c.dbCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "conlang version %s\n", app.BuildVersion())
			},
		},
	)

	return cmd
}

// phases resolves a --phases flag, falling back to the configured default.
func (c *cli) phases(raw string) ([]string, error) {
	if raw == "" {
		return c.env.Config.Engine.DefaultPhases, nil
	}
	return config.ParsePhases(raw)
}

// outputPath defaults to rewriting the input in place.
func outputPath(in, out string) string {
	if out == "" {
		return in
	}
	return out
}
