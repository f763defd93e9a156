package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/conlang/internal/adapter/csvexport"
	"github.com/heartmarshall/conlang/internal/adapter/langfile"
	"github.com/heartmarshall/conlang/internal/adapter/postgres"
	"github.com/heartmarshall/conlang/internal/adapter/postgres/language"
	lexiconsvc "github.com/heartmarshall/conlang/internal/service/lexicon"
)

func (c *cli) dbCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Store and process languages in PostgreSQL",
	}

	cmd.AddCommand(
		c.dbMigrateCmd(),
		c.dbImportCmd(),
		c.dbProcessCmd(),
		c.dbCleanCmd(),
		c.dbExportCmd(),
		c.dbListCmd(),
		c.dbDeleteCmd(),
	)
	return cmd
}

// withService connects to the database, builds the lexicon service and
// closes the pool when fn returns.
func (c *cli) withService(ctx context.Context, fn func(svc *lexiconsvc.Service) error) error {
	pool, err := postgres.NewPool(ctx, c.env.Config.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	svc := lexiconsvc.NewService(c.env.Log, language.New(pool), c.env.Pipeline, postgres.NewTxManager(pool))
	return fn(svc)
}

func (c *cli) dbMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.env.Config.Database.Validate(); err != nil {
				return err
			}
			return postgres.Migrate(cmd.Context(), c.env.Config.Database.DSN, c.env.Log)
		},
	}
}

func (c *cli) dbImportCmd() *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Store a language file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, err := langfile.Load(args[0])
			if err != nil {
				return err
			}
			return c.withService(cmd.Context(), func(svc *lexiconsvc.Service) error {
				return svc.Import(cmd.Context(), lexiconsvc.ImportInput{Language: lang, Replace: replace})
			})
		},
	}
	cmd.Flags().BoolVar(&replace, "replace", false, "Overwrite a stored language with the same name")
	return cmd
}

func (c *cli) dbProcessCmd() *cobra.Command {
	var phasesRaw string

	cmd := &cobra.Command{
		Use:   "process NAME",
		Short: "Run the pipeline over a stored language",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			phases, err := c.phases(phasesRaw)
			if err != nil {
				return err
			}
			return c.withService(cmd.Context(), func(svc *lexiconsvc.Service) error {
				results, err := svc.Process(cmd.Context(), args[0], phases)
				printResults(cmd.OutOrStdout(), results)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&phasesRaw, "phases", "", "Comma-separated phases (default from engine.default_phases)")
	return cmd
}

func (c *cli) dbCleanCmd() *cobra.Command {
	var input lexiconsvc.CleanInput

	cmd := &cobra.Command{
		Use:   "clean NAME",
		Short: "Remove generated entries from a stored language",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withService(cmd.Context(), func(svc *lexiconsvc.Service) error {
				removed, err := svc.Clean(cmd.Context(), args[0], input)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "removed %d entries\n", removed)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&input.Declined, "declined", false, "Remove declined forms")
	cmd.Flags().BoolVar(&input.Derived, "derived", false, "Remove derived words and their declined forms")
	return cmd
}

func (c *cli) dbExportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export NAME",
		Short: "Write a stored language to a file (.json, .yaml or .csv)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withService(cmd.Context(), func(svc *lexiconsvc.Service) error {
				lang, err := svc.Export(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if strings.EqualFold(filepath.Ext(out), ".csv") {
					return csvexport.WriteFile(out, lang)
				}
				return langfile.Save(out, lang)
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func (c *cli) dbListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withService(cmd.Context(), func(svc *lexiconsvc.Service) error {
				summaries, err := svc.List(cmd.Context())
				if err != nil {
					return err
				}

				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "NAME\tENTRIES\tDERIVED\tDECLINED\tUPDATED")
				for _, s := range summaries {
					fmt.Fprintf(tw, "%s\t%d\t%t\t%t\t%s\n",
						s.EnglishName, s.Entries, s.Derived, s.Declined, s.UpdatedAt.Format("2006-01-02 15:04"))
				}
				return tw.Flush()
			})
		},
	}
}

func (c *cli) dbDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a stored language",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withService(cmd.Context(), func(svc *lexiconsvc.Service) error {
				return svc.Delete(cmd.Context(), args[0])
			})
		},
	}
}
