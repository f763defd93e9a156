package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/conlang/internal/adapter/csvexport"
	"github.com/heartmarshall/conlang/internal/adapter/langfile"
	"github.com/heartmarshall/conlang/internal/app"
	"github.com/heartmarshall/conlang/internal/collation"
	"github.com/heartmarshall/conlang/internal/lexicon"
)

// phaseCmd runs a single pipeline phase over a language file.
func (c *cli) phaseCmd(phase, short string) *cobra.Command {
	var langPath, out string

	cmd := &cobra.Command{
		Use:   phase,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := c.env.Pipeline.ProcessFile(cmd.Context(), langPath, outputPath(langPath, out), []string{phase})
			printResults(cmd.OutOrStdout(), results)
			return err
		},
	}
	addLangFlag(cmd, &langPath)
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default: rewrite the input)")
	return cmd
}

func (c *cli) processCmd() *cobra.Command {
	var langPath, out, phasesRaw, metricsFile string

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Run the full pipeline: derive, decline, dedupe, sort",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			phases, err := c.phases(phasesRaw)
			if err != nil {
				return err
			}

			results, runErr := c.env.Pipeline.ProcessFile(cmd.Context(), langPath, outputPath(langPath, out), phases)
			printResults(cmd.OutOrStdout(), results)

			if metricsFile != "" {
				if err := c.env.Metrics.WriteTextfile(metricsFile); err != nil {
					c.env.Log.Warn("write metrics", slog.String("error", err.Error()))
				}
			}
			return runErr
		},
	}
	addLangFlag(cmd, &langPath)
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default: rewrite the input)")
	cmd.Flags().StringVar(&phasesRaw, "phases", "", "Comma-separated phases (default from engine.default_phases)")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write Prometheus metrics in textfile format")
	return cmd
}

func (c *cli) cleanCmd() *cobra.Command {
	var (
		langPath, out     string
		declined, derived bool
	)

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove generated entries so they can be regenerated",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !declined && !derived {
				return errors.New("select --declined, --derived or both")
			}

			lang, err := langfile.Load(langPath)
			if err != nil {
				return err
			}

			coll := collation.New(lang.LexicalOrderList)
			removed := 0
			if declined {
				removed += lexicon.RemoveDeclinedEntries(lang, coll)
			}
			if derived {
				removed += lexicon.RemoveDerivedEntries(lang, coll)
			}

			if err := langfile.Save(outputPath(langPath, out), lang); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d entries\n", removed)
			return nil
		},
	}
	addLangFlag(cmd, &langPath)
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default: rewrite the input)")
	cmd.Flags().BoolVar(&declined, "declined", false, "Remove declined forms")
	cmd.Flags().BoolVar(&derived, "derived", false, "Remove derived words and their declined forms")
	return cmd
}

func (c *cli) exportCSVCmd() *cobra.Command {
	var langPath, out string

	cmd := &cobra.Command{
		Use:   "export-csv",
		Short: "Write the lexicon as a spreadsheet-friendly CSV file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, err := langfile.Load(langPath)
			if err != nil {
				return err
			}
			if err := csvexport.WriteFile(out, lang); err != nil {
				return err
			}
			c.env.Log.Info("lexicon exported",
				slog.String("path", out),
				slog.Int("entries", len(lang.Lexicon)),
			)
			return nil
		},
	}
	addLangFlag(cmd, &langPath)
	cmd.Flags().StringVarP(&out, "out", "o", "", "CSV output file")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func printResults(w io.Writer, results []app.PhaseResult) {
	for _, r := range results {
		switch {
		case r.Err != nil:
			fmt.Fprintf(w, "%-8s failed: %v\n", r.Phase, r.Err)
		case r.Skipped:
			fmt.Fprintf(w, "%-8s skipped\n", r.Phase)
		default:
			fmt.Fprintf(w, "%-8s +%d -%d (%s)\n", r.Phase, r.Added, r.Removed, r.Duration.Round(time.Microsecond))
		}
	}
}
