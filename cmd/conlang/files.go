package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/conlang/internal/app"
)

func (c *cli) batchCmd() *cobra.Command {
	var outDir, phasesRaw string

	cmd := &cobra.Command{
		Use:   "batch GLOB",
		Short: "Process every language file matching a glob (supports **)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			phases, err := c.phases(phasesRaw)
			if err != nil {
				return err
			}

			b := app.NewBatch(c.env.Log, c.env.Pipeline, c.env.Config.Engine.BatchConcurrency)
			results, runErr := b.Run(cmd.Context(), args[0], outDir, phases)

			out := cmd.OutOrStdout()
			for _, r := range results {
				if r.Err != nil {
					fmt.Fprintf(out, "FAIL %s: %v\n", r.Path, r.Err)
					continue
				}
				fmt.Fprintf(out, "ok   %s -> %s\n", r.Path, r.Out)
			}
			return runErr
		},
	}
	cmd.Flags().StringVar(&outDir, "out-dir", "", "Directory for processed files; paths below the glob base are mirrored")
	cmd.Flags().StringVar(&phasesRaw, "phases", "", "Comma-separated phases (default from engine.default_phases)")
	_ = cmd.MarkFlagRequired("out-dir")
	return cmd
}

func (c *cli) watchCmd() *cobra.Command {
	var langPath, out, phasesRaw string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-process a language file whenever it changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			phases, err := c.phases(phasesRaw)
			if err != nil {
				return err
			}

			same, err := samePath(langPath, out)
			if err != nil {
				return err
			}
			if same {
				return errors.New("--out must differ from --lang, or every save would trigger another run")
			}

			w := app.NewWatcher(c.env.Log, c.env.Config.Engine.WatchDebounce, func(ctx context.Context, path string) error {
				_, err := c.env.Pipeline.ProcessFile(ctx, path, out, phases)
				return err
			})
			return w.Watch(cmd.Context(), langPath)
		},
	}
	addLangFlag(cmd, &langPath)
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file")
	cmd.Flags().StringVar(&phasesRaw, "phases", "", "Comma-separated phases (default from engine.default_phases)")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func samePath(a, b string) (bool, error) {
	absA, err := filepath.Abs(a)
	if err != nil {
		return false, err
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return false, err
	}
	return absA == absB, nil
}
