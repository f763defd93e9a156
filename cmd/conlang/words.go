package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/conlang/internal/adapter/langfile"
	"github.com/heartmarshall/conlang/internal/app"
	"github.com/heartmarshall/conlang/internal/domain"
)

func (c *cli) spellCmd() *cobra.Command {
	var langPath string

	cmd := &cobra.Command{
		Use:   "spell WORD...",
		Short: "Convert phonetic words to their written form",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engines, _, err := c.loadEngines(langPath)
			if err != nil {
				return err
			}
			for _, w := range args {
				fmt.Fprintln(cmd.OutOrStdout(), engines.Mapper.Spell(w))
			}
			return nil
		},
	}
	addLangFlag(cmd, &langPath)
	return cmd
}

func (c *cli) soundOutCmd() *cobra.Command {
	var langPath string

	cmd := &cobra.Command{
		Use:   "sound-out WORD...",
		Short: "Convert written words back to their pronunciation",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engines, _, err := c.loadEngines(langPath)
			if err != nil {
				return err
			}
			for _, w := range args {
				fmt.Fprintln(cmd.OutOrStdout(), engines.Mapper.SoundOut(w))
			}
			return nil
		},
	}
	addLangFlag(cmd, &langPath)
	return cmd
}

func (c *cli) inflectCmd() *cobra.Command {
	var (
		langPath string
		pos      string
	)

	cmd := &cobra.Command{
		Use:   "inflect WORD",
		Short: "Print every declined form of one phonetic root",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engines, lang, err := c.loadEngines(langPath)
			if err != nil {
				return err
			}

			root := domain.LexiconEntry{
				Phonetic:     args[0],
				Spelled:      engines.Mapper.Spell(args[0]),
				PartOfSpeech: pos,
				Declensions:  []string{domain.RootDeclension},
			}
			forms := engines.Declension.DeclineWord(root, lang.AffixMap)
			if len(forms) == 0 {
				return fmt.Errorf("no declensions for part of speech %q", pos)
			}

			out := cmd.OutOrStdout()
			for _, f := range forms {
				fmt.Fprintf(out, "%s\t%s\t%s\n", f.Spelled, f.Phonetic, strings.Join(f.Declensions, " "))
			}
			return nil
		},
	}
	addLangFlag(cmd, &langPath)
	cmd.Flags().StringVar(&pos, "pos", "", "Part of speech whose affix layers apply")
	_ = cmd.MarkFlagRequired("pos")
	return cmd
}

func addLangFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "lang", "l", "", "Language file (JSON or YAML)")
	_ = cmd.MarkFlagRequired("lang")
}

func (c *cli) loadEngines(path string) (*app.Engines, *domain.LanguageDescription, error) {
	lang, err := langfile.Load(path)
	if err != nil {
		return nil, nil, err
	}
	return app.NewEngines(lang, c.env.Patterns), lang, nil
}
