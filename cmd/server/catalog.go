package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"ailab/internal/catalog"
	"ailab/internal/games"
)

func newCatalogCmd() *cobra.Command {
	var game string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the content each game plays with",
		Long: `Print the items, questions and pets the games draw from.

Examples:
  ailab catalog
  ailab catalog --game quiz`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := []games.Kind{games.KindSorting, games.KindQuiz, games.KindTrain}
			if game != "" {
				kind, err := games.ParseKind(game)
				if err != nil {
					return err
				}
				kinds = []games.Kind{kind}
			}
			for i, kind := range kinds {
				if i > 0 {
					fmt.Fprintln(cmd.OutOrStdout())
				}
				if err := printCatalog(cmd.OutOrStdout(), kind); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&game, "game", "", "only print one game (sorting, quiz, train)")
	return cmd
}

func printCatalog(out io.Writer, kind games.Kind) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	switch kind {
	case games.KindSorting:
		fmt.Fprintln(tw, "Data Detective")
		fmt.Fprintln(tw, "KEY\tITEM\tCATEGORY\tAI SYMBOLS")
		for _, item := range catalog.DataItems() {
			fmt.Fprintf(tw, "%s\t%s %s\t%s\t%d\n", item.Key, item.Emoji, item.Label, item.Category, len(catalog.Symbols(item.Category)))
		}
	case games.KindQuiz:
		fmt.Fprintln(tw, "Spot the AI")
		fmt.Fprintln(tw, "KEY\tQUESTION\tANSWER\tDIFFICULTY")
		for _, q := range catalog.QuizQuestions() {
			fmt.Fprintf(tw, "%s\t%s %s\t%s\t%s\n", q.Key, q.Emoji, q.Label, q.Answer, q.Difficulty)
		}
	case games.KindTrain:
		fmt.Fprintln(tw, "Teach the AI")
		fmt.Fprintln(tw, "KEY\tPET\tAI GUESS\tGUESS RIGHT")
		for _, p := range catalog.Pets() {
			fmt.Fprintf(tw, "%s\t%s %s\t%s\t%s\n", p.Key, p.Emoji, p.Label, p.AIGuess, p.Answer)
		}
	}

	return tw.Flush()
}
