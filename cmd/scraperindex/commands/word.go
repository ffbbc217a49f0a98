package commands

import (
	"scraperindex/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(wordCmd)
}

var wordCmd = &cobra.Command{
	Use:   "word <word>...",
	Short: "Asks the dictionary whether each word is common vocabulary.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		dict, closeDict, err := openDictionary(ctx, cfg.Dictionary)
		if err != nil {
			serviceutil.Fatal("failed to open dictionary", err)
		}
		defer closeDict()

		t := newTable()
		t.AppendHeader(table.Row{"Word", "Known"})
		for _, word := range args {
			known, err := dict.IsKnown(ctx, word)
			if err != nil {
				serviceutil.Fatal("failed to check word", err)
			}
			t.AppendRow(table.Row{word, known})
		}
		t.Render()
	},
}
