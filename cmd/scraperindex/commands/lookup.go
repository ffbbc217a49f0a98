package commands

import (
	"fmt"
	"strings"

	"scraperindex/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	lookupCmd.Flags().IntVarP(&suggestionLimit, "suggestions", "n", 5, "how many suggestions to show when nothing matches")
	rootCmd.AddCommand(lookupCmd)
}

var suggestionLimit int

var lookupCmd = &cobra.Command{
	Use:   "lookup <word>",
	Short: "Lists the repositories whose scrapers use a word.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if !cfg.Index.Enabled() {
			serviceutil.Fatal("lookup needs a search index", fmt.Errorf("index.file or index.url must be configured"))
		}
		ctx := cmd.Context()
		index, err := openIndex(ctx)
		if err != nil {
			serviceutil.Fatal("failed to open search index", err)
		}
		defer index.Close()

		matches, err := index.Lookup(ctx, args[0])
		if err != nil {
			serviceutil.Fatal("failed to lookup word", err)
		}
		if len(matches) > 0 {
			t := newTable()
			t.AppendHeader(table.Row{"Repository", "Description", "Found in"})
			for _, m := range matches {
				t.AppendRow(table.Row{m.Repo, m.Description, strings.Join(m.Sources, ", ")})
			}
			t.Render()
			return
		}

		ignored, err := index.IsIgnored(ctx, args[0])
		if err != nil {
			serviceutil.Fatal("failed to read ignored words", err)
		}
		if ignored {
			fmt.Printf("%q is a known word and is not indexed\n", args[0])
			return
		}

		suggestions, err := index.Suggest(ctx, args[0], suggestionLimit)
		if err != nil {
			serviceutil.Fatal("failed to find suggestions", err)
		}
		fmt.Printf("no repositories use %q\n", args[0])
		if len(suggestions) == 0 {
			return
		}
		t := newTable()
		t.AppendHeader(table.Row{"Did you mean", "Similarity"})
		for _, s := range suggestions {
			t.AppendRow(table.Row{s.Word, fmt.Sprintf("%.2f", s.Similarity)})
		}
		t.Render()
	},
}
