package commands

import (
	"context"
	"fmt"
	"time"

	devenv "scraperindex/dev/env"
	"scraperindex/internal/chrono"
	reporting "scraperindex/internal/telemetry"
	"scraperindex/lib/descriptions"
	"scraperindex/lib/output"
	"scraperindex/lib/restyutil"
	"scraperindex/lib/scanner"
	"scraperindex/lib/searchindex"
	"scraperindex/lib/serviceutil"
	"scraperindex/lib/telemetry"
	"scraperindex/services/analyzer"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFlags.reposDir, "repos", "", "directory of checked out scraper repositories")
	analyzeCmd.Flags().StringVar(&analyzeFlags.descriptions, "descriptions", "", "descriptions file or url")
	analyzeCmd.Flags().StringVarP(&analyzeFlags.outputDir, "output", "o", "", "directory to write the analysis into")
	rootCmd.AddCommand(analyzeCmd)
}

var analyzeFlags struct {
	reposDir     string
	descriptions string
	outputDir    string
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Classifies every repository, extracts significant terms and writes the analysis.",
	Run: func(cmd *cobra.Command, args []string) {
		if analyzeFlags.reposDir != "" {
			cfg.ReposDir = analyzeFlags.reposDir
		}
		if analyzeFlags.descriptions != "" {
			cfg.Descriptions = analyzeFlags.descriptions
		}
		if analyzeFlags.outputDir != "" {
			cfg.OutputDir = analyzeFlags.outputDir
		}

		ctx, cancel := serviceutil.SignalContext()
		defer cancel()

		tel, err := telemetry.SetupFromEnv(ctx, "scraperindex")
		if err != nil {
			serviceutil.Fatal("failed to setup telemetry", err)
		}
		defer tel.Shutdown(context.Background())
		telemetry.InstrumentPerfStats(ctx, time.Second*30)

		if verbose && cfg.HttpDump != "" {
			out, err := restyutil.NewFilesystemOutput(cfg.HttpDump)
			if err != nil {
				serviceutil.Fatal("failed to create http dump directory", err)
			}
			descriptions.SetRestyInstrumentOutput(out)
		}

		summary, err := analyze(ctx)
		if err != nil {
			serviceutil.Fatal("analysis failed", err)
		}
		printSummary(summary)
	},
}

func analyze(ctx context.Context) (analyzer.Summary, error) {
	descs, err := descriptions.Load(ctx, cfg.Descriptions)
	if err != nil {
		return analyzer.Summary{}, err
	}

	dict, closeDict, err := openDictionary(ctx, cfg.Dictionary)
	if err != nil {
		return analyzer.Summary{}, err
	}
	defer closeDict()

	reposDir, err := devenv.ResolvePath(cfg.ReposDir)
	if err != nil {
		return analyzer.Summary{}, err
	}
	service := analyzer.NewService(
		analyzer.Options{
			ReposDir:             reposDir,
			Descriptions:         descs,
			Dictionary:           dict,
			IgnoredHosts:         cfg.Extract.IgnoredHosts,
			Scanner:              scanner.Options{MinActiveLines: cfg.Scanner.MinActiveLines},
			SeedFromDescriptions: cfg.Dictionary.Seed(),
		},
		chrono.NewStandardTime(),
		reporting.SlogAPI{},
	)
	summary, err := service.Analyze(ctx)
	if err != nil {
		return analyzer.Summary{}, err
	}

	outputDir, err := devenv.ResolvePath(cfg.OutputDir)
	if err != nil {
		return analyzer.Summary{}, err
	}
	writers := []output.Writer{
		output.ScriptWriter{Dir: outputDir},
		output.ResultsWriter{Dir: outputDir},
	}
	if cfg.Index.Enabled() {
		index, err := openIndex(ctx)
		if err != nil {
			return analyzer.Summary{}, err
		}
		defer index.Close()
		writers = append(writers, index)
	}

	err = output.WriteAll(ctx, summary, writers...)
	if err != nil {
		return analyzer.Summary{}, err
	}
	return summary, nil
}

func openIndex(ctx context.Context) (searchindex.Index, error) {
	db, err := cfg.Index.OpenDB()
	if err != nil {
		return searchindex.Index{}, fmt.Errorf("open search index: %w", err)
	}
	index := searchindex.NewIndex(db)
	err = index.Migrate(ctx)
	if err != nil {
		index.Close()
		return searchindex.Index{}, fmt.Errorf("migrate search index: %w", err)
	}
	return index, nil
}

func printSummary(summary analyzer.Summary) {
	t := newTable()
	t.AppendHeader(table.Row{"Verdict", "Repositories"})
	for _, v := range scanner.Verdicts {
		t.AppendRow(table.Row{v.String(), summary.Count(v)})
	}
	t.AppendSeparator()
	t.AppendRow(table.Row{"broken", len(summary.Errors)})
	t.AppendFooter(table.Row{"total", summary.Total})
	t.Render()

	fmt.Printf(
		"%d common words, %d known words, %d unknown words\n",
		len(summary.CommonWords), len(summary.KnownWords), len(summary.UnknownWords),
	)
	if !summary.Consistent() {
		fmt.Printf("counted %d of %d repositories\n", summary.Counted(), summary.Total)
	}

	if len(summary.Errors) == 0 {
		return
	}
	broken := newTable()
	broken.AppendHeader(table.Row{"Repository", "Error"})
	for _, e := range summary.Errors {
		broken.AppendRow(table.Row{e.Name, e.Err.Error()})
	}
	broken.Render()
}
