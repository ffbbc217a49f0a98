package output

import (
	"context"

	"scraperindex/lib/scanner"
	"scraperindex/services/analyzer"

	"gopkg.in/yaml.v3"
)

type resultsMetadata struct {
	GeneratedAt            string `yaml:"generated_at"`
	ReposAnalyzed          int    `yaml:"repos_analyzed"`
	ActiveScrapers         int    `yaml:"active_scrapers"`
	PlaceholderScrapers    int    `yaml:"placeholder_scrapers"`
	TrivialScrapersSkipped int    `yaml:"trivial_scrapers_skipped"`
	NoScraperFile          int    `yaml:"no_scraper_file"`
	BrokenScrapersFound    int    `yaml:"broken_scrapers_found"`
}

type ignoredRepo struct {
	Description string          `yaml:"description"`
	Status      scanner.Verdict `yaml:"status"`
}

type brokenRepo struct {
	Name  string `yaml:"name"`
	Error string `yaml:"error"`
}

type resultsFile struct {
	Metadata     resultsMetadata                `yaml:"metadata"`
	CommonWords  []string                       `yaml:"common_words"`
	KnownWords   []string                       `yaml:"known_words"`
	UnknownWords []string                       `yaml:"unknown_words"`
	ActiveRepos  map[string]analyzer.RepoResult `yaml:"active_repos"`
	IgnoredRepos map[string]ignoredRepo         `yaml:"ignored_repos"`
	BrokenRepos  []brokenRepo                   `yaml:"broken_repos"`
}

// ResultsWriter writes the full summary as yaml for debugging a run.
type ResultsWriter struct {
	Dir string
}

func (w ResultsWriter) Write(ctx context.Context, summary analyzer.Summary) error {
	_, span := tracer.Start(ctx, "ResultsWriter.Write")
	defer span.End()

	out := resultsFile{
		Metadata: resultsMetadata{
			GeneratedAt:            formatTime(summary.GeneratedAt),
			ReposAnalyzed:          summary.Total,
			ActiveScrapers:         summary.Count(scanner.Active),
			PlaceholderScrapers:    summary.Count(scanner.Placeholder),
			TrivialScrapersSkipped: summary.Count(scanner.Trivial),
			NoScraperFile:          summary.Count(scanner.NoScraper),
			BrokenScrapersFound:    len(summary.Errors),
		},
		CommonWords:  summary.CommonWords,
		KnownWords:   summary.KnownWords,
		UnknownWords: summary.UnknownWords,
		ActiveRepos:  make(map[string]analyzer.RepoResult),
		IgnoredRepos: make(map[string]ignoredRepo),
		BrokenRepos:  []brokenRepo{},
	}
	for _, r := range summary.Repos {
		if r.Status == scanner.Active {
			out.ActiveRepos[r.Name] = r
			continue
		}
		out.IgnoredRepos[r.Name] = ignoredRepo{Description: r.Description, Status: r.Status}
	}
	for _, e := range summary.Errors {
		out.BrokenRepos = append(out.BrokenRepos, brokenRepo{Name: e.Name, Error: e.Err.Error()})
	}

	contents, err := yaml.Marshal(out)
	if err != nil {
		return err
	}
	return writeFile(w.Dir, ResultsFile, contents)
}
