package output

import (
	"context"
	"encoding/json"

	"scraperindex/services/analyzer"
)

type scriptRepo struct {
	Description      string   `json:"description"`
	LastUpdated      string   `json:"lastUpdated,omitempty"`
	URLs             []string `json:"urls"`
	WordsFromURLs    []string `json:"wordsFromUrls"`
	WordsFromStrings []string `json:"wordsFromStrings"`
}

type scriptFile struct {
	ScraperDateTime string                `json:"scraperDateTime"`
	ScraperData     map[string]scriptRepo `json:"scraperData"`
	IgnoreWords     []string              `json:"ignoreWords"`
}

// ScriptWriter writes the data file loaded by the search page. It only
// carries active repositories, and only the known words that are plain
// lowercase alphanumerics.
type ScriptWriter struct {
	Dir string
}

func (w ScriptWriter) Write(ctx context.Context, summary analyzer.Summary) error {
	_, span := tracer.Start(ctx, "ScriptWriter.Write")
	defer span.End()

	out := scriptFile{
		ScraperDateTime: formatTime(summary.GeneratedAt),
		ScraperData:     make(map[string]scriptRepo),
		IgnoreWords:     []string{},
	}
	for _, r := range summary.Active() {
		out.ScraperData[r.Name] = scriptRepo{
			Description:      r.Description,
			LastUpdated:      r.LastUpdated,
			URLs:             r.URLs,
			WordsFromURLs:    r.WordsFromURLs,
			WordsFromStrings: r.WordsFromStrings,
		}
	}
	for _, word := range summary.KnownWords {
		if ignoreWordRegex.MatchString(word) {
			out.IgnoreWords = append(out.IgnoreWords, word)
		}
	}

	contents, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	return writeFile(w.Dir, ScriptFile, append(contents, '\n'))
}
