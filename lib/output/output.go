package output

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"scraperindex/services/analyzer"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("scraperindex/lib/output")

const (
	ScriptFile  = "scraper_analysis.js"
	ResultsFile = "analysis_results.yml"
)

var ignoreWordRegex = regexp.MustCompile(`^[a-z0-9]+$`)

// Writer persists a finished summary somewhere.
type Writer interface {
	Write(ctx context.Context, summary analyzer.Summary) error
}

// WriteAll runs every writer in order, stopping at the first failure.
func WriteAll(ctx context.Context, summary analyzer.Summary, writers ...Writer) error {
	for _, w := range writers {
		err := w.Write(ctx, summary)
		if err != nil {
			return err
		}
	}
	return nil
}

func writeFile(dir, name string, contents []byte) error {
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return err
	}
	path := filepath.Join(dir, name)
	err = os.WriteFile(path, contents, 0644)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
