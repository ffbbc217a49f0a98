package searchindex

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"scraperindex/lib/output"
	"scraperindex/lib/scanner"
	"scraperindex/services/analyzer"

	"github.com/antzucaro/matchr"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scraperindex/lib/searchindex")

//go:embed schema.sql
var Schema string

const (
	SourceURL    = "url"
	SourceString = "string"
)

var plainWordRegex = regexp.MustCompile(`^[a-z0-9]+$`)

// Index is the database behind the search page.
type Index struct {
	db *sql.DB
}

var _ output.Writer = Index{}

func NewIndex(db *sql.DB) Index {
	return Index{db: db}
}

// Migrate creates any missing tables.
func (i Index) Migrate(ctx context.Context) error {
	_, err := i.db.ExecContext(ctx, Schema)
	return err
}

func (i Index) Close() error {
	return i.db.Close()
}

// Write replaces the whole index with the contents of summary.
func (i Index) Write(ctx context.Context, summary analyzer.Summary) error {
	ctx, span := tracer.Start(ctx, "Index.Write")
	defer span.End()

	err := i.write(ctx, summary)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to write search index")
		return err
	}
	span.SetAttributes(attribute.Int("repos", len(summary.Repos)))
	return nil
}

func (i Index) write(ctx context.Context, summary analyzer.Summary) error {
	tx, err := i.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"terms", "urls", "repos_fts", "repos", "ignore_words"} {
		_, err = tx.ExecContext(ctx, "delete from "+table)
		if err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	generatedAt := summary.GeneratedAt.UTC().Format(time.RFC3339)
	for _, r := range summary.Repos {
		_, err = tx.ExecContext(
			ctx,
			"insert into repos (name, description, last_updated, status, generated_at) values (?, ?, ?, ?, ?)",
			r.Name, r.Description, r.LastUpdated, r.Status.String(), generatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert repo %s: %w", r.Name, err)
		}
		if r.Status != scanner.Active {
			continue
		}

		for _, word := range r.WordsFromURLs {
			err = insertTerm(ctx, tx, r.Name, word, SourceURL)
			if err != nil {
				return err
			}
		}
		for _, word := range r.WordsFromStrings {
			err = insertTerm(ctx, tx, r.Name, word, SourceString)
			if err != nil {
				return err
			}
		}
		for _, path := range r.URLs {
			_, err = tx.ExecContext(ctx, "insert into urls (repo, path) values (?, ?)", r.Name, path)
			if err != nil {
				return fmt.Errorf("insert url %s: %w", path, err)
			}
		}
		_, err = tx.ExecContext(
			ctx,
			"insert into repos_fts (name, description, words) values (?, ?, ?)",
			r.Name, r.Description, strings.Join(r.Words(), " "),
		)
		if err != nil {
			return fmt.Errorf("insert fts row %s: %w", r.Name, err)
		}
	}

	for _, word := range summary.KnownWords {
		if !plainWordRegex.MatchString(word) {
			continue
		}
		_, err = tx.ExecContext(ctx, "insert into ignore_words (word) values (?)", word)
		if err != nil {
			return fmt.Errorf("insert ignore word %s: %w", word, err)
		}
	}

	return tx.Commit()
}

func insertTerm(ctx context.Context, tx *sql.Tx, repo, word, source string) error {
	_, err := tx.ExecContext(ctx, "insert into terms (repo, word, source) values (?, ?, ?)", repo, word, source)
	if err != nil {
		return fmt.Errorf("insert term %s for %s: %w", word, repo, err)
	}
	return nil
}

type Match struct {
	Repo        string
	Description string
	Sources     []string
}

// Lookup returns the repositories indexed under word, by name.
func (i Index) Lookup(ctx context.Context, word string) ([]Match, error) {
	ctx, span := tracer.Start(ctx, "Index.Lookup")
	defer span.End()

	rows, err := i.db.QueryContext(
		ctx,
		`select r.name, r.description, t.source
		from terms t join repos r on r.name = t.repo
		where t.word = ?
		order by r.name, t.source`,
		strings.ToLower(word),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to query terms")
		return nil, err
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		var name, description, source string
		err := rows.Scan(&name, &description, &source)
		if err != nil {
			return nil, err
		}
		if n := len(matches); n > 0 && matches[n-1].Repo == name {
			matches[n-1].Sources = append(matches[n-1].Sources, source)
			continue
		}
		matches = append(matches, Match{Repo: name, Description: description, Sources: []string{source}})
	}
	return matches, rows.Err()
}

// Search runs a full text query over repository names, descriptions and
// words. Results are in name order.
func (i Index) Search(ctx context.Context, query string) ([]string, error) {
	ctx, span := tracer.Start(ctx, "Index.Search")
	defer span.End()

	rows, err := i.db.QueryContext(ctx, "select name from repos_fts where repos_fts match ? order by name", query)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to run full text query")
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		err := rows.Scan(&name)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// IsIgnored reports whether word is one of the known words exported to the
// search page.
func (i Index) IsIgnored(ctx context.Context, word string) (bool, error) {
	var count int
	err := i.db.QueryRowContext(ctx, "select count(*) from ignore_words where word = ?", strings.ToLower(word)).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

type Suggestion struct {
	Word       string
	Similarity float64
}

// MinSimilarity is the lowest Jaro-Winkler similarity offered as a
// suggestion.
const MinSimilarity = 0.85

// Suggest returns indexed words that look like word, most similar first.
func (i Index) Suggest(ctx context.Context, word string, limit int) ([]Suggestion, error) {
	ctx, span := tracer.Start(ctx, "Index.Suggest")
	defer span.End()

	rows, err := i.db.QueryContext(ctx, "select distinct word from terms")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to list words")
		return nil, err
	}
	defer rows.Close()

	word = strings.ToLower(word)
	var suggestions []Suggestion
	for rows.Next() {
		var candidate string
		err := rows.Scan(&candidate)
		if err != nil {
			return nil, err
		}
		if candidate == word {
			continue
		}
		similarity := matchr.JaroWinkler(word, candidate, false)
		if similarity < MinSimilarity {
			continue
		}
		suggestions = append(suggestions, Suggestion{Word: candidate, Similarity: similarity})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	slices.SortFunc(suggestions, func(a, b Suggestion) int {
		if a.Similarity != b.Similarity {
			if a.Similarity > b.Similarity {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Word, b.Word)
	})
	if limit > 0 && len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions, nil
}
