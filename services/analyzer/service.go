package analyzer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"scraperindex/internal/assert"
	"scraperindex/internal/chrono"
	"scraperindex/internal/telemetry"
	"scraperindex/lib/descriptions"
	"scraperindex/lib/dictionary"
	"scraperindex/lib/extract"
	"scraperindex/lib/scanner"
	"scraperindex/lib/textutil"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

type Options struct {
	// directory holding one checked out repository per subdirectory
	ReposDir     string
	Descriptions descriptions.Descriptions
	Dictionary   *dictionary.Dictionary
	IgnoredHosts []string
	Scanner      scanner.Options
	// ask the dictionary about the words of each repository's name and
	// description before it is analyzed
	SeedFromDescriptions bool
}

// Service runs one batch over every repository. It is single threaded, the
// dictionary it owns is not safe for concurrent use.
type Service struct {
	opts      Options
	dict      *dictionary.Dictionary
	extractor extract.Extractor
	time      chrono.TimeAPI
	tel       telemetry.API
}

func NewService(opts Options, time chrono.TimeAPI, tel telemetry.API) Service {
	assert.NotNil(opts.Dictionary)
	assert.NotEmptyStr(opts.ReposDir)
	assert.NotNil(time)
	assert.NotNil(tel)

	if opts.Descriptions == nil {
		opts.Descriptions = descriptions.Descriptions{}
	}

	return Service{
		opts:      opts,
		dict:      opts.Dictionary,
		extractor: extract.NewExtractor(opts.Dictionary, opts.IgnoredHosts),
		time:      time,
		tel:       telemetry.NewScopedAPI("analyzer", tel),
	}
}

// fatal errors stop the batch instead of being recorded against a single
// repository.
func fatal(ctx context.Context, err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, dictionary.ErrProtocol) ||
		errors.Is(err, scanner.ErrUnclassifiable) ||
		ctx.Err() != nil
}

// listRepos returns the repository directories sorted by name, skipping
// hidden directories such as .git.
func (s Service) listRepos() ([]string, error) {
	entries, err := os.ReadDir(s.opts.ReposDir)
	if err != nil {
		return nil, fmt.Errorf("read repos dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

func (s Service) seed(ctx context.Context, name string) error {
	desc := s.opts.Descriptions.Get(name)
	for _, word := range textutil.AlphaWords(name + " " + desc.Description) {
		_, err := s.dict.IsKnown(ctx, word)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s Service) analyzeRepo(ctx context.Context, name string) (RepoResult, error) {
	ctx, span := tracer.Start(ctx, "analyzeRepo")
	defer span.End()
	span.SetAttributes(attribute.String("repo", name))

	desc := s.opts.Descriptions.Get(name)
	result := RepoResult{
		Name:             name,
		Description:      desc.Description,
		LastUpdated:      desc.LastUpdated,
		URLs:             []string{},
		WordsFromURLs:    []string{},
		WordsFromStrings: []string{},
	}

	src, err := scanner.NewDirSource(filepath.Join(s.opts.ReposDir, name))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to open repository")
		return RepoResult{}, err
	}
	scan := scanner.New(src, s.opts.Scanner)

	verdict, err := scan.Classify()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to classify repository")
		return RepoResult{}, err
	}
	result.Status = verdict
	span.SetAttributes(attribute.String("verdict", verdict.String()))

	if verdict != scanner.Active {
		return result, nil
	}

	lines, err := scan.ActiveLines(scanner.ViewRepository)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read active lines")
		return RepoResult{}, err
	}
	terms, err := s.extractor.Extract(ctx, lines)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to extract terms")
		return RepoResult{}, err
	}

	result.URLs = terms.URLs
	result.WordsFromURLs = terms.WordsFromURLs
	result.WordsFromStrings = terms.WordsFromStrings
	return result, nil
}

// Analyze classifies every repository, extracts terms from the active ones
// and removes the words they all share.
func (s Service) Analyze(ctx context.Context) (Summary, error) {
	ctx, span := tracer.Start(ctx, "Analyze")
	defer span.End()

	names, err := s.listRepos()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to list repositories")
		return Summary{}, err
	}

	summary := Summary{
		GeneratedAt: s.time.Now(),
		Total:       len(names),
		Counts:      make(map[scanner.Verdict]int),
		Repos:       []RepoResult{},
		Errors:      []RepoError{},
	}
	for _, v := range scanner.Verdicts {
		summary.Counts[v] = 0
	}

	for _, name := range names {
		if s.opts.SeedFromDescriptions {
			err := s.seed(ctx, name)
			if fatal(ctx, err) {
				span.RecordError(err)
				span.SetStatus(codes.Error, "failed to seed dictionary")
				return Summary{}, err
			}
			if err != nil {
				s.tel.ReportWarning(report_seed, err, name)
			}
		}

		result, err := s.analyzeRepo(ctx, name)
		if err != nil {
			if fatal(ctx, err) {
				span.RecordError(err)
				span.SetStatus(codes.Error, "analysis aborted")
				return Summary{}, fmt.Errorf("analyze %s: %w", name, err)
			}
			s.tel.ReportBroken(report_analyze_repo, err, name)
			summary.Errors = append(summary.Errors, RepoError{Name: name, Err: err})
			continue
		}

		summary.Counts[result.Status]++
		summary.Repos = append(summary.Repos, result)
		verdictCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("verdict", result.Status.String())))
		s.tel.ReportDebug("analyzed repository", telemetry.KV{Key: "repo", Value: name}, telemetry.KV{Key: "verdict", Value: result.Status.String()})
	}

	summary.CommonWords = removeCommonWords(summary.Repos)
	if active := summary.Active(); len(active) == 1 {
		// the intersection of one set is the set itself
		s.tel.ReportWarning(
			report_single_repo,
			telemetry.KV{Key: "repo", Value: active[0].Name},
			telemetry.KV{Key: "common_words", Value: len(summary.CommonWords)},
		)
	}
	s.dict.Fold(summary.CommonWords)
	summary.KnownWords = s.dict.KnownWords()
	summary.UnknownWords = s.dict.UnknownWords()

	for _, v := range scanner.Verdicts {
		s.tel.ReportCount(v.String(), int64(summary.Counts[v]))
	}
	if !summary.Consistent() {
		s.tel.ReportWarning(
			report_consistency,
			telemetry.KV{Key: "total", Value: summary.Total},
			telemetry.KV{Key: "counted", Value: summary.Counted()},
			telemetry.KV{Key: "errors", Value: len(summary.Errors)},
		)
	}

	err = s.dict.Persist(ctx)
	if err != nil {
		s.tel.ReportWarning(report_persist, err)
	}

	span.SetAttributes(
		attribute.Int("total", summary.Total),
		attribute.Int("active", summary.Count(scanner.Active)),
		attribute.Int("common_words", len(summary.CommonWords)),
	)
	return summary, nil
}
