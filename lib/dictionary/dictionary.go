package dictionary

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"

	"scraperindex/lib/htmlutil"
	"scraperindex/lib/textutil"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scraperindex/lib/dictionary")
var meter = otel.Meter("scraperindex/lib/dictionary")
var checkerCalls, _ = meter.Int64Counter("dictionary.checker_calls")

//go:embed common_words.txt
var commonWordsData string

// CommonWords returns the built-in allow-list.
func CommonWords() []string {
	var words []string
	for _, line := range strings.Split(commonWordsData, "\n") {
		word := strings.ToLower(strings.TrimSpace(line))
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		words = append(words, word)
	}
	return words
}

var allDigits = regexp.MustCompile(`^\d+$`)
var anyDigit = regexp.MustCompile(`\d`)

type Options struct {
	Checker Checker
	// extra allow-list words on top of CommonWords()
	CommonWords []string
	// if set, verdicts are saved here by Persist
	Store Store
	// seed the caches from Store on construction
	Preload bool
}

// Dictionary decides whether a token is common vocabulary. Every verdict it
// computes is remembered for the lifetime of the value, so the checker is
// asked at most once per lowercase word.
//
// A Dictionary is not safe for concurrent use.
type Dictionary struct {
	checker Checker
	store   Store
	common  map[string]struct{}
	known   map[string]struct{}
	unknown map[string]struct{}
	checks  int
}

// NewDictionary verifies the checker before returning, a missing checker is
// reported as ErrCheckerUnavailable.
func NewDictionary(ctx context.Context, opts Options) (*Dictionary, error) {
	if opts.Checker == nil {
		return nil, fmt.Errorf("%w: no checker configured", ErrCheckerUnavailable)
	}
	err := opts.Checker.Verify(ctx)
	if err != nil {
		return nil, err
	}

	d := &Dictionary{
		checker: opts.Checker,
		store:   opts.Store,
		common:  make(map[string]struct{}),
		known:   make(map[string]struct{}),
		unknown: make(map[string]struct{}),
	}
	for _, w := range append(CommonWords(), opts.CommonWords...) {
		d.common[strings.ToLower(w)] = struct{}{}
	}

	if opts.Preload && opts.Store != nil {
		known, unknown, err := opts.Store.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("preload verdicts: %w", err)
		}
		for _, w := range unknown {
			d.unknown[w] = struct{}{}
		}
		for _, w := range known {
			d.known[w] = struct{}{}
			delete(d.unknown, w)
		}
		slog.Debug("preloaded dictionary verdicts", "known", len(known), "unknown", len(unknown))
	}

	return d, nil
}

// IsKnown reports whether word is common vocabulary. word is passed to the
// checker in its original case since the checker is case-sensitive.
func (d *Dictionary) IsKnown(ctx context.Context, word string) (bool, error) {
	if allDigits.MatchString(word) {
		return true, nil
	}
	if anyDigit.MatchString(word) {
		return false, nil
	}

	key := strings.ToLower(word)
	if _, ok := d.common[key]; ok {
		return true, nil
	}
	if _, ok := d.known[key]; ok {
		return true, nil
	}
	if _, ok := d.unknown[key]; ok {
		return false, nil
	}
	if htmlutil.IsToken(key) {
		d.known[key] = struct{}{}
		return true, nil
	}

	return d.ask(ctx, word, key)
}

func (d *Dictionary) ask(ctx context.Context, word, key string) (bool, error) {
	ctx, span := tracer.Start(ctx, "ask")
	defer span.End()
	span.SetAttributes(attribute.String("word", word))

	d.checks++
	checkerCalls.Add(ctx, 1)

	res, err := d.checker.Check(ctx, word)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "checker failed")
		return false, fmt.Errorf("check %q: %w", word, err)
	}

	res = strings.TrimSpace(res)
	if res == "" {
		d.known[key] = struct{}{}
		return true, nil
	}

	for _, part := range textutil.Fields(res) {
		if !strings.Contains(word, part) {
			err := fmt.Errorf("%w: response %q does not match word %q", ErrProtocol, res, word)
			span.RecordError(err)
			span.SetStatus(codes.Error, "unexpected checker response")
			return false, err
		}
	}

	d.unknown[key] = struct{}{}
	return false, nil
}

// Fold marks words as known, removing them from the unknown set.
func (d *Dictionary) Fold(words []string) {
	for _, w := range words {
		key := strings.ToLower(w)
		d.known[key] = struct{}{}
		delete(d.unknown, key)
	}
}

// KnownWords returns the sorted allow-list plus every word judged known so far.
func (d *Dictionary) KnownWords() []string {
	out := make([]string, 0, len(d.common)+len(d.known))
	for w := range d.common {
		out = append(out, w)
	}
	for w := range d.known {
		if _, ok := d.common[w]; ok {
			continue
		}
		out = append(out, w)
	}
	slices.Sort(out)
	return out
}

// UnknownWords returns the sorted words judged unknown so far.
func (d *Dictionary) UnknownWords() []string {
	out := make([]string, 0, len(d.unknown))
	for w := range d.unknown {
		out = append(out, w)
	}
	slices.Sort(out)
	return out
}

// Checks is the number of times the external checker has been asked.
func (d *Dictionary) Checks() int {
	return d.checks
}

// Persist writes the current verdicts to the configured store, if any.
func (d *Dictionary) Persist(ctx context.Context) error {
	if d.store == nil {
		return nil
	}
	return d.store.Save(ctx, d.KnownWords(), d.UnknownWords())
}
