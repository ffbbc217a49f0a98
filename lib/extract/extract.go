package extract

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"scraperindex/lib/htmlutil"
	"scraperindex/lib/textutil"

	"github.com/PuerkitoBio/purell"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scraperindex/lib/extract")

// DefaultIgnoredHosts are the hosting platforms scrapers link back to.
var DefaultIgnoredHosts = []string{"github.com", "morph.io"}

var (
	urlRegex          = regexp.MustCompile(`https?://[^\s<>"']+`)
	schemeHostRegex   = regexp.MustCompile(`^https?://[^/]+`)
	trailingIdRegex   = regexp.MustCompile(`=\d+$`)
	singleQuotedRegex = regexp.MustCompile(`'([^']+)'`)
	doubleQuotedRegex = regexp.MustCompile(`"([^"]+)"`)
	absoluteURLRegex  = regexp.MustCompile(`^https?://`)
	tokenRegex        = regexp.MustCompile(`[-_%A-Za-z0-9]+`)
	separatorRegex    = regexp.MustCompile(`%[0-9A-Fa-f]{2}|[-_%]+`)
)

// Dictionary is the part of the dictionary oracle the extractor needs.
type Dictionary interface {
	IsKnown(ctx context.Context, word string) (bool, error)
}

type Extractor struct {
	Dictionary   Dictionary
	IgnoredHosts []string
}

func NewExtractor(dict Dictionary, ignoredHosts []string) Extractor {
	if len(ignoredHosts) == 0 {
		ignoredHosts = DefaultIgnoredHosts
	}
	hosts := make([]string, len(ignoredHosts))
	for i, h := range ignoredHosts {
		hosts[i] = strings.TrimPrefix(strings.ToLower(h), "www.")
	}
	return Extractor{Dictionary: dict, IgnoredHosts: hosts}
}

type Terms struct {
	URLs             []string
	WordsFromURLs    []string
	WordsFromStrings []string
}

// hostOf returns the normalized host of a raw url. Urls that do not parse,
// such as format strings with %s in the path, fall back to the text between
// the scheme and the first slash.
func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return rawHost(raw)
	}
	normalized := purell.NormalizeURL(u, purell.FlagLowercaseHost|purell.FlagRemoveDefaultPort|purell.FlagRemoveWWW)
	u, err = url.Parse(normalized)
	if err != nil {
		return rawHost(raw)
	}
	return u.Hostname()
}

func rawHost(raw string) string {
	host := absoluteURLRegex.ReplaceAllString(schemeHostRegex.FindString(raw), "")
	if i := strings.LastIndexByte(host, '@'); i >= 0 {
		host = host[i+1:]
	}
	if i := strings.IndexAny(host, ":?#"); i >= 0 {
		host = host[:i]
	}
	return strings.TrimPrefix(strings.ToLower(host), "www.")
}

func (e Extractor) ignored(raw string) bool {
	host := hostOf(raw)
	if host == "" {
		return false
	}
	for _, ignored := range e.IgnoredHosts {
		if host == ignored || strings.HasSuffix(host, "."+ignored) {
			return true
		}
	}
	return false
}

// URLPaths finds absolute http(s) urls and reduces them to their path and
// query, with a trailing numeric value collapsed so paginated urls compare
// equal.
func (e Extractor) URLPaths(lines []string) []string {
	var paths []string
	for _, raw := range urlRegex.FindAllString(strings.Join(lines, "\n"), -1) {
		if e.ignored(raw) {
			continue
		}
		path := schemeHostRegex.ReplaceAllString(raw, "")
		path = trailingIdRegex.ReplaceAllString(path, "=")
		if path == "" {
			continue
		}
		paths = append(paths, path)
	}
	return textutil.Dedupe(paths)
}

// Selectors returns the quoted string literals on each line that are not
// urls or html markup.
func (e Extractor) Selectors(lines []string) []string {
	var selectors []string
	for _, line := range lines {
		var literals []string
		for _, m := range singleQuotedRegex.FindAllStringSubmatch(line, -1) {
			literals = append(literals, m[1])
		}
		for _, m := range doubleQuotedRegex.FindAllStringSubmatch(line, -1) {
			literals = append(literals, m[1])
		}
		for _, lit := range literals {
			if lit == "" || absoluteURLRegex.MatchString(lit) || htmlutil.IsToken(lit) {
				continue
			}
			selectors = append(selectors, lit)
		}
	}
	return textutil.Dedupe(selectors)
}

// Tokens splits s into candidate words in their original case.
func Tokens(s string) []string {
	var tokens []string
	for _, run := range tokenRegex.FindAllString(s, -1) {
		for _, part := range separatorRegex.Split(run, -1) {
			if part != "" {
				tokens = append(tokens, part)
			}
		}
	}
	return tokens
}

// Words returns the sorted, lowercase tokens of strs that are longer than
// two characters and unknown to the dictionary.
func (e Extractor) Words(ctx context.Context, strs []string) ([]string, error) {
	var words []string
	for _, s := range strs {
		for _, token := range Tokens(s) {
			if len(token) <= 2 {
				continue
			}
			known, err := e.Dictionary.IsKnown(ctx, token)
			if err != nil {
				return nil, err
			}
			if known {
				continue
			}
			words = append(words, strings.ToLower(token))
		}
	}
	return textutil.SortedSet(words), nil
}

func (e Extractor) Extract(ctx context.Context, lines []string) (Terms, error) {
	ctx, span := tracer.Start(ctx, "Extract")
	defer span.End()

	urls := e.URLPaths(lines)
	selectors := e.Selectors(lines)

	fromURLs, err := e.Words(ctx, urls)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to extract words from urls")
		return Terms{}, err
	}
	all, err := e.Words(ctx, append(append([]string{}, urls...), selectors...))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to extract words from strings")
		return Terms{}, err
	}

	terms := Terms{
		URLs:             textutil.SortedSet(urls),
		WordsFromURLs:    fromURLs,
		WordsFromStrings: textutil.Subtract(all, fromURLs),
	}
	span.SetAttributes(
		attribute.Int("urls", len(terms.URLs)),
		attribute.Int("selectors", len(selectors)),
		attribute.Int("words", len(terms.WordsFromURLs)+len(terms.WordsFromStrings)),
	)
	return terms, nil
}
