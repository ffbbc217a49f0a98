package extract

import (
	"context"
	"testing"

	"scraperindex/lib/dictionary"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func newTestExtractor(t testing.TB) (Extractor, *dictionary.Dictionary) {
	t.Helper()
	dict, err := dictionary.NewDictionary(context.Background(), dictionary.Options{
		Checker: dictionary.NewWordListChecker([]string{"reference", "results", "lodge"}),
	})
	require.NoError(t, err)
	return NewExtractor(dict, nil), dict
}

func TestURLPaths(t *testing.T) {
	e, _ := newTestExtractor(t)

	testCases := []struct {
		name   string
		lines  []string
		expect []string
	}{
		{
			name:   "path only",
			lines:  []string{`agent.get("https://www.yarracity.vic.gov.au/MyPlanning-application-xsearch")`},
			expect: []string{"/MyPlanning-application-xsearch"},
		},
		{
			name:   "trailing number collapsed",
			lines:  []string{`url = 'https://www.planning.act.gov.au/development_applications?fromDate=20251012'`},
			expect: []string{"/development_applications?fromDate="},
		},
		{
			name: "pages collapse to one pattern",
			lines: []string{
				"get('http://example.com/list?page=2')",
				"get('http://example.com/list?page=3')",
				"get('http://example.com/list?page=3&x=a')",
			},
			expect: []string{"/list?page=", "/list?page=3&x=a"},
		},
		{
			name: "hosting platforms ignored",
			lines: []string{
				"# https://github.com/planningalerts-scrapers/yarra",
				"https://api.morph.io/planningalerts-scrapers/yarra/data.json",
				"https://WWW.GitHub.com/x",
				"https://notgithub.com/da",
			},
			expect: []string{"/da"},
		},
		{
			name:   "bare host dropped",
			lines:  []string{"BASE = 'https://eplanning.example.gov.au'"},
			expect: []string{},
		},
		{
			name: "unparseable hosting urls ignored",
			lines: []string{
				`url = "https://github.com/%s/%s" % [org, repo]`,
				`api = "https://api.morph.io/%s/data.json"`,
			},
			expect: []string{},
		},
		{
			name:   "unparseable url kept",
			lines:  []string{`get("https://example.com/da/%s/list")`},
			expect: []string{"/da/%s/list"},
		},
	}
	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			diff := cmp.Diff(test.expect, e.URLPaths(test.lines))
			if diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

func TestHostOf(t *testing.T) {
	testCases := []struct {
		raw    string
		expect string
	}{
		{raw: "https://WWW.Example.com:443/x", expect: "example.com"},
		{raw: "https://github.com/%s/%s", expect: "github.com"},
		{raw: "http://user@WWW.Morph.IO:8080/%s", expect: "morph.io"},
	}
	for _, test := range testCases {
		t.Run(test.raw, func(t *testing.T) {
			require.Equal(t, test.expect, hostOf(test.raw))
		})
	}
}

func TestSelectors(t *testing.T) {
	e, _ := newTestExtractor(t)

	lines := []string{
		`doc.css('div').each { |r| r.at("aria-hidden"); r.search('td.council-reference'); x = "" }`,
		`link = "https://example.com/a"`,
		`r.search('td.council-reference')`,
		`h = "Href"`,
	}
	require.Equal(t, []string{"td.council-reference"}, e.Selectors(lines))
}

func TestTokens(t *testing.T) {
	testCases := []struct {
		input  string
		expect []string
	}{
		{input: "/MyPlanning-application-xsearch", expect: []string{"MyPlanning", "application", "xsearch"}},
		{input: "/development_applications?fromDate=", expect: []string{"development", "applications", "fromDate"}},
		{input: "%20search%2Fresults-page_2", expect: []string{"search", "results", "page", "2"}},
		{input: "100% a--b", expect: []string{"100", "a", "b"}},
		{input: "...", expect: nil},
	}
	for _, test := range testCases {
		diff := cmp.Diff(test.expect, Tokens(test.input))
		if diff != "" {
			t.Fatalf("%s: %s", test.input, diff)
		}
	}
}

func TestExtract(t *testing.T) {
	e, dict := newTestExtractor(t)
	ctx := context.Background()

	lines := []string{
		`page = agent.get("https://www.yarracity.vic.gov.au/MyPlanning-application-xsearch")`,
		`rows = page.search('table.ContentPanel tr')`,
		`info = "https://github.com/planningalerts-scrapers/yarra"`,
		`more = agent.get("https://www.planning.act.gov.au/development_applications?fromDate=20251012")`,
	}

	terms, err := e.Extract(ctx, lines)
	require.NoError(t, err)

	expect := Terms{
		URLs:             []string{"/MyPlanning-application-xsearch", "/development_applications?fromDate="},
		WordsFromURLs:    []string{"fromdate", "myplanning", "xsearch"},
		WordsFromStrings: []string{"contentpanel"},
	}
	diff := cmp.Diff(expect, terms)
	if diff != "" {
		t.Fatal(diff)
	}
	require.Contains(t, dict.KnownWords(), "table")

	checks := dict.Checks()
	again, err := e.Extract(ctx, lines)
	require.NoError(t, err)
	require.Equal(t, terms, again)
	require.Equal(t, checks, dict.Checks())

	reversed := []string{lines[3], lines[2], lines[1], lines[0]}
	shuffled, err := e.Extract(ctx, reversed)
	require.NoError(t, err)
	require.Equal(t, terms.WordsFromURLs, shuffled.WordsFromURLs)
	require.Equal(t, terms.WordsFromStrings, shuffled.WordsFromStrings)
}

func TestWordsShortAndKnown(t *testing.T) {
	e, _ := newTestExtractor(t)

	words, err := e.Words(context.Background(), []string{"/da/results/Lodge-2024/v2/abc1", "id"})
	require.NoError(t, err)
	require.Equal(t, []string{"abc1"}, words)
}

type failingDictionary struct{}

func (failingDictionary) IsKnown(ctx context.Context, word string) (bool, error) {
	return false, dictionary.ErrProtocol
}

func TestExtractError(t *testing.T) {
	e := NewExtractor(failingDictionary{}, []string{"example.org"})
	require.Equal(t, []string{"example.org"}, e.IgnoredHosts)

	_, err := e.Extract(context.Background(), []string{"https://example.com/search"})
	require.ErrorIs(t, err, dictionary.ErrProtocol)
}
