package analyzer

import (
	"fmt"
	"time"

	"scraperindex/lib/scanner"
	"scraperindex/lib/textutil"
)

// RepoResult is the outcome for one repository. Term lists are sorted and
// empty unless the repository is active.
type RepoResult struct {
	Name             string          `json:"name" yaml:"name"`
	Description      string          `json:"description" yaml:"description"`
	LastUpdated      string          `json:"last_updated,omitempty" yaml:"last_updated,omitempty"`
	Status           scanner.Verdict `json:"status" yaml:"status"`
	URLs             []string        `json:"urls" yaml:"urls"`
	WordsFromURLs    []string        `json:"words_from_urls" yaml:"words_from_urls"`
	WordsFromStrings []string        `json:"words_from_strings" yaml:"words_from_strings"`
}

// Words is the sorted union of both word lists.
func (r RepoResult) Words() []string {
	return textutil.SortedSet(append(append([]string{}, r.WordsFromURLs...), r.WordsFromStrings...))
}

// RepoError is a repository that could not be analyzed.
type RepoError struct {
	Name string
	Err  error
}

func (e RepoError) Error() string {
	return fmt.Sprintf("%s: %s", e.Name, e.Err)
}

func (e RepoError) Unwrap() error {
	return e.Err
}

type Summary struct {
	GeneratedAt time.Time
	// number of repository directories scanned, including failed ones
	Total  int
	Counts map[scanner.Verdict]int
	// words found in every active repository, removed from their results
	CommonWords  []string
	KnownWords   []string
	UnknownWords []string
	Repos        []RepoResult
	Errors       []RepoError
}

func (s Summary) Count(v scanner.Verdict) int {
	return s.Counts[v]
}

// Counted is the number of repositories that received a verdict.
func (s Summary) Counted() int {
	n := 0
	for _, c := range s.Counts {
		n += c
	}
	return n
}

func (s Summary) Consistent() bool {
	return s.Counted() == s.Total
}

func (s Summary) Active() []RepoResult {
	var out []RepoResult
	for _, r := range s.Repos {
		if r.Status == scanner.Active {
			out = append(out, r)
		}
	}
	return out
}

// Ignored is every repository that was classified but is not active.
func (s Summary) Ignored() []RepoResult {
	var out []RepoResult
	for _, r := range s.Repos {
		if r.Status != scanner.Active {
			out = append(out, r)
		}
	}
	return out
}
