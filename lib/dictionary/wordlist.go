package dictionary

import (
	"context"
	"fmt"
	"os"
	"strings"

	"scraperindex/lib/textutil"
)

// WordListChecker answers from an in-memory word list. Like aspell it
// checks each alphabetic run of the word separately and reports the runs it
// does not know, so "development_applications" is accepted when both halves
// are listed.
type WordListChecker struct {
	words map[string]struct{}
}

func NewWordListChecker(words []string) WordListChecker {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		set[w] = struct{}{}
	}
	return WordListChecker{words: set}
}

// LoadWordListChecker reads a word list with one word per line.
func LoadWordListChecker(path string) (WordListChecker, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return WordListChecker{}, fmt.Errorf("%w: read word list: %w", ErrCheckerUnavailable, err)
	}
	return NewWordListChecker(strings.Split(string(contents), "\n")), nil
}

func (c WordListChecker) Verify(ctx context.Context) error {
	if len(c.words) == 0 {
		return fmt.Errorf("%w: word list is empty", ErrCheckerUnavailable)
	}
	return nil
}

func (c WordListChecker) Check(ctx context.Context, word string) (string, error) {
	var misspelled []string
	for _, run := range alphaRuns(word) {
		if _, ok := c.words[strings.ToLower(run)]; ok {
			continue
		}
		misspelled = append(misspelled, run)
	}
	return strings.Join(textutil.Dedupe(misspelled), " "), nil
}

func alphaRuns(word string) []string {
	var runs []string
	start := -1
	for i, r := range word {
		isAlpha := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if isAlpha && start < 0 {
			start = i
		}
		if !isAlpha && start >= 0 {
			runs = append(runs, word[start:i])
			start = -1
		}
	}
	if start >= 0 {
		runs = append(runs, word[start:])
	}
	return runs
}
