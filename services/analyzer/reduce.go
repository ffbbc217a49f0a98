package analyzer

import (
	"scraperindex/lib/scanner"
	"scraperindex/lib/textutil"
)

// removeCommonWords finds the words shared by every active repository and
// strips them from each active repository's word lists. No active
// repositories means no common words.
func removeCommonWords(repos []RepoResult) []string {
	var sets [][]string
	for _, r := range repos {
		if r.Status == scanner.Active {
			sets = append(sets, r.Words())
		}
	}
	common := textutil.Intersect(sets)
	if len(common) == 0 {
		return common
	}

	for i := range repos {
		if repos[i].Status != scanner.Active {
			continue
		}
		repos[i].WordsFromURLs = textutil.Subtract(repos[i].WordsFromURLs, common)
		repos[i].WordsFromStrings = textutil.Subtract(repos[i].WordsFromStrings, common)
	}
	return common
}
