package textutil

import (
	"regexp"
	"slices"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)
var alphaRegex = regexp.MustCompile(`[A-Za-z]+`)

// Fields splits on any run of whitespace, dropping empty fields.
func Fields(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return whitespaceRegex.Split(s, -1)
}

// AlphaWords returns every maximal run of ASCII letters in s, lowercased.
func AlphaWords(s string) []string {
	matches := alphaRegex.FindAllString(s, -1)
	for i, m := range matches {
		matches[i] = strings.ToLower(m)
	}
	return matches
}

// Dedupe removes repeated values, keeping the first occurrence of each.
func Dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// SortedSet dedupes and sorts values. The result is never nil.
func SortedSet(values []string) []string {
	out := Dedupe(values)
	slices.Sort(out)
	return out
}

// Subtract returns the values of a that are not in b, preserving order.
func Subtract(a, b []string) []string {
	drop := make(map[string]struct{}, len(b))
	for _, v := range b {
		drop[v] = struct{}{}
	}
	out := make([]string, 0, len(a))
	for _, v := range a {
		if _, ok := drop[v]; ok {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Intersect returns the sorted values present in every one of sets.
// No sets means an empty intersection.
func Intersect(sets [][]string) []string {
	if len(sets) == 0 {
		return []string{}
	}
	common := make(map[string]struct{})
	for _, v := range sets[0] {
		common[v] = struct{}{}
	}
	for _, set := range sets[1:] {
		present := make(map[string]struct{}, len(set))
		for _, v := range set {
			present[v] = struct{}{}
		}
		for v := range common {
			if _, ok := present[v]; !ok {
				delete(common, v)
			}
		}
	}
	out := make([]string, 0, len(common))
	for v := range common {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}
