package textutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestAlphaWords(t *testing.T) {
	words := AlphaWords("Bawbaw Shire: DA search (2024) x1")
	require.Equal(t, []string{"bawbaw", "shire", "da", "search", "x"}, words)
	require.Empty(t, AlphaWords("123 456"))
}

func TestSetOperations(t *testing.T) {
	require.Equal(t, []string{"b", "a", "c"}, Dedupe([]string{"b", "a", "b", "c", "a"}))
	require.Equal(t, []string{"a", "b", "c"}, SortedSet([]string{"c", "a", "b", "a"}))
	require.Equal(t, []string{}, SortedSet(nil))
	require.Equal(t, []string{"c", "a"}, Subtract([]string{"c", "b", "a"}, []string{"b", "z"}))

	testCases := []struct {
		sets   [][]string
		expect []string
	}{
		{sets: nil, expect: []string{}},
		{sets: [][]string{{"b", "a"}}, expect: []string{"a", "b"}},
		{
			sets:   [][]string{{"alpha", "beta", "gamma"}, {"gamma", "beta"}, {"beta", "gamma", "delta"}},
			expect: []string{"beta", "gamma"},
		},
		{sets: [][]string{{"a"}, {}}, expect: []string{}},
	}
	for _, test := range testCases {
		diff := cmp.Diff(test.expect, Intersect(test.sets))
		if diff != "" {
			t.Fatal(diff)
		}
	}
}

func TestFields(t *testing.T) {
	require.Equal(t, []string{"My", "Planning"}, Fields("  My \t Planning\n"))
	require.Nil(t, Fields("   "))
}
