package descriptions

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

var expected = Descriptions{
	"multiple_civica": {Description: "Civica sites", LastUpdated: "2024-05-01T10:00:00Z"},
	"yarra":           {Description: "Yarra City Council"},
	"empty":           {},
}

const jsonSource = `{
	"multiple_civica": {"description": "Civica sites", "last_updated": "2024-05-01T10:00:00Z"},
	"yarra": "Yarra City Council",
	"empty": null
}`

const yamlSource = `
multiple_civica:
  description: Civica sites
  last_updated: 2024-05-01T10:00:00Z
yarra: Yarra City Council
empty:
`

func TestParse(t *testing.T) {
	testCases := []struct {
		ext      string
		contents string
	}{
		{ext: ".json", contents: jsonSource},
		{ext: ".json5", contents: jsonSource},
		{ext: ".yml", contents: yamlSource},
		{ext: "yaml", contents: yamlSource},
	}
	for _, test := range testCases {
		out, err := Parse(test.ext, []byte(test.contents))
		require.NoError(t, err, test.ext)
		diff := cmp.Diff(expected, out)
		if diff != "" {
			t.Fatalf("%s: %s", test.ext, diff)
		}
	}

	out, err := Parse(".json", []byte(`{"yarra": 12}`))
	require.NoError(t, err)
	require.Equal(t, "12", out.Get("yarra").Description)
	_, err = Parse(".json", []byte(`{"yarra": ["a"]}`))
	require.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "repos.yml")
	require.NoError(t, os.WriteFile(path, []byte(yamlSource), 0644))

	out, err := Load(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, "Yarra City Council", out.Get("yarra").Description)
	require.Equal(t, Description{}, out.Get("unknown"))

	_, err = Load(context.Background(), filepath.Join(dir, "missing.json"))
	require.ErrorIs(t, err, ErrSourceMissing)

	_, err = Load(context.Background(), "")
	require.ErrorIs(t, err, ErrSourceMissing)
}

func TestLoadHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos.json":
			w.Header().Set("content-type", "application/json")
			w.Write([]byte(jsonSource))
		case "/repos":
			w.Header().Set("content-type", "application/yaml")
			w.Write([]byte(yamlSource))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	for _, endpoint := range []string{"/repos.json", "/repos"} {
		out, err := Load(context.Background(), server.URL+endpoint)
		require.NoError(t, err, endpoint)
		diff := cmp.Diff(expected, out)
		if diff != "" {
			t.Fatalf("%s: %s", endpoint, diff)
		}
	}

	_, err := Load(context.Background(), server.URL+"/missing.json")
	require.ErrorIs(t, err, ErrSourceMissing)
}
