package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func writeRepo(t testing.TB, files map[string]string) DirSource {
	t.Helper()
	root := filepath.Join(t.TempDir(), "repo")
	for rel, contents := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	}
	require.NoError(t, os.MkdirAll(root, 0755))
	src, err := NewDirSource(root)
	require.NoError(t, err)
	return src
}

func codeLines(n int, format string) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, format+"\n", i)
	}
	return sb.String()
}

func TestClassify(t *testing.T) {
	testCases := []struct {
		name   string
		files  map[string]string
		expect Verdict
	}{
		{
			name:   "empty repository",
			files:  map[string]string{"README.md": "# hello\n"},
			expect: NoScraper,
		},
		{
			name: "ruby placeholder",
			files: map[string]string{
				"scraper.rb": "# a placeholder\nBundler.require\n\nputs 'This is a placeholder'\nputs \"done\"\n",
			},
			expect: Placeholder,
		},
		{
			name: "python placeholder",
			files: map[string]string{
				"scraper.py": "import scraperwiki\nimport lxml.html\nprint(\"hello\")\n",
			},
			expect: Placeholder,
		},
		{
			name: "php placeholder",
			files: map[string]string{
				"scraper.php": "<?php\n// template\nrequire_once 'vendor/autoload.php';\necho \"This is a placeholder\";\n?>\n",
			},
			expect: Placeholder,
		},
		{
			name: "php short scraper",
			files: map[string]string{
				"scraper.php": "<?php\nrequire_once 'vendor/autoload.php';\n" + codeLines(5, "$page_%d = scraperwiki::scrape($url);"),
			},
			expect: Trivial,
		},
		{
			name: "prints without bootstrap",
			files: map[string]string{
				"scraper.rb": "puts 'hello'\n",
			},
			expect: Trivial,
		},
		{
			name: "short scraper",
			files: map[string]string{
				"scraper.rb": "Bundler.require\n" + codeLines(5, "page_%d = agent.get(url)"),
			},
			expect: Trivial,
		},
		{
			name: "active scraper",
			files: map[string]string{
				"scraper.rb": "Bundler.require\n" + codeLines(20, "page_%d = agent.get(url)"),
			},
			expect: Active,
		},
		{
			name: "active across files",
			files: map[string]string{
				"scraper.rb":       "require_relative 'lib/parser'\n" + codeLines(8, "a%d = 1"),
				"lib/parser.rb":    codeLines(8, "b%d = 2"),
				"lib/notes.txt":    codeLines(30, "c%d = 3"),
				".git/hooks/x.rb":  codeLines(30, "d%d = 4"),
				".bundle/setup.rb": codeLines(30, "e%d = 5"),
			},
			expect: Active,
		},
		{
			name: "duplicate lines count once",
			files: map[string]string{
				"scraper.rb":    codeLines(8, "a%d = 1"),
				"lib/copy.rb":   codeLines(8, "a%d = 1"),
				"lib/other.rb":  "# only comments\n",
				"lib/readme.md": codeLines(20, "x%d"),
			},
			expect: Trivial,
		},
		{
			name: "perl use boundary",
			files: map[string]string{
				"scraper.pl": "use strict;\nuse LWP::Simple;\nuser_agent();\nprint \"ok\";\n",
			},
			expect: Trivial,
		},
		{
			name: "ruby wins over python",
			files: map[string]string{
				"scraper.rb": "Bundler.require\nputs 'hi'\n",
				"scraper.py": codeLines(20, "x%d = 1"),
			},
			expect: Placeholder,
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			s := New(writeRepo(t, test.files), Options{})
			verdict, err := s.Classify()
			require.NoError(t, err)
			require.Equal(t, test.expect, verdict)

			again, err := s.Classify()
			require.NoError(t, err)
			require.Equal(t, verdict, again)
		})
	}
}

func TestMinActiveLines(t *testing.T) {
	src := writeRepo(t, map[string]string{
		"scraper.js": "const cheerio = require('cheerio');\n" + codeLines(4, "let v%d = 1;"),
	})

	// the require call is assigned, so it counts as an active line
	verdict, err := New(src, Options{MinActiveLines: 5}).Classify()
	require.NoError(t, err)
	require.Equal(t, Active, verdict)

	verdict, err = New(src, Options{MinActiveLines: 6}).Classify()
	require.NoError(t, err)
	require.Equal(t, Trivial, verdict)
}

func TestActiveLines(t *testing.T) {
	src := writeRepo(t, map[string]string{
		"scraper.php": strings.Join([]string{
			"<?php",
			"// comment",
			"require_once 'vendor/autoload.php';",
			"  $html = scraperwiki::scrape(\"https://example.com/da\");  ",
			"echo \"done\";",
			"",
			"$dom = new simple_html_dom();",
		}, "\n"),
		"lib/helper.php": "$dom = new simple_html_dom();\n$rows = $dom->find('tr');\n",
		".git/x.php":     "$ignored = true;\n",
	})
	s := New(src, Options{})

	profile, ok := s.Profile()
	require.True(t, ok)
	require.Equal(t, "scraper.php", profile.EntryPoint)

	scraper, err := s.ActiveLines(ViewScraper)
	require.NoError(t, err)
	diff := cmp.Diff([]string{
		"$html = scraperwiki::scrape(\"https://example.com/da\");",
		"$dom = new simple_html_dom();",
	}, scraper)
	if diff != "" {
		t.Fatal(diff)
	}

	repo, err := s.ActiveLines(ViewRepository)
	require.NoError(t, err)
	diff = cmp.Diff([]string{
		"$html = scraperwiki::scrape(\"https://example.com/da\");",
		"$dom = new simple_html_dom();",
		"$rows = $dom->find('tr');",
	}, repo)
	if diff != "" {
		t.Fatal(diff)
	}
}

func TestNoScraperLines(t *testing.T) {
	s := New(writeRepo(t, map[string]string{"main.go": "package main\n"}), Options{})
	_, ok := s.Profile()
	require.False(t, ok)
	lines, err := s.ActiveLines(ViewRepository)
	require.NoError(t, err)
	require.Empty(t, lines)
}

func TestStatementPrefix(t *testing.T) {
	perl, ok := ProfileFor("scraper.pl")
	require.True(t, ok)
	js, ok := ProfileFor("scraper.js")
	require.True(t, ok)

	testCases := []struct {
		profile Profile
		line    string
		active  bool
	}{
		{profile: perl, line: "use strict;", active: false},
		{profile: perl, line: "use", active: false},
		{profile: perl, line: "user_agent();", active: true},
		{profile: perl, line: "printf(\"%s\", $x);", active: true},
		{profile: perl, line: "print $x;", active: false},
		{profile: js, line: "console.log('x');", active: false},
		{profile: js, line: "console.logger = x;", active: true},
		{profile: js, line: "requireAll();", active: true},
		{profile: js, line: "// x", active: false},
		{profile: js, line: "", active: false},
	}
	for _, test := range testCases {
		require.Equal(t, test.active, test.profile.Active(test.line), test.line)
	}

	_, ok = ProfileFor("main.go")
	require.False(t, ok)
}

func TestVerdictText(t *testing.T) {
	for _, v := range Verdicts {
		text, err := v.MarshalText()
		require.NoError(t, err)
		var parsed Verdict
		require.NoError(t, parsed.UnmarshalText(text))
		require.Equal(t, v, parsed)
	}
	require.Equal(t, "no_scraper", NoScraper.String())
	_, err := ParseVerdict("broken")
	require.Error(t, err)
}

func TestPreamble(t *testing.T) {
	php, ok := ProfileFor("scraper.php")
	require.True(t, ok)
	ruby, ok := ProfileFor("scraper.rb")
	require.True(t, ok)

	require.False(t, php.Active("<?php"))
	require.False(t, php.Active("?>"))
	require.True(t, php.Active("<?php echo $x; ?>"))
	require.True(t, ruby.Active("<?php"))
}

func TestUnknownVerdictIsUnclassifiable(t *testing.T) {
	s := New(writeRepo(t, map[string]string{"scraper.rb": "x = 1\n"}), Options{})

	require.NoError(t, s.checkLeaf(Active))
	err := s.checkLeaf(Verdict(len(Verdicts)))
	require.ErrorIs(t, err, ErrUnclassifiable)
	require.Contains(t, err.Error(), "scraper.rb")

	for _, v := range Verdicts {
		require.True(t, v.Valid(), v.String())
	}
	require.False(t, Verdict(-1).Valid())
}

func TestDirSourceErrors(t *testing.T) {
	_, err := NewDirSource(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)

	file := filepath.Join(t.TempDir(), "file.rb")
	require.NoError(t, os.WriteFile(file, nil, 0644))
	_, err = NewDirSource(file)
	require.Error(t, err)
}
