package scanner

import "strings"

// Profile describes how to read one scraper language.
type Profile struct {
	EntryPoint    string
	Extension     string
	CommentPrefix string
	ImportPrefix  string
	PrintPrefix   string
	// whole lines that only open or close the source, such as "<?php"
	Preamble []string
}

// Profiles is checked in order, the first entry point that exists wins.
var Profiles = []Profile{
	{EntryPoint: "scraper.rb", Extension: ".rb", CommentPrefix: "#", ImportPrefix: "Bundler.require", PrintPrefix: "puts"},
	{EntryPoint: "scraper.php", Extension: ".php", CommentPrefix: "//", ImportPrefix: "require_once", PrintPrefix: "echo", Preamble: []string{"<?php", "<?", "?>"}},
	{EntryPoint: "scraper.py", Extension: ".py", CommentPrefix: "#", ImportPrefix: "import", PrintPrefix: "print"},
	{EntryPoint: "scraper.pl", Extension: ".pl", CommentPrefix: "#", ImportPrefix: "use", PrintPrefix: "print"},
	{EntryPoint: "scraper.js", Extension: ".js", CommentPrefix: "//", ImportPrefix: "require", PrintPrefix: "console.log"},
}

// ProfileFor looks up the profile for an entry point filename.
func ProfileFor(entryPoint string) (Profile, bool) {
	for _, p := range Profiles {
		if p.EntryPoint == entryPoint {
			return p, true
		}
	}
	return Profile{}, false
}

func (p Profile) IsComment(line string) bool {
	return strings.HasPrefix(line, p.CommentPrefix)
}

func (p Profile) IsPreamble(line string) bool {
	for _, tag := range p.Preamble {
		if line == tag {
			return true
		}
	}
	return false
}

func (p Profile) IsImport(line string) bool {
	return hasStatementPrefix(line, p.ImportPrefix)
}

func (p Profile) IsPrint(line string) bool {
	return hasStatementPrefix(line, p.PrintPrefix)
}

// Active reports whether a stripped line carries logic.
func (p Profile) Active(line string) bool {
	return line != "" &&
		!p.IsPreamble(line) &&
		!p.IsComment(line) &&
		!p.IsImport(line) &&
		!p.IsPrint(line)
}

// hasStatementPrefix is a prefix match that does not accept an identifier
// continuing past the prefix, so "user = 1" does not start with "use".
func hasStatementPrefix(line, prefix string) bool {
	if prefix == "" || !strings.HasPrefix(line, prefix) {
		return false
	}
	if len(line) == len(prefix) {
		return true
	}
	return !isIdentByte(line[len(prefix)])
}

func isIdentByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}
