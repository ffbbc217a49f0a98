package scanner

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"scraperindex/lib/textutil"
)

// ErrUnclassifiable means an entry point was found but no verdict applied.
var ErrUnclassifiable = errors.New("repository could not be classified")

const DefaultMinActiveLines = 15

type View int

const (
	// ViewScraper is the entry point alone.
	ViewScraper View = iota
	// ViewRepository is the entry point plus every other file in the same
	// language.
	ViewRepository
)

type Options struct {
	// repositories with fewer active lines than this are trivial,
	// defaults to DefaultMinActiveLines
	MinActiveLines int
}

// Scanner classifies a single repository. Line sets and the verdict are
// computed at most once per Scanner.
type Scanner struct {
	src     Source
	opts    Options
	profile Profile
	found   bool

	lines   map[View][]string
	verdict *Verdict
}

func New(src Source, opts Options) *Scanner {
	if opts.MinActiveLines <= 0 {
		opts.MinActiveLines = DefaultMinActiveLines
	}
	s := &Scanner{
		src:   src,
		opts:  opts,
		lines: make(map[View][]string),
	}
	for _, p := range Profiles {
		if src.Exists(p.EntryPoint) {
			s.profile = p
			s.found = true
			break
		}
	}
	return s
}

// Profile returns the language profile of the detected entry point.
func (s *Scanner) Profile() (Profile, bool) {
	return s.profile, s.found
}

func (s *Scanner) ActiveLines(view View) ([]string, error) {
	if !s.found {
		return nil, nil
	}
	if lines, ok := s.lines[view]; ok {
		return lines, nil
	}

	var lines []string
	var err error
	switch view {
	case ViewScraper:
		lines, err = s.fileActiveLines(s.profile.EntryPoint)
	case ViewRepository:
		lines, err = s.repositoryActiveLines()
	default:
		return nil, fmt.Errorf("unknown view %d", view)
	}
	if err != nil {
		return nil, err
	}

	s.lines[view] = lines
	return lines, nil
}

func (s *Scanner) fileActiveLines(rel string) ([]string, error) {
	raw, err := s.src.ReadLines(rel)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rel, err)
	}
	var out []string
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if s.profile.Active(line) {
			out = append(out, line)
		}
	}
	return out, nil
}

func (s *Scanner) repositoryActiveLines() ([]string, error) {
	lines, err := s.ActiveLines(ViewScraper)
	if err != nil {
		return nil, err
	}
	combined := append([]string{}, lines...)

	files, err := s.src.FilesWithExtension(s.profile.Extension)
	if err != nil {
		return nil, fmt.Errorf("list %s files: %w", s.profile.Extension, err)
	}
	for _, rel := range files {
		if rel == s.profile.EntryPoint {
			continue
		}
		lines, err := s.fileActiveLines(rel)
		if err != nil {
			return nil, err
		}
		combined = append(combined, lines...)
	}
	return textutil.Dedupe(combined), nil
}

// isPlaceholder looks at the entry point's code lines: at least one
// bootstrap line and nothing else but print statements.
func (s *Scanner) isPlaceholder() (bool, error) {
	raw, err := s.src.ReadLines(s.profile.EntryPoint)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", s.profile.EntryPoint, err)
	}
	imports := 0
	for _, line := range raw {
		line = strings.TrimSpace(line)
		switch {
		case line == "" || s.profile.IsPreamble(line) || s.profile.IsComment(line):
		case s.profile.IsImport(line):
			imports++
		case s.profile.IsPrint(line):
		default:
			return false, nil
		}
	}
	return imports > 0, nil
}

func (s *Scanner) Classify() (Verdict, error) {
	if s.verdict != nil {
		return *s.verdict, nil
	}
	verdict, err := s.classify()
	if err != nil {
		return verdict, err
	}
	err = s.checkLeaf(verdict)
	if err != nil {
		return NoScraper, err
	}
	s.verdict = &verdict
	return verdict, nil
}

// checkLeaf rejects anything classify produced that is not a known verdict.
func (s *Scanner) checkLeaf(verdict Verdict) error {
	if verdict.Valid() {
		return nil
	}
	return fmt.Errorf("%w: %s (%s) ended in %s", ErrUnclassifiable, s.src.Name(), s.profile.EntryPoint, verdict)
}

func (s *Scanner) classify() (Verdict, error) {
	if !s.found {
		return NoScraper, nil
	}

	placeholder, err := s.isPlaceholder()
	if err != nil {
		return NoScraper, err
	}
	if placeholder {
		return Placeholder, nil
	}

	lines, err := s.ActiveLines(ViewRepository)
	if err != nil {
		return NoScraper, err
	}
	slog.Debug(
		"counted active lines",
		"repo", s.src.Name(),
		"entry_point", s.profile.EntryPoint,
		"lines", len(lines),
	)

	if len(lines) < s.opts.MinActiveLines {
		return Trivial, nil
	}
	return Active, nil
}
