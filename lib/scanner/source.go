package scanner

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Source is a read-only view of one repository. Paths are slash separated
// and relative to the repository root.
type Source interface {
	Name() string
	Exists(rel string) bool
	ReadLines(rel string) ([]string, error)
	FilesWithExtension(ext string) ([]string, error)
}

const contentCacheSize = 128

// DirSource reads a repository checked out on disk.
type DirSource struct {
	root     string
	contents *lru.Cache[string, []string]
}

func NewDirSource(root string) (DirSource, error) {
	info, err := os.Stat(root)
	if err != nil {
		return DirSource{}, err
	}
	if !info.IsDir() {
		return DirSource{}, &fs.PathError{Op: "open", Path: root, Err: errors.New("not a directory")}
	}
	contents, err := lru.New[string, []string](contentCacheSize)
	if err != nil {
		return DirSource{}, err
	}
	return DirSource{root: root, contents: contents}, nil
}

func (s DirSource) Name() string {
	return filepath.Base(s.root)
}

func (s DirSource) Root() string {
	return s.root
}

func (s DirSource) Exists(rel string) bool {
	info, err := os.Stat(filepath.Join(s.root, filepath.FromSlash(rel)))
	return err == nil && info.Mode().IsRegular()
}

func (s DirSource) ReadLines(rel string) ([]string, error) {
	if lines, ok := s.contents.Get(rel); ok {
		return lines, nil
	}
	contents, err := os.ReadFile(filepath.Join(s.root, filepath.FromSlash(rel)))
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(contents), "\n")
	s.contents.Add(rel, lines)
	return lines, nil
}

// FilesWithExtension walks the repository in lexical order, skipping hidden
// directories such as .git.
func (s DirSource) FilesWithExtension(ext string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != s.root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || filepath.Ext(d.Name()) != ext {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
