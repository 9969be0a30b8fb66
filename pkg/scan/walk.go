package scan

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	errs "github.com/matzehuels/depflow/pkg/errors"
)

// DefaultDenylist names the directories and files that are never walked,
// in addition to every name starting with ".".
var DefaultDenylist = []string{
	"node_modules",
	"target",
	"dist",
	"out",
	"build",
	"__pycache__",
}

// Options controls [Walk] and [Scan].
type Options struct {
	// Ignore lists extra entry names to skip along with their subtrees.
	Ignore []string

	// Gitignore enables matching against <root>/.gitignore when present.
	Gitignore bool

	// SkipParse makes [Scan] return the inventory only, without reading
	// file contents.
	SkipParse bool
}

// Entry is one discovered filesystem entry.
type Entry struct {
	ID      string // Root-relative forward-slash path
	Name    string // Last path segment
	IsDir   bool   // True for directories
	AbsPath string // Filesystem path, usable with os.Open
}

// Skipped reports whether an entry with the given name is excluded, either
// because it is hidden or because it appears in [DefaultDenylist] or extra.
func Skipped(name string, extra []string) bool {
	return strings.HasPrefix(name, ".") ||
		slices.Contains(DefaultDenylist, name) ||
		slices.Contains(extra, name)
}

// Walk lists the entries under root in lexical order. The root itself is not
// an entry. Skipped directories are not descended into.
//
// Unreadable subdirectories are left out rather than failing the walk. An
// error is returned if root does not exist or is not a directory, or if ctx
// is canceled.
func Walk(ctx context.Context, root string, opts Options) ([]Entry, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "cannot read project root %s", root)
	}
	if !info.IsDir() {
		return nil, errs.New(errs.ErrCodeInvalidPath, "project root %s is not a directory", root)
	}

	var gi *ignore.GitIgnore
	if opts.Gitignore {
		gi, err = loadGitignore(root)
		if err != nil {
			return nil, err
		}
	}

	var entries []Entry
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if path == root {
			return walkErr
		}
		if walkErr != nil {
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		id := filepath.ToSlash(rel)

		if Skipped(d.Name(), opts.Ignore) || gitignored(gi, id, d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		entries = append(entries, Entry{
			ID:      id,
			Name:    d.Name(),
			IsDir:   d.IsDir(),
			AbsPath: path,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// loadGitignore compiles <root>/.gitignore, returning nil when it does not
// exist.
func loadGitignore(root string) (*ignore.GitIgnore, error) {
	path := filepath.Join(root, ".gitignore")
	if _, err := os.Stat(path); err != nil {
		return nil, nil
	}
	gi, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "parse %s", path)
	}
	return gi, nil
}

// gitignored matches id against gi. Directory patterns ("dist/") only match
// with a trailing slash, so directories are tried both ways.
func gitignored(gi *ignore.GitIgnore, id string, isDir bool) bool {
	if gi == nil {
		return false
	}
	if gi.MatchesPath(id) {
		return true
	}
	return isDir && gi.MatchesPath(id+"/")
}
