// Package discovery enumerates source files below a root directory.
//
// Symbolic links to directories are not followed, so link cycles cannot loop
// the walk, but linked trees are not listed either.
package discovery

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"
)

// Options filters the listing.
type Options struct {
	// Extensions to include, with leading dot. Matched case-insensitively.
	Extensions []string
	// Ignore holds glob patterns matched against slash-separated paths relative
	// to the root. A directory matching "dir/**" is skipped entirely.
	Ignore []string
}

type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// Walker lists source files.
type Walker struct {
	extensions []string
	ignore     []compiledPattern
}

// NewWalker compiles the ignore patterns.
func NewWalker(opts Options) (*Walker, error) {
	w := &Walker{}
	for _, ext := range opts.Extensions {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		w.extensions = append(w.extensions, ext)
	}

	for _, pattern := range opts.Ignore {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
		}
		w.ignore = append(w.ignore, compiledPattern{pattern: pattern, glob: g})
	}

	return w, nil
}

// ListSourceFiles returns the matching files under root in lexical order.
// A root that is itself a file is returned when its extension matches.
func ListSourceFiles(root string, opts Options) ([]string, error) {
	w, err := NewWalker(opts)
	if err != nil {
		return nil, err
	}
	return w.List(root)
}

func (w *Walker) List(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", root, err)
	}
	if !info.IsDir() {
		if w.matchesExtension(root) {
			return []string{root}, nil
		}
		return []string{}, nil
	}

	files := []string{}
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			if relPath != "." && w.shouldIgnore(relPath+"/**") {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() || w.shouldIgnore(relPath) {
			return nil
		}
		if w.matchesExtension(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	return files, nil
}

func (w *Walker) matchesExtension(path string) bool {
	if len(w.extensions) == 0 {
		return true
	}
	return slices.Contains(w.extensions, strings.ToLower(filepath.Ext(path)))
}

func (w *Walker) shouldIgnore(relPath string) bool {
	for _, cp := range w.ignore {
		if cp.glob.Match(relPath) {
			return true
		}
		// "**/x" should also match "x" at the root
		if strings.HasPrefix(cp.pattern, "**/") && !strings.Contains(strings.TrimSuffix(relPath, "/**"), "/") {
			if g, err := glob.Compile(strings.TrimPrefix(cp.pattern, "**/"), '/'); err == nil && g.Match(relPath) {
				return true
			}
		}
	}
	return false
}
