// Package fixtures loads local HTML test pages by glob pattern: a
// single doublestar.Glob call over the fixture directory, since
// fixture sets are small and loaded once per run rather than walked
// continuously.
package fixtures

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/net/html"
)

// Glob returns every file under root matching pattern (doublestar
// syntax, "**" supported), sorted for reproducible iteration order.
func Glob(root, pattern string) ([]string, error) {
	fsys := os.DirFS(root)
	matches, err := doublestar.Glob(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("fixtures: glob %q under %q: %w", pattern, root, err)
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = filepath.Join(root, m)
	}
	sort.Strings(out)
	return out, nil
}

// LoadHTML parses one fixture file into an *html.Node document.
func LoadHTML(path string) (*html.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("fixtures: open %q: %w", path, err)
	}
	defer f.Close()

	doc, err := html.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("fixtures: parse %q: %w", path, err)
	}
	return doc, nil
}

// LoadAll loads every fixture matching pattern under root, in sorted
// path order, for table tests that iterate a whole testdata/ directory.
func LoadAll(root, pattern string) (map[string]*html.Node, error) {
	paths, err := Glob(root, pattern)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*html.Node, len(paths))
	for _, p := range paths {
		doc, err := LoadHTML(p)
		if err != nil {
			return nil, err
		}
		out[p] = doc
	}
	return out, nil
}
