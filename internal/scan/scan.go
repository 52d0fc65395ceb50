package scan

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Filter decides which repository entries may contribute to the snapshot.
// The zero value excludes nothing; use DefaultFilter for the standard set.
type Filter struct {
	// Directory names excluded wherever they appear in the path.
	ExcludeDirs map[string]bool
	// Lowercased file suffixes that are never text worth sending.
	ExcludeSuffixes map[string]bool
	// Dot-prefixed names that are allowed despite being hidden.
	AllowHidden map[string]bool
}

// DefaultFilter mirrors the exclusion set the assistant has always used:
// VCS and tool state directories, compiled or binary artifacts, and hidden
// files except the repository's ignore file.
func DefaultFilter() Filter {
	return Filter{
		ExcludeDirs: map[string]bool{
			".git":          true,
			".idea":         true,
			".venv":         true,
			"__pycache__":   true,
			".pytest_cache": true,
		},
		ExcludeSuffixes: map[string]bool{
			".pyc":    true,
			".joblib": true,
			".png":    true,
			".jpg":    true,
			".jpeg":   true,
			".gif":    true,
			".pdf":    true,
		},
		AllowHidden: map[string]bool{".gitignore": true},
	}
}

// Allows reports whether the repo-relative slash path passes the filter.
func (f Filter) Allows(rel string) bool {
	parts := strings.Split(rel, "/")
	for _, part := range parts[:len(parts)-1] {
		if f.ExcludeDirs[part] {
			return false
		}
	}
	name := parts[len(parts)-1]
	if f.ExcludeSuffixes[strings.ToLower(filepath.Ext(name))] {
		return false
	}
	if strings.HasPrefix(name, ".") && !f.AllowHidden[name] {
		return false
	}
	return true
}

// List walks root and returns the repo-relative slash paths of all regular
// files that pass the filter, sorted by byte order over the full relative
// path. Sorting the collected paths (rather than relying on walk order)
// keeps the result stable regardless of how siblings interleave with
// directories.
func List(root string, filter Filter) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees are skipped, not fatal.
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if p != root && filter.ExcludeDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, relErr := filepath.Rel(root, p)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if !filter.Allows(rel) {
			return nil
		}
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}
