// Package catalog lists the candidate files on each side of a transfer.
// Catalogs are rebuilt fresh each run and never cached.
package catalog

import (
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"

	"shuttle/internal/interfaces"
	"shuttle/internal/models"
)

// Remote lists the filenames under dir on the endpoint that match pattern.
// Directories are excluded; entries without a usable name are ignored
// without failing the listing. An empty pattern matches everything.
func Remote(ep interfaces.Endpoint, dir, pattern string) ([]string, error) {
	entries, err := ep.List(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.Dir || entry.Name == "" || entry.Name == "." || entry.Name == ".." {
			continue
		}
		ok, err := match(pattern, entry.Name)
		if err != nil {
			return nil, err
		}
		if ok {
			names = append(names, entry.Name)
		}
	}
	return names, nil
}

// Local lists the filenames under dir on the local filesystem that match
// pattern. A missing directory fails with models.ErrDirectoryNotFound;
// destination-side callers tolerate that, source-side callers surface it.
func Local(dir, pattern string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", models.ErrDirectoryNotFound, dir)
		}
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ok, err := match(pattern, entry.Name())
		if err != nil {
			return nil, err
		}
		if ok {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// Contains builds an existence set from a catalog, for overwrite checks.
func Contains(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}

// match applies case-sensitive glob semantics for * and ?.
func match(pattern, name string) (bool, error) {
	if pattern == "" {
		return true, nil
	}
	ok, err := doublestar.Match(pattern, name)
	if err != nil {
		return false, fmt.Errorf("bad filename pattern %q: %w", pattern, err)
	}
	return ok, nil
}
