// Package move implements the local match-and-move scheduler step: select
// files under a search directory by pattern and filters, then move, copy,
// or dry-run them into an output directory.
package move

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"shuttle/internal/convert"
	"shuttle/internal/models"
	"shuttle/internal/selection"
)

// Action is what to do with each matched file.
type Action string

const (
	ActionMove Action = "move"
	ActionCopy Action = "copy"
	ActionTest Action = "test"
)

// Options configures one run. Zero values mean "filter not applied".
type Options struct {
	Search       string
	Recurse      bool
	Pattern      string
	MatchCase    bool
	MinSize      int64
	MaxSize      int64
	MaxAge       time.Duration
	SearchText   string
	SearchRegexp string
	ParmFile     string

	OutputDir  string
	OutputName string
	SingleFile bool
	MustMatch  bool
	Overwrite  bool
	Action     Action
	UnixToDOS  bool
}

// Acted reports one file acted on.
type Acted struct {
	Source string
	Dest   string
}

// LoadParms reads a key=value parameters file. Parameters are substituted
// into the search path, pattern, output directory, and output filename as
// "(name)" tokens.
func LoadParms(path string) (map[string]string, error) {
	parms := make(map[string]string)
	if path == "" {
		return parms, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read parm file %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		name, value, found := strings.Cut(scanner.Text(), "=")
		if !found || strings.TrimSpace(name) == "" {
			continue
		}
		parms[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read parm file %s: %w", path, err)
	}
	return parms, nil
}

func applyParms(parms map[string]string, subject string) string {
	for name, value := range parms {
		subject = strings.ReplaceAll(subject, "("+name+")", value)
	}
	return subject
}

// Run selects and acts on matching files, returning the files acted on.
func Run(opts Options, eng *selection.Engine) ([]Acted, error) {
	parms, err := LoadParms(opts.ParmFile)
	if err != nil {
		return nil, err
	}

	search := applyParms(parms, opts.Search)
	info, err := os.Stat(search)
	if err != nil {
		return nil, fmt.Errorf("search path does not exist: %s", search)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("search path is not a directory: %s", search)
	}

	candidates, err := listCandidates(search, opts.Recurse)
	if err != nil {
		return nil, err
	}

	var matched []string
	for _, path := range candidates {
		ok, err := matches(path, opts, parms)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, path)
		}
	}

	multiplicity := models.AllowMany
	if opts.SingleFile {
		multiplicity = models.SingleOnly
	}
	requiredness := models.Optional
	if opts.MustMatch {
		requiredness = models.Required
	}

	selected, err := eng.Select(matched, multiplicity, requiredness, models.Limit{})
	if err != nil {
		return nil, err
	}

	var acted []Acted
	for _, path := range selected {
		dst, err := actOn(path, opts, parms)
		if err != nil {
			return acted, err
		}
		acted = append(acted, Acted{Source: path, Dest: dst})
	}
	return acted, nil
}

func listCandidates(search string, recurse bool) ([]string, error) {
	var paths []string

	if recurse {
		err := filepath.WalkDir(search, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", search, err)
		}
		return paths, nil
	}

	entries, err := os.ReadDir(search)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", search, err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			paths = append(paths, filepath.Join(search, entry.Name()))
		}
	}
	return paths, nil
}

func matches(path string, opts Options, parms map[string]string) (bool, error) {
	name := filepath.Base(path)

	if opts.Pattern != "" {
		pattern := applyParms(parms, opts.Pattern)
		checkName := name
		if !opts.MatchCase {
			pattern = strings.ToLower(pattern)
			checkName = strings.ToLower(checkName)
		}
		ok, err := doublestar.Match(pattern, checkName)
		if err != nil {
			return false, fmt.Errorf("bad filename pattern %q: %w", opts.Pattern, err)
		}
		if !ok {
			slog.Debug("no match: filename pattern", "path", path, "pattern", pattern)
			return false, nil
		}
	}

	if opts.MinSize > 0 || opts.MaxSize > 0 || opts.MaxAge > 0 {
		info, err := os.Stat(path)
		if err != nil {
			return false, fmt.Errorf("failed to stat %s: %w", path, err)
		}
		if opts.MinSize > 0 && info.Size() < opts.MinSize {
			slog.Debug("no match: file too small", "path", path, "size", info.Size())
			return false, nil
		}
		if opts.MaxSize > 0 && info.Size() > opts.MaxSize {
			slog.Debug("no match: file too big", "path", path, "size", info.Size())
			return false, nil
		}
		if opts.MaxAge > 0 && time.Since(info.ModTime()) > opts.MaxAge {
			slog.Debug("no match: file too old", "path", path, "modified", info.ModTime())
			return false, nil
		}
	}

	if opts.SearchText != "" {
		found, err := fileContains(path, applyParms(parms, opts.SearchText), nil)
		if err != nil || !found {
			return false, err
		}
	}

	if opts.SearchRegexp != "" {
		re, err := regexp.Compile(opts.SearchRegexp)
		if err != nil {
			return false, fmt.Errorf("bad content expression %q: %w", opts.SearchRegexp, err)
		}
		found, err := fileContains(path, "", re)
		if err != nil || !found {
			return false, err
		}
	}

	slog.Debug("matches", "path", path)
	return true, nil
}

func fileContains(path, text string, re *regexp.Regexp) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("failed to search contents of %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if re != nil {
			if re.MatchString(line) {
				return true, nil
			}
		} else if strings.Contains(line, text) {
			return true, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return false, fmt.Errorf("failed to search contents of %s: %w", path, err)
	}
	return false, nil
}

func actOn(path string, opts Options, parms map[string]string) (string, error) {
	dstName := filepath.Base(path)
	if opts.OutputName != "" {
		dstName = applyParms(parms, opts.OutputName)
	}
	dst := filepath.Join(applyParms(parms, opts.OutputDir), dstName)

	if !opts.Overwrite {
		if _, err := os.Stat(dst); err == nil {
			return "", fmt.Errorf("destination file %s already exists", dst)
		}
	}

	switch opts.Action {
	case ActionTest:
		slog.Info("test", "source", path, "dest", dst)
		return dst, nil
	case ActionCopy:
		if err := copyFile(path, dst); err != nil {
			return "", err
		}
		slog.Info("copied", "source", path, "dest", dst)
	case ActionMove:
		if err := os.Rename(path, dst); err != nil {
			return "", fmt.Errorf("failed to move %s: %w", path, err)
		}
		slog.Info("moved", "source", path, "dest", dst)
	default:
		return "", fmt.Errorf("%w: unhandled action %q", models.ErrUsage, opts.Action)
	}

	if opts.UnixToDOS {
		if err := convert.UnixToDOSInPlace(dst); err != nil {
			return "", err
		}
	}
	return dst, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	return out.Close()
}
