package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"shuttle/internal/models"
	"shuttle/internal/move"
	"shuttle/internal/selection"
)

// The move flags keep the Y/N enum convention of the scheduler platform,
// which passes --flag= when no value is configured.
var moveFlags struct {
	search       string
	recurse      string
	filename     string
	matchCase    string
	minSize      int64
	maxSize      int64
	maxAge       int64
	parmFile     string
	searchInFile string
	searchRegexp string
	outputDir    string
	outputName   string
	singleFile   string
	mustMatch    string
	overwrite    string
	action       string
	unix2dos     string
}

var moveCmd = &cobra.Command{
	Use:   "move",
	Short: "Identify and move or copy local job output files",
	RunE: func(cmd *cobra.Command, args []string) error {
		if moveFlags.outputDir == "" {
			return fmt.Errorf("%w: --output_dir is required", models.ErrUsage)
		}

		search := moveFlags.search
		if search == "" {
			search = os.Getenv("HOME")
		}
		if search == "" {
			return fmt.Errorf("%w: no search path specified and $HOME is not set", models.ErrUsage)
		}

		action := move.Action(strings.ToLower(moveFlags.action))
		switch action {
		case move.ActionMove, move.ActionCopy, move.ActionTest:
		default:
			return fmt.Errorf("%w: action must be move, copy or test, got %q", models.ErrUsage, moveFlags.action)
		}

		opts := move.Options{
			Search:       search,
			Recurse:      isYes(moveFlags.recurse),
			Pattern:      moveFlags.filename,
			MatchCase:    isYes(withDefault(moveFlags.matchCase, "Y")),
			MinSize:      moveFlags.minSize,
			MaxSize:      moveFlags.maxSize,
			MaxAge:       time.Duration(moveFlags.maxAge) * time.Minute,
			SearchText:   moveFlags.searchInFile,
			SearchRegexp: moveFlags.searchRegexp,
			ParmFile:     moveFlags.parmFile,
			OutputDir:    moveFlags.outputDir,
			OutputName:   moveFlags.outputName,
			SingleFile:   isYes(moveFlags.singleFile),
			MustMatch:    isYes(moveFlags.mustMatch),
			Overwrite:    isYes(moveFlags.overwrite),
			Action:       action,
			UnixToDOS:    isYes(moveFlags.unix2dos),
		}

		acted, err := move.Run(opts, selection.NewEngine(nil))
		if err != nil {
			return err
		}

		slog.Info("move finished", "acted", len(acted))
		return nil
	},
}

func isYes(value string) bool {
	return strings.EqualFold(strings.TrimSpace(value), "Y")
}

// withDefault re-applies a default for flags the scheduler passes empty.
func withDefault(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}

func init() {
	f := moveCmd.Flags()
	f.StringVarP(&moveFlags.search, "search", "s", "", "Directory to search for files in (defaults to $HOME)")
	f.StringVarP(&moveFlags.recurse, "recurse", "r", "N", "Search sub directories of the search path (Y/N)")
	f.StringVarP(&moveFlags.filename, "filename", "F", "", "Name of file to act on, accepts glob (* and ?) patterns")
	f.StringVarP(&moveFlags.matchCase, "match_case", "C", "Y", "Make filename match case sensitive (Y/N)")
	f.Int64Var(&moveFlags.minSize, "min_size", 0, "Minimum size of the file in bytes")
	f.Int64Var(&moveFlags.maxSize, "max_size", 0, "Maximum size of the file in bytes")
	f.Int64Var(&moveFlags.maxAge, "max_age", 0, "Maximum number of minutes since the file was written to")
	f.StringVarP(&moveFlags.parmFile, "parm_file", "p", "", "Path to key=value parameters file for (name) substitution")
	f.StringVarP(&moveFlags.searchInFile, "search_in_file", "I", "", "Only match files containing this text")
	f.StringVarP(&moveFlags.searchRegexp, "search_re_in_file", "R", "", "Only match files with a line matching this regular expression")
	f.StringVarP(&moveFlags.outputDir, "output_dir", "o", "", "Directory to move or copy files to (required)")
	f.StringVarP(&moveFlags.outputName, "output_filename", "n", "", "Name to give the file in the output directory")
	f.StringVar(&moveFlags.singleFile, "single_file", "N", "Error if more than one file is matched (Y/N)")
	f.StringVar(&moveFlags.mustMatch, "must_match", "N", "Error if no files are matched (Y/N)")
	f.StringVar(&moveFlags.overwrite, "overwrite", "N", "Allow overwriting an existing destination file (Y/N)")
	f.StringVarP(&moveFlags.action, "action", "a", "", "What to do with matched files: move, copy or test")
	f.StringVarP(&moveFlags.unix2dos, "unix2dos", "u", "N", "Convert line endings to DOS format after acting (Y/N)")
}
