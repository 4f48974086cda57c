// Package transfer sequences the per-file transfer pipeline: overwrite
// check, optional line-ending conversion, the byte transfer itself, and
// optional delete-on-success.
package transfer

import (
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"shuttle/internal/convert"
	"shuttle/internal/interfaces"
	"shuttle/internal/models"
	"shuttle/internal/pathspec"
)

// Job is one resolved transfer batch. DestExisting is the destination
// catalog captured before any transfers began; it is intentionally not
// re-checked per file.
type Job struct {
	Mode         models.Mode
	Files        []string
	RemoteDir    string
	LocalDir     string
	TargetName   string
	DestExisting map[string]bool
	Overwrite    models.OverwritePolicy
	Delete       models.DeletePolicy
	Convert      bool
}

// Orchestrator runs transfer jobs against one endpoint, strictly in
// sequence. There is no per-file retry and no rollback: a fatal error on
// file i leaves files 1..i-1 transferred (and possibly deleted).
type Orchestrator struct {
	endpoint interfaces.Endpoint
	journal  interfaces.Journal
	runID    string
}

// New creates an orchestrator over the endpoint.
func New(endpoint interfaces.Endpoint) *Orchestrator {
	return &Orchestrator{endpoint: endpoint}
}

// SetJournal attaches an optional run journal.
func (o *Orchestrator) SetJournal(journal interfaces.Journal, runID string) {
	o.journal = journal
	o.runID = runID
}

// Run transfers the selected files one at a time. It returns the per-file
// results accumulated so far together with the first fatal error, if any.
func (o *Orchestrator) Run(job Job) ([]models.TransferResult, error) {
	var results []models.TransferResult

	for _, name := range job.Files {
		result, err := o.transferOne(job, name)
		results = append(results, result)
		o.record(result)
		if err != nil {
			return results, err
		}
	}

	return results, nil
}

func (o *Orchestrator) transferOne(job Job, name string) (models.TransferResult, error) {
	target := targetName(job, name)
	result := models.TransferResult{Source: name, Target: target}

	if job.Overwrite == models.NoOverwrite && job.DestExisting[target] {
		slog.Info("target exists, skipping", "source", name, "target", target)
		result.Outcome = models.OutcomeSkippedExists
		result.Detail = "target already exists"
		return result, nil
	}

	var err error
	if job.Mode.IsGet() {
		err = o.get(job, name, target)
	} else {
		err = o.put(job, name, target)
	}
	if err != nil {
		result.Outcome = models.OutcomeFailed
		result.Detail = err.Error()
		return result, err
	}

	result.Outcome = models.OutcomeTransferred
	if job.Delete == models.DeleteSource {
		if err := o.deleteSource(job, name); err != nil {
			// The file is already safely copied; deletion failure is
			// reported but does not fail the transfer.
			slog.Warn("failed to delete source after transfer", "source", name, "error", err)
			result.Detail = fmt.Sprintf("source not deleted: %v", err)
		} else {
			result.Outcome = models.OutcomeTransferredDeleted
		}
	}

	slog.Info("file transferred", "source", name, "target", target, "outcome", string(result.Outcome))
	return result, nil
}

func (o *Orchestrator) get(job Job, name, target string) error {
	remotePath := path.Join(job.RemoteDir, name)
	localPath := filepath.Join(job.LocalDir, target)

	if err := o.endpoint.Fetch(remotePath, localPath); err != nil {
		return fmt.Errorf("failed to fetch %s: %w", remotePath, err)
	}

	if job.Convert {
		if err := convert.DOSToUnixInPlace(localPath); err != nil {
			return fmt.Errorf("conversion failed for %s: %w", localPath, err)
		}
	}
	return nil
}

func (o *Orchestrator) put(job Job, name, target string) error {
	localPath := filepath.Join(job.LocalDir, name)
	remotePath := path.Join(job.RemoteDir, target)

	source := localPath
	if job.Convert {
		tmp, err := os.CreateTemp(filepath.Dir(localPath), name+".dos-*")
		if err != nil {
			return fmt.Errorf("conversion failed for %s: %w", localPath, err)
		}
		tmpPath := tmp.Name()
		tmp.Close()
		defer os.Remove(tmpPath)

		if err := convert.UnixToDOS(localPath, tmpPath); err != nil {
			return fmt.Errorf("conversion failed for %s: %w", localPath, err)
		}
		source = tmpPath
	}

	if err := o.endpoint.Store(source, remotePath); err != nil {
		return fmt.Errorf("failed to store %s: %w", remotePath, err)
	}
	return nil
}

func (o *Orchestrator) deleteSource(job Job, name string) error {
	if job.Mode.IsGet() {
		return o.endpoint.Delete(path.Join(job.RemoteDir, name))
	}
	return os.Remove(filepath.Join(job.LocalDir, name))
}

func (o *Orchestrator) record(result models.TransferResult) {
	if o.journal == nil {
		return
	}
	if err := o.journal.RecordFile(o.runID, result); err != nil {
		slog.Warn("failed to journal file result", "source", result.Source, "error", err)
	}
}

// targetName picks the destination filename: ONE-modes use the explicit
// target from the path spec, with the keep-name placeholder reusing the
// source filename; MANY-modes keep the source filename unchanged.
func targetName(job Job, source string) string {
	if job.Mode.IsSingle() && job.TargetName != "" && job.TargetName != pathspec.KeepName {
		return job.TargetName
	}
	return source
}
