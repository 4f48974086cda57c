package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"shuttle/internal/catalog"
	"shuttle/internal/creds"
	"shuttle/internal/gatekeeper"
	"shuttle/internal/interfaces"
	"shuttle/internal/journal"
	"shuttle/internal/models"
	"shuttle/internal/pathspec"
	"shuttle/internal/selection"
	"shuttle/internal/transfer"
)

// endpointFactory opens the protocol-specific endpoint once credentials and
// the share name are resolved.
type endpointFactory func(rec creds.Record, share string) (interfaces.Endpoint, error)

// runTransfer is the pipeline shared by the sftp and smb commands: resolve
// paths, look up credentials, build the catalogs, apply selection policy,
// and hand the working set to the orchestrator.
func runTransfer(command string, req models.TransferRequest, networked bool, connect endpointFactory) error {
	slog.Info("transfer requested",
		"command", command, "host", req.Host, "user", req.User,
		"mode", string(req.Mode), "local", req.LocalPath, "remote", req.RemotePath)

	localRole := pathspec.RoleFile
	if req.Mode == models.ModeGetMany {
		localRole = pathspec.RoleDirectory
	}
	local := pathspec.Resolve(req.LocalPath, localRole)

	var remote pathspec.Descriptor
	if networked {
		remote = pathspec.ResolveNetworked(req.RemotePath, pathspec.RoleFile)
	} else {
		remote = pathspec.Resolve(req.RemotePath, pathspec.RoleFile)
	}

	store, err := creds.Load(req.CredsFile)
	if err != nil {
		return err
	}
	rec, err := store.LookupShared(req.User, req.Host, remote.Share)
	if err != nil {
		return err
	}

	endpoint, err := connect(rec, remote.Share)
	if err != nil {
		return err
	}
	defer endpoint.Close()

	candidates, destExisting, err := buildCatalogs(endpoint, req, local, remote)
	if err != nil {
		return err
	}

	engine := selection.NewEngine(nil)
	selected, err := engine.Select(candidates, req.Multiplicity, req.Requiredness, req.Limit)
	if err != nil {
		return err
	}
	if len(selected) == 0 {
		slog.Info("no files found, nothing to transfer")
		return nil
	}

	if req.Mode.IsGet() {
		gk := gatekeeper.New(cfg.Transfer.MinFreeBytes)
		if err := gk.CheckDestination(local.Dir); err != nil {
			return err
		}
	}

	job := transfer.Job{
		Mode:         req.Mode,
		Files:        selected,
		RemoteDir:    remote.Dir,
		LocalDir:     local.Dir,
		DestExisting: destExisting,
		Overwrite:    req.Overwrite,
		Delete:       req.Delete,
		Convert:      req.Conversion == models.Convert,
	}
	if req.Mode.IsGet() {
		job.TargetName = local.Name
	} else {
		job.TargetName = remote.Name
	}

	orch := transfer.New(endpoint)

	runID := uuid.NewString()
	if cfg.Journal.Path != "" {
		j, jerr := journal.New(cfg.Journal.Path)
		if jerr != nil {
			return jerr
		}
		defer j.Close()
		if jerr := j.RecordRun(runID, command, req.Host, req.User, req.Mode); jerr != nil {
			slog.Warn("failed to journal run", "error", jerr)
		} else {
			orch.SetJournal(j, runID)
			defer func() {
				status, msg := "completed", ""
				if err != nil {
					status, msg = "failed", err.Error()
				}
				if jerr := j.FinishRun(runID, status, msg); jerr != nil {
					slog.Warn("failed to finish journal run", "error", jerr)
				}
			}()
		}
	}

	results, err := orch.Run(job)
	if err != nil {
		return err
	}

	err = report(req, results)
	return err
}

// buildCatalogs lists the source candidates and captures the destination
// catalog used for overwrite checks. The destination catalog is taken once,
// before any transfers begin.
func buildCatalogs(endpoint interfaces.Endpoint, req models.TransferRequest, local, remote pathspec.Descriptor) ([]string, map[string]bool, error) {
	if req.Mode.IsGet() {
		candidates, err := catalog.Remote(endpoint, remote.Dir, remote.Name)
		if err != nil {
			return nil, nil, err
		}
		destNames, err := destCatalog(catalog.Local(local.Dir, ""))
		if err != nil {
			return nil, nil, err
		}
		return candidates, catalog.Contains(destNames), nil
	}

	// The local side is the source here: a missing directory is an
	// operator error, not an empty catalog.
	candidates, err := catalog.Local(local.Dir, local.Name)
	if err != nil {
		return nil, nil, err
	}
	destNames, err := destCatalog(catalog.Remote(endpoint, remote.Dir, ""))
	if err != nil {
		return nil, nil, err
	}
	return candidates, catalog.Contains(destNames), nil
}

// destCatalog tolerates a missing destination directory: it may not exist
// yet, and the transfer itself will surface that if it matters.
func destCatalog(names []string, err error) ([]string, error) {
	if errors.Is(err, models.ErrDirectoryNotFound) {
		return nil, nil
	}
	return names, err
}

// report aggregates per-file outcomes into the final process status. A skip
// never aborts the batch, but in ONE-modes the single mandated delivery did
// not happen, so the run fails.
func report(req models.TransferRequest, results []models.TransferResult) error {
	transferred, skipped := 0, 0
	for _, r := range results {
		if r.Transferred() {
			transferred++
		}
		if r.Skipped() {
			skipped++
		}
	}
	slog.Info("transfer finished", "transferred", transferred, "skipped", skipped)

	if req.Mode.IsSingle() && skipped > 0 {
		return fmt.Errorf("target %s already exists and overwrite policy is %s", results[0].Target, models.NoOverwrite)
	}
	return nil
}
