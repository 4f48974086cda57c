package interfaces

import "shuttle/internal/models"

// FileInfo is one entry from a remote directory listing.
type FileInfo struct {
	Name string
	Size int64
	Dir  bool
}

// Endpoint is the remote file-service capability a transfer runs against.
// Implementations verify host identity while connecting; all calls are
// blocking and synchronous. Remote paths are slash-separated.
type Endpoint interface {
	// List returns the entries of a remote directory. A missing directory
	// fails with models.ErrDirectoryNotFound; an unreachable transport
	// fails with models.ErrEndpointUnavailable.
	List(dir string) ([]FileInfo, error)
	// Fetch copies a remote file to a local path.
	Fetch(remotePath, localPath string) error
	// Store copies a local file to a remote path.
	Store(localPath, remotePath string) error
	// Delete removes a remote file.
	Delete(remotePath string) error
	Close() error
}

// Journal records transfer runs for the scheduler-facing audit trail.
type Journal interface {
	RecordRun(runID, command, host, user string, mode models.Mode) error
	RecordFile(runID string, result models.TransferResult) error
	FinishRun(runID, status, errMsg string) error
	Close() error
}
