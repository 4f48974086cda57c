package models

// Outcome is the per-file result of a transfer attempt.
type Outcome string

const (
	OutcomeTransferred        Outcome = "transferred"
	OutcomeTransferredDeleted Outcome = "transferred_deleted"
	OutcomeSkippedExists      Outcome = "skipped_exists"
	OutcomeFailed             Outcome = "failed"
)

// TransferResult records what happened to one selected file. Results are
// aggregated across the selection to determine the process exit status.
type TransferResult struct {
	Source  string
	Target  string
	Outcome Outcome
	Detail  string
}

// Skipped reports whether the file was left untransferred because the target
// already existed under the NO_OVERWRITE policy.
func (r TransferResult) Skipped() bool {
	return r.Outcome == OutcomeSkippedExists
}

// Transferred reports whether the file bytes reached the destination.
func (r TransferResult) Transferred() bool {
	return r.Outcome == OutcomeTransferred || r.Outcome == OutcomeTransferredDeleted
}
