package models

import "errors"

// Error taxonomy for one transfer run. Fatal errors abort the job with exit
// status 2; callers wrap these sentinels with parameter or path detail.
var (
	// ErrUsage marks malformed CLI parameters or mode/policy
	// incompatibilities. Reported before any side effects.
	ErrUsage = errors.New("usage error")

	// ErrCredentialNotFound means no credential group matches the
	// requested identity.
	ErrCredentialNotFound = errors.New("credentials not found")

	// ErrCredentialInvalid means the matching credential group is missing
	// a required key or holds a disallowed value.
	ErrCredentialInvalid = errors.New("credentials invalid")

	// ErrDirectoryNotFound means the endpoint reported that the listed
	// path does not exist. Distinct from an empty directory.
	ErrDirectoryNotFound = errors.New("directory not found")

	// ErrEndpointUnavailable means the remote transport could not be
	// reached at all.
	ErrEndpointUnavailable = errors.New("endpoint unavailable")

	// ErrMultipleMatches means more than one file matched under the
	// error-on-many multiplicity policy.
	ErrMultipleMatches = errors.New("multiple files matched")

	// ErrNoFilesFound means zero files matched under the required policy.
	ErrNoFilesFound = errors.New("no files found")

	// ErrHostKeyMismatch means the host presented a key that differs from
	// the operator-declared expected key.
	ErrHostKeyMismatch = errors.New("host key mismatch")
)
