package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Mode is the direction and cardinality of a transfer job.
type Mode string

const (
	ModeGetOne  Mode = "GET_ONE"
	ModeGetMany Mode = "GET_MANY"
	ModePutOne  Mode = "PUT_ONE"
	ModePutMany Mode = "PUT_MANY"
)

// DeletePolicy controls whether the source copy is removed after a
// successful transfer.
type DeletePolicy string

const (
	DeleteSource DeletePolicy = "DEL"
	KeepSource   DeletePolicy = "NO_DEL"
)

// OverwritePolicy controls what happens when the target filename already
// exists on the destination side.
type OverwritePolicy string

const (
	Overwrite   OverwritePolicy = "OVERWRITE"
	NoOverwrite OverwritePolicy = "NO_OVERWRITE"
)

// MultiplicityPolicy resolves more-than-one pattern match.
type MultiplicityPolicy string

const (
	AllowMany  MultiplicityPolicy = "MANY"
	SingleOnly MultiplicityPolicy = "SINGLE"
	RandomOne  MultiplicityPolicy = "RANDOM"
)

// RequirednessPolicy decides whether zero matches is an error or a benign
// no-op.
type RequirednessPolicy string

const (
	Required RequirednessPolicy = "REQUIRED"
	Optional RequirednessPolicy = "OPTIONAL"
)

// ConversionPolicy controls line-ending conversion on SMB transfers.
type ConversionPolicy string

const (
	Convert   ConversionPolicy = "CONVERT"
	NoConvert ConversionPolicy = "NO_CONVERT"
)

// Limit caps how many files a MANY-mode transfer may act on. The zero value
// is unbounded.
type Limit struct {
	Bounded bool
	N       int
}

// Unbounded reports whether the limit places no cap on the file count.
func (l Limit) Unbounded() bool {
	return !l.Bounded
}

func (l Limit) String() string {
	if !l.Bounded {
		return "ALL"
	}
	return strconv.Itoa(l.N)
}

// ParseLimit parses the CLI limit parameter: "ALL" or a non-negative integer.
func ParseLimit(s string) (Limit, error) {
	if strings.EqualFold(s, "ALL") {
		return Limit{}, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return Limit{}, fmt.Errorf("%w: limit must be ALL or a non-negative integer, got %q", ErrUsage, s)
	}
	return Limit{Bounded: true, N: n}, nil
}

// ParseMode parses the CLI mode parameter.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToUpper(s)) {
	case ModeGetOne, ModeGetMany, ModePutOne, ModePutMany:
		return Mode(strings.ToUpper(s)), nil
	}
	return "", fmt.Errorf("%w: unknown mode %q", ErrUsage, s)
}

// IsGet reports whether the mode transfers from remote to local.
func (m Mode) IsGet() bool {
	return m == ModeGetOne || m == ModeGetMany
}

// IsSingle reports whether the mode transfers exactly one file.
func (m Mode) IsSingle() bool {
	return m == ModeGetOne || m == ModePutOne
}

// TransferRequest describes one transfer job end to end. It is built once
// from the CLI parameters and never mutated after Validate.
type TransferRequest struct {
	Host         string
	User         string
	Mode         Mode
	LocalPath    string
	RemotePath   string
	CredsFile    string
	Delete       DeletePolicy
	Limit        Limit
	Overwrite    OverwritePolicy
	Multiplicity MultiplicityPolicy
	Requiredness RequirednessPolicy
	Conversion   ConversionPolicy
}

// Validate enforces the mode/policy compatibility rules: ONE-modes transfer
// at most one file, so they forbid allow-many multiplicity and a bounded
// limit; MANY-modes require allow-many multiplicity. Requiredness is free
// in every mode: an OPTIONAL ONE-mode job succeeds with no transfer when
// nothing matches.
func (r *TransferRequest) Validate() error {
	if r.Host == "" {
		return fmt.Errorf("%w: remote host is required", ErrUsage)
	}
	if r.User == "" {
		return fmt.Errorf("%w: remote user is required", ErrUsage)
	}
	if r.LocalPath == "" || r.RemotePath == "" {
		return fmt.Errorf("%w: local and remote paths are required", ErrUsage)
	}
	if r.CredsFile == "" {
		return fmt.Errorf("%w: credentials file is required", ErrUsage)
	}

	if r.Mode.IsSingle() {
		if r.Multiplicity == AllowMany {
			return fmt.Errorf("%w: mode %s cannot use multiplicity %s", ErrUsage, r.Mode, AllowMany)
		}
		if r.Limit.Bounded {
			return fmt.Errorf("%w: mode %s requires limit ALL, got %s", ErrUsage, r.Mode, r.Limit)
		}
	} else {
		if r.Multiplicity != AllowMany {
			return fmt.Errorf("%w: mode %s requires multiplicity %s, got %s", ErrUsage, r.Mode, AllowMany, r.Multiplicity)
		}
	}

	return nil
}
