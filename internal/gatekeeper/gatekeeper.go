// Package gatekeeper enforces resource constraints before a transfer is
// allowed to start.
package gatekeeper

import (
	"fmt"
	"log/slog"

	"golang.org/x/sys/unix"
)

// Gatekeeper checks the local destination before inbound transfers.
type Gatekeeper struct {
	minFreeBytes int64
}

// New creates a gatekeeper. A zero minFreeBytes disables the free-space
// check.
func New(minFreeBytes int64) *Gatekeeper {
	return &Gatekeeper{minFreeBytes: minFreeBytes}
}

// CheckDestination verifies the filesystem holding dir has the configured
// headroom. A missing directory passes: the destination may not exist yet
// and the transfer will surface that on its own.
func (g *Gatekeeper) CheckDestination(dir string) error {
	if g.minFreeBytes <= 0 {
		return nil
	}

	var stat unix.Statfs_t
	if err := unix.Statfs(dir, &stat); err != nil {
		slog.Warn("failed to stat destination filesystem", "path", dir, "error", err)
		return nil
	}

	free := int64(stat.Bavail) * int64(stat.Bsize)
	if free < g.minFreeBytes {
		return fmt.Errorf("destination %s has %d bytes free, below the %d byte floor", dir, free, g.minFreeBytes)
	}

	slog.Debug("destination free space ok", "path", dir, "free_bytes", free)
	return nil
}
