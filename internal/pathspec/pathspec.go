// Package pathspec decomposes raw path parameters into structured
// descriptors. Resolution is a pure function of the input: the same raw path
// and role always yield the same descriptor, with no filesystem or network
// access.
package pathspec

import (
	"path"
	"strings"
)

// Role says how the final path segment is interpreted.
type Role int

const (
	// RoleFile treats the final segment as a filename or glob pattern.
	RoleFile Role = iota
	// RoleDirectory treats the entire path as a directory.
	RoleDirectory
)

// KeepName is the target-filename placeholder meaning "reuse the source
// filename".
const KeepName = "*"

// Descriptor is the structured view of one path parameter.
type Descriptor struct {
	// Share is the container name extracted from a networked path.
	// Empty for local and SFTP paths.
	Share string
	// Dir is the directory portion, slash-separated.
	Dir string
	// Name is the filename or glob pattern. Empty means "match all".
	Name string
}

// Resolve decomposes raw into directory and filename per role. Backslash
// separators are normalized to forward slashes. A path with no separator
// resolves to directory "." with the whole string as filename.
func Resolve(raw string, role Role) Descriptor {
	norm := normalize(raw)

	if role == RoleDirectory {
		return Descriptor{Dir: cleanDir(norm)}
	}

	if !strings.Contains(norm, "/") {
		return Descriptor{Dir: ".", Name: norm}
	}

	dir, name := path.Split(norm)
	return Descriptor{Dir: cleanDir(dir), Name: name}
}

// ResolveNetworked is Resolve for remote networked paths: the first path
// segment is the share name and is removed from the directory.
func ResolveNetworked(raw string, role Role) Descriptor {
	norm := strings.TrimLeft(normalize(raw), "/")

	share := norm
	rest := ""
	if i := strings.Index(norm, "/"); i >= 0 {
		share, rest = norm[:i], norm[i+1:]
	}

	d := Resolve(rest, role)
	d.Share = share
	if rest == "" {
		// Bare share name: the share root with no filename component.
		d.Dir = "."
		d.Name = ""
	}
	return d
}

// Path rejoins the descriptor's directory and filename.
func (d Descriptor) Path() string {
	if d.Name == "" {
		return d.Dir
	}
	return path.Join(d.Dir, d.Name)
}

// IsPattern reports whether the filename component contains glob
// metacharacters.
func (d Descriptor) IsPattern() bool {
	return strings.ContainsAny(d.Name, "*?[")
}

func normalize(raw string) string {
	return strings.ReplaceAll(strings.TrimSpace(raw), "\\", "/")
}

func cleanDir(dir string) string {
	dir = strings.TrimRight(dir, "/")
	if dir == "" {
		return "/"
	}
	return path.Clean(dir)
}
