// Package creds reads per-identity authentication material from a grouped
// key-value credentials file. Records are held in memory for the duration of
// one run and are never written back or logged.
package creds

import (
	"fmt"
	"strings"

	"gopkg.in/ini.v1"

	"shuttle/internal/models"
)

// AuthMethod selects how the remote endpoint authenticates the user.
type AuthMethod string

const (
	AuthPassword AuthMethod = "password"
	AuthKeyFile  AuthMethod = "keyfile"
)

// ServerKeyDisabled is the sentinel server_key value that skips host
// identity verification.
const ServerKeyDisabled = "disabled"

// Record is the authentication material for one identity.
type Record struct {
	Auth     AuthMethod
	Password string
	KeyFile  string
	// ServerKey is the operator-declared expected host key in
	// "keytype base64" form, the literal "disabled", or empty when the
	// group declares none.
	ServerKey string
}

// VerificationDisabled reports whether the group explicitly opted out of
// host identity verification.
func (r Record) VerificationDisabled() bool {
	return strings.EqualFold(r.ServerKey, ServerKeyDisabled)
}

// Store holds the parsed credentials file.
type Store struct {
	file *ini.File
	path string
}

// Load parses the credentials file at path.
func Load(path string) (*Store, error) {
	f, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file %s: %w", path, err)
	}
	return &Store{file: f, path: path}, nil
}

// Key builds the identity key for a lookup: "user@host" or
// "user@host/share".
func Key(user, host, share string) string {
	key := user + "@" + host
	if share != "" {
		key += "/" + share
	}
	return key
}

// Lookup finds the credential group for the identity. Matching is
// case-insensitive. A missing group fails with CredentialNotFound; a group
// with a missing required key or a disallowed auth method fails with
// CredentialInvalid.
func (s *Store) Lookup(user, host, share string) (Record, error) {
	key := Key(user, host, share)

	var section *ini.Section
	for _, sec := range s.file.Sections() {
		if strings.EqualFold(sec.Name(), key) {
			section = sec
			break
		}
	}
	if section == nil {
		return Record{}, fmt.Errorf("%w: no group %q in %s", models.ErrCredentialNotFound, key, s.path)
	}

	rec := Record{
		Auth:      AuthMethod(strings.ToLower(section.Key("auth").String())),
		ServerKey: section.Key("server_key").String(),
	}

	switch rec.Auth {
	case AuthPassword:
		rec.Password = section.Key("password").String()
		if rec.Password == "" {
			return Record{}, fmt.Errorf("%w: group %q declares auth=password but has no password", models.ErrCredentialInvalid, key)
		}
	case AuthKeyFile:
		rec.KeyFile = section.Key("keyfile").String()
		if rec.KeyFile == "" {
			return Record{}, fmt.Errorf("%w: group %q declares auth=keyfile but has no keyfile", models.ErrCredentialInvalid, key)
		}
	default:
		return Record{}, fmt.Errorf("%w: group %q has unknown auth method %q", models.ErrCredentialInvalid, key, section.Key("auth").String())
	}

	return rec, nil
}

// LookupShared tries the share-qualified identity first and falls back to
// the plain user@host group.
func (s *Store) LookupShared(user, host, share string) (Record, error) {
	rec, err := s.Lookup(user, host, share)
	if err == nil || share == "" {
		return rec, err
	}
	if fallback, ferr := s.Lookup(user, host, ""); ferr == nil {
		return fallback, nil
	}
	return Record{}, err
}
