// Package trust manages the persisted host-identity store: one line per
// host in "host keytype base64" form, append-only except for the explicit
// remove-then-add replacement of a single host's record.
//
// The reconciliation rule always prefers the operator-declared expected key
// from the credentials file over whatever is currently stored: mismatches
// are corrected, not rejected. This keeps unattended jobs from wedging on a
// key rotation, at the cost of not protecting against a hostile rotation.
// The actual enforcement happens at connect time, when the presented host
// key is compared against the expected one.
package trust

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// State is the trust state reached for one host after reconciliation.
type State string

const (
	// StateUnverified means verification was explicitly disabled.
	StateUnverified State = "unverified"
	// StateNew means there was no stored record and the expected key was
	// added.
	StateNew State = "new"
	// StateConfirmed means the stored record matches the expected key.
	StateConfirmed State = "confirmed"
	// StateUpdated means the stored record differed and was replaced with
	// the expected key.
	StateUpdated State = "updated"
)

// Store is a line-oriented host key store.
type Store struct {
	path string
}

// NewStore opens (or will lazily create) the store at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Lookup returns the stored key material for host, if any.
func (s *Store) Lookup(host string) (string, bool, error) {
	records, err := s.read()
	if err != nil {
		return "", false, err
	}
	key, ok := records[strings.ToLower(host)]
	return key, ok, nil
}

// Replace removes any existing record for host and appends the new one.
// Every other line, comments included, is preserved verbatim in order.
func (s *Store) Replace(host, key string) error {
	data, err := os.ReadFile(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	target := strings.ToLower(host)
	var kept []string
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			if h, _, found := strings.Cut(trimmed, " "); found && strings.ToLower(h) == target {
				continue
			}
		}
		kept = append(kept, line)
	}
	for len(kept) > 0 && strings.TrimSpace(kept[len(kept)-1]) == "" {
		kept = kept[:len(kept)-1]
	}
	kept = append(kept, target+" "+key)

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, []byte(strings.Join(kept, "\n")+"\n"), 0644)
}

// Reconcile drives the trust state machine for one host before any data
// transfer. The expected key comes from the credential record and always
// wins over the stored one.
func (s *Store) Reconcile(host, expected string, disabled bool) (State, error) {
	if disabled {
		slog.Warn("host identity verification disabled", "host", host)
		return StateUnverified, nil
	}

	stored, ok, err := s.Lookup(host)
	if err != nil {
		return "", fmt.Errorf("failed to read trust store: %w", err)
	}

	switch {
	case !ok:
		if err := s.Replace(host, expected); err != nil {
			return "", fmt.Errorf("failed to record host key for %s: %w", host, err)
		}
		slog.Info("host key recorded", "host", host)
		return StateNew, nil
	case stored == expected:
		return StateConfirmed, nil
	default:
		if err := s.Replace(host, expected); err != nil {
			return "", fmt.Errorf("failed to update host key for %s: %w", host, err)
		}
		slog.Warn("stored host key replaced with declared key", "host", host)
		return StateUpdated, nil
	}
}

func (s *Store) read() (map[string]string, error) {
	records := make(map[string]string)

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return records, nil
		}
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		host, key, found := strings.Cut(line, " ")
		if !found {
			continue
		}
		records[strings.ToLower(host)] = key
	}
	return records, scanner.Err()
}
