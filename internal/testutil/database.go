package testutil

import (
	"testing"

	"shuttle/internal/journal"
)

// SetupTestJournal creates an in-memory SQLite journal for testing
func SetupTestJournal(t *testing.T) *journal.Journal {
	t.Helper()

	j, err := journal.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test journal: %v", err)
	}

	t.Cleanup(func() {
		j.Close()
	})

	return j
}
