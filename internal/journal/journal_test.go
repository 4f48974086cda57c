package journal_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shuttle/internal/models"
	"shuttle/internal/testutil"
)

func TestJournal_RunLifecycle(t *testing.T) {
	j := testutil.SetupTestJournal(t)
	runID := uuid.NewString()

	require.NoError(t, j.RecordRun(runID, "sftp", "files.example.com", "batch", models.ModeGetOne))
	require.NoError(t, j.RecordFile(runID, models.TransferResult{
		Source:  "report_2024.txt",
		Target:  "out.txt",
		Outcome: models.OutcomeTransferred,
	}))
	require.NoError(t, j.RecordFile(runID, models.TransferResult{
		Source:  "report_2023.txt",
		Target:  "old.txt",
		Outcome: models.OutcomeSkippedExists,
		Detail:  "target already exists",
	}))
	require.NoError(t, j.FinishRun(runID, "completed", ""))

	run, err := j.GetRun(runID)
	require.NoError(t, err)
	assert.Equal(t, "sftp", run.Command)
	assert.Equal(t, "files.example.com", run.Host)
	assert.Equal(t, "GET_ONE", run.Mode)
	assert.Equal(t, "completed", run.Status)
	assert.Empty(t, run.ErrorMsg)
	assert.Equal(t, 2, run.FileCount)
}

func TestJournal_FailedRun(t *testing.T) {
	j := testutil.SetupTestJournal(t)
	runID := uuid.NewString()

	require.NoError(t, j.RecordRun(runID, "smb", "winhost", "svc", models.ModePutMany))
	require.NoError(t, j.FinishRun(runID, "failed", "endpoint unavailable"))

	run, err := j.GetRun(runID)
	require.NoError(t, err)
	assert.Equal(t, "failed", run.Status)
	assert.Equal(t, "endpoint unavailable", run.ErrorMsg)
	assert.Equal(t, 0, run.FileCount)
}

func TestJournal_UnknownRun(t *testing.T) {
	j := testutil.SetupTestJournal(t)

	_, err := j.GetRun("nope")
	assert.Error(t, err)
}
