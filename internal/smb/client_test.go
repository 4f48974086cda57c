package smb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"shuttle/internal/creds"
	"shuttle/internal/models"
)

func TestWinPath(t *testing.T) {
	assert.Equal(t, "", winPath("."))
	assert.Equal(t, "", winPath("/"))
	assert.Equal(t, "in", winPath("in"))
	assert.Equal(t, "in\\reports", winPath("in/reports"))
	assert.Equal(t, "in\\reports\\q1.txt", winPath("/in/reports/q1.txt"))
}

func TestConnect_RequiresPasswordAuth(t *testing.T) {
	_, err := Connect("winhost", "svc", creds.Record{Auth: creds.AuthKeyFile, KeyFile: "/k"}, "data$", time.Second)
	assert.ErrorIs(t, err, models.ErrCredentialInvalid)
}
