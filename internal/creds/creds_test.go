package creds

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shuttle/internal/models"
)

func writeCreds(t *testing.T, content string) *Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "creds.ini")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	store, err := Load(path)
	require.NoError(t, err)
	return store
}

func TestLookup_Password(t *testing.T) {
	store := writeCreds(t, `
[batch@files.example.com]
auth = password
password = hunter2
server_key = ssh-ed25519 AAAAC3NzaC1lZDI1NTE5AAAAIDexample
`)

	rec, err := store.Lookup("batch", "files.example.com", "")
	require.NoError(t, err)
	assert.Equal(t, AuthPassword, rec.Auth)
	assert.Equal(t, "hunter2", rec.Password)
	assert.Equal(t, "ssh-ed25519 AAAAC3NzaC1lZDI1NTE5AAAAIDexample", rec.ServerKey)
	assert.False(t, rec.VerificationDisabled())
}

func TestLookup_KeyFile(t *testing.T) {
	store := writeCreds(t, `
[batch@files.example.com]
auth = keyfile
keyfile = /etc/shuttle/id_ed25519
`)

	rec, err := store.Lookup("batch", "files.example.com", "")
	require.NoError(t, err)
	assert.Equal(t, AuthKeyFile, rec.Auth)
	assert.Equal(t, "/etc/shuttle/id_ed25519", rec.KeyFile)
	assert.Empty(t, rec.Password)
}

func TestLookup_CaseInsensitive(t *testing.T) {
	store := writeCreds(t, `
[Batch@Files.Example.COM]
auth = password
password = s3cret
`)

	rec, err := store.Lookup("batch", "files.example.com", "")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", rec.Password)
}

func TestLookup_ShareQualified(t *testing.T) {
	store := writeCreds(t, `
[svc@winhost/data$]
auth = password
password = sharepw

[svc@winhost]
auth = password
password = hostpw
`)

	rec, err := store.Lookup("svc", "winhost", "data$")
	require.NoError(t, err)
	assert.Equal(t, "sharepw", rec.Password)

	// Unknown share falls back to the plain identity.
	rec, err = store.LookupShared("svc", "winhost", "other")
	require.NoError(t, err)
	assert.Equal(t, "hostpw", rec.Password)
}

func TestLookup_NotFound(t *testing.T) {
	store := writeCreds(t, `
[batch@files.example.com]
auth = password
password = hunter2
`)

	_, err := store.Lookup("other", "files.example.com", "")
	assert.ErrorIs(t, err, models.ErrCredentialNotFound)

	_, err = store.LookupShared("other", "winhost", "data$")
	assert.ErrorIs(t, err, models.ErrCredentialNotFound)
}

func TestLookup_Invalid(t *testing.T) {
	store := writeCreds(t, `
[nopass@host]
auth = password

[nokey@host]
auth = keyfile

[badauth@host]
auth = kerberos
password = x
`)

	_, err := store.Lookup("nopass", "host", "")
	assert.ErrorIs(t, err, models.ErrCredentialInvalid)

	_, err = store.Lookup("nokey", "host", "")
	assert.ErrorIs(t, err, models.ErrCredentialInvalid)

	_, err = store.Lookup("badauth", "host", "")
	assert.ErrorIs(t, err, models.ErrCredentialInvalid)
}

func TestVerificationDisabled(t *testing.T) {
	store := writeCreds(t, `
[batch@host]
auth = password
password = x
server_key = DISABLED
`)

	rec, err := store.Lookup("batch", "host", "")
	require.NoError(t, err)
	assert.True(t, rec.VerificationDisabled())
}
