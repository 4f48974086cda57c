package sftp

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"

	"shuttle/internal/creds"
	"shuttle/internal/models"
	"shuttle/internal/trust"
)

func generateHostKey(t *testing.T) (ssh.PublicKey, string) {
	t.Helper()

	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	sshPub, err := ssh.NewPublicKey(pub)
	require.NoError(t, err)

	declared := sshPub.Type() + " " + base64.StdEncoding.EncodeToString(sshPub.Marshal())
	return sshPub, declared
}

func TestHostKeyCallback_MatchingKey(t *testing.T) {
	key, declared := generateHostKey(t)

	cb := hostKeyCallback(creds.Record{ServerKey: declared})
	assert.NoError(t, cb("files.example.com:22", nil, key))
}

func TestHostKeyCallback_MismatchedKey(t *testing.T) {
	key, _ := generateHostKey(t)
	_, otherDeclared := generateHostKey(t)

	cb := hostKeyCallback(creds.Record{ServerKey: otherDeclared})
	err := cb("files.example.com:22", nil, key)
	assert.ErrorIs(t, err, models.ErrHostKeyMismatch)
}

func TestConnect_MissingServerKey(t *testing.T) {
	// A group without a server_key must fail as a bad credential before
	// the trust store or the network is touched.
	store := trust.NewStore(filepath.Join(t.TempDir(), "known_hosts"))
	rec := creds.Record{Auth: creds.AuthPassword, Password: "x"}

	_, err := Connect("files.example.com", "batch", rec, store, time.Second)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrCredentialInvalid)

	_, found, err := store.Lookup("files.example.com")
	require.NoError(t, err)
	assert.False(t, found, "no trust record should be written")
}

func TestAuthMethods(t *testing.T) {
	methods, err := authMethods(creds.Record{Auth: creds.AuthPassword, Password: "x"})
	require.NoError(t, err)
	assert.Len(t, methods, 1)

	_, err = authMethods(creds.Record{Auth: creds.AuthKeyFile, KeyFile: "/does/not/exist"})
	assert.ErrorIs(t, err, models.ErrCredentialInvalid)

	_, err = authMethods(creds.Record{Auth: "kerberos"})
	assert.ErrorIs(t, err, models.ErrCredentialInvalid)
}
