// Package sftp implements the remote endpoint over SFTP. Host identity is
// verified while connecting: the trust store is reconciled against the
// operator-declared key first, then the presented host key must match the
// declared one.
package sftp

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"time"

	gosftp "github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"

	"shuttle/internal/creds"
	"shuttle/internal/interfaces"
	"shuttle/internal/models"
	"shuttle/internal/trust"
)

const defaultPort = "22"

// Client is an SFTP endpoint bound to one host for one run.
type Client struct {
	conn *ssh.Client
	sftp *gosftp.Client
}

// Connect reconciles the trust store, dials the host, and opens an SFTP
// session. Unreachable transports fail with models.ErrEndpointUnavailable;
// a host presenting a key other than the declared one fails with
// models.ErrHostKeyMismatch.
func Connect(host, user string, rec creds.Record, store *trust.Store, timeout time.Duration) (*Client, error) {
	if !rec.VerificationDisabled() && rec.ServerKey == "" {
		return nil, fmt.Errorf("%w: no server_key declared for %s@%s", models.ErrCredentialInvalid, user, host)
	}

	state, err := store.Reconcile(host, rec.ServerKey, rec.VerificationDisabled())
	if err != nil {
		return nil, err
	}
	slog.Info("host trust reconciled", "host", host, "state", string(state))

	auth, err := authMethods(rec)
	if err != nil {
		return nil, err
	}

	cfg := &ssh.ClientConfig{
		User:            user,
		Auth:            auth,
		HostKeyCallback: hostKeyCallback(rec),
		Timeout:         timeout,
	}

	conn, err := ssh.Dial("tcp", net.JoinHostPort(host, defaultPort), cfg)
	if err != nil {
		if errors.Is(err, models.ErrHostKeyMismatch) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %v", models.ErrEndpointUnavailable, host, err)
	}

	sc, err := gosftp.NewClient(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: failed to open sftp session on %s: %v", models.ErrEndpointUnavailable, host, err)
	}

	return &Client{conn: conn, sftp: sc}, nil
}

func authMethods(rec creds.Record) ([]ssh.AuthMethod, error) {
	switch rec.Auth {
	case creds.AuthPassword:
		return []ssh.AuthMethod{ssh.Password(rec.Password)}, nil
	case creds.AuthKeyFile:
		data, err := os.ReadFile(rec.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("%w: cannot read keyfile %s", models.ErrCredentialInvalid, rec.KeyFile)
		}
		signer, err := ssh.ParsePrivateKey(data)
		if err != nil {
			return nil, fmt.Errorf("%w: cannot parse keyfile %s", models.ErrCredentialInvalid, rec.KeyFile)
		}
		return []ssh.AuthMethod{ssh.PublicKeys(signer)}, nil
	}
	return nil, fmt.Errorf("%w: unsupported auth method %q", models.ErrCredentialInvalid, rec.Auth)
}

func hostKeyCallback(rec creds.Record) ssh.HostKeyCallback {
	if rec.VerificationDisabled() {
		return ssh.InsecureIgnoreHostKey()
	}
	return func(hostname string, remote net.Addr, key ssh.PublicKey) error {
		presented := key.Type() + " " + base64.StdEncoding.EncodeToString(key.Marshal())
		if presented != rec.ServerKey {
			return fmt.Errorf("%w: %s presented a %s key that does not match the declared server_key", models.ErrHostKeyMismatch, hostname, key.Type())
		}
		return nil
	}
}

// List returns the entries of a remote directory.
func (c *Client) List(dir string) ([]interfaces.FileInfo, error) {
	entries, err := c.sftp.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", models.ErrDirectoryNotFound, dir)
		}
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	infos := make([]interfaces.FileInfo, 0, len(entries))
	for _, entry := range entries {
		infos = append(infos, interfaces.FileInfo{
			Name: entry.Name(),
			Size: entry.Size(),
			Dir:  entry.IsDir(),
		})
	}
	return infos, nil
}

// Fetch copies a remote file to a local path.
func (c *Client) Fetch(remotePath, localPath string) error {
	src, err := c.sftp.Open(remotePath)
	if err != nil {
		return fmt.Errorf("failed to open remote file %s: %w", remotePath, err)
	}
	defer src.Close()

	dst, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("failed to create local file %s: %w", localPath, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(localPath)
		return fmt.Errorf("failed to download %s: %w", remotePath, err)
	}
	return dst.Close()
}

// Store copies a local file to a remote path.
func (c *Client) Store(localPath, remotePath string) error {
	src, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("failed to open local file %s: %w", localPath, err)
	}
	defer src.Close()

	dst, err := c.sftp.Create(remotePath)
	if err != nil {
		return fmt.Errorf("failed to create remote file %s: %w", remotePath, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("failed to upload %s: %w", localPath, err)
	}
	return dst.Close()
}

// Delete removes a remote file.
func (c *Client) Delete(remotePath string) error {
	if err := c.sftp.Remove(remotePath); err != nil {
		return fmt.Errorf("failed to delete remote file %s: %w", remotePath, err)
	}
	return nil
}

// Close tears down the SFTP session and the SSH connection.
func (c *Client) Close() error {
	if err := c.sftp.Close(); err != nil {
		c.conn.Close()
		return err
	}
	return c.conn.Close()
}
