// Package smb implements the remote endpoint over SMB/CIFS, mounting one
// share per run.
package smb

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"time"

	"github.com/hirochachacha/go-smb2"

	"shuttle/internal/creds"
	"shuttle/internal/interfaces"
	"shuttle/internal/models"
)

const defaultPort = "445"

// Client is an SMB endpoint bound to one share for one run.
type Client struct {
	conn    net.Conn
	session *smb2.Session
	share   *smb2.Share
}

// Connect dials the host, authenticates with NTLM, and mounts the share.
// The user parameter may carry a domain as "DOMAIN\user". SMB requires
// password authentication.
func Connect(host, user string, rec creds.Record, shareName string, timeout time.Duration) (*Client, error) {
	if rec.Auth != creds.AuthPassword {
		return nil, fmt.Errorf("%w: smb transfers require auth=password, got %q", models.ErrCredentialInvalid, rec.Auth)
	}

	domain := ""
	if d, u, found := strings.Cut(user, "\\"); found {
		domain, user = d, u
	}

	conn, err := net.DialTimeout("tcp", net.JoinHostPort(host, defaultPort), timeout)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", models.ErrEndpointUnavailable, host, err)
	}

	dialer := &smb2.Dialer{
		Initiator: &smb2.NTLMInitiator{
			User:     user,
			Password: rec.Password,
			Domain:   domain,
		},
	}

	session, err := dialer.Dial(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: smb session on %s: %v", models.ErrEndpointUnavailable, host, err)
	}

	share, err := session.Mount(shareName)
	if err != nil {
		session.Logoff()
		conn.Close()
		return nil, fmt.Errorf("%w: failed to mount share %s on %s: %v", models.ErrEndpointUnavailable, shareName, host, err)
	}

	return &Client{conn: conn, session: session, share: share}, nil
}

// List returns the entries of a directory on the mounted share.
func (c *Client) List(dir string) ([]interfaces.FileInfo, error) {
	entries, err := c.share.ReadDir(winPath(dir))
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

// Fetch copies a file from the share to a local path.
func (c *Client) Fetch(remotePath, localPath string) error {
	src, err := c.share.Open(winPath(remotePath))
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

// Store copies a local file to the share.
func (c *Client) Store(localPath, remotePath string) error {
	src, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("failed to open local file %s: %w", localPath, err)
	}
	defer src.Close()

	dst, err := c.share.Create(winPath(remotePath))
	if err != nil {
		return fmt.Errorf("failed to create remote file %s: %w", remotePath, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("failed to upload %s: %w", localPath, err)
	}
	return dst.Close()
}

// Delete removes a file from the share.
func (c *Client) Delete(remotePath string) error {
	if err := c.share.Remove(winPath(remotePath)); err != nil {
		return fmt.Errorf("failed to delete remote file %s: %w", remotePath, err)
	}
	return nil
}

// Close unmounts the share and tears down the session.
func (c *Client) Close() error {
	var errs []error
	if err := c.share.Umount(); err != nil {
		errs = append(errs, err)
	}
	if err := c.session.Logoff(); err != nil {
		errs = append(errs, err)
	}
	if err := c.conn.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// winPath converts a slash-separated share-relative path to the backslash
// form the wire protocol expects.
func winPath(p string) string {
	p = strings.Trim(strings.ReplaceAll(p, "/", "\\"), "\\")
	if p == "." {
		return ""
	}
	return p
}
