package cli

import (
	"github.com/spf13/cobra"

	"shuttle/internal/creds"
	"shuttle/internal/interfaces"
	"shuttle/internal/smb"
)

var smbCmd = &cobra.Command{
	Use:   "smb <host> <user> <mode> <local-path> <remote-path> <creds-file> <delete> <limit> <overwrite> <multiplicity> <requiredness> <convert>",
	Short: "Transfer files to or from a Windows/CIFS share",
	Long: `Transfer files to or from a Windows/CIFS share as one scheduler step.

Parameters follow the sftp command, plus a trailing conversion flag
(CONVERT or NO_CONVERT) that rewrites text line endings: Unix to DOS on
uploads, DOS to Unix on downloads.

The first segment of the remote path names the share. Credentials may be
grouped as [user@host/share] or [user@host]; the user may carry a domain
as DOMAIN\user.`,
	Args: cobra.ExactArgs(12),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := parseRequest(args[:11], args[11])
		if err != nil {
			return err
		}

		return runTransfer("smb", req, true, func(rec creds.Record, share string) (interfaces.Endpoint, error) {
			return smb.Connect(req.Host, req.User, rec, share, cfg.Transfer.ConnectTimeout)
		})
	},
}
