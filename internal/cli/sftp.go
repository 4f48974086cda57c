package cli

import (
	"github.com/spf13/cobra"

	"shuttle/internal/creds"
	"shuttle/internal/interfaces"
	"shuttle/internal/sftp"
	"shuttle/internal/trust"
)

var sftpCmd = &cobra.Command{
	Use:   "sftp <host> <user> <mode> <local-path> <remote-path> <creds-file> <delete> <limit> <overwrite> <multiplicity> <requiredness>",
	Short: "Transfer files to or from an SFTP server",
	Long: `Transfer files to or from an SFTP server as one scheduler step.

Parameters are positional and order-significant. Mode is one of GET_ONE,
GET_MANY, PUT_ONE, PUT_MANY; delete is DEL or NO_DEL; limit is ALL or a
non-negative integer; overwrite is OVERWRITE or NO_OVERWRITE; multiplicity
is MANY, SINGLE or RANDOM; requiredness is REQUIRED or OPTIONAL.

The credentials file must hold a [user@host] group with auth, password or
keyfile, and a server_key (the expected host key, or "disabled").`,
	Args: cobra.ExactArgs(11),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := parseRequest(args, "")
		if err != nil {
			return err
		}

		return runTransfer("sftp", req, false, func(rec creds.Record, share string) (interfaces.Endpoint, error) {
			store := trust.NewStore(cfg.Transfer.KnownHostsFile)
			return sftp.Connect(req.Host, req.User, rec, store, cfg.Transfer.ConnectTimeout)
		})
	},
}
