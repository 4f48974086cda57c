package cli

import "shuttle/internal/models"

// parseRequest builds a TransferRequest from the order-significant
// positional parameters: host, user, mode, local path, remote path,
// credentials file, delete flag, limit, overwrite policy, multiplicity
// policy, requiredness policy. The SMB command passes its extra conversion
// parameter; the SFTP command passes "".
func parseRequest(args []string, conversion string) (models.TransferRequest, error) {
	mode, err := models.ParseMode(args[2])
	if err != nil {
		return models.TransferRequest{}, err
	}
	del, err := models.ParseDeletePolicy(args[6])
	if err != nil {
		return models.TransferRequest{}, err
	}
	limit, err := models.ParseLimit(args[7])
	if err != nil {
		return models.TransferRequest{}, err
	}
	overwrite, err := models.ParseOverwritePolicy(args[8])
	if err != nil {
		return models.TransferRequest{}, err
	}
	multiplicity, err := models.ParseMultiplicityPolicy(args[9])
	if err != nil {
		return models.TransferRequest{}, err
	}
	requiredness, err := models.ParseRequirednessPolicy(args[10])
	if err != nil {
		return models.TransferRequest{}, err
	}

	conv := models.NoConvert
	if conversion != "" {
		conv, err = models.ParseConversionPolicy(conversion)
		if err != nil {
			return models.TransferRequest{}, err
		}
	}

	req := models.TransferRequest{
		Host:         args[0],
		User:         args[1],
		Mode:         mode,
		LocalPath:    args[3],
		RemotePath:   args[4],
		CredsFile:    args[5],
		Delete:       del,
		Limit:        limit,
		Overwrite:    overwrite,
		Multiplicity: multiplicity,
		Requiredness: requiredness,
		Conversion:   conv,
	}
	if err := req.Validate(); err != nil {
		return models.TransferRequest{}, err
	}
	return req, nil
}
