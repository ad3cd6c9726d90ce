package cmd

import (
	"errors"
	"fmt"

	"github.com/arlink/cli/pkg/arns"
	"github.com/arlink/cli/pkg/arweave"
)

// friendlyError converts the package error taxonomy into the single
// user-facing message each failed invocation surfaces. Unknown errors
// pass through unchanged.
func friendlyError(err error) error {
	switch {
	case errors.Is(err, arweave.ErrWalletUnavailable):
		return fmt.Errorf("wallet unavailable: connect one with 'arlink wallet connect --keyfile <path>'")
	case errors.Is(err, arweave.ErrPermissionDenied):
		return fmt.Errorf("wallet connection was declined")
	case errors.Is(err, arns.ErrDirectoryUnavailable):
		return fmt.Errorf("could not reach the ArNS registry; try again later")
	case errors.Is(err, arns.ErrInvalidURL):
		return fmt.Errorf("that does not look like a permaweb URL (expected https://<subdomain>.arweave.net/<transaction-id>)")
	case errors.Is(err, arns.ErrSubmissionFailed):
		return fmt.Errorf("the record update was not accepted: %v", err)
	case errors.Is(err, arns.ErrNameNotFound):
		return fmt.Errorf("the updated contract no longer appears in the registry")
	}
	return err
}
