package commands

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"organizo/internal/backend/resthttp"
	"organizo/internal/exitcode"
)

// reportBackendErr prints a backend failure and picks the exit code.
// Unauthorized and forbidden responses count as auth failures; anything
// else from the wire is a backend error.
func reportBackendErr(errOut io.Writer, err error) int {
	var apiErr *resthttp.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Status {
		case http.StatusUnauthorized, http.StatusForbidden:
			fmt.Fprintf(errOut, "error: %s\n", apiErr.Message)
			return exitcode.AuthError
		}
		fmt.Fprintf(errOut, "error: %s\n", apiErr.Message)
		return exitcode.BackendError
	}
	fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	return exitcode.BackendError
}
