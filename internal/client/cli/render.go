package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/docuport/internal/client/api"
	"github.com/dmitrijs2005/docuport/internal/client/models"
	"github.com/dmitrijs2005/docuport/internal/client/services"
)

// reportErr translates service and transport errors into one-line user
// messages. It returns the error unchanged so handlers can still
// propagate it.
func reportErr(err error) error {
	if err == nil {
		return nil
	}

	var verr *api.ValidationError
	switch {
	case errors.Is(err, services.ErrCapabilityDenied):
		printlnFn("You do not have permission for that.")
	case errors.Is(err, api.ErrUnauthorized):
		printlnFn("Your session has expired, please log in again.")
	case errors.Is(err, api.ErrInvalidCredentials):
		printlnFn("Invalid email or password.")
	case errors.Is(err, api.ErrForbidden):
		printlnFn("The server refused the request.")
	case errors.Is(err, api.ErrNotFound):
		printlnFn("Not found.")
	case errors.Is(err, api.ErrUnavailable):
		printlnFn("Server unavailable, try again later.")
	case errors.As(err, &verr):
		printlnFn("Validation failed:", verr.Error())
	default:
		printlnFn("Error:", err.Error())
	}
	return err
}

// parseID extracts the numeric id expected as the command's first argument.
func parseID(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, errors.New("missing id argument")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", args[0])
	}
	return id, nil
}

// newTable returns a tabwriter on stdout for aligned listings.
func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}

// formatSize renders a byte count in a compact human unit.
func formatSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/float64(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/float64(1<<10))
	}
	return fmt.Sprintf("%d B", n)
}

// pageFooter renders the "n-m of total (page x/y)" line under a listing.
func pageFooter[T any](p *models.Page[T]) string {
	return fmt.Sprintf("%d-%d of %d (page %d/%d)", p.From, p.To, p.Total, p.CurrentPage, p.LastPage)
}
