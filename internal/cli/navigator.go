package cli

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/rryowa/bookstore/internal/client"
	"github.com/rryowa/bookstore/internal/notify"
	"github.com/rryowa/bookstore/internal/util"
)

// terminalNavigator cannot open the login page, so it tells the user how to
// sign in again.
type terminalNavigator struct {
	notifier *notify.Notifier
}

func newTerminalNavigator(n *notify.Notifier) *terminalNavigator {
	return &terminalNavigator{notifier: n}
}

func (t *terminalNavigator) Navigate(path string) {
	t.notifier.Warning(fmt.Sprintf("Session expired (login page %s). Run 'bookstore login' to sign in again.", path))
}

func errorMessage(err error) string {
	switch {
	case errors.Is(err, client.ErrAuthenticationRequired):
		return "Authentication required. Run 'bookstore login' first."
	case errors.Is(err, client.ErrNoRefreshToken):
		return "No refresh token stored. Run 'bookstore login' first."
	case util.StatusCode(err) == http.StatusForbidden:
		return "Permission denied (HTTP 403)."
	case util.StatusCode(err) == http.StatusNotFound:
		return "Not found (HTTP 404)."
	default:
		return err.Error()
	}
}
