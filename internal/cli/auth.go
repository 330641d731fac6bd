package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rryowa/bookstore/internal/service"
)

func newLoginCommand() *cobra.Command {
	var (
		username      string
		passwordStdin bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		Example: `  bookstore login --username alice
  echo "$PASSWORD" | bookstore login --username alice --password-stdin`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := getCliContext(cmd)

			in := cmd.InOrStdin()
			br := bufio.NewReader(in)
			if username == "" {
				var err error
				if username, err = promptLine(cmd.ErrOrStderr(), br, "Username: "); err != nil {
					return err
				}
			}
			password, err := readPassword(cmd.ErrOrStderr(), in, br, passwordStdin)
			if err != nil {
				return err
			}

			resp, err := cc.Client.Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}

			name := username
			if resp.User != nil && resp.User.FirstName != "" {
				name = resp.User.FirstName
			}
			cc.Notifier.Success(fmt.Sprintf("Welcome back, %s!", name))
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Username (prompted when empty)")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the password from stdin")

	return cmd
}

func newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := getCliContext(cmd)
			if err := cc.Client.Logout(cmd.Context()); err != nil {
				return err
			}
			cc.Notifier.Success("Logged out.")
			return nil
		},
	}
}

func newRefreshCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Exchange the refresh token for a new access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := getCliContext(cmd)
			if err := cc.Client.Refresh(cmd.Context()); err != nil {
				return err
			}
			cc.Notifier.Success("Access token refreshed.")
			return nil
		},
	}
}

func newWhoamiCommand() *cobra.Command {
	var local bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := getCliContext(cmd)
			token := cc.Client.AccessToken()
			if token == "" {
				cc.Notifier.Info("Not logged in.")
				return nil
			}

			claims, err := service.ParseUnverifiedClaims(token)
			if err != nil {
				return err
			}
			if claims.ExpiresAt != nil {
				left := time.Until(claims.ExpiresAt.Time).Round(time.Second)
				if left > 0 {
					fmt.Fprintf(cc.Out, "Access token expires in %s\n", left)
				} else {
					fmt.Fprintf(cc.Out, "Access token expired %s ago\n", -left)
				}
			}
			if local {
				fmt.Fprintf(cc.Out, "User ID: %s\n", claims.UserID)
				return nil
			}

			user, err := cc.Client.CurrentUser(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cc.Out, "User ID: %d\nUsername: %s\nEmail: %s\n", user.ID, user.Username, user.Email)
			return nil
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "Only decode the stored token, do not call the API")

	return cmd
}

func promptLine(w io.Writer, br *bufio.Reader, prompt string) (string, error) {
	fmt.Fprint(w, prompt)
	line, err := br.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// readPassword hides the input on a terminal and reads a plain line
// otherwise.
func readPassword(w io.Writer, in io.Reader, br *bufio.Reader, fromStdin bool) (string, error) {
	if f, ok := in.(*os.File); ok && !fromStdin && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(w, "Password: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(w)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(b), nil
	}

	prompt := "Password: "
	if fromStdin {
		prompt = ""
	}
	return promptLine(w, br, prompt)
}
