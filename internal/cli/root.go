// Package cli is the bookstore command line: a terminal front for the
// authenticated API client.
package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rryowa/bookstore/internal/client"
	"github.com/rryowa/bookstore/internal/notify"
	"github.com/rryowa/bookstore/internal/util"
)

type contextKey string

const cliContextKey contextKey = "cliContext"

// CliContext holds what every command shares.
type CliContext struct {
	Client   *client.Client
	Notifier *notify.Notifier
	Log      *zap.SugaredLogger
	Out      io.Writer

	cleanup []func()
}

type rootFlags struct {
	apiURL   string
	backend  string
	logLevel string
}

// NewRootCommand builds the command tree. Notifications go to errOut.
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	var (
		flags rootFlags
		cc    = &CliContext{
			Out:      out,
			Notifier: notify.NewNotifier(notify.NewTerminalSurface(errOut), nil),
		}
	)

	cmd := &cobra.Command{
		Use:           "bookstore",
		Short:         "Command line client for the bookstore API",
		Long:          `Manage books, favorites and reference data through the bookstore REST API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			util.LoadEnv()

			level := flags.logLevel
			if level == "" {
				level = util.GetLogLevel()
			}
			cc.Log = util.NewZapLogger(level)
			cc.Log.Debugw("CLI started", "command", cmd.CommandPath())

			if cmd.Name() == "serve" {
				cmd.SetContext(context.WithValue(cmd.Context(), cliContextKey, cc))
				return nil
			}

			if err := cc.setupClient(cmd.Context(), flags); err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), cliContextKey, cc))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			cc.close()
		},
	}

	cmd.PersistentFlags().StringVar(&flags.apiURL, "api-url", "", "API root, overrides API_BASE_URL")
	cmd.PersistentFlags().StringVar(&flags.backend, "storage", "",
		"Credential storage backend (memory, file, redis, postgres), overrides STORAGE_BACKEND")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(newLoginCommand())
	cmd.AddCommand(newLogoutCommand())
	cmd.AddCommand(newRefreshCommand())
	cmd.AddCommand(newWhoamiCommand())
	cmd.AddCommand(newBooksCommand())
	cmd.AddCommand(newFavoritesCommand())
	cmd.AddCommand(newDropdownsCommand())
	cmd.AddCommand(newReferenceCommands()...)
	cmd.AddCommand(newServeCommand())

	return cmd
}

func (cc *CliContext) setupClient(ctx context.Context, flags rootFlags) error {
	clientCfg := util.NewClientConfig()
	if flags.apiURL != "" {
		clientCfg.BaseURL = flags.apiURL
	}
	storageCfg := util.NewStorageConfig()
	if flags.backend != "" {
		storageCfg.Backend = flags.backend
	}

	store, cleanup, err := newStorage(ctx, storageCfg, cc.Log)
	if err != nil {
		return err
	}
	cc.cleanup = append(cc.cleanup, cleanup)

	jar, err := cookiejar.New(nil)
	if err != nil {
		return fmt.Errorf("cookie jar: %w", err)
	}
	cookies, err := client.NewJarCookies(jar, clientCfg.BaseURL)
	if err != nil {
		return err
	}

	cc.Client = client.NewClient(
		clientCfg,
		store,
		cookies,
		newTerminalNavigator(cc.Notifier),
		cc.Log,
		client.WithHTTPClient(&http.Client{Jar: jar}),
	)
	if err := cc.Client.Restore(ctx); err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	return nil
}

func (cc *CliContext) close() {
	for i := len(cc.cleanup) - 1; i >= 0; i-- {
		if cc.cleanup[i] != nil {
			cc.cleanup[i]()
		}
	}
	cc.cleanup = nil
	if cc.Log != nil {
		_ = cc.Log.Sync()
	}
}

func getCliContext(cmd *cobra.Command) *CliContext {
	return cmd.Context().Value(cliContextKey).(*CliContext)
}

// Execute runs the CLI and returns the process exit code. Failures are shown
// as error notifications.
func Execute(ctx context.Context) int {
	root := NewRootCommand(os.Stdout, os.Stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		showError(root, err)
		return 1
	}
	return 0
}

func showError(root *cobra.Command, err error) {
	n := notify.NewNotifier(notify.NewTerminalSurface(root.ErrOrStderr()), nil)
	n.Error(errorMessage(err))
}
