package cli

import (
	"github.com/spf13/cobra"

	"github.com/rryowa/bookstore/internal/api"
	"github.com/rryowa/bookstore/internal/service"
	"github.com/rryowa/bookstore/internal/storage"
	"github.com/rryowa/bookstore/internal/storage/memory"
	"github.com/rryowa/bookstore/internal/storage/redis"
	"github.com/rryowa/bookstore/internal/util"
)

func newServeCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web front with cookie based page protection",
		Long: `Serves the bookstore pages. Pages under /dashboard/, /books/ and /favorites/
require a valid access_token cookie signed with JWT_SECRET. Requests to /api/
are proxied to API_BASE_URL.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := getCliContext(cmd)
			ctx := cmd.Context()

			serverCfg := util.NewServerConfig()
			if addr != "" {
				serverCfg.ServerAddr = addr
			}
			storageCfg := util.NewStorageConfig()

			var revoked storage.TokenStorage = memory.NewTokenStorage()
			if storageCfg.RedisAddr != "" {
				rc, cleanup, err := util.NewRedisClient(ctx, cc.Log, storageCfg.RedisAddr)
				if err != nil {
					return err
				}
				cc.cleanup = append(cc.cleanup, cleanup)
				revoked = redis.NewTokenStorage(rc)
			}

			tokenService := service.NewTokenService(util.NewTokenConfig(), revoked)
			server, err := api.NewAPI(tokenService, util.NewClientConfig(), cc.Log, serverCfg)
			if err != nil {
				return err
			}
			server.Run(ctx)
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address, overrides SERVER_ADDRESS")

	return cmd
}
