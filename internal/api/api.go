package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/rryowa/bookstore/internal/service"
	"github.com/rryowa/bookstore/internal/util"
)

// API is the web front of the bookstore: the HTML pages guarded by the
// access_token cookie, plus a reverse proxy of /api/ to the backend.
type API struct {
	server          *echo.Echo
	tokens          *service.TokenService
	clientCfg       *util.ClientConfig
	httpClient      *http.Client
	log             *zap.SugaredLogger
	gracefulTimeout time.Duration
}

func NewAPI(ts *service.TokenService, cc *util.ClientConfig, l *zap.SugaredLogger, sc *util.ServerConfig) (*API, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Server.Addr = sc.ServerAddr
	e.Server.WriteTimeout = sc.WriteTimeout
	e.Server.ReadTimeout = sc.ReadTimeout
	e.Server.IdleTimeout = sc.IdleTimeout
	e.HTTPErrorHandler = ErrorHandler(l)
	e.Renderer = newTemplateRenderer()

	a := &API{
		server:          e,
		tokens:          ts,
		clientCfg:       cc,
		httpClient:      http.DefaultClient,
		log:             l,
		gracefulTimeout: sc.GracefulTimeout,
	}
	if err := a.setupRoutes(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *API) setupRoutes() error {
	a.server.Use(echomiddleware.RequestLoggerWithConfig(GetLoggerMiddlewareConfig(a)))
	a.server.Use(JWTCookieAuthMiddleware(a.tokens, a.clientCfg.LoginPath, a.log))

	a.server.GET("/", a.homePage)
	a.server.GET("/login/", a.loginPage)
	a.server.POST("/login/", a.loginSubmit)
	a.server.GET("/register/", a.registerPage)
	a.server.GET("/dashboard/", a.dashboardPage)
	a.server.GET("/books/", a.booksPage)
	a.server.GET("/favorites/", a.favoritesPage)
	a.server.GET("/logout/", a.logout)

	target, err := backendOrigin(a.clientCfg.BaseURL)
	if err != nil {
		return err
	}
	proxy := echomiddleware.ProxyWithConfig(echomiddleware.ProxyConfig{
		Balancer: echomiddleware.NewRoundRobinBalancer([]*echomiddleware.ProxyTarget{{URL: target}}),
	})
	a.server.Any("/api/*", echo.NotFoundHandler, proxy)
	return nil
}

// backendOrigin keeps scheme and host of the API root; request paths
// already start with /api/.
func backendOrigin(baseURL string) (*url.URL, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("invalid API base url %q", baseURL)
	}
	return &url.URL{Scheme: u.Scheme, Host: u.Host}, nil
}

func (a *API) Handler() http.Handler {
	return a.server
}

func (a *API) Run(ctxBackground context.Context) {
	ctx, stop := signal.NotifyContext(ctxBackground, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.ListenGracefulShutdown(ctx)
}

func (a *API) ListenGracefulShutdown(ctx context.Context) {
	addr := a.server.Server.Addr
	go func() {
		err := a.server.Start(addr)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()
	a.log.Infof("Listening on: %s", addr)

	<-ctx.Done()
	a.log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.log.Errorf("shutdown: %v", err)
		return
	}
	a.log.Info("server shutdown completed")
}
