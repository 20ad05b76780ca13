// Package server wires the gophauth server together: it builds the credential
// and session directories, the auth service and its metrics, then runs the
// gRPC endpoint and the metrics endpoint until the process is told to stop.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/cryptox"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/config"
	"github.com/dmitrijs2005/gophauth/internal/server/credentials"
	"github.com/dmitrijs2005/gophauth/internal/server/metrics"
	"github.com/dmitrijs2005/gophauth/internal/server/services"
	"github.com/dmitrijs2005/gophauth/internal/server/sessions"

	gs "github.com/dmitrijs2005/gophauth/internal/server/grpc"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config      *config.Config
	logger      logging.Logger
	metrics     *metrics.Registry
	authService *services.AuthService
}

// NewApp validates c and builds every component. Logs go to stdout.
func NewApp(c *config.Config) (*App, error) {
	return newApp(c, os.Stdout)
}

func newApp(c *config.Config, logOut io.Writer) (*App, error) {

	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := logging.NewJSONLogger(logOut, level)

	if c.SecretKey == "" {
		return nil, errors.New("secret key must not be empty")
	}

	params, err := c.HashParams()
	if err != nil {
		return nil, fmt.Errorf("hasher config error: %w", err)
	}
	hasher, err := cryptox.NewHasher(params)
	if err != nil {
		return nil, fmt.Errorf("hasher init error: %w", err)
	}

	accounts, err := credentials.NewDirectory(hasher)
	if err != nil {
		return nil, fmt.Errorf("credential directory init error: %w", err)
	}
	sess := sessions.NewDirectory()

	m := metrics.NewRegistry()
	m.ObserveDirectories(accounts.Len, sess.Len)

	as := services.NewAuthService(accounts, sess, logger)

	return &App{config: c, logger: logger, metrics: m, authService: as}, nil
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s, err := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.authService, app.metrics, app.config.SecretKey)

	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	} else {

		if err := s.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}
}

func (app *App) startMetricsServer(ctx context.Context, cancelFunc context.CancelFunc) {

	mux := http.NewServeMux()
	mux.Handle("/metrics", app.metrics.Handler())

	srv := &http.Server{
		Addr:              app.config.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		app.logger.Info(ctx, "Stopping metrics server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	app.logger.Info(ctx, "Starting metrics server", "address", app.config.MetricsAddr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled, SIGINT or SIGTERM arrives, or one of
// the servers fails.
func (app *App) Run(ctx context.Context) {

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	if app.config.MetricsAddr != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startMetricsServer(ctx, cancelFunc)
		}()
	}

	wg.Wait()

	app.logger.Info(context.Background(), "App stopped")
}
