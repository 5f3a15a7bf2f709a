// Package app wires configuration, logging, storage and the terminal client
// into a runnable notekeeper process.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/accounts"
	"github.com/dmitrijs2005/notekeeper/internal/cli"
	"github.com/dmitrijs2005/notekeeper/internal/config"
	"github.com/dmitrijs2005/notekeeper/internal/kvstore"
	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/dmitrijs2005/notekeeper/internal/notes"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	kv       kvstore.Store
	files    *notes.FileStore
	accounts *accounts.AccountStore
}

// NewApp opens the configured store and makes sure an administrator
// exists. Logs go to logOut.
func NewApp(ctx context.Context, c *config.Config, logOut io.Writer) (*App, error) {
	logger, err := logging.New(c.LogFormat, logOut)
	if err != nil {
		return nil, err
	}

	openCtx, cancel := withTimeout(ctx, c.OperationTimeout)
	defer cancel()

	kv, err := kvstore.Open(openCtx, c.StoreOptions())
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	app := &App{
		config:   c,
		logger:   logger,
		kv:       kv,
		files:    notes.NewFileStore(kv, logger),
		accounts: accounts.NewAccountStore(kv, logger, c.Admin()),
	}

	if _, err := app.accounts.BootstrapAdmin(openCtx); err != nil {
		kv.Close()
		return nil, fmt.Errorf("admin bootstrap error: %w", err)
	}

	logger.Info(ctx, "storage ready", "backend", c.Storage)
	return app, nil
}

// withTimeout bounds ctx by d. A non-positive d means no timeout.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// Run serves the terminal client on in/out until it exits or the process
// is interrupted, then closes the store.
func (app *App) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	app.initSignalHandler(ctx, cancel)

	defer func() {
		if err := app.kv.Close(); err != nil {
			app.logger.Error(ctx, "error closing storage", "error", err)
		}
	}()

	client := cli.NewApp(app.files, app.accounts, app.logger, cli.Options{
		MaxUpload:        app.config.MaxUpload,
		OperationTimeout: app.config.OperationTimeout,
		In:               in,
		Out:              out,
	})
	return client.Run(ctx)
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			app.logger.Info(ctx, "interrupted, shutting down")
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}
