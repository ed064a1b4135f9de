package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"unimart/internal/http/handlers"
	applog "unimart/internal/log"
	"unimart/internal/repos"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web app, the JSON API and the activity ticker",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, closeLog, err := setup(os.Stdout)
	if err != nil {
		return err
	}
	defer closeLog()

	db, err := repos.OpenDB(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	deps := handlers.NewDeps(db, cfg)
	if err := deps.Catalog.Initialize(); err != nil {
		applog.L().Warn("catalog.init.degraded", zap.Error(err))
	}
	app := handlers.NewApp(cfg, deps, handlers.Options{AccessLog: true, ReloadViews: true})

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return deps.Ticker.Run(ctx) })
	g.Go(func() error {
		applog.L().Info("server.start", zap.String("port", cfg.Port), zap.String("db", cfg.DBDriver), zap.String("auth", cfg.AuthMode))
		return app.Listen(":" + cfg.Port)
	})
	g.Go(func() error {
		<-ctx.Done()
		return app.ShutdownWithTimeout(10 * time.Second)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	applog.L().Info("server.stop")
	return nil
}
