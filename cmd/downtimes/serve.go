package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"downtimes/internal/api"
	"downtimes/internal/config"
	"downtimes/internal/logging"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the current downtime snapshot over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger := logging.NewLogger(cfg.LogLevel, "json")

		var mgr *config.Manager
		if cfgFile != "" {
			mgr, err = config.NewManager(config.ResolvePath(cfgFile))
			if err != nil {
				return err
			}
		} else {
			mgr = config.NewStatic(cfg)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := api.Start(ctx, mgr, logger, Version)
		if srv == nil {
			return errors.New("api is disabled in the config")
		}
		go mgr.Watch(3*time.Second,
			func(*config.Config) { logger.Info("config reloaded", "path", mgr.Path()) },
			func(err error) { logger.Warn("config reload error", "err", err) },
			ctx.Done())

		<-ctx.Done()
		logger.Info("shutting down")
		return nil
	},
}
