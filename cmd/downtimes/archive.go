package main

import (
	"errors"

	"github.com/spf13/cobra"

	"downtimes/internal/logging"
	"downtimes/internal/report"
	"downtimes/internal/storage"
)

var archiveCmd = &cobra.Command{
	Use:   "archive [retention-file]",
	Short: "Append the current downtime snapshot to the archive database",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if !cfg.Storage.Enabled {
			return errors.New("storage is not enabled in the config")
		}
		logger := logging.NewLogger(cfg.LogLevel, "text")
		path := retentionPath(args, cfg)
		records, err := loadRecords(cfg, path)
		if err != nil {
			return err
		}
		report.Sort(records)

		store, err := storage.NewStore(cfg.Storage)
		if err != nil {
			return err
		}
		defer store.Close()
		ctx := cmd.Context()
		if err := store.Init(ctx); err != nil {
			return err
		}
		if err := store.SaveSnapshot(ctx, path, records); err != nil {
			return err
		}
		logger.Info("archived downtime snapshot", "path", path, "records", len(records), "driver", cfg.Storage.Driver)
		return nil
	},
}
