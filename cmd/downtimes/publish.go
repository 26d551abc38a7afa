package main

import (
	"github.com/spf13/cobra"

	"downtimes/internal/logging"
	"downtimes/internal/publish"
	"downtimes/internal/report"
)

var publishCmd = &cobra.Command{
	Use:   "publish [retention-file]",
	Short: "Publish the current downtime snapshot to the configured Kafka topic",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger := logging.NewLogger(cfg.LogLevel, "text")
		records, err := loadRecords(cfg, retentionPath(args, cfg))
		if err != nil {
			return err
		}
		report.Sort(records)
		return publish.Publish(cmd.Context(), cfg.Publish, records, logger)
	},
}
