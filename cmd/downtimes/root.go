package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"downtimes/internal/annotate"
	"downtimes/internal/config"
	"downtimes/internal/model"
	"downtimes/internal/report"
	"downtimes/internal/retention"
)

var (
	cfgFile  string
	format   string
	timezone string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "downtimes [retention-file]",
	Short: "List scheduled downtimes from a monitoring retention file",
	Long: `Downtimes reads a monitoring daemon's state-retention file, extracts the
scheduled-downtime blocks and prints them sorted by expiration time.

Blocks whose tag does not contain "downtime" are skipped, as are records
without an end_time.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		records, err := loadRecords(cfg, retentionPath(args, cfg))
		if err != nil {
			return err
		}
		report.Sort(records)
		columns := report.ColumnsFromConfig(cfg.Report.Columns)
		return report.Render(os.Stdout, cfg.Report.Format, columns, records)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "table", "output format: table, tab, csv or json")
	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", "Local", "timezone for rendered timestamps")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn or error")

	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(publishCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if cfgFile != "" {
		loaded, err := config.Load(config.ResolvePath(cfgFile))
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Report.Format = format
	}
	if flags.Changed("timezone") {
		cfg.Retention.Timezone = timezone
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func retentionPath(args []string, cfg *config.Config) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.Retention.Path
}

// loadRecords runs the shared parse pipeline: stat, parse, annotate.
// Sorting is left to the caller since not every consumer wants it.
func loadRecords(cfg *config.Config, path string) ([]model.Downtime, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("retention file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("retention file %s is not a regular file", path)
	}
	records, err := retention.ParseFile(path)
	if err != nil {
		return nil, err
	}
	annotate.All(records, annotate.Location(cfg.Retention.Timezone))
	return records, nil
}
