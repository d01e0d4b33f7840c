// Package main implements httpforge's command-line surface: a thin wrapper
// over the library's public operations (§6), one subcommand per operation
// family, deliberately not a backend-dispatch facade.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nullbyte-labs/httpforge/internal/config"
	"github.com/nullbyte-labs/httpforge/internal/obs"
	"go.uber.org/zap"
)

var (
	configPath string
	appCfg     config.App
	log        *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "httpforge",
	Short:         "Byte-level HTTP security-testing toolkit",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		appCfg = cfg

		l, err := obs.New(cfg.Logging)
		if err != nil {
			return fmt.Errorf("init logging: %w", err)
		}
		log = l
		log.Debug("config loaded", zap.String("config_path", configPath), zap.Int64("timeout_ms", cfg.TimeoutMs))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = log.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file (pool/TLS/logging defaults)")
}
