/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ssargent/dmidb/pkg/config"
	"go.uber.org/zap"
)

// upCmd represents the up command
var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Bootstrap dmidb, capture this machine and start the server",
	Long: `Bootstrap dmidb by creating the configuration and API key if they don't
exist, archive a snapshot of this machine's SMBIOS table, then start the
REST API server. This is the recommended way to get dmidb running.

The command will:
- Create a configuration file with a secure API key if missing
- Initialize the snapshot archive
- Capture the local SMBIOS table (failures are logged, not fatal)
- Start the REST API server

Examples:
  dmidb up
  dmidb up --data-dir ./mydata --port 9000
  dmidb up --config ./custom-config.yaml --print-keys`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		printKeys, _ := cmd.Flags().GetBool("print-keys")
		skipCapture, _ := cmd.Flags().GetBool("no-capture")
		path := configPath(cmd)

		cfg, err := bootstrapIfNeeded(cmd, path, printKeys)
		if err != nil {
			return err
		}
		applyServerFlags(cmd, cfg)
		appConfig = cfg

		if err := initializeArchive(cfg.DataDir); err != nil {
			return fmt.Errorf("failed to initialize archive: %w", err)
		}
		if !skipCapture {
			captureAtStartup(cmd, cfg)
		}

		cmd.Printf("🚀 Starting dmidb server on %s:%d\n", cfg.Bind, cfg.Port)
		cmd.Printf("📁 Data directory: %s\n", cfg.DataDir)
		return runServer(cmd, cfg)
	},
}

func init() {
	rootCmd.AddCommand(upCmd)
	upCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	upCmd.Flags().String("bind", "127.0.0.1", "Address to bind server to")
	upCmd.Flags().Bool("print-keys", false, "Print the generated API key to console")
	upCmd.Flags().Bool("no-capture", false, "Skip archiving a snapshot at startup")
}

// bootstrapIfNeeded returns the configuration at path, creating it with a
// fresh API key on first run.
func bootstrapIfNeeded(cmd *cobra.Command, path string, printKeys bool) (*config.Config, error) {
	if config.ConfigExists(path) {
		cmd.Printf("✅ Loaded existing configuration from %s\n", path)
		return appConfig, nil
	}

	cmd.Printf("🔧 First run detected. Bootstrapping dmidb...\n")
	cfg, err := config.BootstrapConfig(path, appConfig.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to bootstrap config: %w", err)
	}
	cmd.Printf("✅ Configuration created at %s\n", path)

	if printKeys {
		cmd.Printf("\n🔑 API Key: %s\n", cfg.Security.APIKey)
		cmd.Printf("⚠️  Store this key securely! It is also saved in %s\n\n", path)
	}
	return cfg, nil
}

// captureAtStartup archives a snapshot of the configured source. Machines
// without a readable table still get a running server.
func captureAtStartup(cmd *cobra.Command, cfg *config.Config) {
	raw, err := loadRaw(cmd, nil)
	if err != nil {
		logger.Warn("startup capture skipped", zap.Error(err))
		return
	}

	store, err := openStore(cfg.DataDir)
	if err != nil {
		logger.Warn("startup capture skipped", zap.Error(err))
		return
	}
	defer store.Close()

	id, table, err := archive(store, raw, cfg.Source.Strict)
	if err != nil {
		logger.Warn("startup capture failed", zap.Error(err))
		return
	}
	cmd.Printf("📸 Captured snapshot %s (%d structures)\n", id, table.Len())
}
