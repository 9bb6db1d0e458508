/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ssargent/dmidb/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize dmidb configuration and archive",
	Long: `Initialize dmidb for local use.

This command will:
- Create a configuration file with a generated API key
- Create the data directory and the snapshot archive

Examples:
  dmidb init
  dmidb init --config ./dmidb.yaml --data-dir ./data
  dmidb init --force --print-key`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		printKey, _ := cmd.Flags().GetBool("print-key")
		path := configPath(cmd)

		if config.ConfigExists(path) && !force {
			cmd.Printf("Configuration already exists at %s. Use --force to regenerate it.\n", path)
			return nil
		}

		cmd.Printf("Initializing dmidb...\n")
		cfg, err := config.BootstrapConfig(path, appConfig.DataDir)
		if err != nil {
			return err
		}
		appConfig = cfg

		if err := initializeArchive(cfg.DataDir); err != nil {
			return err
		}

		cmd.Printf("✅ dmidb initialization completed successfully!\n")
		cmd.Printf("Config: %s\n", path)
		cmd.Printf("Data directory: %s\n", cfg.DataDir)
		if printKey {
			cmd.Printf("API key: %s\n", cfg.Security.APIKey)
		}
		cmd.Printf("\nYou can now start the server with:\n")
		cmd.Printf("  dmidb serve --config %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "Regenerate the configuration even if it exists")
	initCmd.Flags().Bool("print-key", false, "Print the generated API key")
}

// initializeArchive creates dataDir and an empty snapshot archive in it.
func initializeArchive(dataDir string) error {
	if err := os.MkdirAll(dataDir, 0750); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	store, err := openStore(dataDir)
	if err != nil {
		return err
	}
	return store.Close()
}
