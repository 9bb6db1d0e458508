/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ssargent/dmidb/pkg/api"
	"github.com/ssargent/dmidb/pkg/config"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the dmidb REST API server. Snapshots are captured from the
configured source, uploaded as dump files and browsed under /api/v1;
Prometheus metrics are served on /metrics and the API reference on
/swagger/.

Examples:
  dmidb serve --api-key=mysecretkey --port=8080
  dmidb serve --config /etc/dmidb/config.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		applyServerFlags(cmd, appConfig)
		return runServer(cmd, appConfig)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().String("bind", "127.0.0.1", "Address to bind server to")
	serveCmd.Flags().String("api-key", "", "API key for client authentication")
}

// applyServerFlags overrides cfg with the server flags set on cmd.
func applyServerFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("port") {
		cfg.Port, _ = flags.GetInt("port")
	}
	if flags.Changed("bind") {
		cfg.Bind, _ = flags.GetString("bind")
	}
	if flags.Changed("api-key") {
		cfg.Security.APIKey, _ = flags.GetString("api-key")
	}
}

// runServer opens the archive and serves the API until the command context
// is cancelled.
func runServer(cmd *cobra.Command, cfg *config.Config) error {
	if container == nil {
		return errNoContainer
	}
	if cfg.Security.APIKey == "" || cfg.Security.APIKey == "auto" {
		return fmt.Errorf("an API key is required (pass --api-key or run 'dmidb init' first)")
	}

	source, err := container.GetSourceFactory()(cfg.Source)
	if err != nil {
		return fmt.Errorf("failed to create source: %w", err)
	}

	store, err := openStore(cfg.DataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	serverConfig := api.ServerConfig{
		Bind:           cfg.Bind,
		Port:           cfg.Port,
		APIKey:         cfg.Security.APIKey,
		MaxUploadBytes: cfg.Security.MaxUploadBytes,
		Strict:         cfg.Source.Strict,
	}

	starter := container.GetServerFactory().CreateServerStarter()
	if err := starter.StartServer(cmd.Context(), store, source, serverConfig, logger); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
