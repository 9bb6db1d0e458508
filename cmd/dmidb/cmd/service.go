/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/ssargent/dmidb/pkg/config"
)

const serviceName = "dmidb.service"

// Overridden in tests.
var (
	systemdUnitPath = "/etc/systemd/system/" + serviceName
	geteuid         = os.Geteuid
	runCommand      = execCommand
)

// serviceCmd represents the service command
var serviceCmd = &cobra.Command{
	Use:   "service",
	Short: "Manage dmidb as a systemd service",
	Long: `Manage dmidb as a systemd service. This command provides
native integration with systemd for production deployments.

The service will be installed with proper security settings and
automatic restart on failure.`,
}

// installServiceCmd represents the service install command
var installServiceCmd = &cobra.Command{
	Use:   "install",
	Short: "Install dmidb as a systemd service",
	Long: `Install dmidb as a systemd service with proper configuration.

This will:
- Create or use existing configuration
- Generate systemd unit file
- Enable and optionally start the service

The service reads /sys/firmware/dmi/tables, which is only readable by
root on most distributions; run it as root or grant the user access.

Examples:
  dmidb service install
  dmidb service install --data-dir /var/lib/dmidb --user root`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir, _ := cmd.Flags().GetString("data-dir")
		user, _ := cmd.Flags().GetString("user")
		port, _ := cmd.Flags().GetInt("port")
		startNow, _ := cmd.Flags().GetBool("start")
		path := configPath(cmd)

		if err := requireRoot("install"); err != nil {
			return err
		}

		cmd.Printf("🔧 Installing dmidb systemd service...\n")

		var cfg *config.Config
		var err error
		if config.ConfigExists(path) {
			cfg, err = config.LoadConfig(path)
			if err != nil {
				return err
			}
			cmd.Printf("✅ Loaded existing configuration\n")
		} else {
			cfg, err = config.BootstrapConfig(path, dataDir)
			if err != nil {
				return err
			}
			cmd.Printf("✅ Created new configuration at %s\n", path)
		}

		if dataDir != "" {
			cfg.DataDir = dataDir
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = port
		}
		if err := config.SaveConfig(cfg, path); err != nil {
			return err
		}

		if err := createSystemdUnit(cfg, path, user); err != nil {
			return fmt.Errorf("failed to create systemd unit: %w", err)
		}
		if err := runSystemctlCommand("daemon-reload"); err != nil {
			return fmt.Errorf("failed to reload systemd: %w", err)
		}
		if err := runSystemctlCommand("enable", serviceName); err != nil {
			return fmt.Errorf("failed to enable service: %w", err)
		}
		cmd.Printf("✅ Service enabled successfully\n")

		if startNow {
			if err := runSystemctlCommand("start", serviceName); err != nil {
				return fmt.Errorf("failed to start service: %w", err)
			}
			cmd.Printf("✅ Service started successfully\n")
		}

		cmd.Printf("\n🎉 dmidb service installed!\n")
		cmd.Printf("Service: %s\n", serviceName)
		cmd.Printf("Config: %s\n", path)
		cmd.Printf("Data: %s\n", cfg.DataDir)
		cmd.Printf("Port: %d\n", cfg.Port)
		if !startNow {
			cmd.Printf("\nTo start the service: sudo systemctl start %s\n", serviceName)
		}
		cmd.Printf("To check status: sudo systemctl status %s\n", serviceName)
		cmd.Printf("To view logs: sudo journalctl -u %s -f\n", serviceName)
		return nil
	},
}

// systemctlCmd builds a subcommand that forwards verb to systemctl.
func systemctlCmd(verb, short, done string) *cobra.Command {
	return &cobra.Command{
		Use:   verb,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runSystemctlCommand(verb, serviceName); err != nil {
				return fmt.Errorf("systemctl %s failed: %w", verb, err)
			}
			if done != "" {
				cmd.Printf("✅ %s\n", done)
			}
			return nil
		},
	}
}

var (
	startCmd   = systemctlCmd("start", "Start the dmidb service", "dmidb service started")
	stopCmd    = systemctlCmd("stop", "Stop the dmidb service", "dmidb service stopped")
	restartCmd = systemctlCmd("restart", "Restart the dmidb service", "dmidb service restarted")
	statusCmd  = systemctlCmd("status", "Show dmidb service status", "")
)

// logsCmd represents the service logs command
var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show dmidb service logs",
	Long: `Show dmidb service logs using journalctl.

Examples:
  dmidb service logs
  dmidb service logs -f  # Follow logs`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		follow, _ := cmd.Flags().GetBool("follow")
		lines, _ := cmd.Flags().GetInt("lines")

		journalArgs := []string{"-u", serviceName}
		if follow {
			journalArgs = append(journalArgs, "-f")
		}
		if lines > 0 {
			journalArgs = append(journalArgs, fmt.Sprintf("-n%d", lines))
		}
		return runCommand("journalctl", journalArgs...)
	},
}

// uninstallCmd represents the service uninstall command
var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Uninstall the dmidb service",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireRoot("uninstall"); err != nil {
			return err
		}

		cmd.Printf("🗑️  Uninstalling dmidb service...\n")

		// Ignore errors if already stopped
		_ = runSystemctlCommand("stop", serviceName)

		if err := runSystemctlCommand("disable", serviceName); err != nil {
			cmd.Printf("Warning: could not disable service: %v\n", err)
		}

		if err := os.Remove(systemdUnitPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove unit file: %w", err)
		}
		if err := runSystemctlCommand("daemon-reload"); err != nil {
			return fmt.Errorf("failed to reload systemd: %w", err)
		}

		cmd.Printf("✅ dmidb service uninstalled\n")
		cmd.Printf("Note: Configuration and archived snapshots were not removed\n")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serviceCmd)

	serviceCmd.AddCommand(installServiceCmd)
	serviceCmd.AddCommand(startCmd)
	serviceCmd.AddCommand(stopCmd)
	serviceCmd.AddCommand(restartCmd)
	serviceCmd.AddCommand(statusCmd)
	serviceCmd.AddCommand(logsCmd)
	serviceCmd.AddCommand(uninstallCmd)

	installServiceCmd.Flags().String("data-dir", "/var/lib/dmidb", "Data directory for the service")
	installServiceCmd.Flags().String("user", "root", "User to run the service as")
	installServiceCmd.Flags().Int("port", 8080, "Port for the service")
	installServiceCmd.Flags().Bool("start", true, "Start the service after installation")

	logsCmd.Flags().BoolP("follow", "f", false, "Follow log output")
	logsCmd.Flags().IntP("lines", "n", 0, "Number of lines to show")
}

func requireRoot(action string) error {
	if geteuid() != 0 {
		return fmt.Errorf("service %s requires root privileges (run with: sudo dmidb service %s)", action, action)
	}
	return nil
}

// systemdUnit renders the unit file for a service reading configPath.
func systemdUnit(cfg *config.Config, configPath, user string) string {
	return fmt.Sprintf(`[Unit]
Description=dmidb SMBIOS snapshot server
After=network-online.target
Wants=network-online.target

[Service]
User=%s
Group=%s
ExecStart=/usr/local/bin/dmidb up --config %s
Restart=on-failure
NoNewPrivileges=true
UMask=0077
ReadWritePaths=%s
ReadWritePaths=%s

[Install]
WantedBy=multi-user.target
`, user, user, configPath, cfg.DataDir, filepath.Dir(configPath))
}

// createSystemdUnit writes the systemd unit file
func createSystemdUnit(cfg *config.Config, configPath, user string) error {
	return os.WriteFile(systemdUnitPath, []byte(systemdUnit(cfg, configPath, user)), 0600)
}

// runSystemctlCommand runs a systemctl command
func runSystemctlCommand(args ...string) error {
	return runCommand("systemctl", args...)
}

// execCommand runs a system command attached to the terminal
func execCommand(command string, args ...string) error {
	cmd := exec.Command(command, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
