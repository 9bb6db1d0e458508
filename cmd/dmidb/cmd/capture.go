/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// captureCmd represents the capture command
var captureCmd = &cobra.Command{
	Use:   "capture [file]",
	Short: "Capture an SMBIOS table into the archive",
	Long: `Read the SMBIOS table of this machine, or of a dump file, and archive it
as a new snapshot. The snapshot ID is printed on success.

Examples:
  dmidb capture
  dmidb capture dmi.bin --strict`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := loadRaw(cmd, args)
		if err != nil {
			return err
		}

		store, err := openStore(appConfig.DataDir)
		if err != nil {
			return err
		}
		defer store.Close()

		id, _, err := archive(store, raw, strictMode(cmd))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(captureCmd)
	addSourceFlags(captureCmd)
}
