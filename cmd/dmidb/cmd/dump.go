/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ssargent/dmidb/pkg/acquire"
)

// dumpCmd represents the dump command
var dumpCmd = &cobra.Command{
	Use:   "dump <id>",
	Short: "Export a snapshot as a dump-bin file",
	Long: `Write an archived snapshot in the layout of "dmidecode --dump-bin", so it
can be read back with "dmidecode --from-dump" or "dmidb decode".

Examples:
  dmidb dump latest -o dmi.bin
  dmidb dump 2Z8vYqkH1cXzK9yJmHq3bTnWv0P -o - > dmi.bin`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")

		store, err := openStore(appConfig.DataDir)
		if err != nil {
			return err
		}
		defer store.Close()

		_, snap, err := loadSnapshot(store, args[0])
		if err != nil {
			return err
		}
		data := acquire.EncodeDump(&acquire.RawTable{
			Data:    snap.Data,
			Version: snap.SMBIOSVersion(),
			Source:  string(snap.Source),
		})

		if output == "-" {
			_, err := cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(output, data, 0600); err != nil {
			return fmt.Errorf("failed to write dump: %w", err)
		}
		cmd.Printf("Wrote %d bytes to %s\n", len(data), output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
	dumpCmd.Flags().StringP("output", "o", "", "File to write, or - for stdout (required)")
	if err := dumpCmd.MarkFlagRequired("output"); err != nil {
		panic(err)
	}
}
