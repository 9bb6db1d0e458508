/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/ssargent/dmidb/pkg/export"
)

// inventoryCmd represents the inventory command
var inventoryCmd = &cobra.Command{
	Use:   "inventory [file]",
	Short: "Summarize the hardware an SMBIOS table describes",
	Long: `Summarize firmware, system, boards, chassis, processors and memory from
the SMBIOS table of this machine or of a dump file.

Examples:
  dmidb inventory
  dmidb inventory dmi.bin --format yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := outputFormat(cmd)
		if err != nil {
			return err
		}
		raw, err := loadRaw(cmd, args)
		if err != nil {
			return err
		}
		table, err := decodeTable(raw, strictMode(cmd))
		if err != nil {
			return err
		}

		inv := export.NewInventory(table)
		return writeOutput(cmd.OutOrStdout(), format, inv, func(b *strings.Builder, st textStyles) {
			renderInventory(b, inv, st)
		})
	},
}

func init() {
	rootCmd.AddCommand(inventoryCmd)
	addSourceFlags(inventoryCmd)
	inventoryCmd.Flags().StringP("format", "f", "text", "Output format: text, json, yaml or cbor")
}
