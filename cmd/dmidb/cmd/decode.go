/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ssargent/dmidb/pkg/export"
	"github.com/ssargent/dmidb/pkg/smbios"
)

// decodeCmd represents the decode command
var decodeCmd = &cobra.Command{
	Use:   "decode [file]",
	Short: "Decode an SMBIOS table",
	Long: `Decode the SMBIOS structure table of this machine, or of a file written by
"dmidecode --dump-bin" (or "dmidb dump"), and print every structure.

Examples:
  dmidb decode
  dmidb decode --type 17
  dmidb decode dmi.bin --handle 0x0100 --format json
  dmidb decode table.bin --raw --strict`,
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
		report, err := filterReport(cmd, table, export.NewReport(table))
		if err != nil {
			return err
		}

		return writeOutput(cmd.OutOrStdout(), format, report, func(b *strings.Builder, st textStyles) {
			renderReport(b, report, st)
		})
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	addSourceFlags(decodeCmd)
	decodeCmd.Flags().String("type", "", "Only show structures of this type")
	decodeCmd.Flags().String("handle", "", "Only show the structure with this handle")
	decodeCmd.Flags().StringP("format", "f", "text", "Output format: text, json, yaml or cbor")
}

// filterReport applies the --type and --handle flags to r, the report of
// table. A handle selects the first structure carrying it.
func filterReport(cmd *cobra.Command, table *smbios.Table, r *export.Report) (*export.Report, error) {
	typeFlag, _ := cmd.Flags().GetString("type")
	handleFlag, _ := cmd.Flags().GetString("handle")
	if typeFlag == "" && handleFlag == "" {
		return r, nil
	}

	keep := func(export.StructureReport) bool { return true }
	if typeFlag != "" {
		typ, err := parseNumber(typeFlag, 8)
		if err != nil {
			return nil, fmt.Errorf("--type: %w", err)
		}
		keep = func(s export.StructureReport) bool { return s.Type == uint8(typ) }
	}

	candidates := r.Structures
	if handleFlag != "" {
		h, err := parseNumber(handleFlag, 16)
		if err != nil {
			return nil, fmt.Errorf("--handle: %w", err)
		}
		s, ok := table.FindByHandle(smbios.Handle(h))
		if !ok {
			return nil, fmt.Errorf("no structure with handle %s", export.FormatHandle(smbios.Handle(h)))
		}
		candidates = []export.StructureReport{export.NewStructureReport(s)}
	}

	filtered := *r
	filtered.Structures = nil
	for _, s := range candidates {
		if keep(s) {
			filtered.Structures = append(filtered.Structures, s)
		}
	}
	return &filtered, nil
}
