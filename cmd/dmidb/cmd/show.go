/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/ssargent/dmidb/pkg/api"
	"github.com/ssargent/dmidb/pkg/export"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show an archived snapshot",
	Long: `Show the summary of an archived snapshot: capture time, source, SMBIOS
version and structure counts per type. Use "latest" for the most recent
capture and --structures to decode every structure as well.

Examples:
  dmidb show latest
  dmidb show 2Z8vYqkH1cXzK9yJmHq3bTnWv0P --structures`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := outputFormat(cmd)
		if err != nil {
			return err
		}
		withStructures, _ := cmd.Flags().GetBool("structures")

		store, err := openStore(appConfig.DataDir)
		if err != nil {
			return err
		}
		defer store.Close()

		id, snap, err := loadSnapshot(store, args[0])
		if err != nil {
			return err
		}
		table := snap.Table()
		summary := api.Summarize(id, snap, table)

		var out any = summary
		var report *export.Report
		if withStructures {
			report = export.NewReport(table)
			out = struct {
				api.SnapshotSummary `yaml:",inline"`
				Report              *export.Report `json:"report" yaml:"report"`
			}{summary, report}
		}

		return writeOutput(cmd.OutOrStdout(), format, out, func(b *strings.Builder, st textStyles) {
			renderSummary(b, summary, st)
			if report != nil {
				b.WriteString("\n")
				renderReport(b, report, st)
			}
		})
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().StringP("format", "f", "text", "Output format: text, json, yaml or cbor")
	showCmd.Flags().Bool("structures", false, "Decode every structure of the snapshot")
}
