/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/ssargent/dmidb/pkg/api"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived snapshots",
	Long: `List archived snapshots in capture order.

Examples:
  dmidb list
  dmidb list --format json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := outputFormat(cmd)
		if err != nil {
			return err
		}

		store, err := openStore(appConfig.DataDir)
		if err != nil {
			return err
		}
		defer store.Close()

		list, err := store.List()
		if err != nil {
			return err
		}
		entries := make([]api.SnapshotEntry, 0, len(list))
		for _, e := range list {
			entries = append(entries, api.NewSnapshotEntry(e))
		}

		return writeOutput(cmd.OutOrStdout(), format, entries, func(b *strings.Builder, st textStyles) {
			renderEntries(b, entries, st)
		})
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringP("format", "f", "text", "Output format: text, json, yaml or cbor")
}
