/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/segmentio/ksuid"
	"github.com/spf13/cobra"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an archived snapshot",
	Long: `Delete an archived snapshot.

Example:
  dmidb delete 2Z8vYqkH1cXzK9yJmHq3bTnWv0P`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := ksuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid snapshot id %q: %w", args[0], err)
		}

		store, err := openStore(appConfig.DataDir)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Delete(id); err != nil {
			return fmt.Errorf("failed to delete snapshot: %w", err)
		}

		cmd.Printf("Successfully deleted snapshot '%s'\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
