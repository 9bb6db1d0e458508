package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/segmentio/ksuid"
	"github.com/spf13/cobra"
	"github.com/ssargent/dmidb/pkg/acquire"
	"github.com/ssargent/dmidb/pkg/codec"
	"github.com/ssargent/dmidb/pkg/export"
	"github.com/ssargent/dmidb/pkg/smbios"
	"github.com/ssargent/dmidb/pkg/storage"
	"go.uber.org/zap"
)

// formatText selects the human-readable rendering.
const formatText export.Format = "text"

var errNoContainer = errors.New("dependency container not initialized")

// addSourceFlags registers the flags shared by commands that read a table.
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("raw", false, "Treat the file as a bare structure table instead of a dump-bin image")
	cmd.Flags().Bool("strict", false, "Reject tables that do not walk cleanly")
}

// loadRaw reads the table in the file named by args, or from the configured
// source when no file is given.
func loadRaw(cmd *cobra.Command, args []string) (*acquire.RawTable, error) {
	if len(args) == 0 {
		if container == nil {
			return nil, errNoContainer
		}
		source, err := container.GetSourceFactory()(appConfig.Source)
		if err != nil {
			return nil, fmt.Errorf("failed to create source: %w", err)
		}
		raw, err := source.Acquire(cmd.Context())
		if err != nil {
			return nil, fmt.Errorf("failed to read SMBIOS table: %w", err)
		}
		return raw, nil
	}

	if bare, _ := cmd.Flags().GetBool("raw"); bare {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to read table: %w", err)
		}
		return &acquire.RawTable{Data: data, Source: "file"}, nil
	}
	return (&acquire.DumpSource{Path: args[0]}).Acquire(cmd.Context())
}

func strictMode(cmd *cobra.Command) bool {
	strict, _ := cmd.Flags().GetBool("strict")
	return strict || appConfig.Source.Strict
}

// decodeTable decodes raw. In strict mode any walk diagnostic is an error;
// otherwise it is logged and the decoded prefix is returned.
func decodeTable(raw *acquire.RawTable, strict bool) (*smbios.Table, error) {
	if strict {
		table, err := smbios.Parse(raw.Data, raw.Version, smbios.WalkOptions{Strict: true})
		if err != nil {
			return nil, fmt.Errorf("table rejected: %w", err)
		}
		return table, nil
	}

	table := raw.Table()
	if err := table.Err(); err != nil {
		logger.Warn("table decoded with diagnostics",
			zap.String("source", raw.Source),
			zap.Int("structures", table.Len()),
			zap.Error(err),
		)
	}
	return table, nil
}

// archive stores raw as a new snapshot. Tables that decode to nothing are
// rejected.
func archive(store *storage.SnapshotStore, raw *acquire.RawTable, strict bool) (ksuid.KSUID, *smbios.Table, error) {
	table, err := decodeTable(raw, strict)
	if err != nil {
		return ksuid.Nil, nil, err
	}
	if table.Len() == 0 {
		err := table.Err()
		if err == nil {
			err = errors.New("no structures")
		}
		return ksuid.Nil, nil, fmt.Errorf("table rejected: %w", err)
	}

	id, err := store.Create(codec.NewSnapshot(raw.Data, raw.Version, raw.Source))
	if err != nil {
		return ksuid.Nil, nil, fmt.Errorf("failed to archive snapshot: %w", err)
	}
	logger.Info("snapshot archived",
		zap.Stringer("id", id),
		zap.String("source", raw.Source),
		zap.Int("structures", table.Len()),
	)
	return id, table, nil
}

// openStore opens the snapshot archive under dataDir.
func openStore(dataDir string) (*storage.SnapshotStore, error) {
	if err := os.MkdirAll(dataDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	store, err := storage.Open(filepath.Join(dataDir, "snapshots"), storage.Options{Sync: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	return store, nil
}

// loadSnapshot reads the snapshot named by arg; "latest" selects the most
// recent capture.
func loadSnapshot(store *storage.SnapshotStore, arg string) (ksuid.KSUID, *codec.Snapshot, error) {
	if arg == "latest" {
		return store.Latest()
	}
	id, err := ksuid.Parse(arg)
	if err != nil {
		return ksuid.Nil, nil, fmt.Errorf("invalid snapshot id %q: %w", arg, err)
	}
	snap, err := store.Read(id)
	if err != nil {
		return ksuid.Nil, nil, err
	}
	return id, snap, nil
}

func outputFormat(cmd *cobra.Command) (export.Format, error) {
	value, _ := cmd.Flags().GetString("format")
	if value == string(formatText) {
		return formatText, nil
	}
	return export.ParseFormat(value)
}

// parseNumber accepts decimal or 0x-prefixed hex, the way handles and types
// are usually written.
func parseNumber(value string, bits int) (uint64, error) {
	n, err := strconv.ParseUint(value, 0, bits)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", value)
	}
	return n, nil
}
