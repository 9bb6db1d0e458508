package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/segmentio/ksuid"
	"github.com/ssargent/dmidb/pkg/acquire"
	"github.com/ssargent/dmidb/pkg/codec"
	"github.com/ssargent/dmidb/pkg/export"
	"github.com/ssargent/dmidb/pkg/smbios"
	"github.com/ssargent/dmidb/pkg/storage"
	"go.uber.org/zap"
)

// Server holds the API server state
type Server struct {
	store   ISnapshotStore
	source  acquire.Source
	config  ServerConfig
	metrics *Metrics
	logger  *zap.Logger
}

// NewServer creates a new API server. source may be nil, in which case
// captures are refused and only uploads add snapshots.
func NewServer(store ISnapshotStore, source acquire.Source, config ServerConfig, metrics *Metrics, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		store:   store,
		source:  source,
		config:  config,
		metrics: metrics,
		logger:  logger,
	}
}

// handleHealth godoc
//
//	@Summary		Health check
//	@Description	Get the health status of the API
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	map[string]interface{}
//	@Failure		503	{object}	APIResponse
//	@Router			/health [get]
//	@Security		ApiKeyAuth
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	count, err := s.store.Count()
	if err != nil {
		s.metrics.RecordHealthCheck(false)
		sendError(w, fmt.Sprintf("Snapshot archive unavailable: %v", err), http.StatusServiceUnavailable)
		return
	}
	s.metrics.RecordHealthCheck(true)
	sendSuccess(w, map[string]interface{}{"status": "healthy", "snapshots": count})
}

// handleCapture godoc
//
//	@Summary		Capture a snapshot
//	@Description	Read the SMBIOS table from the configured source and archive it
//	@Tags			snapshots
//	@Produce		json
//	@Success		201	{object}	SnapshotSummary
//	@Failure		422	{object}	APIResponse
//	@Failure		500	{object}	APIResponse
//	@Failure		501	{object}	APIResponse
//	@Router			/snapshots [post]
//	@Security		ApiKeyAuth
func (s *Server) handleCapture(w http.ResponseWriter, r *http.Request) {
	if s.source == nil {
		sendError(w, "No SMBIOS source configured", http.StatusNotImplemented)
		return
	}

	raw, err := s.source.Acquire(r.Context())
	if err != nil {
		s.logger.Warn("capture failed", zap.Error(err))
		status := http.StatusInternalServerError
		if errors.Is(err, acquire.ErrUnsupported) {
			status = http.StatusNotImplemented
		}
		sendError(w, fmt.Sprintf("Failed to read SMBIOS table: %v", err), status)
		return
	}
	s.archive(w, raw)
}

// handleUpload godoc
//
//	@Summary		Upload a dump
//	@Description	Archive a table written by "dmidecode --dump-bin" or downloaded from /snapshots/{id}/raw
//	@Tags			snapshots
//	@Accept			octet-stream
//	@Produce		json
//	@Param			body	body		[]byte	true	"Dump image"
//	@Success		201		{object}	SnapshotSummary
//	@Failure		400		{object}	APIResponse
//	@Failure		413		{object}	APIResponse
//	@Router			/snapshots/upload [post]
//	@Security		ApiKeyAuth
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	limit := s.config.MaxUploadBytes
	if limit <= 0 {
		limit = 1 << 20
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			sendError(w, fmt.Sprintf("Dump exceeds %d bytes", limit), http.StatusRequestEntityTooLarge)
			return
		}
		sendError(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	raw, err := acquire.ParseDump(body)
	if err != nil {
		sendError(w, fmt.Sprintf("Invalid dump: %v", err), http.StatusBadRequest)
		return
	}
	raw.Source = "upload"
	s.archive(w, raw)
}

// archive validates raw, stores it and replies with its summary
func (s *Server) archive(w http.ResponseWriter, raw *acquire.RawTable) {
	start := time.Now()

	table := raw.Table()
	if s.config.Strict {
		if _, err := smbios.Parse(raw.Data, raw.Version, smbios.WalkOptions{Strict: true}); err != nil {
			s.metrics.RecordSnapshotOperation("create", false, time.Since(start))
			sendError(w, fmt.Sprintf("Table rejected: %v", err), http.StatusUnprocessableEntity)
			return
		}
	}
	if table.Len() == 0 {
		s.metrics.RecordSnapshotOperation("create", false, time.Since(start))
		sendError(w, fmt.Sprintf("Table rejected: %v", table.Err()), http.StatusUnprocessableEntity)
		return
	}

	snap := codec.NewSnapshot(raw.Data, raw.Version, raw.Source)
	id, err := s.store.Create(snap)
	if err != nil {
		s.metrics.RecordSnapshotOperation("create", false, time.Since(start))
		sendError(w, fmt.Sprintf("Failed to archive snapshot: %v", err), http.StatusInternalServerError)
		return
	}
	s.metrics.RecordSnapshotOperation("create", true, time.Since(start))
	s.metrics.RecordTable(table)

	s.logger.Info("snapshot archived",
		zap.Stringer("id", id),
		zap.String("source", raw.Source),
		zap.Int("structures", table.Len()),
	)
	sendStatus(w, http.StatusCreated, Summarize(id, snap, table))
}

// handleListSnapshots godoc
//
//	@Summary		List snapshots
//	@Description	List archived snapshots in capture order
//	@Tags			snapshots
//	@Produce		json
//	@Success		200	{array}		SnapshotEntry
//	@Failure		500	{object}	APIResponse
//	@Router			/snapshots [get]
//	@Security		ApiKeyAuth
func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	entries, err := s.store.List()
	if err != nil {
		s.metrics.RecordSnapshotOperation("list", false, time.Since(start))
		sendError(w, fmt.Sprintf("Failed to list snapshots: %v", err), http.StatusInternalServerError)
		return
	}
	s.metrics.RecordSnapshotOperation("list", true, time.Since(start))

	out := make([]SnapshotEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, NewSnapshotEntry(e))
	}
	sendSuccess(w, out)
}

// handleGetSnapshot godoc
//
//	@Summary		Describe a snapshot
//	@Description	Version, structure counts per type and walk diagnostic of an archived table
//	@Tags			snapshots
//	@Produce		json
//	@Param			id	path		string	true	"Snapshot ID"
//	@Success		200	{object}	SnapshotSummary
//	@Failure		400	{object}	APIResponse
//	@Failure		404	{object}	APIResponse
//	@Router			/snapshots/{id} [get]
//	@Security		ApiKeyAuth
func (s *Server) handleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	id, snap, ok := s.loadSnapshot(w, r)
	if !ok {
		return
	}
	sendSuccess(w, Summarize(id, snap, snap.Table()))
}

// handleDeleteSnapshot godoc
//
//	@Summary		Delete a snapshot
//	@Tags			snapshots
//	@Produce		json
//	@Param			id	path		string	true	"Snapshot ID"
//	@Success		200	{object}	map[string]string
//	@Failure		400	{object}	APIResponse
//	@Failure		404	{object}	APIResponse
//	@Router			/snapshots/{id} [delete]
//	@Security		ApiKeyAuth
func (s *Server) handleDeleteSnapshot(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := s.store.Delete(id); err != nil {
		s.metrics.RecordSnapshotOperation("delete", false, time.Since(start))
		if errors.Is(err, storage.ErrSnapshotNotFound) {
			sendError(w, "Snapshot not found", http.StatusNotFound)
			return
		}
		sendError(w, fmt.Sprintf("Failed to delete snapshot: %v", err), http.StatusInternalServerError)
		return
	}
	s.metrics.RecordSnapshotOperation("delete", true, time.Since(start))
	sendSuccess(w, map[string]string{"message": "Snapshot deleted successfully"})
}

// handleStructures godoc
//
//	@Summary		List structures
//	@Description	Decoded structures of a snapshot, optionally limited to one type
//	@Tags			structures
//	@Produce		json,application/yaml,application/cbor
//	@Param			id		path		string	true	"Snapshot ID"
//	@Param			type	query		int		false	"Structure type (0-255)"
//	@Param			format	query		string	false	"json, yaml or cbor"
//	@Success		200		{object}	export.Report
//	@Failure		400		{object}	APIResponse
//	@Failure		404		{object}	APIResponse
//	@Router			/snapshots/{id}/structures [get]
//	@Security		ApiKeyAuth
func (s *Server) handleStructures(w http.ResponseWriter, r *http.Request) {
	format, ok := parseFormat(w, r)
	if !ok {
		return
	}

	var filter func(smbios.Structure) bool
	if v := r.URL.Query().Get("type"); v != "" {
		typ, err := strconv.ParseUint(v, 0, 8)
		if err != nil {
			sendError(w, fmt.Sprintf("Invalid structure type %q", v), http.StatusBadRequest)
			return
		}
		filter = func(st smbios.Structure) bool { return st.Type() == smbios.Type(typ) }
	}

	_, snap, ok := s.loadSnapshot(w, r)
	if !ok {
		return
	}

	table := snap.Table()
	report := export.NewReport(table)
	if filter != nil {
		matched := table.Filter(filter)
		report.Structures = make([]export.StructureReport, 0, len(matched))
		for _, st := range matched {
			report.Structures = append(report.Structures, export.NewStructureReport(st))
		}
	}
	sendEncoded(w, format, report)
}

// handleStructure godoc
//
//	@Summary		Get one structure
//	@Tags			structures
//	@Produce		json,application/yaml,application/cbor
//	@Param			id		path		string	true	"Snapshot ID"
//	@Param			handle	path		string	true	"Structure handle, decimal or 0x-prefixed hex"
//	@Param			format	query		string	false	"json, yaml or cbor"
//	@Success		200		{object}	export.StructureReport
//	@Failure		400		{object}	APIResponse
//	@Failure		404		{object}	APIResponse
//	@Router			/snapshots/{id}/structures/{handle} [get]
//	@Security		ApiKeyAuth
func (s *Server) handleStructure(w http.ResponseWriter, r *http.Request) {
	format, ok := parseFormat(w, r)
	if !ok {
		return
	}
	param := chi.URLParam(r, "handle")
	handle, err := strconv.ParseUint(param, 0, 16)
	if err != nil {
		sendError(w, fmt.Sprintf("Invalid handle %q", param), http.StatusBadRequest)
		return
	}

	_, snap, ok := s.loadSnapshot(w, r)
	if !ok {
		return
	}
	st, found := snap.Table().FindByHandle(smbios.Handle(handle))
	if !found {
		sendError(w, fmt.Sprintf("No structure with handle %s", export.FormatHandle(smbios.Handle(handle))), http.StatusNotFound)
		return
	}
	sendEncoded(w, format, export.NewStructureReport(st))
}

// handleInventory godoc
//
//	@Summary		Hardware inventory
//	@Description	Firmware, system, boards, processors and memory summarized from a snapshot
//	@Tags			structures
//	@Produce		json,application/yaml,application/cbor
//	@Param			id		path		string	true	"Snapshot ID"
//	@Param			format	query		string	false	"json, yaml or cbor"
//	@Success		200		{object}	export.Inventory
//	@Failure		404		{object}	APIResponse
//	@Router			/snapshots/{id}/inventory [get]
//	@Security		ApiKeyAuth
func (s *Server) handleInventory(w http.ResponseWriter, r *http.Request) {
	format, ok := parseFormat(w, r)
	if !ok {
		return
	}
	_, snap, ok := s.loadSnapshot(w, r)
	if !ok {
		return
	}
	sendEncoded(w, format, export.NewInventory(snap.Table()))
}

// handleRaw godoc
//
//	@Summary		Download a snapshot
//	@Description	The archived table in dmidecode --dump-bin layout
//	@Tags			snapshots
//	@Produce		octet-stream
//	@Param			id	path		string	true	"Snapshot ID"
//	@Success		200	{string}	byte
//	@Failure		404	{object}	APIResponse
//	@Router			/snapshots/{id}/raw [get]
//	@Security		ApiKeyAuth
func (s *Server) handleRaw(w http.ResponseWriter, r *http.Request) {
	id, snap, ok := s.loadSnapshot(w, r)
	if !ok {
		return
	}
	dump := acquire.EncodeDump(&acquire.RawTable{Data: snap.Data, Version: snap.SMBIOSVersion()})

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", id.String()+".bin"))
	w.Header().Set("Content-Length", strconv.Itoa(len(dump)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(dump)
}

// loadSnapshot reads the snapshot named by the id URL parameter, replying
// with an error when it cannot
func (s *Server) loadSnapshot(w http.ResponseWriter, r *http.Request) (ksuid.KSUID, *codec.Snapshot, bool) {
	start := time.Now()
	id, ok := parseID(w, r)
	if !ok {
		return ksuid.Nil, nil, false
	}

	snap, err := s.store.Read(id)
	if err != nil {
		s.metrics.RecordSnapshotOperation("read", false, time.Since(start))
		switch {
		case errors.Is(err, storage.ErrSnapshotNotFound):
			sendError(w, "Snapshot not found", http.StatusNotFound)
		default:
			s.logger.Error("snapshot read failed", zap.Stringer("id", id), zap.Error(err))
			sendError(w, fmt.Sprintf("Failed to read snapshot: %v", err), http.StatusInternalServerError)
		}
		return ksuid.Nil, nil, false
	}
	s.metrics.RecordSnapshotOperation("read", true, time.Since(start))
	return id, snap, true
}

func parseID(w http.ResponseWriter, r *http.Request) (ksuid.KSUID, bool) {
	param := chi.URLParam(r, "id")
	id, err := ksuid.Parse(param)
	if err != nil {
		sendError(w, fmt.Sprintf("Invalid snapshot ID %q", param), http.StatusBadRequest)
		return ksuid.Nil, false
	}
	return id, true
}

func parseFormat(w http.ResponseWriter, r *http.Request) (export.Format, bool) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return "", false
	}
	return format, true
}

// NewSnapshotEntry converts an archive listing entry.
func NewSnapshotEntry(e storage.Entry) SnapshotEntry {
	return SnapshotEntry{
		ID:         e.ID.String(),
		CapturedAt: e.CapturedAt,
		Source:     e.Source,
		Size:       e.Size,
	}
}

// Summarize describes an archived snapshot and its decoded table.
func Summarize(id ksuid.KSUID, snap *codec.Snapshot, table *smbios.Table) SnapshotSummary {
	summary := SnapshotSummary{
		SnapshotEntry: SnapshotEntry{
			ID:         id.String(),
			CapturedAt: snap.CapturedAt(),
			Source:     string(snap.Source),
			Size:       len(snap.Data),
		},
		Structures: table.Len(),
		Types:      make(map[string]int),
	}
	if v, ok := table.Version(); ok {
		summary.Version = v.String()
	}
	for typ, n := range table.CountByType() {
		summary.Types[typ.String()] = n
	}
	for _, h := range table.Duplicates() {
		summary.Duplicates = append(summary.Duplicates, export.FormatHandle(h))
	}
	sort.Strings(summary.Duplicates)
	if err := table.Err(); err != nil {
		summary.Diagnostic = err.Error()
	}
	return summary
}

// startMetricsUpdater refreshes the archive gauge until ctx is done
func (s *Server) startMetricsUpdater(ctx context.Context) {
	interval := s.config.MetricsInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		s.updateArchiveStats()
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Server) updateArchiveStats() {
	count, err := s.store.Count()
	if err != nil {
		s.logger.Warn("failed to count snapshots", zap.Error(err))
		return
	}
	s.metrics.UpdateArchiveStats(count)
}
