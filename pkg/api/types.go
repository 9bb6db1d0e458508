package api

import (
	"time"

	"github.com/segmentio/ksuid"
	"github.com/ssargent/dmidb/pkg/codec"
	"github.com/ssargent/dmidb/pkg/storage"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success" yaml:"success"`
	Data    interface{} `json:"data,omitempty" yaml:"data,omitempty"`
	Error   string      `json:"error,omitempty" yaml:"error,omitempty"`
}

// SnapshotEntry is one row of the snapshot listing
type SnapshotEntry struct {
	ID         string    `json:"id" yaml:"id"`
	CapturedAt time.Time `json:"captured_at" yaml:"captured_at"`
	Source     string    `json:"source" yaml:"source"`
	Size       int       `json:"size" yaml:"size"`
}

// SnapshotSummary describes an archived snapshot and the table it holds
type SnapshotSummary struct {
	SnapshotEntry `yaml:",inline"`

	Version    string         `json:"version,omitempty" yaml:"version,omitempty"`
	Structures int            `json:"structures" yaml:"structures"`
	Types      map[string]int `json:"types" yaml:"types"`
	Duplicates []string       `json:"duplicate_handles,omitempty" yaml:"duplicate_handles,omitempty"`
	Diagnostic string         `json:"diagnostic,omitempty" yaml:"diagnostic,omitempty"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Bind            string
	Port            int
	APIKey          string
	MaxUploadBytes  int64         // request body limit for dump uploads
	Strict          bool          // reject captures whose table does not walk cleanly
	MetricsInterval time.Duration // archive gauge refresh period; 0 selects 30s
}

// ISnapshotStore defines the archive operations the API needs
type ISnapshotStore interface {
	Create(snap *codec.Snapshot) (ksuid.KSUID, error)
	Read(id ksuid.KSUID) (*codec.Snapshot, error)
	Delete(id ksuid.KSUID) error
	List() ([]storage.Entry, error)
	Count() (int, error)
}
