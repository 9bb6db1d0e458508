// Package api provides interfaces for dependency injection
package api

import (
	"context"

	"github.com/ssargent/dmidb/pkg/acquire"
	"go.uber.org/zap"
)

// ServerStarter defines the interface for starting the API server
type ServerStarter interface {
	// StartServer serves the API until ctx is cancelled
	StartServer(ctx context.Context,
		store ISnapshotStore,
		source acquire.Source,
		config ServerConfig,
		logger *zap.Logger,
	) error
}

// ServerFactory creates server instances
type ServerFactory interface {
	// CreateServerStarter creates a server starter
	CreateServerStarter() ServerStarter
}
