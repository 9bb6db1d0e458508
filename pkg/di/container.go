// Package di provides dependency injection container
package di

import (
	"github.com/ssargent/dmidb/pkg/acquire" //nolint:depguard
	"github.com/ssargent/dmidb/pkg/api"     //nolint:depguard
	"github.com/ssargent/dmidb/pkg/config"  //nolint:depguard
)

// SourceFactory builds the SMBIOS source a configuration selects
type SourceFactory func(cfg config.Source) (acquire.Source, error)

// Container holds all the dependencies for the application
type Container struct {
	sourceFactory SourceFactory
	serverFactory api.ServerFactory
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	return &Container{
		sourceFactory: acquire.New,
		serverFactory: api.NewServerFactory(),
	}
}

// GetSourceFactory returns the source factory
func (c *Container) GetSourceFactory() SourceFactory {
	return c.sourceFactory
}

// GetServerFactory returns the server factory
func (c *Container) GetServerFactory() api.ServerFactory {
	return c.serverFactory
}

// SetSourceFactory allows overriding the source factory (for testing)
func (c *Container) SetSourceFactory(factory SourceFactory) {
	c.sourceFactory = factory
}

// SetServerFactory allows overriding the server factory (for testing)
func (c *Container) SetServerFactory(factory api.ServerFactory) {
	c.serverFactory = factory
}
