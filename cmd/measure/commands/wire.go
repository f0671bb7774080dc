//go:build wireinject

package commands

import (
	"github.com/google/wire"
	"github.com/ncobase/measure/concurrency"
	"github.com/ncobase/measure/config"
	"github.com/ncobase/measure/data"
	"github.com/ncobase/measure/ingest"
	"github.com/ncobase/measure/logging/logger"
	"github.com/ncobase/measure/server"
	"github.com/ncobase/measure/service"
)

// InitializeApp wires the application from its configuration.
// The cleanup function closes the consumer, drains pending writes and
// closes the store, in that order.
func InitializeApp(cfg *config.Config) (*App, func(), error) {
	panic(wire.Build(
		config.ProviderSet,
		logger.ProviderSet,
		data.ProviderSet,
		concurrency.ProviderSet,
		service.ProviderSet,
		ingest.ProviderSet,
		server.ProviderSet,
		NewApp,
	))
}
