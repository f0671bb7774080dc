package server

import (
	"github.com/google/wire"
	"github.com/ncobase/measure/config"
	"github.com/ncobase/measure/data"
	"github.com/ncobase/measure/logging/logger"
	"github.com/ncobase/measure/service"
)

// ProviderSet is the wire provider set for the server package.
var ProviderSet = wire.NewSet(ProvideServer)

// ProvideServer creates the HTTP server.
func ProvideServer(cfg *config.Config, svc *service.Service, stats *data.StatsCollector, l *logger.Logger) *Server {
	return New(cfg, svc, stats, l)
}
