package commands

import (
	"github.com/ncobase/measure/config"
	"github.com/ncobase/measure/ingest"
	"github.com/ncobase/measure/logging/logger"
	"github.com/ncobase/measure/server"
	"github.com/ncobase/measure/service"
	"github.com/ncobase/measure/version"
)

// App holds the wired components of one process.
type App struct {
	Config   *config.Config
	Logger   *logger.Logger
	Service  *service.Service
	Server   *server.Server
	Consumer *ingest.Consumer // nil when ingest is not configured
}

// NewApp creates the application.
func NewApp(cfg *config.Config, l *logger.Logger, svc *service.Service, srv *server.Server, consumer *ingest.Consumer) *App {
	l.SetVersion(version.GetVersionInfo().Version)
	return &App{
		Config:   cfg,
		Logger:   l,
		Service:  svc,
		Server:   srv,
		Consumer: consumer,
	}
}
