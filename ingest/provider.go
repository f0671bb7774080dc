package ingest

import (
	"context"

	"github.com/google/wire"
	"github.com/ncobase/measure/config"
	"github.com/ncobase/measure/logging/logger"
	"github.com/ncobase/measure/service"
)

// ProviderSet is the wire provider set for the ingest package.
var ProviderSet = wire.NewSet(ProvideConsumer)

// ProvideConsumer creates the Kafka consumer, or nil when ingest is not
// configured.
func ProvideConsumer(cfg *config.Ingest, svc *service.Service, l *logger.Logger) (*Consumer, func(), error) {
	if !cfg.Enabled() {
		return nil, func() {}, nil
	}

	c, err := NewConsumer(cfg.Kafka, svc, l)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := c.Close(); err != nil {
			l.Errorf(context.Background(), "failed to close kafka reader: %v", err)
		}
	}
	return c, cleanup, nil
}
