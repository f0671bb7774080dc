package service

import (
	"context"
	"sort"

	"github.com/google/wire"
	"github.com/ncobase/measure/concurrency"
	"github.com/ncobase/measure/concurrency/worker"
	"github.com/ncobase/measure/config"
	"github.com/ncobase/measure/data"
	"github.com/ncobase/measure/ecode"
	"github.com/ncobase/measure/logging/logger"
	"github.com/ncobase/measure/metric"
)

// ProviderSet is the wire provider set for the service package.
var ProviderSet = wire.NewSet(
	ProvideCatalog,
	ProvideWritePool,
	ProvideService,
)

// ProvideCatalog returns the built-in catalog extended with the configured
// metric types.
func ProvideCatalog(cfg *config.Catalog) (*metric.Catalog, error) {
	c := metric.NewCatalog()
	if cfg == nil {
		return c, nil
	}

	names := make([]string, 0, len(cfg.Types))
	for name := range cfg.Types {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ct := cfg.Types[name]
		d, err := metric.ParseDerivation(ct.Derivation)
		if err != nil {
			return nil, &ecode.ConfigError{Field: "catalog.types." + name + ".derivation", Message: err.Error()}
		}
		err = c.Register(metric.Type(name), metric.Entry{
			Descriptor: metric.Descriptor{
				Table:        ct.Table,
				Type:         ct.Type,
				TypeInstance: ct.TypeInstance,
				Instance:     ct.Instance,
			},
			Units:      ct.Units,
			Derivation: d,
		})
		if err != nil {
			return nil, &ecode.ConfigError{Field: "catalog.types", Message: err.Error()}
		}
	}
	return c, nil
}

// ProvideWritePool creates the pool running background writes.
func ProvideWritePool(cfg *config.Write, l *logger.Logger) (*worker.Pool, func(), error) {
	wc := worker.DefaultConfig()
	if cfg != nil {
		wc.MaxWorkers = cfg.Workers
		wc.QueueSize = cfg.QueueSize
	}
	return worker.ProvidePool(wc, func(err error) {
		l.Errorf(context.Background(), "write task failed: %v", err)
	})
}

// ProvideService creates the service.
func ProvideService(catalog *metric.Catalog, store data.Store, l *logger.Logger, limiter *concurrency.Manager, pool *worker.Pool) *Service {
	return New(catalog, store, l, WithLimiter(limiter), WithWritePool(pool))
}
