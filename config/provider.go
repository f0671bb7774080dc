package config

import "github.com/google/wire"

// ProviderSet is the wire provider set for the config package.
// It extracts sub-configurations from the main *Config for other modules.
//
// Usage:
//
//	wire.Build(
//	    config.ProviderSet,
//	    // ... other providers
//	)
var ProviderSet = wire.NewSet(
	ProvideServerConfig,
	ProvideLoggerConfig,
	ProvideObservesConfig,
	ProvideDatabaseConfig,
	ProvideAggregateConfig,
	ProvideWriteConfig,
	ProvideIngestConfig,
	ProvideCatalogConfig,
)

// ProvideServerConfig provides the http server configuration.
func ProvideServerConfig(cfg *Config) *Server {
	if cfg == nil {
		return nil
	}
	return cfg.Server
}

// ProvideLoggerConfig provides the logger configuration.
func ProvideLoggerConfig(cfg *Config) *Logger {
	if cfg == nil {
		return nil
	}
	return cfg.Logger
}

// ProvideObservesConfig provides the tracing and error reporting configuration.
func ProvideObservesConfig(cfg *Config) *Observes {
	if cfg == nil {
		return nil
	}
	return cfg.Observes
}

// ProvideDatabaseConfig provides the storage configuration.
func ProvideDatabaseConfig(cfg *Config) *Database {
	if cfg == nil {
		return nil
	}
	return cfg.Database
}

// ProvideAggregateConfig provides the aggregation configuration.
func ProvideAggregateConfig(cfg *Config) *Aggregate {
	if cfg == nil {
		return nil
	}
	return cfg.Aggregate
}

// ProvideWriteConfig provides the write path configuration.
func ProvideWriteConfig(cfg *Config) *Write {
	if cfg == nil {
		return nil
	}
	return cfg.Write
}

// ProvideIngestConfig provides the ingest configuration.
func ProvideIngestConfig(cfg *Config) *Ingest {
	if cfg == nil {
		return nil
	}
	return cfg.Ingest
}

// ProvideCatalogConfig provides the extra metric type configuration.
func ProvideCatalogConfig(cfg *Config) *Catalog {
	if cfg == nil {
		return nil
	}
	return cfg.Catalog
}
