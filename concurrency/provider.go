package concurrency

import (
	"github.com/google/wire"
	"github.com/ncobase/measure/config"
)

// ProviderSet is the wire provider set for the concurrency package.
var ProviderSet = wire.NewSet(ProvideLimiter)

// ProvideLimiter returns a Manager capping aggregation fan-out, or nil when
// the fan-out is unbounded.
func ProvideLimiter(cfg *config.Aggregate) (*Manager, error) {
	if cfg == nil || cfg.MaxConcurrent <= 0 {
		return nil, nil
	}
	return NewManager(cfg.MaxConcurrent)
}
