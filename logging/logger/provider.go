package logger

import (
	"github.com/google/wire"
	"github.com/ncobase/measure/config"
)

// ProviderSet is the wire provider set for the logger package
var ProviderSet = wire.NewSet(ProvideLogger)

// ProvideLogger creates the service logger. When Sentry reporting is
// configured, error records are forwarded to it.
func ProvideLogger(cfg *config.Logger, observes *config.Observes) (*Logger, func(), error) {
	l, cleanup, err := New(cfg)
	if err != nil {
		return nil, nil, err
	}
	if observes != nil && observes.Sentry != nil && observes.Sentry.Endpoint != "" {
		l.AddHook(NewSentryHook(nil))
	}
	return l, cleanup, nil
}
