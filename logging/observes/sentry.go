package observes

import (
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/ncobase/measure/config"
)

// NewSentry initializes the Sentry client. It is a no-op returning a no-op
// flush when no endpoint is configured.
func NewSentry(cfg *config.Sentry, name string) (func(), error) {
	if cfg == nil || cfg.Endpoint == "" {
		return func() {}, nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.Endpoint,
		AttachStacktrace: true,
		SampleRate:       cfg.SampleRate,
		ServerName:       name,
		Release:          cfg.Release,
		Environment:      cfg.Environment,
	})
	if err != nil {
		return nil, err
	}
	return func() { sentry.Flush(2 * time.Second) }, nil
}
