package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/ncobase/measure/config"
	"github.com/ncobase/measure/logging/observes"
	"github.com/ncobase/measure/version"
	"github.com/spf13/cobra"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the optional Kafka ingest consumer",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(parent context.Context, cfg *config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := observes.NewTracer(cfg.Observes.Tracer, version.GetVersionInfo().Version)
	if err != nil {
		return fmt.Errorf("init tracer: %w", err)
	}
	closeSentry, err := observes.NewSentry(cfg.Observes.Sentry, cfg.AppName)
	if err != nil {
		return fmt.Errorf("init sentry: %w", err)
	}
	defer closeSentry()

	app, cleanup, err := InitializeApp(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	if cfg.Viper != nil && cfg.Viper.ConfigFileUsed() != "" {
		config.Watch(cfg, func(next *config.Config) {
			if err := app.Logger.SetLevelName(next.Logger.Level); err != nil {
				app.Logger.Warnf(ctx, "config reload: %v", err)
				return
			}
			app.Logger.Infof(ctx, "config reloaded, log level %s", next.Logger.Level)
		}, func(err error) {
			app.Logger.Warnf(ctx, "%v", err)
		})
	}

	app.Logger.Infof(ctx, "%s %s starting", cfg.AppName, version.GetVersionInfo().Version)

	errCh := make(chan error, 2)
	running := 1
	go func() { errCh <- app.Server.Run(ctx) }()
	if app.Consumer != nil {
		running++
		go func() { errCh <- app.Consumer.Run(ctx) }()
	}

	var result *multierror.Error
	for i := 0; i < running; i++ {
		if err := <-errCh; err != nil {
			result = multierror.Append(result, err)
			// one component failed, bring the rest down
			stop()
		}
	}

	tctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	app.Service.Close(tctx)
	if err := shutdownTracer(tctx); err != nil {
		result = multierror.Append(result, fmt.Errorf("shutdown tracer: %w", err))
	}

	app.Logger.Info(tctx, "stopped")
	return result.ErrorOrNil()
}
