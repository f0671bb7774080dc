package commands

import (
	"context"
	"errors"
	"time"

	"github.com/ncobase/measure/metric"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

type writeOptions struct {
	typ       string
	host      string
	value     string
	timestamp string
}

func newWriteCommand(opts *rootOptions) *cobra.Command {
	wo := &writeOptions{}

	cmd := &cobra.Command{
		Use:     "write",
		Short:   "Record a single measurement",
		Example: `  measure write --type cpu_util --host web-1 --value 12.5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if wo.typ == "" || wo.host == "" {
				return errors.New("--type and --host are required")
			}
			value, err := cast.ToFloat64E(wo.value)
			if err != nil {
				return err
			}
			ts := time.Now()
			if wo.timestamp != "" {
				if ts, err = cast.ToTimeE(wo.timestamp); err != nil {
					return err
				}
			}

			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			app, cleanup, err := InitializeApp(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			app.Service.WriteMeasurement(ctx, metric.Type(wo.typ), wo.host, value, ts)
			app.Service.Wait()
			return nil
		},
	}

	cmd.Flags().StringVarP(&wo.typ, "type", "t", "", "metric type")
	cmd.Flags().StringVar(&wo.host, "host", "", "host the value belongs to")
	cmd.Flags().StringVar(&wo.value, "value", "0", "numeric value")
	cmd.Flags().StringVar(&wo.timestamp, "timestamp", "", "RFC 3339 time or unix seconds (default now)")

	return cmd
}
