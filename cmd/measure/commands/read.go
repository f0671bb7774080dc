package commands

import (
	"context"
	"encoding/json"
	"errors"
	"os"

	"github.com/ncobase/measure/logging/logger"
	"github.com/ncobase/measure/metric"
	"github.com/ncobase/measure/service"
	"github.com/spf13/cobra"
)

type readOptions struct {
	hosts []string
	types []string
	fleet string
}

func newReadCommand(opts *rootOptions) *cobra.Command {
	ro := &readOptions{}

	cmd := &cobra.Command{
		Use:   "read",
		Short: "Read the latest measurements and print them as JSON",
		Example: `  measure read --host web-1 --type cpu_util
  measure read --host web-1 --host web-2 --type cpu_util --type memfree
  measure read --fleet load_shortterm`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ro.fleet == "" && (len(ro.hosts) == 0 || len(ro.types) == 0) {
				return errors.New("either --fleet or at least one --host and --type are required")
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

			out, err := ro.run(cmd.Context(), app.Service)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	cmd.Flags().StringArrayVar(&ro.hosts, "host", nil, "host to read (repeatable)")
	cmd.Flags().StringArrayVarP(&ro.types, "type", "t", nil, "metric type to read (repeatable)")
	cmd.Flags().StringVar(&ro.fleet, "fleet", "", "read the given metric type across every host")

	return cmd
}

func (ro *readOptions) run(ctx context.Context, svc *service.Service) (any, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, _ = logger.EnsureTraceID(ctx)

	switch {
	case ro.fleet != "":
		return svc.ReadLastMeasurements(ctx, metric.Type(ro.fleet))
	case len(ro.hosts) == 1 && len(ro.types) == 1:
		m, err := svc.ReadLastMeasurement(ctx, ro.hosts[0], metric.Type(ro.types[0]))
		if err != nil {
			return nil, err
		}
		return m, nil
	case len(ro.hosts) == 1:
		return svc.ReadLastMeasurementsWithHostAndTypes(ctx, ro.hosts[0], metric.Types(ro.types...)...), nil
	default:
		return svc.ReadLastMeasurementsWithHostsAndTypes(ctx, metric.DBRequest{
			Hosts: ro.hosts,
			Types: metric.Types(ro.types...),
		}), nil
	}
}
