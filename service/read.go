package service

import (
	"context"

	"github.com/hashicorp/go-multierror"
	"github.com/ncobase/measure/concurrency"
	"github.com/ncobase/measure/data"
	"github.com/ncobase/measure/ecode"
	"github.com/ncobase/measure/logging/observes"
	"github.com/ncobase/measure/metric"
	"github.com/ncobase/measure/query"
	"go.opentelemetry.io/otel/attribute"
)

// ReadLastMeasurement returns the latest measurement of t on host. A host or
// type without data is reported as *ecode.NotFoundError; storage errors are
// returned as they are.
func (s *Service) ReadLastMeasurement(ctx context.Context, host string, t metric.Type) (m *metric.Measurement, err error) {
	ctx, span := observes.StartSpan(ctx, "service.ReadLastMeasurement",
		attribute.String("host", host),
		attribute.String("type", t.String()),
	)
	defer func() { observes.EndSpan(span, err) }()

	return s.readLastMeasurement(ctx, host, t)
}

func (s *Service) readLastMeasurement(ctx context.Context, host string, t metric.Type) (*metric.Measurement, error) {
	stmt := query.Build(host, s.catalog.Resolve(t), query.ShapeFor(s.catalog.Derivation(t)))
	s.logger.Tracef(ctx, "query %s", stmt)

	series, err := s.store.Query(ctx, stmt)
	if err != nil {
		return nil, err
	}
	return s.interpreter.Interpret(host, t, data.Samples(series))
}

// readLastMeasurementWithType is readLastMeasurement with the type set on
// the result, as group operations report it.
func (s *Service) readLastMeasurementWithType(ctx context.Context, host string, t metric.Type) (metric.Measurement, error) {
	m, err := s.readLastMeasurement(ctx, host, t)
	if err != nil {
		return metric.Measurement{}, err
	}
	m.Type = t
	return *m, nil
}

// ReadLastMeasurementsWithHostAndTypes reads every type of host at once and
// keeps the measurements that could be read, in request order. Failed types
// are left out; the group is never nil.
func (s *Service) ReadLastMeasurementsWithHostAndTypes(ctx context.Context, host string, types ...metric.Type) *metric.MeasurementGroup {
	ctx, span := observes.StartSpan(ctx, "service.ReadLastMeasurementsWithHostAndTypes",
		attribute.String("host", host),
		attribute.Int("types", len(types)),
	)
	defer span.End()

	group, _ := s.readGroup(ctx, host, types)
	return group
}

// readGroup returns the group of host together with an error when no type
// at all could be read.
func (s *Service) readGroup(ctx context.Context, host string, types []metric.Type) (*metric.MeasurementGroup, error) {
	tasks := make([]func(context.Context) (metric.Measurement, error), len(types))
	for i, t := range types {
		tasks[i] = func(ctx context.Context) (metric.Measurement, error) {
			return s.readLastMeasurementWithType(ctx, host, t)
		}
	}

	results := concurrency.Settle(ctx, s.limiter, tasks...)
	failed := concurrency.Rejected(results)
	for _, err := range failed {
		if ecode.IsNotFound(err) {
			s.logger.Trace(ctx, err)
			continue
		}
		s.logger.Debugf(ctx, "measurement of host %s skipped: %v", host, err)
	}

	group := &metric.MeasurementGroup{
		Instance:     host,
		Measurements: concurrency.Fulfilled(results),
	}
	if len(types) > 0 && len(group.Measurements) == 0 {
		return group, multierror.Append(nil, failed...).ErrorOrNil()
	}
	return group, nil
}

// ReadLastMeasurementsWithHostsAndTypes reads every requested type of every
// requested host. Hosts for which no type could be read are left out.
func (s *Service) ReadLastMeasurementsWithHostsAndTypes(ctx context.Context, req metric.DBRequest) []metric.MeasurementGroup {
	ctx, span := observes.StartSpan(ctx, "service.ReadLastMeasurementsWithHostsAndTypes",
		attribute.StringSlice("hosts", req.Hosts),
		attribute.Int("types", len(req.Types)),
	)
	defer span.End()

	tasks := make([]func(context.Context) (metric.MeasurementGroup, error), len(req.Hosts))
	for i, host := range req.Hosts {
		tasks[i] = func(ctx context.Context) (metric.MeasurementGroup, error) {
			group, err := s.readGroup(ctx, host, req.Types)
			if err != nil {
				return metric.MeasurementGroup{}, err
			}
			return *group, nil
		}
	}

	// hosts run unbounded; the limiter applies to their storage queries
	return concurrency.Fulfilled(concurrency.Settle(ctx, nil, tasks...))
}

// ReadLastMeasurements returns the latest raw value of t on every host that
// reports it. A series without a host tag, rows or value column fails the
// whole call.
func (s *Service) ReadLastMeasurements(ctx context.Context, t metric.Type) (readings []metric.Reading, err error) {
	ctx, span := observes.StartSpan(ctx, "service.ReadLastMeasurements",
		attribute.String("type", t.String()),
	)
	defer func() { observes.EndSpan(span, err) }()

	stmt := query.Build("", s.catalog.Resolve(t), query.Fleet)
	s.logger.Tracef(ctx, "query %s", stmt)

	series, err := s.store.Query(ctx, stmt)
	if err != nil {
		return nil, err
	}
	if len(series) == 0 {
		return nil, &ecode.FleetNotFoundError{Type: t.String()}
	}

	readings = make([]metric.Reading, 0, len(series))
	for _, sr := range series {
		r, err := sr.Reading()
		if err != nil {
			return nil, err
		}
		readings = append(readings, r)
	}
	return readings, nil
}
