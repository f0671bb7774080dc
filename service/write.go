package service

import (
	"context"
	"time"

	"github.com/ncobase/measure/ctxutil"
	"github.com/ncobase/measure/data"
	"github.com/ncobase/measure/metric"
	"github.com/ncobase/measure/query"
)

// WriteMeasurement records value of t for instance. The point is handed to
// storage in the background: the caller gets no result, and a failed or
// rejected write is only logged. A zero ts lets the backend stamp the point.
func (s *Service) WriteMeasurement(ctx context.Context, t metric.Type, instance string, value float64, ts time.Time) {
	p := data.Point{
		Measurement: metric.Canonical(t).String(),
		Tags:        map[string]string{query.TagHost: instance},
		Value:       value,
		Time:        ts,
	}
	s.logger.Debugf(ctx, "%s: %v @ %s recorded at: %s", t, value, instance, ts.Format(time.RFC3339Nano))

	// the write outlives the request that triggered it
	wctx := ctxutil.Detach(ctx)
	err := s.writes.Submit(func(context.Context) error {
		if err := s.store.Write(wctx, p); err != nil {
			s.logger.Errorf(wctx, "failed to write %s of %s: %v", p.Measurement, instance, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Errorf(ctx, "dropped %s of %s: %v", p.Measurement, instance, err)
	}
}
