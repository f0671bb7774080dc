package interpret

import (
	"math"

	"github.com/ncobase/measure/ecode"
	"github.com/ncobase/measure/metric"
	"github.com/ncobase/measure/query"
)

// CPUFallbackInterval is assumed between two idle samples when their
// timestamps cannot be used.
const CPUFallbackInterval = 10.0

// ByteDecimals is the precision used for byte-scaled metrics.
const ByteDecimals = 2

// Interpreter turns raw samples into measurements.
type Interpreter struct {
	catalog *metric.Catalog
}

// New returns an interpreter backed by catalog.
func New(catalog *metric.Catalog) *Interpreter {
	return &Interpreter{catalog: catalog}
}

// Interpret derives the measurement of t on host from the samples of its
// query, newest first. An empty sample set is reported as not found.
func (i *Interpreter) Interpret(host string, t metric.Type, samples []metric.Sample) (*metric.Measurement, error) {
	if len(samples) == 0 {
		return nil, &ecode.NotFoundError{Host: host, Type: string(t)}
	}

	switch i.catalog.Derivation(t) {
	case metric.CPUUtilization:
		return i.cpuUtilization(host, t, samples)
	case metric.ByteRate:
		return i.byteRate(host, t, samples)
	case metric.ByteScale:
		return i.byteScale(samples[0]), nil
	default:
		m := &metric.Measurement{
			Timestamp: samples[0].Time,
			Units:     i.catalog.Units(t),
		}
		if samples[0].Valid {
			m.Value = samples[0].Value
		}
		return m, nil
	}
}

// cpuUtilization computes 100 minus the idle jiffies per second between the
// two latest samples.
func (i *Interpreter) cpuUtilization(host string, t metric.Type, samples []metric.Sample) (*metric.Measurement, error) {
	if len(samples) < 2 || !samples[0].Valid || !samples[1].Valid {
		return nil, &ecode.NotFoundError{Host: host, Type: string(t)}
	}
	cur, prev := samples[0], samples[1]

	util := 100 - (cur.Value-prev.Value)/elapsedSeconds(cur, prev)
	if util < 0 {
		util = math.Abs(util)
	}

	return &metric.Measurement{
		Timestamp: cur.Time,
		Value:     util,
		Units:     i.catalog.Units(t),
	}, nil
}

func elapsedSeconds(cur, prev metric.Sample) float64 {
	if cur.Time.IsZero() || prev.Time.IsZero() {
		return CPUFallbackInterval
	}
	d := cur.Time.Sub(prev.Time).Seconds()
	if d <= 0 || math.IsNaN(d) {
		return CPUFallbackInterval
	}
	return d
}

// byteRate converts the difference of two bucket sums into bytes per second.
func (i *Interpreter) byteRate(host string, t metric.Type, samples []metric.Sample) (*metric.Measurement, error) {
	if len(samples) < 2 || !present(samples[0]) || !present(samples[1]) {
		return nil, &ecode.NotFoundError{Host: host, Type: string(t)}
	}
	cur, prev := samples[0], samples[1]

	return &metric.Measurement{
		Timestamp: cur.Time,
		Value:     (cur.Value - prev.Value) / query.WindowBucket.Seconds(),
		Units:     metric.UnitBytesPerSecond,
	}, nil
}

// present reports whether a bucket holds a usable non-zero sum.
func present(s metric.Sample) bool {
	return s.Valid && s.Value != 0
}

func (i *Interpreter) byteScale(s metric.Sample) *metric.Measurement {
	m := &metric.Measurement{Timestamp: s.Time}
	if !s.Valid {
		return m
	}
	m.Value, m.Units = SplitBytes(FormatBytes(s.Value, ByteDecimals))
	return m
}
