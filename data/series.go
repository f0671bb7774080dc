package data

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/ncobase/measure/metric"
	"github.com/ncobase/measure/query"
	"github.com/spf13/cast"
)

// ErrMalformedSeries reports a series that lacks the columns, rows or tags
// a reading needs.
var ErrMalformedSeries = errors.New("malformed series")

const timeColumn = "time"

// Samples returns the rows of the first series, in result order.
func Samples(series []Series) []metric.Sample {
	if len(series) == 0 {
		return nil
	}
	return series[0].Samples()
}

// Samples converts the rows of s. Unparsable times become the zero time and
// unparsable or null values become invalid samples.
func (s Series) Samples() []metric.Sample {
	ti, vi := s.columnIndex(timeColumn), s.valueIndex()
	samples := make([]metric.Sample, 0, len(s.Values))
	for _, row := range s.Values {
		var sm metric.Sample
		if ti >= 0 && ti < len(row) {
			sm.Time = ParseTime(row[ti])
		}
		if vi >= 0 && vi < len(row) {
			sm.Value, sm.Valid = ParseValue(row[vi])
		}
		samples = append(samples, sm)
	}
	return samples
}

// Reading converts a fleet series into the latest reading of its host.
func (s Series) Reading() (metric.Reading, error) {
	host, ok := s.Tags[query.TagHost]
	if !ok {
		return metric.Reading{}, fmt.Errorf("%w: series %q has no %s tag", ErrMalformedSeries, s.Name, query.TagHost)
	}
	ti, vi := s.columnIndex(timeColumn), s.valueIndex()
	if ti < 0 || vi < 0 {
		return metric.Reading{}, fmt.Errorf("%w: series %q has columns %v", ErrMalformedSeries, s.Name, s.Columns)
	}
	if len(s.Values) == 0 || len(s.Values[0]) <= max(ti, vi) {
		return metric.Reading{}, fmt.Errorf("%w: series %q for host %q has no rows", ErrMalformedSeries, s.Name, host)
	}

	row := s.Values[0]
	r := metric.Reading{Instance: host, Time: ParseTime(row[ti])}
	if v, ok := ParseValue(row[vi]); ok {
		r.Value = v
	} else {
		r.Value = row[vi]
	}
	return r, nil
}

func (s Series) columnIndex(name string) int {
	for i, c := range s.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// valueIndex returns the first column that is not the time column.
func (s Series) valueIndex() int {
	for i, c := range s.Columns {
		if c != timeColumn {
			return i
		}
	}
	return -1
}

// ParseTime accepts RFC 3339 strings, time.Time and epoch nanoseconds.
func ParseTime(v any) time.Time {
	switch t := v.(type) {
	case nil:
		return time.Time{}
	case time.Time:
		return t
	case string:
		if ts, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return ts
		}
		return time.Time{}
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return time.Unix(0, n).UTC()
		}
		return time.Time{}
	default:
		n, err := cast.ToInt64E(v)
		if err != nil {
			return time.Time{}
		}
		return time.Unix(0, n).UTC()
	}
}

// ParseValue converts a row value to a float. Null and non-numeric values
// report false.
func ParseValue(v any) (float64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case bool:
		return 0, false
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		f, err := cast.ToFloat64E(v)
		return f, err == nil
	}
}
