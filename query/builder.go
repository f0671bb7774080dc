package query

import (
	"time"

	"github.com/ncobase/measure/metric"
)

// Shape is the structural form of a last-value query.
type Shape int

const (
	// Point fetches the latest sample.
	Point Shape = iota
	// Pair fetches the two latest samples.
	Pair
	// Window fetches the two latest sums of short buckets in a trailing window.
	Window
	// Fleet fetches the latest sample of every host.
	Fleet
)

// String returns the shape name.
func (s Shape) String() string {
	switch s {
	case Pair:
		return "pair"
	case Window:
		return "window"
	case Fleet:
		return "fleet"
	default:
		return "point"
	}
}

// Window parameters of the byte rate query.
const (
	WindowRange  = 10 * time.Minute
	WindowBucket = 10 * time.Second
)

// ShapeFor returns the query shape a derivation needs.
func ShapeFor(d metric.Derivation) Shape {
	switch d {
	case metric.CPUUtilization:
		return Pair
	case metric.ByteRate:
		return Window
	default:
		return Point
	}
}

// Build constructs the statement of the given shape for a descriptor.
// The host filter is applied to every shape but Fleet, which groups by host
// instead. A descriptor tag contributes a filter only when it is set.
func Build(host string, desc metric.Descriptor, shape Shape) Statement {
	stmt := Statement{
		Measurement: desc.Table,
		Field:       Field{Name: ValueField},
		Descending:  true,
		Limit:       1,
	}

	if shape != Fleet {
		stmt.Filters = append(stmt.Filters, Filter{Key: TagHost, Value: host})
	}
	stmt.Filters = append(stmt.Filters, tagFilters(desc)...)

	switch shape {
	case Pair:
		stmt.Limit = 2
	case Window:
		stmt.Field.Aggregate = AggregateSum
		stmt.Since = WindowRange
		stmt.GroupByTime = WindowBucket
		stmt.Limit = 2
	case Fleet:
		stmt.GroupByTags = []string{TagHost}
	}

	return stmt
}

func tagFilters(desc metric.Descriptor) []Filter {
	var filters []Filter
	if desc.Type != "" {
		filters = append(filters, Filter{Key: TagType, Value: desc.Type})
	}
	if desc.TypeInstance != "" {
		filters = append(filters, Filter{Key: TagTypeInstance, Value: desc.TypeInstance})
	}
	if desc.Instance != "" {
		filters = append(filters, Filter{Key: TagInstance, Value: desc.Instance})
	}
	return filters
}
