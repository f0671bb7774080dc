package query

import (
	"time"
)

// Tag keys written by the collectors.
const (
	TagHost         = "host"
	TagType         = "type"
	TagTypeInstance = "type_instance"
	TagInstance     = "instance"
)

// ValueField is the field every point carries.
const ValueField = "value"

// Aggregate functions supported in a Field.
const (
	AggregateNone = ""
	AggregateSum  = "sum"
)

// Field is the selected column, optionally aggregated.
type Field struct {
	Name      string
	Aggregate string
}

// Column returns the result column name the backend reports for the field.
func (f Field) Column() string {
	if f.Aggregate != AggregateNone {
		return f.Aggregate
	}
	return f.Name
}

// Filter is an equality condition on a tag.
type Filter struct {
	Key   string
	Value string
}

// Statement is a structured last-value query. Clauses are kept as data so
// every backend renders or evaluates them the same way.
type Statement struct {
	Measurement string
	Field       Field
	Filters     []Filter
	// Since restricts rows to time > now() - Since when non-zero.
	Since time.Duration
	// GroupByTime buckets rows into intervals of this width when non-zero.
	GroupByTime time.Duration
	GroupByTags []string
	Descending  bool
	Limit       int
}

// Filter returns the value of the filter on key, if present.
func (s Statement) Filter(key string) (string, bool) {
	for _, f := range s.Filters {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}
