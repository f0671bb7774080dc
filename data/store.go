// Package data holds the time-series storage backends behind the
// measurement service.
package data

import (
	"context"
	"time"

	"github.com/ncobase/measure/query"
)

// Point is one written sample.
type Point struct {
	Measurement string            `json:"measurement"`
	Tags        map[string]string `json:"tags,omitempty"`
	Value       float64           `json:"value"`
	Time        time.Time         `json:"time"`
}

// Series is one result series of a query, laid out like an InfluxDB row:
// Values holds one slice per row, aligned with Columns.
type Series struct {
	Name    string            `json:"name"`
	Tags    map[string]string `json:"tags,omitempty"`
	Columns []string          `json:"columns"`
	Values  [][]any           `json:"values"`
}

// Store is a time-series backend.
type Store interface {
	// Query runs a last-value statement. A statement matching nothing
	// returns no series and no error.
	Query(ctx context.Context, stmt query.Statement) ([]Series, error)
	// Write stores one point.
	Write(ctx context.Context, p Point) error
	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error
	Close() error
}
