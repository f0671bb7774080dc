package data

import (
	"context"
	"errors"
	"fmt"

	client "github.com/influxdata/influxdb1-client/v2"
	"github.com/ncobase/measure/config"
	"github.com/ncobase/measure/query"
)

// InfluxStore talks to an InfluxDB 1.x server over HTTP. Statements are
// sent with bind parameters.
//
// The HTTP client has no timeout and requests are not bound to ctx, so a
// server that never answers blocks the caller.
type InfluxStore struct {
	client   client.Client
	database string
}

// NewInfluxStore creates a store for the configured server and database.
func NewInfluxStore(cfg *config.Database) (*InfluxStore, error) {
	if cfg == nil {
		return nil, errors.New("influx configuration is nil")
	}

	c, err := client.NewHTTPClient(client.HTTPConfig{
		Addr:      cfg.URL(),
		Username:  cfg.Username,
		Password:  cfg.Password,
		UserAgent: "measure",
	})
	if err != nil {
		return nil, fmt.Errorf("influx client: %w", err)
	}

	return &InfluxStore{client: c, database: cfg.Name}, nil
}

// Query runs stmt.
func (s *InfluxStore) Query(_ context.Context, stmt query.Statement) ([]Series, error) {
	cmd, params := stmt.Render()
	resp, err := s.client.Query(client.NewQueryWithParameters(cmd, s.database, "", params))
	if err != nil {
		return nil, err
	}
	if err := resp.Error(); err != nil {
		return nil, err
	}

	var series []Series
	for _, result := range resp.Results {
		for _, row := range result.Series {
			series = append(series, Series{
				Name:    row.Name,
				Tags:    row.Tags,
				Columns: row.Columns,
				Values:  row.Values,
			})
		}
	}
	return series, nil
}

// Write stores one point with its value in the value field.
func (s *InfluxStore) Write(_ context.Context, p Point) error {
	bp, err := client.NewBatchPoints(client.BatchPointsConfig{Database: s.database})
	if err != nil {
		return err
	}

	fields := map[string]any{query.ValueField: p.Value}
	var pt *client.Point
	if p.Time.IsZero() {
		pt, err = client.NewPoint(p.Measurement, p.Tags, fields)
	} else {
		pt, err = client.NewPoint(p.Measurement, p.Tags, fields, p.Time)
	}
	if err != nil {
		return err
	}
	bp.AddPoint(pt)

	return s.client.Write(bp)
}

// Ping checks that the server answers.
func (s *InfluxStore) Ping(context.Context) error {
	_, _, err := s.client.Ping(0)
	return err
}

// Close releases idle connections.
func (s *InfluxStore) Close() error {
	return s.client.Close()
}
