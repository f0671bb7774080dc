// Package ingest feeds measurements published on a message bus into the
// write path.
package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ncobase/measure/config"
	"github.com/ncobase/measure/ctxutil"
	"github.com/ncobase/measure/logging/logger"
	"github.com/ncobase/measure/metric"
	"github.com/segmentio/kafka-go"
	"github.com/spf13/cast"
)

// ErrInvalidMessage reports a payload that cannot be turned into a point.
var ErrInvalidMessage = errors.New("invalid measurement message")

// Writer accepts measurements.
type Writer interface {
	WriteMeasurement(ctx context.Context, t metric.Type, instance string, value float64, ts time.Time)
}

// Message is the JSON payload of one measurement.
type Message struct {
	Type      string `json:"type"`
	Instance  string `json:"instance"`
	Value     any    `json:"value"`
	Timestamp any    `json:"timestamp,omitempty"`
}

// Point is a decoded message.
type Point struct {
	Type     metric.Type
	Instance string
	Value    float64
	Time     time.Time
}

// Decode parses payload. The value may be a number or a numeral string; the
// timestamp may be RFC 3339, a date string or unix seconds, and defaults to
// the zero time.
func Decode(payload []byte) (Point, error) {
	var msg Message
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()
	if err := dec.Decode(&msg); err != nil {
		return Point{}, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	if msg.Type == "" || msg.Instance == "" {
		return Point{}, fmt.Errorf("%w: type and instance are required", ErrInvalidMessage)
	}

	value, err := cast.ToFloat64E(numeric(msg.Value))
	if err != nil || msg.Value == nil {
		return Point{}, fmt.Errorf("%w: value %v is not a number", ErrInvalidMessage, msg.Value)
	}

	p := Point{Type: metric.Type(msg.Type), Instance: msg.Instance, Value: value}
	if msg.Timestamp != nil && msg.Timestamp != "" {
		ts, err := cast.ToTimeE(numeric(msg.Timestamp))
		if err != nil {
			return Point{}, fmt.Errorf("%w: timestamp %v: %v", ErrInvalidMessage, msg.Timestamp, err)
		}
		p.Time = ts
	}
	return p, nil
}

// numeric unwraps json.Number for cast.
func numeric(v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}

type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer reads measurement messages from a Kafka topic.
type Consumer struct {
	reader reader
	writer Writer
	logger *logger.Logger
}

// NewConsumer creates a consumer group member for the configured topic.
func NewConsumer(cfg *config.Kafka, w Writer, l *logger.Logger) (*Consumer, error) {
	if cfg == nil || len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka configuration is nil or empty")
	}
	if cfg.Topic == "" {
		return nil, errors.New("kafka topic is required")
	}

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		GroupID:  cfg.GroupID,
		Topic:    cfg.Topic,
		MinBytes: 1,
		MaxBytes: 10e6, // 10MB
	})
	return newConsumer(r, w, l), nil
}

func newConsumer(r reader, w Writer, l *logger.Logger) *Consumer {
	if l == nil {
		l = logger.Discard()
	}
	return &Consumer{reader: r, writer: w, logger: l}
}

// Run consumes until ctx is done. Every fetched message is committed, the
// ones that cannot be decoded included.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("failed to fetch message: %w", err)
		}

		mctx, _ := ctxutil.EnsureTraceID(ctx)
		if err := c.Handle(mctx, m.Value); err != nil {
			c.logger.Warnf(mctx, "skipping message at %s/%d offset %d: %v", m.Topic, m.Partition, m.Offset, err)
		}

		if err := c.reader.CommitMessages(ctx, m); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("failed to commit message: %w", err)
		}
	}
}

// Handle decodes one payload and writes it.
func (c *Consumer) Handle(ctx context.Context, payload []byte) error {
	p, err := Decode(payload)
	if err != nil {
		return err
	}
	c.writer.WriteMeasurement(ctx, p.Type, p.Instance, p.Value, p.Time)
	return nil
}

// Close closes the reader.
func (c *Consumer) Close() error {
	return c.reader.Close()
}
