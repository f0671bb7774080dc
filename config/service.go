package config

import (
	"github.com/ncobase/measure/ecode"
	"github.com/spf13/viper"
)

// Aggregate fan-out config struct
type Aggregate struct {
	// MaxConcurrent caps concurrent sub-queries, 0 leaves them unbounded.
	MaxConcurrent int32 `json:"max_concurrent" yaml:"max_concurrent" validate:"gte=0"`
}

func getAggregateConfig(v *viper.Viper) *Aggregate {
	return &Aggregate{MaxConcurrent: v.GetInt32("aggregate.max_concurrent")}
}

// Write asynchronous write path config struct
type Write struct {
	Workers   int `json:"workers" yaml:"workers" validate:"gte=1"`
	QueueSize int `json:"queue_size" yaml:"queue_size" validate:"gte=1"`
}

func getWriteConfig(v *viper.Viper) *Write {
	return &Write{
		Workers:   getIntOrDefault(v, "write.workers", 4),
		QueueSize: getIntOrDefault(v, "write.queue_size", 1024),
	}
}

// Kafka ingest consumer config struct
type Kafka struct {
	Brokers []string `json:"brokers" yaml:"brokers"`
	Topic   string   `json:"topic" yaml:"topic"`
	GroupID string   `json:"group_id" yaml:"group_id"`
}

// Ingest config struct
type Ingest struct {
	Kafka *Kafka
}

// Enabled reports whether a consumer should run.
func (i *Ingest) Enabled() bool {
	return i != nil && i.Kafka != nil && len(i.Kafka.Brokers) > 0
}

func getIngestConfig(v *viper.Viper) *Ingest {
	return &Ingest{
		Kafka: &Kafka{
			Brokers: v.GetStringSlice("ingest.kafka.brokers"),
			Topic:   v.GetString("ingest.kafka.topic"),
			GroupID: getStringOrDefault(v, "ingest.kafka.group_id", "measure"),
		},
	}
}

// CatalogType is an extra metric type row.
type CatalogType struct {
	Table        string `json:"table" mapstructure:"table" validate:"required"`
	Type         string `json:"type" mapstructure:"type"`
	TypeInstance string `json:"type_instance" mapstructure:"type_instance"`
	Instance     string `json:"instance" mapstructure:"instance"`
	Units        string `json:"units" mapstructure:"units"`
	Derivation   string `json:"derivation" mapstructure:"derivation" validate:"omitempty,oneof=raw cpu_utilization byte_rate byte_scale"`
}

// Catalog extra metric types config struct
type Catalog struct {
	Types map[string]CatalogType `json:"types" yaml:"types" validate:"dive"`
}

func getCatalogConfig(v *viper.Viper) (*Catalog, error) {
	c := &Catalog{Types: map[string]CatalogType{}}
	if err := v.UnmarshalKey("catalog.types", &c.Types); err != nil {
		return nil, &ecode.ConfigError{Field: "catalog.types", Message: err.Error()}
	}
	return c, nil
}
