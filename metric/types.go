package metric

import "time"

// Type is a canonical metric-type name such as "cpu_util" or "memfree".
// Names without a catalog entry are still valid and resolve by passthrough.
type Type string

// String returns the type name.
func (t Type) String() string { return string(t) }

// Types converts plain names into metric types.
func Types(names ...string) []Type {
	types := make([]Type, 0, len(names))
	for _, n := range names {
		types = append(types, Type(n))
	}
	return types
}

// Descriptor identifies where a metric type is stored.
// Table is always set; an empty tag field means the tag is not filtered on.
type Descriptor struct {
	Table        string `json:"table" mapstructure:"table"`
	Type         string `json:"type,omitempty" mapstructure:"type"`
	TypeInstance string `json:"type_instance,omitempty" mapstructure:"type_instance"`
	Instance     string `json:"instance,omitempty" mapstructure:"instance"`
}

// Sample is one row returned by a last-value query.
// A zero Time marks a timestamp that could not be parsed, Valid=false a null value.
type Sample struct {
	Time  time.Time
	Value float64
	Valid bool
}

// Measurement is the interpreted reading for one host and metric type.
// Value is a number, or a numeric string for byte-scaled metrics.
type Measurement struct {
	Timestamp time.Time `json:"timestamp"`
	Value     any       `json:"value"`
	Units     string    `json:"units,omitempty"`
	Type      Type      `json:"type,omitempty"`
}

// MeasurementGroup holds the readings that could be obtained for one host.
type MeasurementGroup struct {
	Instance     string        `json:"instance"`
	Measurements []Measurement `json:"measurements"`
}

// DBRequest asks for every type on every host.
type DBRequest struct {
	Hosts []string `json:"hosts" validate:"required,min=1,dive,required"`
	Types []Type   `json:"types" validate:"required,min=1,dive,required"`
}

// Reading is one host's latest raw value in a fleet snapshot.
type Reading struct {
	Instance string    `json:"instance"`
	Value    any       `json:"value"`
	Time     time.Time `json:"time"`
}
