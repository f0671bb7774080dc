package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ncobase/measure/ecode"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return strings.ToLower(f.Name)
		}
		return name
	})
	return v
}

// Validate checks every section and reports the first problem as a
// *ecode.ConfigError.
func (c *Config) Validate() error {
	sections := []struct {
		prefix string
		value  any
	}{
		{"server", c.Server},
		{"logger", c.Logger},
		{"database", c.Database},
		{"observes.tracer", c.Observes.Tracer},
		{"aggregate", c.Aggregate},
		{"write", c.Write},
		{"catalog", c.Catalog},
	}
	for _, s := range sections {
		if err := validateSection(s.prefix, s.value); err != nil {
			return err
		}
	}

	if c.Ingest.Enabled() {
		if c.Ingest.Kafka.Topic == "" {
			return &ecode.ConfigError{Field: "ingest.kafka.topic", Message: "is required when brokers are set"}
		}
		if c.Ingest.Kafka.GroupID == "" {
			return &ecode.ConfigError{Field: "ingest.kafka.group_id", Message: "is required when brokers are set"}
		}
	}
	return nil
}

func validateSection(prefix string, section any) error {
	err := validate.Struct(section)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ecode.ConfigError{Field: prefix, Message: err.Error()}
	}

	fe := verrs[0]
	field := prefix
	// Namespace is "<Struct>.<path>"; drop the struct name.
	if _, path, ok := strings.Cut(fe.Namespace(), "."); ok {
		field = prefix + "." + path
	}
	return &ecode.ConfigError{Field: field, Message: describe(fe)}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if", "required_unless":
		return ecode.FieldIsRequired("is")
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "gte":
		return fmt.Sprintf("must be >= %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be <= %s", fe.Param())
	default:
		return ecode.FieldIsInvalid("is")
	}
}
