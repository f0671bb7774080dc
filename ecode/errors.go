package ecode

import (
	"errors"
	"fmt"
)

const (
	emptyMsg    = "empty"
	requiredMsg = "required"
	invalidMsg  = "invalid"
	notFoundMsg = "not found"
)

// ErrNotFound matches every not-found error through errors.Is.
var ErrNotFound = errors.New(notFoundMsg)

// NotFoundError reports that a host has no data for a metric type.
type NotFoundError struct {
	Host string
	Type string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Host (%s) or measurement type (%s) %s.", e.Host, e.Type, notFoundMsg)
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// FleetNotFoundError reports that no host has data for a metric type.
type FleetNotFoundError struct {
	Type string
}

func (e *FleetNotFoundError) Error() string {
	return fmt.Sprintf("Measurement type (%s) %s.", e.Type, notFoundMsg)
}

// Is reports whether target is ErrNotFound.
func (e *FleetNotFoundError) Is(target error) bool { return target == ErrNotFound }

// ConfigError reports missing or invalid configuration.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return "config: " + e.Message
	}
	return fmt.Sprintf("config: %s %s", e.Field, e.Message)
}

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsConfig reports whether err is a configuration error.
func IsConfig(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// FieldIsRequired returns field required message
func FieldIsRequired(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], requiredMsg)
	}
	return requiredMsg
}

// FieldIsEmpty returns field empty message
func FieldIsEmpty(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], emptyMsg)
	}
	return emptyMsg
}

// FieldIsInvalid returns field invalid message
func FieldIsInvalid(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], invalidMsg)
	}
	return invalidMsg
}
