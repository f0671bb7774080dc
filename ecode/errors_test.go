package ecode

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNotFoundMessages(t *testing.T) {
	err := &NotFoundError{Host: "h9", Type: "cpuidle"}
	if got, want := err.Error(), "Host (h9) or measurement type (cpuidle) not found."; got != want {
		t.Errorf("NotFoundError.Error() = %q, want %q", got, want)
	}

	fleet := &FleetNotFoundError{Type: "memfree"}
	if got, want := fleet.Error(), "Measurement type (memfree) not found."; got != want {
		t.Errorf("FleetNotFoundError.Error() = %q, want %q", got, want)
	}
}

func TestIsNotFound(t *testing.T) {
	wrapped := fmt.Errorf("read: %w", &NotFoundError{Host: "h", Type: "t"})
	if !IsNotFound(wrapped) {
		t.Error("wrapped NotFoundError should match ErrNotFound")
	}
	if !IsNotFound(&FleetNotFoundError{Type: "t"}) {
		t.Error("FleetNotFoundError should match ErrNotFound")
	}
	if IsNotFound(errors.New("dial tcp: refused")) {
		t.Error("transport error must not match ErrNotFound")
	}
}

func TestCode(t *testing.T) {
	tests := []struct {
		err    error
		code   int
		status int
	}{
		{nil, OK, http.StatusOK},
		{&NotFoundError{}, NotFound, http.StatusNotFound},
		{&ConfigError{Field: "database.port", Message: "invalid"}, ServiceUnavailable, http.StatusServiceUnavailable},
		{errors.New("connection reset"), BadGateway, http.StatusBadGateway},
	}
	for _, tt := range tests {
		if got := Code(tt.err); got != tt.code {
			t.Errorf("Code(%v) = %d, want %d", tt.err, got, tt.code)
		}
		if got := ToHTTPStatus(Code(tt.err)); got != tt.status {
			t.Errorf("ToHTTPStatus(Code(%v)) = %d, want %d", tt.err, got, tt.status)
		}
	}
}

func TestConfigError(t *testing.T) {
	err := &ConfigError{Field: "database.host", Message: "required"}
	if got, want := err.Error(), "config: database.host required"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got := Text(12345); got != Text(ServerErr) {
		t.Errorf("unknown code text = %q", got)
	}
}
