package ecode

import (
	"errors"
	"net/http"
)

// Business codes carried in API error bodies.
const (
	OK                 = 0
	RequestErr         = -400
	ParamErr           = -401
	NotFound           = -404
	ServerErr          = -500
	BadGateway         = -502
	ServiceUnavailable = -503
)

var codeText = map[int]string{
	OK:                 "ok",
	RequestErr:         "Invalid request",
	ParamErr:           "Invalid parameters",
	NotFound:           "Resource not found",
	ServerErr:          "Internal server error",
	BadGateway:         "Storage backend error",
	ServiceUnavailable: "Service unavailable",
}

// Text returns the message for a code.
func Text(code int) string {
	if t, ok := codeText[code]; ok {
		return t
	}
	return codeText[ServerErr]
}

// ToHTTPStatus maps a business code to an HTTP status.
func ToHTTPStatus(code int) int {
	switch code {
	case OK:
		return http.StatusOK
	case RequestErr, ParamErr:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case BadGateway:
		return http.StatusBadGateway
	case ServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Code classifies an error. Anything that is neither not-found nor a
// configuration error came from the storage backend.
func Code(err error) int {
	switch {
	case err == nil:
		return OK
	case errors.Is(err, ErrNotFound):
		return NotFound
	case IsConfig(err):
		return ServiceUnavailable
	default:
		return BadGateway
	}
}
