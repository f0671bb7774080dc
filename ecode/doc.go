// Package ecode defines the error kinds shared by the measurement service
// and the business codes used in API responses.
//
// # Error kinds
//
//	*ecode.NotFoundError      // a host has no data for a metric type
//	*ecode.FleetNotFoundError // no host has data for a metric type
//	*ecode.ConfigError        // missing or invalid configuration
//
// Storage errors are not wrapped into a kind; they reach the caller as the
// storage client returned them.
//
// # Checking errors
//
//	if ecode.IsNotFound(err) {
//	    // render 404
//	}
//
// # Codes
//
//	ecode.RequestErr         // -400: Invalid request
//	ecode.NotFound           // -404: Resource not found
//	ecode.BadGateway         // -502: Storage backend error
//	ecode.ServiceUnavailable // -503: Service unavailable
//
//	status := ecode.ToHTTPStatus(ecode.Code(err))
package ecode
