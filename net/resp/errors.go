package resp

import (
	"net/http"

	"github.com/ncobase/measure/ecode"
)

// BadRequest indicates a bad request.
func BadRequest(message string, data ...any) *Exception {
	return newResponse(http.StatusBadRequest, ecode.RequestErr, message, data...)
}

// InvalidParams indicates request parameters that failed validation.
func InvalidParams(message string, data ...any) *Exception {
	return newResponse(http.StatusBadRequest, ecode.ParamErr, message, data...)
}

// NotFound indicates that the requested resource is not found.
func NotFound(message string, data ...any) *Exception {
	return newResponse(http.StatusNotFound, ecode.NotFound, message, data...)
}

// InternalServer indicates a server error.
func InternalServer(message string, data ...any) *Exception {
	return newResponse(http.StatusInternalServerError, ecode.ServerErr, message, data...)
}

// BadGateway indicates that the storage backend failed.
func BadGateway(message string, data ...any) *Exception {
	return newResponse(http.StatusBadGateway, ecode.BadGateway, message, data...)
}

// Unavailable indicates that the service cannot serve requests.
func Unavailable(message string, data ...any) *Exception {
	return newResponse(http.StatusServiceUnavailable, ecode.ServiceUnavailable, message, data...)
}

// FromError classifies err with ecode and keeps its message.
func FromError(err error) *Exception {
	code := ecode.Code(err)
	if code == ecode.OK {
		return nil
	}
	return newResponse(ecode.ToHTTPStatus(code), code, err.Error())
}
