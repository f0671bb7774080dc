// Package resp writes the JSON bodies of the HTTP API.
//
// Success bodies are the payload itself, or {"message": ...} when the
// payload is a string. Failure bodies carry a business code from ecode:
//
//	{
//	  "code": -404,
//	  "message": "Host (h1) or measurement type (cpu_util) not found.",
//	  "errors": {...}
//	}
//
// Usage:
//
//	m, err := svc.ReadLastMeasurement(ctx, host, t)
//	if err != nil {
//	    resp.Fail(c.Writer, resp.FromError(err))
//	    return
//	}
//	resp.Success(c.Writer, m)
package resp
