package resp

import (
	"encoding/json"
	"net/http"

	"github.com/ncobase/measure/ecode"
)

// Exception is a failure body together with the HTTP status it is sent
// with.
type Exception struct {
	Status  int    `json:"-"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Errors  any    `json:"errors,omitempty"` // field errors or extra detail
}

func newResponse(status, code int, message string, detail ...any) *Exception {
	e := &Exception{Status: status, Code: code, Message: message}
	if len(detail) > 0 {
		e.Errors = detail[0]
	}
	return e
}

type messageBody struct {
	Message string `json:"message"`
}

// Success writes data with status 200.
func Success(w http.ResponseWriter, data ...any) {
	WithStatusCode(w, http.StatusOK, data...)
}

// WithStatusCode writes a success body with statusCode. A string payload
// is sent as {"message": ...}, no payload as {"message": "ok"}.
func WithStatusCode(w http.ResponseWriter, statusCode int, data ...any) {
	if statusCode < 200 || statusCode >= 400 {
		Fail(w, newResponse(statusCode, 0, http.StatusText(statusCode)))
		return
	}

	var body any = messageBody{Message: "ok"}
	if len(data) > 0 && data[0] != nil {
		switch v := data[0].(type) {
		case string:
			body = messageBody{Message: v}
		default:
			body = v
		}
	}
	writeJSON(w, statusCode, body)
}

// Fail writes a failure body. A nil exception is an internal error; a
// missing status, code or message is filled from ecode.
func Fail(w http.ResponseWriter, e *Exception) {
	if e == nil {
		e = InternalServer(ecode.Text(ecode.ServerErr))
	}

	out := *e
	if out.Code == 0 {
		out.Code = ecode.RequestErr
	}
	if out.Status == 0 {
		out.Status = ecode.ToHTTPStatus(out.Code)
	}
	if out.Message == "" {
		out.Message = ecode.Text(out.Code)
	}
	writeJSON(w, out.Status, &out)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	payload, err := json.Marshal(body)
	if err != nil {
		http.Error(w, "Failed to encode JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(append(payload, '\n'))
}
