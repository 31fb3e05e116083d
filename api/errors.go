package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/vocdoni/arcane-treasury/log"
)

// Error is an API error: the wrapped error, a stable code for clients and
// the HTTP status of the response. The predefined errors are in
// errors_definition.go.
type Error struct {
	Err        error
	Code       int
	HTTPstatus int
}

// errorBody is the JSON body of an error response, for example
// {"error":"malformed JSON body: unexpected EOF","code":40004}.
type errorBody struct {
	Err  string `json:"error"`
	Code int    `json:"code"`
}

// MarshalJSON encodes the error message and code. HTTPstatus is not part of
// the body.
func (e Error) MarshalJSON() ([]byte, error) {
	return json.Marshal(errorBody{Err: e.Err.Error(), Code: e.Code})
}

func (e Error) Error() string {
	return e.Err.Error()
}

// Unwrap returns the wrapped error, so errors.Is works across With* copies.
func (e Error) Unwrap() error {
	return e.Err
}

// Write sends the error as the JSON response, with its HTTP status.
func (e Error) Write(w http.ResponseWriter) {
	msg, err := json.Marshal(e)
	if err != nil {
		log.Warn(err)
		http.Error(w, "marshal failed", http.StatusInternalServerError)
		return
	}
	if e.HTTPstatus >= http.StatusInternalServerError {
		log.Warnw("API server error", "error", e.Error(), "code", e.Code)
	} else {
		log.Debugw("API error response", "error", e.Error(), "code", e.Code, "httpStatus", e.HTTPstatus)
	}
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.HTTPstatus)
	if _, err := fmt.Fprintln(w, string(msg)); err != nil {
		log.Warnw("failed to write error response", "error", err)
	}
}

// wrap returns a copy of e with detail appended to its message.
func (e Error) wrap(detail string) Error {
	return Error{
		Err:        fmt.Errorf("%w: %s", e.Err, detail),
		Code:       e.Code,
		HTTPstatus: e.HTTPstatus,
	}
}

// Withf returns a copy of e with the formatted string appended.
func (e Error) Withf(format string, args ...any) Error {
	return e.wrap(fmt.Sprintf(format, args...))
}

// With returns a copy of e with s appended.
func (e Error) With(s string) Error {
	return e.wrap(s)
}

// WithErr returns a copy of e with the message of err appended.
func (e Error) WithErr(err error) Error {
	return e.wrap(err.Error())
}
