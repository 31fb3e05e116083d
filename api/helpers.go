package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/vocdoni/arcane-treasury/engine"
	"github.com/vocdoni/arcane-treasury/log"
	"github.com/vocdoni/arcane-treasury/web3"
)

// httpWriteJSON helper function allows to write a JSON response.
func httpWriteJSON(w http.ResponseWriter, data any) {
	jdata, err := json.Marshal(data)
	if err != nil {
		ErrMarshalingServerJSONFailed.WithErr(err).Write(w)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	n, err := w.Write(jdata)
	if err != nil {
		log.Warnw("failed to write http response", "error", err)
	}
	if _, err := w.Write([]byte("\n")); err != nil {
		log.Warnw("failed to write on response", "error", err)
	}
	log.Debugw("api response", "bytes", n, "data", strings.ReplaceAll(string(jdata), "\"", ""))
}

// httpWriteOK helper function allows to write an OK response.
func httpWriteOK(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("\n")); err != nil {
		log.Warnw("failed to write on response", "error", err)
	}
}

// decodeBody decodes the JSON request body into v, writing the error
// response if it fails.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		ErrMalformedBody.Withf("could not decode request body: %v", err).Write(w)
		return false
	}
	return true
}

// engineError maps an engine error to its API error.
func engineError(err error) Error {
	if errors.Is(err, engine.ErrDecode) {
		return ErrCannotDecrypt.WithErr(err)
	}
	return ErrEngineFailed.WithErr(err)
}

// ledgerError maps a calldata packing error to its API error.
func ledgerError(err error) Error {
	if errors.Is(err, web3.ErrProofInvalid) {
		return ErrInvalidProof.WithErr(err)
	}
	return ErrGenericInternalServerError.WithErr(err)
}
