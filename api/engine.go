package api

import (
	"net/http"

	"github.com/vocdoni/arcane-treasury/types"
)

// The engine endpoints expose the resolved engine as is: engine errors are
// returned to the caller instead of being replaced by fallback results, so
// remote clients can apply their own fallback policy.

// engineInfo returns the name of the served engine
// GET /engine
func (a *API) engineInfo(w http.ResponseWriter, r *http.Request) {
	httpWriteJSON(w, &EngineInfo{Name: a.engine.Name()})
}

// encrypt encrypts an integer
// POST /engine/encrypt
func (a *API) encrypt(w http.ResponseWriter, r *http.Request) {
	req := &NumberValue{}
	if !decodeBody(w, r, req) {
		return
	}
	cp, err := a.engine.Encrypt(r.Context(), req.Value)
	if err != nil {
		engineError(err).Write(w)
		return
	}
	httpWriteJSON(w, cp)
}

// encryptBool encrypts a boolean
// POST /engine/encrypt/bool
func (a *API) encryptBool(w http.ResponseWriter, r *http.Request) {
	req := &BoolValue{}
	if !decodeBody(w, r, req) {
		return
	}
	cp, err := a.engine.EncryptBool(r.Context(), req.Value)
	if err != nil {
		engineError(err).Write(w)
		return
	}
	httpWriteJSON(w, cp)
}

// decrypt decrypts an integer
// POST /engine/decrypt
func (a *API) decrypt(w http.ResponseWriter, r *http.Request) {
	req := &types.CiphertextProof{}
	if !decodeBody(w, r, req) {
		return
	}
	if len(req.Ciphertext) == 0 {
		ErrMissingField.With("ciphertext").Write(w)
		return
	}
	v, err := a.engine.Decrypt(r.Context(), req.Ciphertext, req.Proof)
	if err != nil {
		engineError(err).Write(w)
		return
	}
	httpWriteJSON(w, &NumberValue{Value: v})
}

// decryptBool decrypts a boolean
// POST /engine/decrypt/bool
func (a *API) decryptBool(w http.ResponseWriter, r *http.Request) {
	req := &types.CiphertextProof{}
	if !decodeBody(w, r, req) {
		return
	}
	if len(req.Ciphertext) == 0 {
		ErrMissingField.With("ciphertext").Write(w)
		return
	}
	v, err := a.engine.DecryptBool(r.Context(), req.Ciphertext, req.Proof)
	if err != nil {
		engineError(err).Write(w)
		return
	}
	httpWriteJSON(w, &BoolValue{Value: v})
}

// generateKeyPair generates a key pair, which is not stored by the server
// POST /engine/keys
func (a *API) generateKeyPair(w http.ResponseWriter, r *http.Request) {
	kp, err := a.engine.GenerateKeyPair(r.Context())
	if err != nil {
		engineError(err).Write(w)
		return
	}
	httpWriteJSON(w, kp)
}

// verifyProof verifies the proof of a ciphertext
// POST /engine/verify
func (a *API) verifyProof(w http.ResponseWriter, r *http.Request) {
	req := &types.CiphertextProof{}
	if !decodeBody(w, r, req) {
		return
	}
	valid, err := a.engine.VerifyProof(r.Context(), req.Ciphertext, req.Proof)
	if err != nil {
		engineError(err).Write(w)
		return
	}
	httpWriteJSON(w, &ProofStatus{Valid: valid})
}
