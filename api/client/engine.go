package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/vocdoni/arcane-treasury/api"
	"github.com/vocdoni/arcane-treasury/engine"
	"github.com/vocdoni/arcane-treasury/types"
)

// RemoteEngine is an engine.Engine served by a remote treasury API. Every
// operation is an HTTP call to its /engine endpoints; transport errors and
// non-200 responses are returned as errors.
type RemoteEngine struct {
	c    *HTTPclient
	name string
}

var _ engine.Engine = (*RemoteEngine)(nil)

// NewRemoteEngine connects to the API at host and returns an engine backed
// by it. It fails if the API is not reachable.
func NewRemoteEngine(host string) (*RemoteEngine, error) {
	c, err := New(host)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", engine.ErrEngineUnavailable, err)
	}
	return NewRemoteEngineWithClient(c)
}

// NewRemoteEngineWithClient returns an engine backed by an existing client.
func NewRemoteEngineWithClient(c *HTTPclient) (*RemoteEngine, error) {
	info := &api.EngineInfo{}
	data, status, err := c.Request(context.Background(), HTTPGET, nil, nil, api.EngineEndpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", engine.ErrEngineUnavailable, err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: %s: %d (%s)", engine.ErrEngineUnavailable, errCodeNot200, status, data)
	}
	if err := json.Unmarshal(data, info); err != nil {
		return nil, fmt.Errorf("%w: %v", engine.ErrEngineUnavailable, err)
	}
	return &RemoteEngine{c: c, name: info.Name}, nil
}

// Name implements engine.Engine. It is the name of the remote engine
// prefixed with "remote/".
func (r *RemoteEngine) Name() string {
	return "remote/" + r.name
}

// Encrypt implements engine.Engine.
func (r *RemoteEngine) Encrypt(ctx context.Context, value uint64) (*types.CiphertextProof, error) {
	cp := &types.CiphertextProof{}
	if err := r.c.post(ctx, api.EncryptEndpoint, &api.NumberValue{Value: value}, cp); err != nil {
		return nil, err
	}
	return cp, nil
}

// EncryptBool implements engine.Engine.
func (r *RemoteEngine) EncryptBool(ctx context.Context, value bool) (*types.CiphertextProof, error) {
	cp := &types.CiphertextProof{}
	if err := r.c.post(ctx, api.EncryptBoolEndpoint, &api.BoolValue{Value: value}, cp); err != nil {
		return nil, err
	}
	return cp, nil
}

// Decrypt implements engine.Engine.
func (r *RemoteEngine) Decrypt(ctx context.Context, ciphertext, proof types.HexBytes) (uint64, error) {
	res := &api.NumberValue{}
	req := &types.CiphertextProof{Ciphertext: ciphertext, Proof: proof}
	if err := r.c.post(ctx, api.DecryptEndpoint, req, res); err != nil {
		return 0, err
	}
	return res.Value, nil
}

// DecryptBool implements engine.Engine.
func (r *RemoteEngine) DecryptBool(ctx context.Context, ciphertext, proof types.HexBytes) (bool, error) {
	res := &api.BoolValue{}
	req := &types.CiphertextProof{Ciphertext: ciphertext, Proof: proof}
	if err := r.c.post(ctx, api.DecryptBoolEndpoint, req, res); err != nil {
		return false, err
	}
	return res.Value, nil
}

// GenerateKeyPair implements engine.Engine.
func (r *RemoteEngine) GenerateKeyPair(ctx context.Context) (*types.KeyPair, error) {
	kp := &types.KeyPair{}
	if err := r.c.post(ctx, api.KeysEndpoint, nil, kp); err != nil {
		return nil, err
	}
	return kp, nil
}

// VerifyProof implements engine.Engine.
func (r *RemoteEngine) VerifyProof(ctx context.Context, ciphertext, proof types.HexBytes) (bool, error) {
	res := &api.ProofStatus{}
	req := &types.CiphertextProof{Ciphertext: ciphertext, Proof: proof}
	if err := r.c.post(ctx, api.VerifyEndpoint, req, res); err != nil {
		return false, err
	}
	return res.Valid, nil
}
