package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/vocdoni/arcane-treasury/api"
	"github.com/vocdoni/arcane-treasury/engine"
	"github.com/vocdoni/arcane-treasury/fhe"
	"github.com/vocdoni/arcane-treasury/types"
)

func newTestServer(c *qt.C) *httptest.Server {
	backend, err := engine.NewElGamal(nil, 16)
	c.Assert(err, qt.IsNil)
	a, err := api.New(&api.APIConfig{Provider: engine.Static(backend)})
	c.Assert(err, qt.IsNil)
	srv := httptest.NewServer(a.Router())
	c.Cleanup(srv.Close)
	return srv
}

func TestHTTPclient(t *testing.T) {
	c := qt.New(t)
	srv := newTestServer(c)

	cli, err := New(srv.URL)
	c.Assert(err, qt.IsNil)
	data, status, err := cli.Request(context.Background(), HTTPGET, nil, nil, api.EngineEndpoint)
	c.Assert(err, qt.IsNil)
	c.Assert(status, qt.Equals, http.StatusOK)
	c.Assert(string(data), qt.Contains, engine.ElGamalName)

	_, status, err = cli.Request(context.Background(), HTTPGET, nil, nil, "/unknown")
	c.Assert(err, qt.IsNil)
	c.Assert(status, qt.Equals, http.StatusNotFound)

	_, err = New("http://127.0.0.1:1")
	c.Assert(err, qt.Not(qt.IsNil))
}

func TestRemoteEngine(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	srv := newTestServer(c)

	remote, err := NewRemoteEngine(srv.URL)
	c.Assert(err, qt.IsNil)
	c.Assert(remote.Name(), qt.Equals, "remote/"+engine.ElGamalName)

	cp, err := remote.Encrypt(ctx, 321)
	c.Assert(err, qt.IsNil)
	v, err := remote.Decrypt(ctx, cp.Ciphertext, cp.Proof)
	c.Assert(err, qt.IsNil)
	c.Assert(v, qt.Equals, uint64(321))
	valid, err := remote.VerifyProof(ctx, cp.Ciphertext, cp.Proof)
	c.Assert(err, qt.IsNil)
	c.Assert(valid, qt.IsTrue)

	vote, err := remote.EncryptBool(ctx, true)
	c.Assert(err, qt.IsNil)
	b, err := remote.DecryptBool(ctx, vote.Ciphertext, vote.Proof)
	c.Assert(err, qt.IsNil)
	c.Assert(b, qt.IsTrue)

	kp, err := remote.GenerateKeyPair(ctx)
	c.Assert(err, qt.IsNil)
	c.Assert(kp.PublicKey, qt.Not(qt.Equals), "")

	// server side errors are returned, not hidden
	_, err = remote.Decrypt(ctx, types.HexBytes{1, 2, 3}, nil)
	c.Assert(err, qt.ErrorMatches, `API error: 400 .*`)
}

func TestRemoteEngineFallsBackWhenUnreachable(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	srv := newTestServer(c)

	remote, err := NewRemoteEngine(srv.URL)
	c.Assert(err, qt.IsNil)
	remote.c.SetRetries(1)
	client := fhe.New(engine.Static(remote))

	cp := client.EncryptNumber(ctx, 9)
	c.Assert(client.VerifyProof(ctx, cp.Ciphertext, cp.Proof), qt.IsTrue)

	srv.Close()

	// the remote engine is still the resolved one, but calls are served by
	// the fallback engine
	fallback := client.EncryptNumber(ctx, 9)
	c.Assert(fallback.Valid(), qt.IsTrue)
	c.Assert(client.DecryptNumber(ctx, fallback.Ciphertext, fallback.Proof), qt.Equals, uint64(9))
	c.Assert(client.VerifyProof(ctx, fallback.Ciphertext, fallback.Proof), qt.IsFalse)
	c.Assert(client.Engine(), qt.Equals, "remote/"+engine.ElGamalName)
}

func TestNewRemoteEngineUnavailable(t *testing.T) {
	c := qt.New(t)
	_, err := NewRemoteEngine("http://127.0.0.1:1")
	c.Assert(err, qt.ErrorIs, engine.ErrEngineUnavailable)
}
