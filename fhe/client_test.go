package fhe

import (
	"context"
	"errors"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/vocdoni/arcane-treasury/engine"
	"github.com/vocdoni/arcane-treasury/types"
)

// brokenEngine fails every call, either with an error or with a panic.
type brokenEngine struct {
	panics bool
}

func (*brokenEngine) Name() string { return "broken" }

func (b *brokenEngine) fail() error {
	if b.panics {
		panic("engine crashed")
	}
	return errors.New("engine rejected the call")
}

func (b *brokenEngine) Encrypt(context.Context, uint64) (*types.CiphertextProof, error) {
	return nil, b.fail()
}

func (b *brokenEngine) EncryptBool(context.Context, bool) (*types.CiphertextProof, error) {
	return nil, b.fail()
}

func (b *brokenEngine) Decrypt(context.Context, types.HexBytes, types.HexBytes) (uint64, error) {
	return 0, b.fail()
}

func (b *brokenEngine) DecryptBool(context.Context, types.HexBytes, types.HexBytes) (bool, error) {
	return false, b.fail()
}

func (b *brokenEngine) GenerateKeyPair(context.Context) (*types.KeyPair, error) {
	return nil, b.fail()
}

func (b *brokenEngine) VerifyProof(context.Context, types.HexBytes, types.HexBytes) (bool, error) {
	return false, b.fail()
}

func TestClientWithFallbackEngine(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	client := New(engine.NewProvider(nil))
	c.Assert(client.Engine(), qt.Equals, engine.FallbackName)

	for _, v := range []uint64{0, 1, 42, 1 << 40} {
		cp := client.EncryptNumber(ctx, v)
		c.Assert(cp.Valid(), qt.IsTrue)
		c.Assert(client.DecryptNumber(ctx, cp.Ciphertext, cp.Proof), qt.Equals, v)
		c.Assert(client.VerifyProof(ctx, cp.Ciphertext, cp.Proof), qt.IsTrue)
	}
	for _, v := range []bool{true, false} {
		cp := client.EncryptBoolean(ctx, v)
		c.Assert(cp.Valid(), qt.IsTrue)
		c.Assert(client.DecryptBoolean(ctx, cp.Ciphertext, cp.Proof), qt.Equals, v)
	}

	c.Assert(client.DecryptNumber(ctx, types.HexBytes("garbage"), nil), qt.Equals, uint64(0))
	c.Assert(client.DecryptBoolean(ctx, types.HexBytes("garbage"), nil), qt.IsFalse)
	c.Assert(client.VerifyProof(ctx, nil, types.HexBytes{1}), qt.IsFalse)

	kp1 := client.GenerateKeyPair(ctx)
	kp2 := client.GenerateKeyPair(ctx)
	c.Assert(kp1.PublicKey, qt.Not(qt.Equals), "")
	c.Assert(kp1.PublicKey, qt.Not(qt.Equals), kp2.PublicKey)
}

func TestClientWithElGamalEngine(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	backend, err := engine.NewElGamal(nil, 16)
	c.Assert(err, qt.IsNil)
	client := New(engine.Static(backend))
	c.Assert(client.Engine(), qt.Equals, engine.ElGamalName)

	cp := client.EncryptNumber(ctx, 1000)
	c.Assert(client.DecryptNumber(ctx, cp.Ciphertext, cp.Proof), qt.Equals, uint64(1000))
	c.Assert(client.VerifyProof(ctx, cp.Ciphertext, cp.Proof), qt.IsTrue)

	vote := client.EncryptBoolean(ctx, true)
	c.Assert(client.DecryptBoolean(ctx, vote.Ciphertext, vote.Proof), qt.IsTrue)

	// a proof for another ciphertext does not verify
	c.Assert(client.VerifyProof(ctx, vote.Ciphertext, cp.Proof), qt.IsFalse)
}

func TestClientFallsBackPerCall(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()

	for name, broken := range map[string]*brokenEngine{
		"error": {},
		"panic": {panics: true},
	} {
		c.Run(name, func(c *qt.C) {
			client := New(engine.Static(broken))

			cp := client.EncryptNumber(ctx, 500)
			c.Assert(cp.Valid(), qt.IsTrue)
			// the value was produced by the fallback engine, so it decodes there
			c.Assert(client.DecryptNumber(ctx, cp.Ciphertext, cp.Proof), qt.Equals, uint64(500))

			vote := client.EncryptBoolean(ctx, true)
			c.Assert(vote.Valid(), qt.IsTrue)
			c.Assert(client.DecryptBoolean(ctx, vote.Ciphertext, vote.Proof), qt.IsTrue)

			kp := client.GenerateKeyPair(ctx)
			c.Assert(kp.PublicKey, qt.Matches, `mock_public_key_\d+_\d+`)

			// verification fails closed
			c.Assert(client.VerifyProof(ctx, cp.Ciphertext, cp.Proof), qt.IsFalse)

			// the process wide engine is not demoted
			c.Assert(client.Engine(), qt.Equals, "broken")
		})
	}
}

func TestNewWithNilProvider(t *testing.T) {
	c := qt.New(t)
	client := New(nil)
	c.Assert(client.Engine(), qt.Equals, engine.FallbackName)
	c.Assert(client.EncryptNumber(context.Background(), 7).Valid(), qt.IsTrue)
}

func TestDefaultIsSingleton(t *testing.T) {
	c := qt.New(t)

	first := Default()
	c.Assert(first, qt.Not(qt.IsNil))
	c.Assert(Default(), qt.Equals, first)

	// once resolved, Init does not replace the process wide client
	backend, err := engine.NewElGamal(nil, 16)
	c.Assert(err, qt.IsNil)
	c.Assert(Init(engine.Static(backend)), qt.Equals, first)
	c.Assert(Default().Engine(), qt.Equals, engine.FallbackName)
}
