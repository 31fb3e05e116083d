package engine

import (
	"context"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/fxamacker/cbor/v2"
	"github.com/vocdoni/arcane-treasury/types"
)

func TestFallbackRoundTrip(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	f := NewFallback()

	for _, v := range []uint64{0, 1, 10, 604800, 1<<32 - 1} {
		cp, err := f.Encrypt(ctx, v)
		c.Assert(err, qt.IsNil)
		c.Assert(cp.Valid(), qt.IsTrue)

		decrypted, err := f.Decrypt(ctx, cp.Ciphertext, cp.Proof)
		c.Assert(err, qt.IsNil)
		c.Assert(decrypted, qt.Equals, v)

		ok, err := f.VerifyProof(ctx, cp.Ciphertext, cp.Proof)
		c.Assert(err, qt.IsNil)
		c.Assert(ok, qt.IsTrue)
	}

	for _, b := range []bool{true, false} {
		cp, err := f.EncryptBool(ctx, b)
		c.Assert(err, qt.IsNil)
		c.Assert(cp.Valid(), qt.IsTrue)

		decrypted, err := f.DecryptBool(ctx, cp.Ciphertext, cp.Proof)
		c.Assert(err, qt.IsNil)
		c.Assert(decrypted, qt.Equals, b)

		ok, err := f.VerifyProof(ctx, cp.Ciphertext, cp.Proof)
		c.Assert(err, qt.IsNil)
		c.Assert(ok, qt.IsTrue)
	}
}

func TestFallbackEncoding(t *testing.T) {
	c := qt.New(t)
	ts := time.UnixMilli(1700000000123)
	f := NewFallback(WithClock(func() time.Time { return ts }))

	cp, err := f.Encrypt(context.Background(), 42)
	c.Assert(err, qt.IsNil)

	var ct mockNumber
	c.Assert(cbor.Unmarshal(cp.Ciphertext, &ct), qt.IsNil)
	c.Assert(ct, qt.Equals, mockNumber{Value: 42, Timestamp: ts.UnixMilli()})

	var proof mockProof
	c.Assert(cbor.Unmarshal(cp.Proof, &proof), qt.IsNil)
	c.Assert(proof, qt.Equals, mockProof{Proof: "mock", Timestamp: ts.UnixMilli()})
}

func TestFallbackMalformedInput(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	f := NewFallback()

	for _, garbage := range []types.HexBytes{nil, {}, []byte("not cbor at all"), {0xff, 0x00, 0x13}} {
		v, err := f.Decrypt(ctx, garbage, nil)
		c.Assert(err, qt.IsNil)
		c.Assert(v, qt.Equals, uint64(0))

		b, err := f.DecryptBool(ctx, garbage, nil)
		c.Assert(err, qt.IsNil)
		c.Assert(b, qt.IsFalse)
	}

	// a boolean ciphertext is not a number and the other way around
	boolCt, err := f.EncryptBool(ctx, true)
	c.Assert(err, qt.IsNil)
	v, err := f.Decrypt(ctx, boolCt.Ciphertext, boolCt.Proof)
	c.Assert(err, qt.IsNil)
	c.Assert(v, qt.Equals, uint64(0))

	numCt, err := f.Encrypt(ctx, 1)
	c.Assert(err, qt.IsNil)
	b, err := f.DecryptBool(ctx, numCt.Ciphertext, numCt.Proof)
	c.Assert(err, qt.IsNil)
	c.Assert(b, qt.IsFalse)
}

func TestFallbackVerifyProofIsStructural(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	f := NewFallback()

	for _, tc := range []struct {
		ciphertext, proof types.HexBytes
		want              bool
	}{
		{nil, nil, false},
		{types.HexBytes{1}, nil, false},
		{nil, types.HexBytes{1}, false},
		{types.HexBytes{}, types.HexBytes{1}, false},
		// anything non-empty passes, this is not a cryptographic check
		{types.HexBytes{1}, types.HexBytes{2}, true},
	} {
		ok, err := f.VerifyProof(ctx, tc.ciphertext, tc.proof)
		c.Assert(err, qt.IsNil)
		c.Assert(ok, qt.Equals, tc.want)
	}
}

func TestFallbackKeyPairsAreUnique(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	// a frozen clock must not produce duplicated identifiers
	f := NewFallback(WithClock(func() time.Time { return time.UnixMilli(1) }))

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		kp, err := f.GenerateKeyPair(ctx)
		c.Assert(err, qt.IsNil)
		c.Assert(kp.PublicKey, qt.Not(qt.Equals), kp.PrivateKey)
		c.Assert(seen[kp.PublicKey], qt.IsFalse)
		c.Assert(seen[kp.PrivateKey], qt.IsFalse)
		seen[kp.PublicKey] = true
		seen[kp.PrivateKey] = true
	}
}
