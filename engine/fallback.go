package engine

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/vocdoni/arcane-treasury/types"
)

// FallbackName is the name of the Fallback engine.
const FallbackName = "fallback"

const mockProofMarker = "mock"

// keySeq makes fallback key identifiers unique across calls and instances,
// even when generated within the same millisecond.
var keySeq atomic.Uint64

// Fallback is a deterministic, NON-CRYPTOGRAPHIC stand-in for a real engine.
// Ciphertexts are a reversible CBOR encoding of the value and a timestamp,
// and proofs only carry a marker. It exists so higher layers never need to
// special-case the absence of a real backend, and its output must never be
// trusted as encrypted data.
type Fallback struct {
	now func() time.Time
}

// FallbackOption configures a Fallback engine.
type FallbackOption func(*Fallback)

// WithClock replaces the clock used to timestamp ciphertexts and keys.
func WithClock(now func() time.Time) FallbackOption {
	return func(f *Fallback) {
		f.now = now
	}
}

// NewFallback returns a new Fallback engine.
func NewFallback(opts ...FallbackOption) *Fallback {
	f := &Fallback{now: time.Now}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

type mockCiphertext struct {
	Value     any   `cbor:"value"`
	Timestamp int64 `cbor:"timestamp"`
}

type mockNumber struct {
	Value     uint64 `cbor:"value"`
	Timestamp int64  `cbor:"timestamp"`
}

type mockBool struct {
	Value     bool  `cbor:"value"`
	Timestamp int64 `cbor:"timestamp"`
}

type mockProof struct {
	Proof     string `cbor:"proof"`
	Timestamp int64  `cbor:"timestamp"`
}

// Name implements Engine.
func (*Fallback) Name() string {
	return FallbackName
}

// Encrypt implements Engine.
func (f *Fallback) Encrypt(_ context.Context, value uint64) (*types.CiphertextProof, error) {
	return f.encode(value)
}

// EncryptBool implements Engine.
func (f *Fallback) EncryptBool(_ context.Context, value bool) (*types.CiphertextProof, error) {
	return f.encode(value)
}

func (f *Fallback) encode(value any) (*types.CiphertextProof, error) {
	ts := f.now().UnixMilli()
	ciphertext, err := cbor.Marshal(mockCiphertext{Value: value, Timestamp: ts})
	if err != nil {
		return nil, fmt.Errorf("cannot encode mock ciphertext: %w", err)
	}
	proof, err := cbor.Marshal(mockProof{Proof: mockProofMarker, Timestamp: ts})
	if err != nil {
		return nil, fmt.Errorf("cannot encode mock proof: %w", err)
	}
	return &types.CiphertextProof{Ciphertext: ciphertext, Proof: proof}, nil
}

// Decrypt implements Engine. Ciphertexts that cannot be decoded as a
// fallback number decrypt to 0 without error.
func (*Fallback) Decrypt(_ context.Context, ciphertext, _ types.HexBytes) (uint64, error) {
	var decoded mockNumber
	if err := cbor.Unmarshal(ciphertext, &decoded); err != nil {
		return 0, nil
	}
	return decoded.Value, nil
}

// DecryptBool implements Engine. Ciphertexts that cannot be decoded as a
// fallback boolean decrypt to false without error.
func (*Fallback) DecryptBool(_ context.Context, ciphertext, _ types.HexBytes) (bool, error) {
	var decoded mockBool
	if err := cbor.Unmarshal(ciphertext, &decoded); err != nil {
		return false, nil
	}
	return decoded.Value, nil
}

// GenerateKeyPair implements Engine. The identifiers are derived from the
// clock and a monotonic counter, there is no key material behind them.
func (f *Fallback) GenerateKeyPair(_ context.Context) (*types.KeyPair, error) {
	ts := f.now().UnixMilli()
	seq := keySeq.Add(1)
	return &types.KeyPair{
		PublicKey:  fmt.Sprintf("mock_public_key_%d_%d", ts, seq),
		PrivateKey: fmt.Sprintf("mock_private_key_%d_%d", ts, seq),
	}, nil
}

// VerifyProof implements Engine. It is a STRUCTURAL check only: it returns
// true iff both the ciphertext and the proof are non-empty. It does not
// verify anything cryptographically.
func (*Fallback) VerifyProof(_ context.Context, ciphertext, proof types.HexBytes) (bool, error) {
	return len(ciphertext) > 0 && len(proof) > 0, nil
}
