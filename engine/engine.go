// Package engine defines the seam between the encryption client and the
// cryptographic backends. Any Engine implementation is a drop-in replacement:
// the Fallback engine is used when no real backend is available, the ElGamal
// engine is a real additively homomorphic backend, and remote backends can be
// bridged over HTTP (see api/client).
package engine

import (
	"context"
	"errors"

	"github.com/vocdoni/arcane-treasury/types"
)

var (
	// ErrEngineUnavailable is reported when no real engine can be resolved.
	// It is never returned to callers of the encryption client.
	ErrEngineUnavailable = errors.New("engine unavailable")
	// ErrOperationFailed wraps any failure of an engine call, including
	// panics recovered by the encryption client.
	ErrOperationFailed = errors.New("engine operation failed")
	// ErrDecode is returned when a ciphertext cannot be parsed by the engine
	// asked to decrypt it.
	ErrDecode = errors.New("cannot decode ciphertext")
)

// Engine is the set of operations a cryptographic backend must provide.
//
// Integers are non-negative and bounded by the engine width; callers are
// responsible for staying in range. Decrypt and DecryptBool receive the proof
// produced with the ciphertext, engines may ignore it.
//
// VerifyProof semantics depend on the engine: real engines verify the proof
// cryptographically, while the Fallback engine only checks that both blobs
// are non-empty. A false result is a normal answer (reject the associated
// transaction), not an error.
type Engine interface {
	// Name identifies the engine in logs.
	Name() string
	Encrypt(ctx context.Context, value uint64) (*types.CiphertextProof, error)
	EncryptBool(ctx context.Context, value bool) (*types.CiphertextProof, error)
	Decrypt(ctx context.Context, ciphertext, proof types.HexBytes) (uint64, error)
	DecryptBool(ctx context.Context, ciphertext, proof types.HexBytes) (bool, error)
	GenerateKeyPair(ctx context.Context) (*types.KeyPair, error)
	VerifyProof(ctx context.Context, ciphertext, proof types.HexBytes) (bool, error)
}
