// Package fhe provides the encryption client: the single point of access to
// the resolved encryption engine. Every operation of the client is total, it
// always returns a value of its result type. When the resolved engine fails,
// the failure is logged and the call is served by the Fallback engine; the
// process wide engine is never demoted.
//
// Decrypted values may therefore be sentinels (0 or false). Callers taking
// money-moving decisions must check VerifyProof before trusting them.
package fhe

import (
	"context"
	"fmt"
	"sync"

	"github.com/vocdoni/arcane-treasury/engine"
	"github.com/vocdoni/arcane-treasury/log"
	"github.com/vocdoni/arcane-treasury/types"
)

// Client is the encryption client. It holds no state besides the engine
// provider, so a single instance can be shared by all goroutines.
type Client struct {
	provider *engine.Provider
}

var (
	defaultOnce   sync.Once
	defaultClient *Client
)

// New returns a client over the engines of the given provider. A nil
// provider behaves as a provider without a real engine.
func New(provider *engine.Provider) *Client {
	if provider == nil {
		provider = engine.NewProvider(nil)
	}
	return &Client{provider: provider}
}

// Init sets up the process wide client with the given provider and returns
// it. Only the first call to Init or Default has effect; later calls return
// the existing client.
func Init(provider *engine.Provider) *Client {
	defaultOnce.Do(func() {
		defaultClient = New(provider)
	})
	return defaultClient
}

// Default returns the process wide client. If Init was not called before,
// the client is built over a provider without a real engine.
func Default() *Client {
	return Init(nil)
}

// Engine returns the name of the resolved engine.
func (c *Client) Engine() string {
	return c.provider.Engine().Name()
}

// EncryptNumber encrypts a non-negative integer. Magnitude is not validated.
func (c *Client) EncryptNumber(ctx context.Context, value uint64) *types.CiphertextProof {
	cp := run(c, "encryptNumber",
		func(e engine.Engine) (*types.CiphertextProof, error) { return e.Encrypt(ctx, value) },
		func(f *engine.Fallback) (*types.CiphertextProof, error) { return f.Encrypt(ctx, value) },
	)
	if cp == nil {
		return &types.CiphertextProof{}
	}
	return cp
}

// EncryptBoolean encrypts a boolean.
func (c *Client) EncryptBoolean(ctx context.Context, value bool) *types.CiphertextProof {
	cp := run(c, "encryptBoolean",
		func(e engine.Engine) (*types.CiphertextProof, error) { return e.EncryptBool(ctx, value) },
		func(f *engine.Fallback) (*types.CiphertextProof, error) { return f.EncryptBool(ctx, value) },
	)
	if cp == nil {
		return &types.CiphertextProof{}
	}
	return cp
}

// DecryptNumber decrypts an integer. It returns 0 if no engine can decrypt
// the ciphertext.
func (c *Client) DecryptNumber(ctx context.Context, ciphertext, proof types.HexBytes) uint64 {
	return run(c, "decryptNumber",
		func(e engine.Engine) (uint64, error) { return e.Decrypt(ctx, ciphertext, proof) },
		func(f *engine.Fallback) (uint64, error) { return f.Decrypt(ctx, ciphertext, proof) },
	)
}

// DecryptBoolean decrypts a boolean. It returns false if no engine can
// decrypt the ciphertext.
func (c *Client) DecryptBoolean(ctx context.Context, ciphertext, proof types.HexBytes) bool {
	return run(c, "decryptBoolean",
		func(e engine.Engine) (bool, error) { return e.DecryptBool(ctx, ciphertext, proof) },
		func(f *engine.Fallback) (bool, error) { return f.DecryptBool(ctx, ciphertext, proof) },
	)
}

// GenerateKeyPair generates a key pair with the resolved engine. Keys are not
// stored anywhere.
func (c *Client) GenerateKeyPair(ctx context.Context) *types.KeyPair {
	kp := run(c, "generateKeyPair",
		func(e engine.Engine) (*types.KeyPair, error) { return e.GenerateKeyPair(ctx) },
		func(f *engine.Fallback) (*types.KeyPair, error) { return f.GenerateKeyPair(ctx) },
	)
	if kp == nil {
		return &types.KeyPair{}
	}
	return kp
}

// VerifyProof verifies a ciphertext proof with the resolved engine. Unlike
// the other operations it fails closed: if the engine fails, the result is
// false instead of the structural check of the Fallback engine, so a real
// verification is never silently weakened.
func (c *Client) VerifyProof(ctx context.Context, ciphertext, proof types.HexBytes) bool {
	return run(c, "verifyProof",
		func(e engine.Engine) (bool, error) { return e.VerifyProof(ctx, ciphertext, proof) },
		nil,
	)
}

// run executes op on the resolved engine. On failure it logs and, if
// fallbackOp is not nil, runs it on the Fallback engine for this call only.
// If everything fails the zero value of T is returned.
func run[T any](c *Client, name string,
	op func(engine.Engine) (T, error),
	fallbackOp func(*engine.Fallback) (T, error),
) T {
	e := c.provider.Engine()
	result, err := call(e, op)
	if err == nil {
		return result
	}
	var zero T
	if fallbackOp == nil || c.provider.IsFallback() {
		log.Warnw("encryption operation failed", "op", name, "engine", e.Name(), "error", err.Error())
		return zero
	}
	log.Warnw("encryption operation failed, using fallback engine",
		"op", name, "engine", e.Name(), "error", err.Error())
	result, err = call(c.provider.Fallback(), fallbackOp)
	if err != nil {
		log.Errorw(err, fmt.Sprintf("fallback %s failed", name))
		return zero
	}
	return result
}

// call runs op and turns panics into ErrOperationFailed, so a misbehaving
// engine is handled as any other failed call.
func call[E any, T any](e E, op func(E) (T, error)) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			result, err = zero, fmt.Errorf("%w: panic: %v", engine.ErrOperationFailed, r)
		}
	}()
	result, err = op(e)
	if err != nil {
		return result, fmt.Errorf("%w: %v", engine.ErrOperationFailed, err)
	}
	return result, nil
}
