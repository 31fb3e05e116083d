package engine

import (
	"context"
	"encoding/hex"
	"fmt"
	"math/big"
	"sync"

	"github.com/vocdoni/arcane-treasury/crypto/elgamal"
	"github.com/vocdoni/arcane-treasury/types"
)

// ElGamalName is the name of the ElGamal engine.
const ElGamalName = "elgamal"

// ElGamal is a real engine backed by exponential ElGamal over BabyJubJub.
// Every ciphertext carries a proof of plaintext knowledge that VerifyProof
// checks against the engine public key. Values up to 2^maxBits - 1 can be
// decrypted; the decryption table is built lazily on the first decryption.
type ElGamal struct {
	publicKey  *elgamal.Point
	privateKey *big.Int
	maxBits    uint

	tableOnce sync.Once
	table     *elgamal.DecryptionTable
	tableErr  error
}

// NewElGamal returns an ElGamal engine for the given private key. If the key
// is nil a new one is generated. maxBits sets the width of decryptable
// values, 0 means elgamal.DefaultMessageBits.
func NewElGamal(privateKey *big.Int, maxBits uint) (*ElGamal, error) {
	if maxBits == 0 {
		maxBits = elgamal.DefaultMessageBits
	}
	if maxBits > elgamal.MaxMessageBits {
		return nil, fmt.Errorf("max bits %d above the supported %d", maxBits, elgamal.MaxMessageBits)
	}
	if privateKey == nil {
		var err error
		if _, privateKey, err = elgamal.GenerateKey(); err != nil {
			return nil, err
		}
	}
	if privateKey.Sign() <= 0 || privateKey.Cmp(elgamal.Order()) >= 0 {
		return nil, fmt.Errorf("private key out of range")
	}
	return &ElGamal{
		publicKey:  elgamal.PublicKeyFromPrivate(privateKey),
		privateKey: new(big.Int).Set(privateKey),
		maxBits:    maxBits,
	}, nil
}

// NewElGamalFromHex returns an ElGamal engine for a hex encoded private key,
// as produced by GenerateKeyPair.
func NewElGamalFromHex(privateKey string, maxBits uint) (*ElGamal, error) {
	b, err := hex.DecodeString(types.TrimHex(privateKey))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return NewElGamal(new(big.Int).SetBytes(b), maxBits)
}

// Name implements Engine.
func (*ElGamal) Name() string {
	return ElGamalName
}

// PublicKey returns the compressed engine public key.
func (e *ElGamal) PublicKey() types.HexBytes {
	return elgamal.MarshalPoint(e.publicKey)
}

// Encrypt implements Engine.
func (e *ElGamal) Encrypt(_ context.Context, value uint64) (*types.CiphertextProof, error) {
	return e.encrypt(new(big.Int).SetUint64(value))
}

// EncryptBool implements Engine. Booleans are encrypted as 0 or 1, so yes
// votes can be tallied homomorphically.
func (e *ElGamal) EncryptBool(_ context.Context, value bool) (*types.CiphertextProof, error) {
	if value {
		return e.encrypt(big.NewInt(1))
	}
	return e.encrypt(big.NewInt(0))
}

func (e *ElGamal) encrypt(msg *big.Int) (*types.CiphertextProof, error) {
	ct, k, err := elgamal.NewCiphertext().Encrypt(msg, e.publicKey, nil)
	if err != nil {
		return nil, err
	}
	proof, err := elgamal.Prove(e.publicKey, ct, msg, k)
	if err != nil {
		return nil, fmt.Errorf("cannot build ciphertext proof: %w", err)
	}
	return &types.CiphertextProof{
		Ciphertext: ct.Serialize(),
		Proof:      proof.Serialize(),
	}, nil
}

// Decrypt implements Engine.
func (e *ElGamal) Decrypt(_ context.Context, ciphertext, _ types.HexBytes) (uint64, error) {
	return e.decrypt(ciphertext)
}

// DecryptBool implements Engine. Any value other than 0 or 1 is a decode
// error.
func (e *ElGamal) DecryptBool(_ context.Context, ciphertext, _ types.HexBytes) (bool, error) {
	v, err := e.decrypt(ciphertext)
	if err != nil {
		return false, err
	}
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("%w: %d is not a boolean", ErrDecode, v)
	}
}

func (e *ElGamal) decrypt(ciphertext types.HexBytes) (uint64, error) {
	ct := elgamal.NewCiphertext()
	if err := ct.Deserialize(ciphertext); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	table, err := e.decryptionTable()
	if err != nil {
		return 0, err
	}
	_, v, err := elgamal.Decrypt(e.privateKey, ct.C1, ct.C2, table)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return v, nil
}

func (e *ElGamal) decryptionTable() (*elgamal.DecryptionTable, error) {
	e.tableOnce.Do(func() {
		e.table, e.tableErr = elgamal.NewDecryptionTable(e.maxBits)
	})
	return e.table, e.tableErr
}

// GenerateKeyPair implements Engine. It returns a fresh ElGamal key pair
// encoded as hex; the engine keeps using its own key.
func (*ElGamal) GenerateKeyPair(_ context.Context) (*types.KeyPair, error) {
	publicKey, privateKey, err := elgamal.GenerateKey()
	if err != nil {
		return nil, err
	}
	return &types.KeyPair{
		PublicKey:  types.HexBytes(elgamal.MarshalPoint(publicKey)).String(),
		PrivateKey: types.HexBytes(privateKey.FillBytes(make([]byte, 32))).String(),
	}, nil
}

// VerifyProof implements Engine. It verifies the proof of plaintext knowledge
// against the engine public key. Malformed blobs are not valid proofs.
func (e *ElGamal) VerifyProof(_ context.Context, ciphertext, proof types.HexBytes) (bool, error) {
	if len(ciphertext) == 0 || len(proof) == 0 {
		return false, nil
	}
	ct := elgamal.NewCiphertext()
	if err := ct.Deserialize(ciphertext); err != nil {
		return false, nil
	}
	p := &elgamal.Proof{}
	if err := p.Deserialize(proof); err != nil {
		return false, nil
	}
	return p.Verify(e.publicKey, ct), nil
}

// AddCiphertexts homomorphically adds two ciphertexts produced by this
// engine; the result decrypts to the sum of both values. The returned pair
// has no proof, since nobody knows the combined randomness.
func (e *ElGamal) AddCiphertexts(a, b types.HexBytes) (types.HexBytes, error) {
	x, y := elgamal.NewCiphertext(), elgamal.NewCiphertext()
	if err := x.Deserialize(a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if err := y.Deserialize(b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return elgamal.NewCiphertext().Add(x, y).Serialize(), nil
}
