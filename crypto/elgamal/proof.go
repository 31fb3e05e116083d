package elgamal

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/vocdoni/arcane-treasury/crypto/hash/poseidon"
)

const (
	sizeScalar = 32
	// SizeProof is the length of a serialized Proof.
	SizeProof = 2*SizePoint + 2*sizeScalar
)

// Proof is a non-interactive proof of plaintext knowledge for a Ciphertext:
// the prover knows (k, m) such that C1 = k*G and C2 = m*G + k*PK. It is a
// Sigma protocol made non-interactive with a Poseidon Fiat-Shamir challenge.
//
//	A1 = r1*G, A2 = r2*G + r1*PK
//	e  = H(PK, C1, C2, A1, A2)
//	S1 = r1 + e*k, S2 = r2 + e*m
type Proof struct {
	A1 *Point
	A2 *Point
	S1 *big.Int
	S2 *big.Int
}

// Prove builds the proof for ct, which must be the encryption of msg under
// publicKey with randomness k.
func Prove(publicKey *Point, ct *Ciphertext, msg, k *big.Int) (*Proof, error) {
	order := &params.Order
	r1, err := RandK()
	if err != nil {
		return nil, err
	}
	r2, err := RandK()
	if err != nil {
		return nil, err
	}
	a1 := scalarBaseMult(r1)
	a2 := new(Point).Add(scalarBaseMult(r2), new(Point).ScalarMultiplication(publicKey, r1))

	e, err := challenge(publicKey, ct.C1, ct.C2, a1, a2)
	if err != nil {
		return nil, err
	}
	s1 := new(big.Int).Mul(e, k)
	s1.Add(s1, r1).Mod(s1, order)
	m := new(big.Int).Mod(msg, order)
	s2 := new(big.Int).Mul(e, m)
	s2.Add(s2, r2).Mod(s2, order)

	return &Proof{A1: a1, A2: a2, S1: s1, S2: s2}, nil
}

// Verify checks the proof against the ciphertext and the public key it was
// encrypted to.
func (p *Proof) Verify(publicKey *Point, ct *Ciphertext) bool {
	if p == nil || ct == nil || p.A1 == nil || p.A2 == nil || p.S1 == nil || p.S2 == nil {
		return false
	}
	e, err := challenge(publicKey, ct.C1, ct.C2, p.A1, p.A2)
	if err != nil {
		return false
	}
	// S1*G == A1 + e*C1
	lhs1 := scalarBaseMult(p.S1)
	rhs1 := new(Point).Add(p.A1, new(Point).ScalarMultiplication(ct.C1, e))
	if !lhs1.Equal(rhs1) {
		return false
	}
	// S2*G + S1*PK == A2 + e*C2
	lhs2 := new(Point).Add(scalarBaseMult(p.S2), new(Point).ScalarMultiplication(publicKey, p.S1))
	rhs2 := new(Point).Add(p.A2, new(Point).ScalarMultiplication(ct.C2, e))
	return lhs2.Equal(rhs2)
}

// Serialize returns A1 | A2 | S1 | S2, with points compressed and scalars as
// 32 bytes big-endian.
func (p *Proof) Serialize() []byte {
	var buf bytes.Buffer
	buf.Write(MarshalPoint(p.A1))
	buf.Write(MarshalPoint(p.A2))
	buf.Write(p.S1.FillBytes(make([]byte, sizeScalar)))
	buf.Write(p.S2.FillBytes(make([]byte, sizeScalar)))
	return buf.Bytes()
}

// Deserialize reconstructs a Proof from its serialized form.
func (p *Proof) Deserialize(data []byte) error {
	if len(data) != SizeProof {
		return fmt.Errorf("invalid proof length: got %d bytes, expected %d bytes", len(data), SizeProof)
	}
	a1, err := readPoint(data[:SizePoint])
	if err != nil {
		return fmt.Errorf("invalid a1: %w", err)
	}
	a2, err := readPoint(data[SizePoint : 2*SizePoint])
	if err != nil {
		return fmt.Errorf("invalid a2: %w", err)
	}
	s1 := new(big.Int).SetBytes(data[2*SizePoint : 2*SizePoint+sizeScalar])
	s2 := new(big.Int).SetBytes(data[2*SizePoint+sizeScalar:])
	if s1.Cmp(&params.Order) >= 0 || s2.Cmp(&params.Order) >= 0 {
		return fmt.Errorf("proof scalar out of range")
	}
	p.A1, p.A2, p.S1, p.S2 = a1, a2, s1, s2
	return nil
}

// challengeDomain separates the proof challenges from any other Poseidon
// hash of the same points.
var challengeDomain = new(big.Int).SetBytes([]byte("arcane-treasury/pok"))

// challenge hashes the coordinates of the points with Poseidon and reduces
// the result to the subgroup order.
func challenge(points ...*Point) (*big.Int, error) {
	inputs := make([]*big.Int, 0, 2*len(points)+1)
	inputs = append(inputs, challengeDomain)
	for _, pt := range points {
		if pt == nil {
			return nil, fmt.Errorf("nil point in challenge")
		}
		x, y := new(big.Int), new(big.Int)
		pt.X.BigInt(x)
		pt.Y.BigInt(y)
		inputs = append(inputs, x, y)
	}
	h, err := poseidon.MultiHash(inputs...)
	if err != nil {
		return nil, fmt.Errorf("failed to compute challenge: %w", err)
	}
	return h.Mod(h, &params.Order), nil
}
