package elgamal

import (
	"bytes"
	"fmt"
	"math/big"
)

// sizes in bytes needed to serialize a Ciphertext
const (
	SizePoint      = 32
	SizeCiphertext = 2 * SizePoint
)

// Ciphertext represents an ElGamal encrypted message with homomorphic
// properties. It encapsulates the two points of a ciphertext.
type Ciphertext struct {
	C1 *Point
	C2 *Point
}

// NewCiphertext creates a new Ciphertext with both points set to the
// identity, which is also the encryption of zero with k = 0.
func NewCiphertext() *Ciphertext {
	return &Ciphertext{C1: Identity(), C2: Identity()}
}

// Encrypt encrypts a message using the public key provided as elliptic curve
// point. The randomness k can be provided or nil to generate a new one. The
// randomness used is returned, since it is the witness of the ciphertext
// proof.
func (z *Ciphertext) Encrypt(message *big.Int, publicKey *Point, k *big.Int) (*Ciphertext, *big.Int, error) {
	var err error
	if k == nil {
		k, err = RandK()
		if err != nil {
			return nil, nil, fmt.Errorf("elgamal encryption failed: %w", err)
		}
	}
	z.C1, z.C2 = EncryptWithK(publicKey, message, k)
	return z, k, nil
}

// Add adds two Ciphertext and stores the result in z, which is also
// returned. The result decrypts to the sum of both messages.
func (z *Ciphertext) Add(x, y *Ciphertext) *Ciphertext {
	c1 := new(Point).Add(x.C1, y.C1)
	c2 := new(Point).Add(x.C2, y.C2)
	z.C1, z.C2 = c1, c2
	return z
}

// Serialize returns a slice of len 2*32 bytes with the compressed C1 and C2
// points.
func (z *Ciphertext) Serialize() []byte {
	var buf bytes.Buffer
	c1 := z.C1.Bytes()
	c2 := z.C2.Bytes()
	buf.Write(c1[:])
	buf.Write(c2[:])
	return buf.Bytes()
}

// Deserialize reconstructs a Ciphertext from a slice of bytes. The input must
// be of len 2*32 bytes and both points must belong to the prime subgroup,
// otherwise it returns an error.
func (z *Ciphertext) Deserialize(data []byte) error {
	if len(data) != SizeCiphertext {
		return fmt.Errorf("invalid input length: got %d bytes, expected %d bytes", len(data), SizeCiphertext)
	}
	c1, err := readPoint(data[:SizePoint])
	if err != nil {
		return fmt.Errorf("invalid c1: %w", err)
	}
	c2, err := readPoint(data[SizePoint:])
	if err != nil {
		return fmt.Errorf("invalid c2: %w", err)
	}
	z.C1, z.C2 = c1, c2
	return nil
}

// MarshalPoint returns the compressed representation of p.
func MarshalPoint(p *Point) []byte {
	b := p.Bytes()
	return b[:]
}

// readPoint decodes a compressed point and checks it belongs to the prime
// subgroup.
func readPoint(data []byte) (*Point, error) {
	p := new(Point)
	if _, err := p.SetBytes(data); err != nil {
		return nil, err
	}
	if !InSubgroup(p) {
		return nil, fmt.Errorf("point not in subgroup")
	}
	return p, nil
}
