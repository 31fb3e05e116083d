// Package elgamal implements exponential ElGamal encryption over the
// BabyJubJub twisted Edwards curve. Messages are encoded as m*G, so the
// ciphertexts are additively homomorphic and decryption requires solving a
// bounded discrete logarithm (see DecryptionTable).
package elgamal

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/twistededwards"
)

// Point is an affine BabyJubJub point.
type Point = twistededwards.PointAffine

var params = twistededwards.GetEdwardsCurve()

// Order returns the order of the BabyJubJub prime subgroup.
func Order() *big.Int {
	return new(big.Int).Set(&params.Order)
}

// Generator returns a new copy of the subgroup generator.
func Generator() *Point {
	g := new(Point)
	g.Set(&params.Base)
	return g
}

// Identity returns a new point set to the identity element (0, 1).
func Identity() *Point {
	p := new(Point)
	p.X.SetZero()
	p.Y.SetOne()
	return p
}

// RandK function generates a random non-zero scalar in the subgroup order,
// used as encryption randomness and as proof nonce.
func RandK() (*big.Int, error) {
	for {
		k, err := rand.Int(rand.Reader, &params.Order)
		if err != nil {
			return nil, fmt.Errorf("failed to generate random k: %w", err)
		}
		if k.Sign() != 0 {
			return k, nil
		}
	}
}

// GenerateKey generates a new public/private ElGamal encryption key pair.
func GenerateKey() (publicKey *Point, privateKey *big.Int, err error) {
	d, err := RandK()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate private key scalar: %w", err)
	}
	return PublicKeyFromPrivate(d), d, nil
}

// PublicKeyFromPrivate returns d*G.
func PublicKeyFromPrivate(d *big.Int) *Point {
	return scalarBaseMult(d)
}

// Encrypt function encrypts a message using the public key provided as
// elliptic curve point. It generates a random k and returns the two points
// that represent the encrypted message and the random k used to encrypt it.
func Encrypt(publicKey *Point, msg *big.Int) (*Point, *Point, *big.Int, error) {
	k, err := RandK()
	if err != nil {
		return nil, nil, nil, err
	}
	c1, c2 := EncryptWithK(publicKey, msg, k)
	return c1, c2, k, nil
}

// EncryptWithK function encrypts a message using the public key and the
// random k value provided. It returns C1 = k*G and C2 = m*G + k*pubKey. The
// message is reduced modulo the subgroup order, msg itself is not modified.
func EncryptWithK(pubKey *Point, msg, k *big.Int) (*Point, *Point) {
	m := new(big.Int).Mod(msg, &params.Order)
	c1 := scalarBaseMult(k)
	s := new(Point).ScalarMultiplication(pubKey, k)
	c2 := new(Point).Add(scalarBaseMult(m), s)
	return c1, c2
}

// Decrypt decrypts the ciphertext (c1, c2) using the private key. It returns
// the point M = c2 - d*c1 and the message scalar found by the table. If the
// message is out of the table range it returns an error.
func Decrypt(privateKey *big.Int, c1, c2 *Point, table *DecryptionTable) (*Point, uint64, error) {
	dC1 := new(Point).ScalarMultiplication(c1, privateKey)
	dC1.Neg(dC1)
	M := new(Point).Add(c2, dC1)

	message, err := table.DiscreteLog(M)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find discrete log: %w", err)
	}
	return M, message, nil
}

// CheckK checks if a given k was used to produce c1, that is c1 == k*G.
func CheckK(c1 *Point, k *big.Int) bool {
	return scalarBaseMult(k).Equal(c1)
}

// InSubgroup reports whether p is on the curve and in the prime order
// subgroup.
func InSubgroup(p *Point) bool {
	if p == nil || !p.IsOnCurve() {
		return false
	}
	return new(Point).ScalarMultiplication(p, &params.Order).Equal(Identity())
}

func scalarBaseMult(k *big.Int) *Point {
	return new(Point).ScalarMultiplication(&params.Base, k)
}
