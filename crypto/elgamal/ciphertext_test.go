package elgamal

import (
	"math/big"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestNewCiphertext(t *testing.T) {
	c := qt.New(t)

	cipher := NewCiphertext()
	c.Assert(cipher.C1.Equal(Identity()), qt.IsTrue)
	c.Assert(cipher.C2.Equal(Identity()), qt.IsTrue)
}

func TestCiphertextEncrypt(t *testing.T) {
	c := qt.New(t)

	publicKey, _, err := GenerateKey()
	c.Assert(err, qt.IsNil)
	msg := big.NewInt(42)

	// Test with nil k (random k generation)
	encrypted, k, err := NewCiphertext().Encrypt(msg, publicKey, nil)
	c.Assert(err, qt.IsNil)
	c.Assert(k, qt.Not(qt.IsNil))
	c.Assert(CheckK(encrypted.C1, k), qt.IsTrue)

	// Test with specific k
	k = big.NewInt(789)
	encrypted2, k2, err := NewCiphertext().Encrypt(msg, publicKey, k)
	c.Assert(err, qt.IsNil)
	c.Assert(k2, qt.Equals, k)
	c.Assert(CheckK(encrypted2.C1, k), qt.IsTrue)
}

func TestCiphertextAdd(t *testing.T) {
	c := qt.New(t)
	table := testTable(c)

	publicKey, privateKey, err := GenerateKey()
	c.Assert(err, qt.IsNil)

	// tally 7 yes votes homomorphically
	tally := NewCiphertext()
	for i := 0; i < 7; i++ {
		vote, _, err := NewCiphertext().Encrypt(big.NewInt(1), publicKey, nil)
		c.Assert(err, qt.IsNil)
		tally.Add(tally, vote)
	}
	_, sum, err := Decrypt(privateKey, tally.C1, tally.C2, table)
	c.Assert(err, qt.IsNil)
	c.Assert(sum, qt.Equals, uint64(7))
}

func TestCiphertextSerialize(t *testing.T) {
	c := qt.New(t)

	publicKey, _, err := GenerateKey()
	c.Assert(err, qt.IsNil)
	cipher, _, err := NewCiphertext().Encrypt(big.NewInt(123), publicKey, nil)
	c.Assert(err, qt.IsNil)

	data := cipher.Serialize()
	c.Assert(data, qt.HasLen, SizeCiphertext)

	decoded := NewCiphertext()
	c.Assert(decoded.Deserialize(data), qt.IsNil)
	c.Assert(decoded.C1.Equal(cipher.C1), qt.IsTrue)
	c.Assert(decoded.C2.Equal(cipher.C2), qt.IsTrue)
	c.Assert(decoded.Serialize(), qt.DeepEquals, data)

	c.Assert(decoded.Deserialize(data[:10]), qt.ErrorMatches, "invalid input length.*")
}
