package types

import (
	"encoding/json"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestHexBytesJSON(t *testing.T) {
	c := qt.New(t)

	cp := &CiphertextProof{
		Ciphertext: HexBytes{0x01, 0x02, 0xff},
		Proof:      HexBytes{0xab},
	}
	data, err := json.Marshal(cp)
	c.Assert(err, qt.IsNil)
	c.Assert(string(data), qt.Equals, `{"ciphertext":"0x0102ff","proof":"0xab"}`)

	decoded := &CiphertextProof{}
	c.Assert(json.Unmarshal(data, decoded), qt.IsNil)
	c.Assert(decoded, qt.DeepEquals, cp)

	// the prefix is optional
	c.Assert(json.Unmarshal([]byte(`{"ciphertext":"0102ff","proof":"ab"}`), decoded), qt.IsNil)
	c.Assert(decoded, qt.DeepEquals, cp)

	c.Assert(json.Unmarshal([]byte(`{"ciphertext":"zz"}`), decoded), qt.Not(qt.IsNil))
}

func TestHexStringToHexBytes(t *testing.T) {
	c := qt.New(t)

	b, err := HexStringToHexBytes(" 0xCAFE")
	c.Assert(err, qt.IsNil)
	c.Assert(b, qt.DeepEquals, HexBytes{0xca, 0xfe})
	c.Assert(b.String(), qt.Equals, "0xcafe")

	_, err = HexStringToHexBytes("0xnothex")
	c.Assert(err, qt.Not(qt.IsNil))
}

func TestCiphertextProofValid(t *testing.T) {
	c := qt.New(t)

	var nilPair *CiphertextProof
	c.Assert(nilPair.Valid(), qt.IsFalse)
	c.Assert((&CiphertextProof{}).Valid(), qt.IsFalse)
	c.Assert((&CiphertextProof{Ciphertext: HexBytes{1}}).Valid(), qt.IsFalse)
	c.Assert((&CiphertextProof{Proof: HexBytes{1}}).Valid(), qt.IsFalse)
	c.Assert((&CiphertextProof{Ciphertext: HexBytes{1}, Proof: HexBytes{1}}).Valid(), qt.IsTrue)
}

func TestVotingPeriodFromDays(t *testing.T) {
	c := qt.New(t)
	c.Assert(VotingPeriodFromDays(DefaultVotingPeriodDays), qt.Equals, uint64(604800))
	c.Assert(VotingPeriodFromDays(0), qt.Equals, uint64(0))
}
