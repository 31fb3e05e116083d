package types

import (
	"fmt"
	"math/big"

	"github.com/fxamacker/cbor/v2"
)

// BigInt is a big.Int wrapper which marshals JSON to a string representation
// of the big number. Note that a nil pointer value marshals as the empty
// string.
type BigInt big.Int

// NewInt returns a new BigInt set to v.
func NewInt(v uint64) *BigInt {
	return (*BigInt)(new(big.Int).SetUint64(v))
}

func (i *BigInt) MarshalText() ([]byte, error) {
	return i.MathBigInt().MarshalText()
}

func (i *BigInt) UnmarshalText(data []byte) error {
	if i == nil {
		return fmt.Errorf("cannot unmarshal into nil BigInt")
	}
	return i.MathBigInt().UnmarshalText(data)
}

// MarshalCBOR encodes the number as a CBOR bignum.
func (i *BigInt) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(i.MathBigInt())
}

func (i *BigInt) UnmarshalCBOR(data []byte) error {
	bi := new(big.Int)
	if err := cbor.Unmarshal(data, bi); err != nil {
		return err
	}
	*i = BigInt(*bi)
	return nil
}

// MathBigInt converts i to a *math/big.Int.
func (i *BigInt) MathBigInt() *big.Int {
	return (*big.Int)(i)
}

// String returns the decimal representation of the number.
func (i *BigInt) String() string {
	return i.MathBigInt().String()
}

// Uint64 returns the number as uint64, truncated if it does not fit.
func (i *BigInt) Uint64() uint64 {
	return i.MathBigInt().Uint64()
}
