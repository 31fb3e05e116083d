package elgamal

import (
	"fmt"
	"math/big"
)

const (
	// DefaultMessageBits is the width of the messages supported by default,
	// matching 32 bit unsigned integers.
	DefaultMessageBits = 32
	// MaxMessageBits limits the size of the precomputed tables.
	MaxMessageBits = 40
)

// DecryptionTable solves M = x*G for x in [0, 2^bits) using the baby-step
// giant-step algorithm. The baby steps are precomputed once, so the same
// table can be shared across decryptions and goroutines (it is read-only
// after construction).
type DecryptionTable struct {
	bits      uint
	steps     uint64
	babySteps map[[32]byte]uint64
	giantStep *Point
}

// NewDecryptionTable precomputes the baby steps for messages of up to bits
// width.
func NewDecryptionTable(bits uint) (*DecryptionTable, error) {
	if bits == 0 || bits > MaxMessageBits {
		return nil, fmt.Errorf("message bits must be in [1, %d], got %d", MaxMessageBits, bits)
	}
	steps := uint64(1) << ((bits + 1) / 2)

	babySteps := make(map[[32]byte]uint64, steps)
	g := Generator()
	babyStep := Identity()
	for j := uint64(0); j < steps; j++ {
		babySteps[babyStep.Bytes()] = j
		babyStep.Add(babyStep, g)
	}

	// giantStep = -steps*G
	giantStep := scalarBaseMult(new(big.Int).SetUint64(steps))
	giantStep.Neg(giantStep)

	return &DecryptionTable{
		bits:      bits,
		steps:     steps,
		babySteps: babySteps,
		giantStep: giantStep,
	}, nil
}

// MaxMessage returns the largest message the table can recover.
func (t *DecryptionTable) MaxMessage() uint64 {
	return uint64(1)<<t.bits - 1
}

// DiscreteLog returns x such that M = x*G and x <= MaxMessage().
func (t *DecryptionTable) DiscreteLog(M *Point) (uint64, error) {
	giant := new(Point).Set(M)
	for i := uint64(0); i <= t.steps; i++ {
		if j, found := t.babySteps[giant.Bytes()]; found {
			x := i*t.steps + j
			if x > t.MaxMessage() {
				break
			}
			return x, nil
		}
		giant.Add(giant, t.giantStep)
	}
	return 0, fmt.Errorf("message out of range [0, %d]", t.MaxMessage())
}
