// Package poseidon hashes arbitrary length lists of field elements with the
// Poseidon hash, which natively takes at most 16 inputs.
package poseidon

import (
	"fmt"
	"math/big"

	"github.com/iden3/go-iden3-crypto/poseidon"
)

const (
	// ChunkSize is the number of inputs hashed together in a single
	// Poseidon call.
	ChunkSize = 16
	// MaxInputs is the maximum number of inputs accepted by MultiHash, so
	// the chunk hashes fit in a single final call.
	MaxInputs = ChunkSize * ChunkSize
)

// MultiHash hashes up to MaxInputs field elements. Inputs are hashed in
// chunks of ChunkSize and, if there is more than one chunk, the chunk hashes
// are hashed again. Every input must be lower than the BN254 scalar field.
func MultiHash(inputs ...*big.Int) (*big.Int, error) {
	switch {
	case len(inputs) == 0:
		return nil, fmt.Errorf("no inputs provided")
	case len(inputs) > MaxInputs:
		return nil, fmt.Errorf("too many inputs: %d > %d", len(inputs), MaxInputs)
	}
	if len(inputs) <= ChunkSize {
		return poseidon.Hash(inputs)
	}
	hashes := make([]*big.Int, 0, (len(inputs)+ChunkSize-1)/ChunkSize)
	for start := 0; start < len(inputs); start += ChunkSize {
		end := min(start+ChunkSize, len(inputs))
		h, err := poseidon.Hash(inputs[start:end])
		if err != nil {
			return nil, fmt.Errorf("chunk %d: %w", start/ChunkSize, err)
		}
		hashes = append(hashes, h)
	}
	return poseidon.Hash(hashes)
}
