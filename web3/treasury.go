package web3

import (
	"context"
	"fmt"
	"math/big"

	"github.com/vocdoni/arcane-treasury/types"
)

// DefaultEncryptionLevel is the encryption level sent to createTreasury when
// none is given.
const DefaultEncryptionLevel = "standard"

// TreasuryInfo holds the public fields of a new treasury.
type TreasuryInfo struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	EncryptionLevel string `json:"encryptionLevel,omitempty"`
}

// CreateTreasury packs a createTreasury call with the encrypted treasury
// parameters.
func (c *Contracts) CreateTreasury(ctx context.Context, info *TreasuryInfo, enc *types.EncryptedTreasury) (*Call, error) {
	if info == nil || enc == nil {
		return nil, fmt.Errorf("missing treasury data")
	}
	if err := c.verify(ctx, MethodCreateTreasury,
		encryptedArg{"initialDeposit", enc.EncryptedDeposit},
		encryptedArg{"threshold", enc.EncryptedThreshold},
		encryptedArg{"votingPeriod", enc.EncryptedVotingPeriod},
		encryptedArg{"memberLimit", enc.EncryptedMemberLimit},
	); err != nil {
		return nil, err
	}
	level := info.EncryptionLevel
	if level == "" {
		level = DefaultEncryptionLevel
	}
	return c.pack(MethodCreateTreasury,
		info.Name,
		info.Description,
		level,
		[]byte(enc.EncryptedDeposit.Ciphertext), []byte(enc.EncryptedDeposit.Proof),
		[]byte(enc.EncryptedThreshold.Ciphertext), []byte(enc.EncryptedThreshold.Proof),
		[]byte(enc.EncryptedVotingPeriod.Ciphertext), []byte(enc.EncryptedVotingPeriod.Proof),
		[]byte(enc.EncryptedMemberLimit.Ciphertext), []byte(enc.EncryptedMemberLimit.Proof),
	)
}

// DepositFunds packs a depositFunds call adding an encrypted amount to the
// treasury balance.
func (c *Contracts) DepositFunds(ctx context.Context, treasuryID *big.Int, amount *types.CiphertextProof) (*Call, error) {
	if treasuryID == nil {
		return nil, fmt.Errorf("missing treasury id")
	}
	if err := c.verify(ctx, MethodDepositFunds,
		encryptedArg{"amount", amount},
	); err != nil {
		return nil, err
	}
	return c.pack(MethodDepositFunds, treasuryID, []byte(amount.Ciphertext), []byte(amount.Proof))
}
