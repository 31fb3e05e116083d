package web3

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/vocdoni/arcane-treasury/types"
)

// ProposalInfo holds the public fields of a governance proposal.
type ProposalInfo struct {
	TreasuryID     *types.BigInt  `json:"treasuryId"`
	Description    string         `json:"description"`
	Recipient      common.Address `json:"recipient"`
	VotingDuration uint64         `json:"votingDuration"`
}

// CreateProposal packs a createProposal call with the encrypted amount and
// treasury id. A zero voting duration is replaced by the default voting
// period.
func (c *Contracts) CreateProposal(ctx context.Context, info *ProposalInfo, enc *types.EncryptedProposal) (*Call, error) {
	if info == nil || info.TreasuryID == nil || enc == nil {
		return nil, fmt.Errorf("missing proposal data")
	}
	if err := c.verify(ctx, MethodCreateProposal,
		encryptedArg{"amount", enc.EncryptedAmount},
		encryptedArg{"treasuryId", enc.EncryptedTreasuryID},
	); err != nil {
		return nil, err
	}
	duration := info.VotingDuration
	if duration == 0 {
		duration = types.VotingPeriodFromDays(types.DefaultVotingPeriodDays)
	}
	return c.pack(MethodCreateProposal,
		info.TreasuryID.MathBigInt(),
		info.Description,
		[]byte(enc.EncryptedAmount.Ciphertext), []byte(enc.EncryptedAmount.Proof),
		[]byte(enc.EncryptedTreasuryID.Ciphertext), []byte(enc.EncryptedTreasuryID.Proof),
		info.Recipient,
		new(big.Int).SetUint64(duration),
	)
}

// VoteOnProposal packs a voteOnProposal call with an encrypted vote.
func (c *Contracts) VoteOnProposal(ctx context.Context, proposalID *big.Int, vote *types.EncryptedVote) (*Call, error) {
	if proposalID == nil || vote == nil {
		return nil, fmt.Errorf("missing vote data")
	}
	if err := c.verify(ctx, MethodVoteOnProposal,
		encryptedArg{"vote", vote.EncryptedVote},
	); err != nil {
		return nil, err
	}
	return c.pack(MethodVoteOnProposal, proposalID,
		[]byte(vote.EncryptedVote.Ciphertext), []byte(vote.EncryptedVote.Proof))
}

// ExecuteProposal packs an executeProposal call. It carries no ciphertexts.
func (c *Contracts) ExecuteProposal(proposalID *big.Int) (*Call, error) {
	if proposalID == nil {
		return nil, fmt.Errorf("missing proposal id")
	}
	return c.pack(MethodExecuteProposal, proposalID)
}
