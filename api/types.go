package api

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/vocdoni/arcane-treasury/types"
	"github.com/vocdoni/arcane-treasury/web3"
)

// EngineInfo describes the engine served by the API.
type EngineInfo struct {
	Name string `json:"name"`
}

// NumberValue is a plain integer, both as request and as response.
type NumberValue struct {
	Value uint64 `json:"value"`
}

// BoolValue is a plain boolean, both as request and as response.
type BoolValue struct {
	Value bool `json:"value"`
}

// ProofStatus is the response of a proof verification.
type ProofStatus struct {
	Valid bool `json:"valid"`
}

// NewTreasury is the request to create a treasury. Zero values of the voting
// period and the member limit are replaced by their defaults; the voting
// period can also be given in days.
type NewTreasury struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	EncryptionLevel  string `json:"encryptionLevel,omitempty"`
	InitialDeposit   uint64 `json:"initialDeposit"`
	Threshold        uint64 `json:"threshold"`
	VotingPeriod     uint64 `json:"votingPeriod,omitempty"`
	VotingPeriodDays uint64 `json:"votingPeriodDays,omitempty"`
	MemberLimit      uint64 `json:"memberLimit,omitempty"`
}

// Record returns the plain treasury record of the request, with the
// defaults applied.
func (t *NewTreasury) Record() *types.TreasuryCreationRecord {
	rec := &types.TreasuryCreationRecord{
		InitialDeposit: t.InitialDeposit,
		Threshold:      t.Threshold,
		VotingPeriod:   t.VotingPeriod,
		MemberLimit:    t.MemberLimit,
	}
	if rec.VotingPeriod == 0 {
		days := t.VotingPeriodDays
		if days == 0 {
			days = types.DefaultVotingPeriodDays
		}
		rec.VotingPeriod = types.VotingPeriodFromDays(days)
	}
	if rec.MemberLimit == 0 {
		rec.MemberLimit = types.DefaultMemberLimit
	}
	return rec
}

// TreasuryCreated is the response to a treasury creation.
type TreasuryCreated struct {
	Encrypted *types.EncryptedTreasury `json:"encrypted"`
	Call      *web3.Call               `json:"call,omitempty"`
}

// NewDeposit is the request to deposit funds in a treasury.
type NewDeposit struct {
	TreasuryID uint64 `json:"treasuryId"`
	Amount     uint64 `json:"amount"`
}

// DepositCreated is the response to a deposit.
type DepositCreated struct {
	Encrypted *types.CiphertextProof `json:"encrypted"`
	Call      *web3.Call             `json:"call,omitempty"`
}

// Balance is the decrypted balance of a treasury.
type Balance struct {
	Balance uint64 `json:"balance"`
}

// NewProposal is the request to create a governance proposal. A zero voting
// duration is replaced by the default voting period.
type NewProposal struct {
	TreasuryID     uint64         `json:"treasuryId"`
	Description    string         `json:"description"`
	Amount         uint64         `json:"amount"`
	Recipient      common.Address `json:"recipient"`
	VotingDuration uint64         `json:"votingDuration,omitempty"`
}

// ProposalCreated is the response to a proposal creation.
type ProposalCreated struct {
	Encrypted *types.EncryptedProposal `json:"encrypted"`
	Call      *web3.Call               `json:"call,omitempty"`
}

// ProposalExecution is the request to execute a passed proposal.
type ProposalExecution struct {
	ProposalID uint64 `json:"proposalId"`
}

// NewVote is the request to cast a vote on a proposal.
type NewVote struct {
	types.VoteRecord
	ProposalID uint64 `json:"proposalId"`
}

// VoteCreated is the response to a vote.
type VoteCreated struct {
	Encrypted *types.EncryptedVote `json:"encrypted"`
	Call      *web3.Call           `json:"call,omitempty"`
}

// EncryptedTally holds the encrypted yes and no tallies of a proposal.
type EncryptedTally struct {
	Yes *types.CiphertextProof `json:"yes"`
	No  *types.CiphertextProof `json:"no"`
}
