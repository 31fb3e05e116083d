package types

const (
	// DefaultVotingPeriodDays is the voting period proposed when creating a
	// new treasury.
	DefaultVotingPeriodDays = 7
	// DefaultMemberLimit is the member limit proposed when creating a new
	// treasury.
	DefaultMemberLimit = 10

	secondsPerDay = 24 * 60 * 60
)

// VotingPeriodFromDays converts a voting period in days to seconds, the unit
// the treasury contract expects.
func VotingPeriodFromDays(days uint64) uint64 {
	return days * secondsPerDay
}

// TreasuryCreationRecord contains the plain values of a new treasury. Every
// field is encrypted independently.
type TreasuryCreationRecord struct {
	InitialDeposit uint64 `json:"initialDeposit"`
	Threshold      uint64 `json:"threshold"`
	VotingPeriod   uint64 `json:"votingPeriod"`
	MemberLimit    uint64 `json:"memberLimit"`
}

// EncryptedTreasury is the encrypted counterpart of TreasuryCreationRecord.
type EncryptedTreasury struct {
	EncryptedDeposit      *CiphertextProof `json:"encryptedDeposit"`
	EncryptedThreshold    *CiphertextProof `json:"encryptedThreshold"`
	EncryptedVotingPeriod *CiphertextProof `json:"encryptedVotingPeriod"`
	EncryptedMemberLimit  *CiphertextProof `json:"encryptedMemberLimit"`
}

// ProposalRecord contains the plain values of a governance proposal.
type ProposalRecord struct {
	Amount     uint64 `json:"amount"`
	TreasuryID uint64 `json:"treasuryId"`
}

// EncryptedProposal is the encrypted counterpart of ProposalRecord.
type EncryptedProposal struct {
	EncryptedAmount     *CiphertextProof `json:"encryptedAmount"`
	EncryptedTreasuryID *CiphertextProof `json:"encryptedTreasuryId"`
}

// VoteRecord contains a single yes/no vote.
type VoteRecord struct {
	Vote bool `json:"vote"`
}

// EncryptedVote is the encrypted counterpart of VoteRecord.
type EncryptedVote struct {
	EncryptedVote *CiphertextProof `json:"encryptedVote"`
}

// VoteResults contains the decrypted tallies of a proposal.
type VoteResults struct {
	YesVotes uint64 `json:"yesVotes"`
	NoVotes  uint64 `json:"noVotes"`
}
