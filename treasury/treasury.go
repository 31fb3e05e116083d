// Package treasury maps treasury, proposal and vote records onto batches of
// encryption client calls. Fields of a record are encrypted concurrently and
// the result is assembled once every field is done.
package treasury

import (
	"context"
	"errors"

	"github.com/vocdoni/arcane-treasury/fhe"
	"github.com/vocdoni/arcane-treasury/types"
	"golang.org/x/sync/errgroup"
)

// ErrNilRecord is returned when a nil record is given for encryption.
var ErrNilRecord = errors.New("nil record")

// Encryptor is the domain encryption layer. It holds no state besides the
// encryption client, which is shared by concurrent calls.
type Encryptor struct {
	client *fhe.Client
}

// New returns an Encryptor over the given client. If client is nil the
// process wide client is used.
func New(client *fhe.Client) *Encryptor {
	if client == nil {
		client = fhe.Default()
	}
	return &Encryptor{client: client}
}

// Client returns the encryption client used by the Encryptor.
func (e *Encryptor) Client() *fhe.Client {
	return e.client
}

// EncryptTreasuryData encrypts the four fields of a treasury creation record.
func (e *Encryptor) EncryptTreasuryData(ctx context.Context, rec *types.TreasuryCreationRecord) (*types.EncryptedTreasury, error) {
	if rec == nil {
		return nil, ErrNilRecord
	}
	out := &types.EncryptedTreasury{}
	var g errgroup.Group
	g.Go(func() error {
		out.EncryptedDeposit = e.client.EncryptNumber(ctx, rec.InitialDeposit)
		return nil
	})
	g.Go(func() error {
		out.EncryptedThreshold = e.client.EncryptNumber(ctx, rec.Threshold)
		return nil
	})
	g.Go(func() error {
		out.EncryptedVotingPeriod = e.client.EncryptNumber(ctx, rec.VotingPeriod)
		return nil
	})
	g.Go(func() error {
		out.EncryptedMemberLimit = e.client.EncryptNumber(ctx, rec.MemberLimit)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// EncryptProposalData encrypts the amount and the treasury id of a proposal.
func (e *Encryptor) EncryptProposalData(ctx context.Context, rec *types.ProposalRecord) (*types.EncryptedProposal, error) {
	if rec == nil {
		return nil, ErrNilRecord
	}
	out := &types.EncryptedProposal{}
	var g errgroup.Group
	g.Go(func() error {
		out.EncryptedAmount = e.client.EncryptNumber(ctx, rec.Amount)
		return nil
	})
	g.Go(func() error {
		out.EncryptedTreasuryID = e.client.EncryptNumber(ctx, rec.TreasuryID)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// EncryptVoteData encrypts a single vote.
func (e *Encryptor) EncryptVoteData(ctx context.Context, vote bool) (*types.EncryptedVote, error) {
	return &types.EncryptedVote{
		EncryptedVote: e.client.EncryptBoolean(ctx, vote),
	}, nil
}

// DecryptTreasuryBalance decrypts an encrypted balance. Like every client
// decryption, it returns 0 when the ciphertext cannot be decrypted.
func (e *Encryptor) DecryptTreasuryBalance(ctx context.Context, ciphertext, proof types.HexBytes) (uint64, error) {
	return e.client.DecryptNumber(ctx, ciphertext, proof), nil
}

// DecryptVoteResults decrypts the yes and no tallies of a proposal.
func (e *Encryptor) DecryptVoteResults(ctx context.Context,
	yesCiphertext, yesProof, noCiphertext, noProof types.HexBytes,
) (*types.VoteResults, error) {
	results := &types.VoteResults{}
	var g errgroup.Group
	g.Go(func() error {
		results.YesVotes = e.client.DecryptNumber(ctx, yesCiphertext, yesProof)
		return nil
	})
	g.Go(func() error {
		results.NoVotes = e.client.DecryptNumber(ctx, noCiphertext, noProof)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
