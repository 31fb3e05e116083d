package api

import (
	"math/big"
	"net/http"

	"github.com/vocdoni/arcane-treasury/log"
	"github.com/vocdoni/arcane-treasury/types"
	"github.com/vocdoni/arcane-treasury/web3"
)

// newTreasury encrypts the parameters of a new treasury and, if the treasury
// contract is configured, packs its createTreasury call
// POST /treasuries
func (a *API) newTreasury(w http.ResponseWriter, r *http.Request) {
	req := &NewTreasury{}
	if !decodeBody(w, r, req) {
		return
	}
	if req.Name == "" {
		ErrMissingField.With("name").Write(w)
		return
	}
	encrypted, err := a.treasury.EncryptTreasuryData(r.Context(), req.Record())
	if err != nil {
		ErrGenericInternalServerError.WithErr(err).Write(w)
		return
	}
	res := &TreasuryCreated{Encrypted: encrypted}
	if a.contracts != nil {
		res.Call, err = a.contracts.CreateTreasury(r.Context(), &web3.TreasuryInfo{
			Name:            req.Name,
			Description:     req.Description,
			EncryptionLevel: req.EncryptionLevel,
		}, encrypted)
		if err != nil {
			ledgerError(err).Write(w)
			return
		}
	}
	log.Infow("treasury encrypted", "name", req.Name, "packed", res.Call != nil)
	httpWriteJSON(w, res)
}

// treasuryBalance decrypts a treasury balance
// POST /treasuries/balance
func (a *API) treasuryBalance(w http.ResponseWriter, r *http.Request) {
	req := &types.CiphertextProof{}
	if !decodeBody(w, r, req) {
		return
	}
	balance, err := a.treasury.DecryptTreasuryBalance(r.Context(), req.Ciphertext, req.Proof)
	if err != nil {
		ErrGenericInternalServerError.WithErr(err).Write(w)
		return
	}
	httpWriteJSON(w, &Balance{Balance: balance})
}

// newDeposit encrypts a deposit and packs its depositFunds call
// POST /treasuries/deposits
func (a *API) newDeposit(w http.ResponseWriter, r *http.Request) {
	req := &NewDeposit{}
	if !decodeBody(w, r, req) {
		return
	}
	res := &DepositCreated{
		Encrypted: a.treasury.Client().EncryptNumber(r.Context(), req.Amount),
	}
	if a.contracts != nil {
		var err error
		res.Call, err = a.contracts.DepositFunds(r.Context(), new(big.Int).SetUint64(req.TreasuryID), res.Encrypted)
		if err != nil {
			ledgerError(err).Write(w)
			return
		}
	}
	httpWriteJSON(w, res)
}

// newProposal encrypts a new proposal and packs its createProposal call
// POST /proposals
func (a *API) newProposal(w http.ResponseWriter, r *http.Request) {
	req := &NewProposal{}
	if !decodeBody(w, r, req) {
		return
	}
	encrypted, err := a.treasury.EncryptProposalData(r.Context(), &types.ProposalRecord{
		Amount:     req.Amount,
		TreasuryID: req.TreasuryID,
	})
	if err != nil {
		ErrGenericInternalServerError.WithErr(err).Write(w)
		return
	}
	res := &ProposalCreated{Encrypted: encrypted}
	if a.contracts != nil {
		res.Call, err = a.contracts.CreateProposal(r.Context(), &web3.ProposalInfo{
			TreasuryID:     types.NewInt(req.TreasuryID),
			Description:    req.Description,
			Recipient:      req.Recipient,
			VotingDuration: req.VotingDuration,
		}, encrypted)
		if err != nil {
			ledgerError(err).Write(w)
			return
		}
	}
	httpWriteJSON(w, res)
}

// executeProposal packs the executeProposal call of a proposal
// POST /proposals/execute
func (a *API) executeProposal(w http.ResponseWriter, r *http.Request) {
	if a.contracts == nil {
		ErrLedgerUnavailable.Write(w)
		return
	}
	req := &ProposalExecution{}
	if !decodeBody(w, r, req) {
		return
	}
	call, err := a.contracts.ExecuteProposal(new(big.Int).SetUint64(req.ProposalID))
	if err != nil {
		ledgerError(err).Write(w)
		return
	}
	httpWriteJSON(w, call)
}

// newVote encrypts a vote and packs its voteOnProposal call
// POST /votes
func (a *API) newVote(w http.ResponseWriter, r *http.Request) {
	req := &NewVote{}
	if !decodeBody(w, r, req) {
		return
	}
	encrypted, err := a.treasury.EncryptVoteData(r.Context(), req.Vote)
	if err != nil {
		ErrGenericInternalServerError.WithErr(err).Write(w)
		return
	}
	res := &VoteCreated{Encrypted: encrypted}
	if a.contracts != nil {
		res.Call, err = a.contracts.VoteOnProposal(r.Context(), new(big.Int).SetUint64(req.ProposalID), encrypted)
		if err != nil {
			ledgerError(err).Write(w)
			return
		}
	}
	httpWriteJSON(w, res)
}

// voteResults decrypts the yes and no tallies of a proposal
// POST /votes/results
func (a *API) voteResults(w http.ResponseWriter, r *http.Request) {
	req := &EncryptedTally{}
	if !decodeBody(w, r, req) {
		return
	}
	if req.Yes == nil || req.No == nil {
		ErrMissingField.With("yes and no tallies").Write(w)
		return
	}
	results, err := a.treasury.DecryptVoteResults(r.Context(),
		req.Yes.Ciphertext, req.Yes.Proof, req.No.Ciphertext, req.No.Proof)
	if err != nil {
		ErrGenericInternalServerError.WithErr(err).Write(w)
		return
	}
	httpWriteJSON(w, results)
}
