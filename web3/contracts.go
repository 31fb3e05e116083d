// Package web3 builds the calldata of the treasury contract methods from
// encrypted records. It only packs calls, sending them is up to the wallet
// of the caller.
package web3

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/vocdoni/arcane-treasury/log"
	"github.com/vocdoni/arcane-treasury/types"
)

// ErrProofInvalid is returned when a ciphertext of a call does not come with
// a valid proof. Decryption sentinels and fallback blobs are caught here.
var ErrProofInvalid = errors.New("invalid ciphertext proof")

// TreasuryABI is the ABI of the treasury contract methods packed by this
// package.
const TreasuryABI = `[
  {"type":"function","name":"createTreasury","stateMutability":"nonpayable","inputs":[
    {"name":"_name","type":"string"},
    {"name":"_description","type":"string"},
    {"name":"_encryptionLevel","type":"string"},
    {"name":"_initialDeposit","type":"bytes"},
    {"name":"_initialDepositProof","type":"bytes"},
    {"name":"_threshold","type":"bytes"},
    {"name":"_thresholdProof","type":"bytes"},
    {"name":"_votingPeriod","type":"bytes"},
    {"name":"_votingPeriodProof","type":"bytes"},
    {"name":"_memberLimit","type":"bytes"},
    {"name":"_memberLimitProof","type":"bytes"}],
   "outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"depositFunds","stateMutability":"nonpayable","inputs":[
    {"name":"_treasuryId","type":"uint256"},
    {"name":"_amount","type":"bytes"},
    {"name":"_proof","type":"bytes"}],
   "outputs":[]},
  {"type":"function","name":"createProposal","stateMutability":"nonpayable","inputs":[
    {"name":"_treasuryId","type":"uint256"},
    {"name":"_description","type":"string"},
    {"name":"_amount","type":"bytes"},
    {"name":"_amountProof","type":"bytes"},
    {"name":"_encryptedTreasuryId","type":"bytes"},
    {"name":"_treasuryIdProof","type":"bytes"},
    {"name":"_recipient","type":"address"},
    {"name":"_votingDuration","type":"uint256"}],
   "outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"voteOnProposal","stateMutability":"nonpayable","inputs":[
    {"name":"_proposalId","type":"uint256"},
    {"name":"_vote","type":"bytes"},
    {"name":"_proof","type":"bytes"}],
   "outputs":[]},
  {"type":"function","name":"executeProposal","stateMutability":"nonpayable","inputs":[
    {"name":"_proposalId","type":"uint256"}],
   "outputs":[]}
]`

// Method names of the treasury contract.
const (
	MethodCreateTreasury  = "createTreasury"
	MethodDepositFunds    = "depositFunds"
	MethodCreateProposal  = "createProposal"
	MethodVoteOnProposal  = "voteOnProposal"
	MethodExecuteProposal = "executeProposal"
)

// Verifier checks ciphertext proofs. *fhe.Client satisfies it.
type Verifier interface {
	VerifyProof(ctx context.Context, ciphertext, proof types.HexBytes) bool
}

// Call is a packed contract call, ready to be signed and sent.
type Call struct {
	To     common.Address `json:"to"`
	Method string         `json:"method"`
	Data   types.HexBytes `json:"data"`
}

// Contracts packs calls to a deployed treasury contract.
type Contracts struct {
	address  common.Address
	abi      abi.ABI
	verifier Verifier
}

// NewContracts returns a Contracts instance for the treasury contract at
// address. Every ciphertext is checked with verifier before packing.
func NewContracts(address common.Address, verifier Verifier) (*Contracts, error) {
	if verifier == nil {
		return nil, fmt.Errorf("nil proof verifier")
	}
	parsed, err := abi.JSON(strings.NewReader(TreasuryABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse treasury ABI: %w", err)
	}
	return &Contracts{
		address:  address,
		abi:      parsed,
		verifier: verifier,
	}, nil
}

// Address returns the address of the treasury contract.
func (c *Contracts) Address() common.Address {
	return c.address
}

// ABI returns the parsed treasury ABI.
func (c *Contracts) ABI() abi.ABI {
	return c.abi
}

// encryptedArg is a named ciphertext argument of a contract call.
type encryptedArg struct {
	name string
	pair *types.CiphertextProof
}

// verify checks the arguments in call order, naming the first one that fails.
func (c *Contracts) verify(ctx context.Context, method string, args ...encryptedArg) error {
	for _, arg := range args {
		cp := arg.pair
		if !cp.Valid() || !c.verifier.VerifyProof(ctx, cp.Ciphertext, cp.Proof) {
			log.Warnw("refusing to pack call with invalid proof", "method", method, "field", arg.name)
			return fmt.Errorf("%w: %s", ErrProofInvalid, arg.name)
		}
	}
	return nil
}

func (c *Contracts) pack(method string, args ...any) (*Call, error) {
	data, err := c.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s: %w", method, err)
	}
	log.Debugw("packed treasury call", "method", method, "size", len(data))
	return &Call{
		To:     c.address,
		Method: method,
		Data:   data,
	}, nil
}
