package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	qt "github.com/frankban/quicktest"
	"github.com/vocdoni/arcane-treasury/api"
	"github.com/vocdoni/arcane-treasury/api/client"
	"github.com/vocdoni/arcane-treasury/engine"
	"github.com/vocdoni/arcane-treasury/fhe"
	"github.com/vocdoni/arcane-treasury/types"
	"github.com/vocdoni/arcane-treasury/web3"
)

func hostURL(s *APIService) string {
	host, port := s.HostPort()
	return fmt.Sprintf("http://%s:%d", host, port)
}

// post sends body to the service and decodes a 200 response into out.
func post(c *qt.C, cli *client.HTTPclient, endpoint string, body, out any) int {
	data, status, err := cli.Request(context.Background(), client.HTTPPOST, body, nil, endpoint)
	c.Assert(err, qt.IsNil)
	if status == http.StatusOK && out != nil {
		c.Assert(json.Unmarshal(data, out), qt.IsNil)
	}
	return status
}

func TestIntegration(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()

	// engine daemon, serving a real ElGamal engine
	backend, err := engine.NewElGamal(nil, 0)
	c.Assert(err, qt.IsNil)
	engineSrv := NewAPI(engine.Static(backend), nil, nil, "127.0.0.1", 0)
	c.Assert(engineSrv.Start(ctx), qt.IsNil)
	defer engineSrv.Stop()

	// treasury daemon, using the engine daemon remotely
	remote, err := client.NewRemoteEngine(hostURL(engineSrv))
	c.Assert(err, qt.IsNil)
	provider := engine.Static(remote)
	fheClient := fhe.New(provider)
	contracts, err := web3.NewContracts(common.HexToAddress("0x0a"), fheClient)
	c.Assert(err, qt.IsNil)
	treasurySrv := NewAPI(provider, fheClient, contracts, "127.0.0.1", 0)
	c.Assert(treasurySrv.Start(ctx), qt.IsNil)
	defer treasurySrv.Stop()

	cli, err := client.New(hostURL(treasurySrv))
	c.Assert(err, qt.IsNil)

	c.Run("create treasury", func(c *qt.C) {
		created := &api.TreasuryCreated{}
		c.Assert(post(c, cli, api.TreasuriesEndpoint, &api.NewTreasury{
			Name:             "Development Fund",
			Description:      "Funds for project development",
			InitialDeposit:   10,
			Threshold:        1,
			VotingPeriodDays: 3,
		}, created), qt.Equals, http.StatusOK)
		c.Assert(created.Call.To, qt.Equals, common.HexToAddress("0x0a"))

		// the ciphertexts were produced by the engine daemon
		period := created.Encrypted.EncryptedVotingPeriod
		v, err := backend.Decrypt(ctx, period.Ciphertext, period.Proof)
		c.Assert(err, qt.IsNil)
		c.Assert(v, qt.Equals, types.VotingPeriodFromDays(3))

		balance := &api.Balance{}
		c.Assert(post(c, cli, api.BalanceEndpoint, created.Encrypted.EncryptedDeposit, balance), qt.Equals, http.StatusOK)
		c.Assert(balance.Balance, qt.Equals, uint64(10))
	})

	c.Run("vote and tally", func(c *qt.C) {
		yesTally, err := backend.Encrypt(ctx, 0)
		c.Assert(err, qt.IsNil)
		noTally, err := backend.Encrypt(ctx, 0)
		c.Assert(err, qt.IsNil)
		yes, no := yesTally.Ciphertext, noTally.Ciphertext

		for i, choice := range []bool{true, true, false, true, false} {
			vote := &api.VoteCreated{}
			c.Assert(post(c, cli, api.VotesEndpoint, &api.NewVote{ProposalID: 1, VoteRecord: types.VoteRecord{Vote: choice}}, vote), qt.Equals, http.StatusOK)
			c.Assert(vote.Call.Method, qt.Equals, web3.MethodVoteOnProposal, qt.Commentf("vote %d", i))

			// votes encrypt 1 for yes and 0 for no, so they add up to the
			// yes tally; the no tally gets the complement
			yes, err = backend.AddCiphertexts(yes, vote.Encrypted.EncryptedVote.Ciphertext)
			c.Assert(err, qt.IsNil)
			complement := fheClient.EncryptBoolean(ctx, !choice)
			no, err = backend.AddCiphertexts(no, complement.Ciphertext)
			c.Assert(err, qt.IsNil)
		}

		results := &types.VoteResults{}
		c.Assert(post(c, cli, api.ResultsEndpoint, &api.EncryptedTally{
			Yes: &types.CiphertextProof{Ciphertext: yes},
			No:  &types.CiphertextProof{Ciphertext: no},
		}, results), qt.Equals, http.StatusOK)
		c.Assert(results, qt.DeepEquals, &types.VoteResults{YesVotes: 3, NoVotes: 2})
	})

	c.Run("engine daemon down", func(c *qt.C) {
		engineSrv.Stop()

		// encryption falls back per call, but the fallback output can not be
		// verified, so no calldata is packed
		c.Assert(post(c, cli, api.VotesEndpoint, &api.NewVote{ProposalID: 1, VoteRecord: types.VoteRecord{Vote: true}}, nil),
			qt.Equals, http.StatusBadRequest)
		c.Assert(fheClient.Engine(), qt.Equals, "remote/"+engine.ElGamalName)
	})
}
