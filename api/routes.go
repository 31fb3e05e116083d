package api

const (
	// PingEndpoint is the endpoint for checking the API status
	PingEndpoint = "/ping"

	// EngineEndpoint returns the name of the engine served by the API
	EngineEndpoint = "/engine"
	// EncryptEndpoint encrypts an integer with the served engine
	EncryptEndpoint = "/engine/encrypt"
	// EncryptBoolEndpoint encrypts a boolean with the served engine
	EncryptBoolEndpoint = "/engine/encrypt/bool"
	// DecryptEndpoint decrypts an integer with the served engine
	DecryptEndpoint = "/engine/decrypt"
	// DecryptBoolEndpoint decrypts a boolean with the served engine
	DecryptBoolEndpoint = "/engine/decrypt/bool"
	// KeysEndpoint generates a new key pair
	KeysEndpoint = "/engine/keys"
	// VerifyEndpoint verifies a ciphertext proof
	VerifyEndpoint = "/engine/verify"

	// TreasuriesEndpoint encrypts a new treasury and packs its creation call
	TreasuriesEndpoint = "/treasuries"
	// BalanceEndpoint decrypts a treasury balance
	BalanceEndpoint = "/treasuries/balance"
	// DepositsEndpoint encrypts a deposit and packs its call
	DepositsEndpoint = "/treasuries/deposits"
	// ProposalsEndpoint encrypts a new proposal and packs its creation call
	ProposalsEndpoint = "/proposals"
	// ExecuteEndpoint packs the execution call of a proposal
	ExecuteEndpoint = "/proposals/execute"
	// VotesEndpoint encrypts a vote and packs its call
	VotesEndpoint = "/votes"
	// ResultsEndpoint decrypts the tallies of a proposal
	ResultsEndpoint = "/votes/results"
)
