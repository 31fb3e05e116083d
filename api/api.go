// Package api serves the encryption engine and the treasury operations over
// HTTP.
//
// The /engine endpoints run the resolved engine with its private key and have
// no authentication: any caller that reaches them can decrypt any ciphertext
// produced under that key and mint new key pairs. CORS allows every origin.
// Bind the server to a loopback or otherwise trusted interface.
package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/vocdoni/arcane-treasury/engine"
	"github.com/vocdoni/arcane-treasury/fhe"
	"github.com/vocdoni/arcane-treasury/log"
	"github.com/vocdoni/arcane-treasury/treasury"
	"github.com/vocdoni/arcane-treasury/web3"
)

// APIConfig type represents the configuration for the API HTTP server.
type APIConfig struct {
	// Provider resolves the engine served on the /engine endpoints and used by
	// the encryption client of the domain endpoints.
	Provider *engine.Provider
	// Client is the encryption client of the domain endpoints. If nil, a
	// client over Provider is used.
	Client *fhe.Client
	// Contracts packs the treasury contract calls. Optional: without it the
	// write endpoints only return the encrypted records.
	Contracts *web3.Contracts
}

// API type represents the API HTTP server.
type API struct {
	router    *chi.Mux
	engine    engine.Engine
	treasury  *treasury.Encryptor
	contracts *web3.Contracts
}

// New creates a new API instance with the given configuration and
// initializes its router.
func New(conf *APIConfig) (*API, error) {
	if conf == nil {
		return nil, fmt.Errorf("missing API configuration")
	}
	if conf.Provider == nil {
		return nil, fmt.Errorf("missing engine provider")
	}
	client := conf.Client
	if client == nil {
		client = fhe.New(conf.Provider)
	}
	a := &API{
		engine:    conf.Provider.Engine(),
		treasury:  treasury.New(client),
		contracts: conf.Contracts,
	}

	// Initialize router
	a.initRouter()
	return a, nil
}

// Router returns the chi router, which serves the whole API.
func (a *API) Router() *chi.Mux {
	return a.router
}

// registerHandlers registers all the API handlers.
func (a *API) registerHandlers() {
	log.Infow("register handler", "endpoint", PingEndpoint, "method", "GET")
	a.router.Get(PingEndpoint, func(w http.ResponseWriter, r *http.Request) {
		httpWriteOK(w)
	})
	// engine
	log.Infow("register handler", "endpoint", EngineEndpoint, "method", "GET")
	a.router.Get(EngineEndpoint, a.engineInfo)
	log.Infow("register handler", "endpoint", EncryptEndpoint, "method", "POST")
	a.router.Post(EncryptEndpoint, a.encrypt)
	log.Infow("register handler", "endpoint", EncryptBoolEndpoint, "method", "POST")
	a.router.Post(EncryptBoolEndpoint, a.encryptBool)
	log.Infow("register handler", "endpoint", DecryptEndpoint, "method", "POST")
	a.router.Post(DecryptEndpoint, a.decrypt)
	log.Infow("register handler", "endpoint", DecryptBoolEndpoint, "method", "POST")
	a.router.Post(DecryptBoolEndpoint, a.decryptBool)
	log.Infow("register handler", "endpoint", KeysEndpoint, "method", "POST")
	a.router.Post(KeysEndpoint, a.generateKeyPair)
	log.Infow("register handler", "endpoint", VerifyEndpoint, "method", "POST")
	a.router.Post(VerifyEndpoint, a.verifyProof)
	// treasury domain
	log.Infow("register handler", "endpoint", TreasuriesEndpoint, "method", "POST")
	a.router.Post(TreasuriesEndpoint, a.newTreasury)
	log.Infow("register handler", "endpoint", BalanceEndpoint, "method", "POST")
	a.router.Post(BalanceEndpoint, a.treasuryBalance)
	log.Infow("register handler", "endpoint", DepositsEndpoint, "method", "POST")
	a.router.Post(DepositsEndpoint, a.newDeposit)
	log.Infow("register handler", "endpoint", ProposalsEndpoint, "method", "POST")
	a.router.Post(ProposalsEndpoint, a.newProposal)
	log.Infow("register handler", "endpoint", ExecuteEndpoint, "method", "POST")
	a.router.Post(ExecuteEndpoint, a.executeProposal)
	log.Infow("register handler", "endpoint", VotesEndpoint, "method", "POST")
	a.router.Post(VotesEndpoint, a.newVote)
	log.Infow("register handler", "endpoint", ResultsEndpoint, "method", "POST")
	a.router.Post(ResultsEndpoint, a.voteResults)
}

// initRouter creates the router with all the routes and middleware.
func (a *API) initRouter() {
	// Create the router with a basic middleware stack
	a.router = chi.NewRouter()
	a.router.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}).Handler)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Throttle(100))
	a.router.Use(middleware.ThrottleBacklog(5000, 40000, 60*time.Second))
	a.router.Use(middleware.Timeout(45 * time.Second))
	a.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		ErrResourceNotFound.With(r.URL.Path).Write(w)
	})

	// Register the API handlers
	a.registerHandlers()
}
