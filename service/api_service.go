package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/vocdoni/arcane-treasury/api"
	"github.com/vocdoni/arcane-treasury/engine"
	"github.com/vocdoni/arcane-treasury/fhe"
	"github.com/vocdoni/arcane-treasury/log"
	"github.com/vocdoni/arcane-treasury/web3"
)

const shutdownTimeout = 10 * time.Second

// APIService represents a service that manages the HTTP API server.
type APIService struct {
	provider  *engine.Provider
	client    *fhe.Client
	contracts *web3.Contracts
	host      string
	port      int

	mu     sync.Mutex
	server *http.Server
	addr   net.Addr
}

// NewAPI creates a new APIService instance. The client and the contracts
// are optional, see api.APIConfig.
func NewAPI(provider *engine.Provider, client *fhe.Client, contracts *web3.Contracts, host string, port int) *APIService {
	return &APIService{
		provider:  provider,
		client:    client,
		contracts: contracts,
		host:      host,
		port:      port,
	}
}

// Start begins the API server. It returns an error if the service
// is already running or if it fails to start.
func (as *APIService) Start(ctx context.Context) error {
	as.mu.Lock()
	defer as.mu.Unlock()

	if as.server != nil {
		return fmt.Errorf("service already running")
	}

	a, err := api.New(&api.APIConfig{
		Provider:  as.provider,
		Client:    as.client,
		Contracts: as.contracts,
	})
	if err != nil {
		return fmt.Errorf("failed to start API server: %w", err)
	}
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", net.JoinHostPort(as.host, strconv.Itoa(as.port)))
	if err != nil {
		return fmt.Errorf("failed to start API server: %w", err)
	}
	as.addr = ln.Addr()
	as.server = &http.Server{
		Handler:           a.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	server := as.server
	go func() {
		log.Infow("starting API server", "address", ln.Addr().String())
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorw(err, "API server stopped")
		}
	}()
	return nil
}

// Stop halts the API server, waiting for in-flight requests.
func (as *APIService) Stop() {
	as.mu.Lock()
	defer as.mu.Unlock()

	if as.server == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := as.server.Shutdown(ctx); err != nil {
		log.Warnw("API server shutdown", "error", err)
	}
	as.server = nil
	as.addr = nil
}

// HostPort returns the host and port of the API server. While running, the
// port is the one actually bound, which differs from the configured one
// when it was 0.
func (as *APIService) HostPort() (string, int) {
	as.mu.Lock()
	defer as.mu.Unlock()
	if tcp, ok := as.addr.(*net.TCPAddr); ok {
		return as.host, tcp.Port
	}
	return as.host, as.port
}
