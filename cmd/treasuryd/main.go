package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/pflag"
	"github.com/vocdoni/arcane-treasury/api/client"
	"github.com/vocdoni/arcane-treasury/engine"
	"github.com/vocdoni/arcane-treasury/fhe"
	"github.com/vocdoni/arcane-treasury/log"
	"github.com/vocdoni/arcane-treasury/service"
	"github.com/vocdoni/arcane-treasury/web3"
)

func main() {
	conf, err := loadConfig(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log.Init(conf.LogLevel, conf.LogOutput, nil)

	// resolve the engine before serving, so the selection shows up at boot
	provider := engine.NewProvider(engineBuilder(conf))
	log.Infow("encryption engine ready", "engine", provider.Engine().Name(), "fallback", provider.IsFallback())
	fheClient := fhe.Init(provider)

	var contracts *web3.Contracts
	if conf.Contract != "" {
		if !common.IsHexAddress(conf.Contract) {
			log.Fatalf("invalid contract address %q", conf.Contract)
		}
		if contracts, err = web3.NewContracts(common.HexToAddress(conf.Contract), fheClient); err != nil {
			log.Fatal(err)
		}
		log.Infow("packing treasury contract calls", "address", contracts.Address().Hex())
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	srv := service.NewAPI(provider, fheClient, contracts, conf.Host, conf.Port)
	if err := srv.Start(ctx); err != nil {
		log.Fatal(err)
	}
	host, port := srv.HostPort()
	log.Infow("treasury API ready", "host", host, "port", port)

	<-ctx.Done()
	log.Info("shutting down")
	srv.Stop()
}

// engineBuilder returns the builder of the configured engine; nil means no
// real engine, so the provider uses the fallback.
func engineBuilder(conf *Config) engine.Builder {
	switch conf.Engine {
	case engineElGamal:
		return func() (engine.Engine, error) {
			if conf.EnginePrivKey == "" {
				e, err := engine.NewElGamal(nil, conf.EngineMaxBits)
				if err == nil {
					log.Warnw("no ElGamal private key given, generated an ephemeral one",
						"publicKey", e.PublicKey().String())
				}
				return e, err
			}
			return engine.NewElGamalFromHex(conf.EnginePrivKey, conf.EngineMaxBits)
		}
	case engineRemote:
		return func() (engine.Engine, error) {
			return client.NewRemoteEngine(conf.EngineURL)
		}
	default:
		return nil
	}
}
