package main

import (
	"context"
	"errors"
	"math/big"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/quantumauth-io/quantum-go-utils/log"
	"github.com/quantumauth-io/quantum-go-utils/retry"

	clientconfig "github.com/talentlayer/talentlayer-client/cmd/talentlayer-client/config"
	"github.com/talentlayer/talentlayer-client/internal/client"
	"github.com/talentlayer/talentlayer-client/internal/ethwallet/keystore"
	"github.com/talentlayer/talentlayer-client/internal/helpers"
	clienthttp "github.com/talentlayer/talentlayer-client/internal/http"
	"github.com/talentlayer/talentlayer-client/internal/subgraph"
	"github.com/talentlayer/talentlayer-client/internal/users"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	log.Info("talentlayer-client",
		"version", Version,
		"commit", Commit,
		"build_date", BuildDate,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := clientconfig.Load()
	if err != nil {
		log.Fatal("failed to parse config", "error", err)
	}

	clientCfg := cfg.ClientConfig()

	if cfg.KeystoreEnabled() && clientCfg.PrivateKey == "" && clientCfg.Mnemonic == "" {
		key, err := unlockKeystore(cfg.KeystorePath())
		if err != nil {
			log.Error("keystore unlock failed", "error", err)
			return
		}
		clientCfg.PrivateKey = key.PrivKeyHex
		log.Info("keystore unlocked", "address", key.AddressHex)
	}

	if url := cfg.Wallet.ProviderURL; url != "" {
		provider, err := rpc.DialContext(ctx, url)
		if err != nil {
			log.Warn("wallet provider dial failed", "error", err)
		} else {
			defer provider.Close()
			clientCfg.Provider = provider
		}
	}

	chainClient := client.New(ctx, clientCfg, client.WithChains(cfg.Chains))
	defer chainClient.Close()

	probeNode(ctx, chainClient)

	var userSource users.Source
	if url := chainClient.Chain().Subgraph; url != "" {
		sg, err := subgraph.New(url)
		if err != nil {
			log.Warn("subgraph disabled", "error", err)
		} else {
			userSource = sg
		}
	}

	handler := clienthttp.NewHandler(chainClient, userSource, cfg.ClientSettings.PageSize)
	router := clienthttp.NewRouter(handler, cfg.ClientSettings.AllowedOrigins)

	addr := net.JoinHostPort(cfg.ClientSettings.LocalHost, cfg.ClientSettings.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if err := serve(ctx, server, 5*time.Second); err != nil {
		log.Error("HTTP server shutdown failed", "error", err)
		return
	}
	log.Info("HTTP server gracefully stopped")
}

// serve runs server until ctx is done, then shuts it down within grace.
func serve(ctx context.Context, server *http.Server, grace time.Duration) error {
	go func() {
		log.Info("HTTP server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

func unlockKeystore(path string) (*keystore.Key, error) {
	store, err := keystore.NewStore(path)
	if err != nil {
		return nil, err
	}

	pw, err := helpers.PromptPassword("Keystore password: ")
	if err != nil {
		return nil, err
	}
	defer helpers.ZeroBytes(pw)

	// creates a fresh key on first run
	return store.Ensure(pw)
}

// probeNode checks the RPC answers with the expected chain. The client keeps
// working read-only either way; this only surfaces misconfiguration early.
func probeNode(ctx context.Context, c *client.Client) {
	probeCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	rcfg := retry.DefaultConfig()
	rcfg.InitialDelayBeforeRetrying = 500 * time.Millisecond
	rcfg.MaxDelayBeforeRetrying = 5 * time.Second

	res, err := retry.Retry(probeCtx, rcfg,
		func(ctx context.Context) ([]interface{}, error) {
			id, err := c.Ping(ctx)
			return []interface{}{id}, err
		},
		nil,
		"probe rpc chain id")
	if err != nil {
		log.Warn("rpc probe failed", "network", c.Network(), "rpc", c.Chain().RPCName, "error", err)
		return
	}

	if len(res) > 0 {
		if id, ok := res[0].(*big.Int); ok && id != nil {
			log.Info("rpc reachable", "network", c.Network(), "chainId", id.String())
		}
	}
}
