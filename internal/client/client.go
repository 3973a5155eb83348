// Package client wraps an EVM RPC transport and a signing account behind
// name-based contract reads and writes for the TalentLayer protocol.
package client

import (
	"context"
	"math/big"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/quantumauth-io/quantum-go-utils/log"

	"github.com/talentlayer/talentlayer-client/internal/chains"
	"github.com/talentlayer/talentlayer-client/internal/constants"
	"github.com/talentlayer/talentlayer-client/internal/ethwallet"
)

var (
	ErrWalletNotInitialised = errors.New("wallet client not initialised properly")
	ErrInvalidContract      = errors.New("invalid contract name passed")
	ErrUnknownFunction      = errors.New("unknown contract function")
	ErrNoTransport          = errors.New("no rpc transport available")
)

// Backend is the RPC surface the client reads through and broadcasts on.
// *ethclient.Client satisfies it.
type Backend interface {
	ethwallet.Backend
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	Close()
}

// Dialer opens a Backend for an RPC URL.
type Dialer func(ctx context.Context, url string) (Backend, error)

func dialEthClient(ctx context.Context, url string) (Backend, error) {
	ec, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return nil, err
	}
	return ec, nil
}

// Config selects the account and transport. It is consumed once by New.
type Config struct {
	PrivateKey string
	Mnemonic   string
	// RPCURL replaces the network's default RPC for every transport; it never
	// changes which account is used.
	RPCURL string
	// Provider stands in for a browser-injected wallet.
	Provider ethwallet.Provider

	Network      string
	PreferredRPC string
}

type options struct {
	chains   *chains.AllChainsConfig
	registry chains.Registry
	dial     Dialer
}

type Option func(*options)

// WithChains replaces the built-in chain configuration.
func WithChains(cfg *chains.AllChainsConfig) Option {
	return func(o *options) { o.chains = cfg }
}

// WithRegistry replaces the registry derived from the chain configuration.
func WithRegistry(reg chains.Registry) Option {
	return func(o *options) { o.registry = reg }
}

func WithDialer(d Dialer) Option {
	return func(o *options) { o.dial = d }
}

type Client struct {
	network  string
	chain    chains.ResolvedChain
	registry chains.Registry

	reader  Backend
	account ethwallet.Account
	source  AccountSource
}

type emptyRegistry struct{}

func (emptyRegistry) Contract(network, name string) (chains.Contract, error) {
	return chains.Contract{}, errors.Wrapf(chains.ErrUnknownContract, "%q on %q", name, network)
}

// New never fails. It first binds a read-only backend on the network's default
// RPC, then upgrades transport and account from cfg. Anything that cannot be
// set up is logged and the client stays in its read-only default state.
func New(ctx context.Context, cfg Config, opts ...Option) *Client {
	o := options{dial: dialEthClient}
	for _, opt := range opts {
		opt(&o)
	}
	if o.chains == nil {
		o.chains = chains.DefaultConfig()
	}

	c := &Client{
		network:  pickNetwork(cfg.Network, o.chains.ActiveNetwork),
		registry: o.registry,
		source:   SourceNone,
	}

	if c.registry == nil {
		reg, err := chains.NewRegistry(o.chains)
		if err != nil {
			log.Error("chain registry unavailable", "error", err)
			c.registry = emptyRegistry{}
		} else {
			c.registry = reg
		}
	}

	// default read-only transport
	if rc, err := chains.Resolve(o.chains, c.network, cfg.PreferredRPC, ""); err != nil {
		log.Error("default network unavailable", "network", c.network, "error", err)
	} else {
		c.chain = rc
		if b, err := o.dial(ctx, rc.URL); err != nil {
			log.Error("default rpc dial failed", "network", c.network, "rpc", rc.RPCName, "error", err)
		} else {
			c.reader = b
		}
	}

	c.setup(ctx, cfg, o)

	log.Info("chain client ready",
		"network", c.network,
		"rpc", c.chain.RPCName,
		"account", string(c.source),
		"readOnly", c.account == nil,
	)
	return c
}

// setup upgrades transport and account from cfg.
func (c *Client) setup(ctx context.Context, cfg Config, o options) {
	if strings.TrimSpace(cfg.RPCURL) != "" {
		rc, err := chains.Resolve(o.chains, c.network, cfg.PreferredRPC, cfg.RPCURL)
		if err != nil {
			// unknown network: keep the override URL anyway
			rc = chains.ResolvedChain{NetworkName: c.network, RPCName: "custom", URL: strings.TrimSpace(cfg.RPCURL)}
		}
		b, err := o.dial(ctx, rc.URL)
		if err != nil {
			log.Warn("custom rpc dial failed, keeping default transport", "error", err)
		} else {
			if c.reader != nil {
				c.reader.Close()
			}
			c.reader = b
			c.chain.RPCName = rc.RPCName
			c.chain.URL = rc.URL
		}
	}

	acc, source, err := resolveAccount(cfg)
	if err != nil {
		log.Error("account setup failed, client is read-only", "source", string(source), "error", err)
		return
	}
	c.account = acc
	c.source = source
}

func pickNetwork(candidates ...string) string {
	for _, n := range candidates {
		if n = strings.ToLower(strings.TrimSpace(n)); n != "" {
			return n
		}
	}
	return constants.DefaultNetwork
}

func (c *Client) Network() string { return c.network }

func (c *Client) Source() AccountSource { return c.source }

func (c *Client) Chain() chains.ResolvedChain { return c.chain }

// ChainID prefers the configured chain id and falls back to the node.
func (c *Client) ChainID(ctx context.Context) (*big.Int, error) {
	if c.chain.ChainID != 0 {
		return new(big.Int).SetUint64(c.chain.ChainID), nil
	}
	if c.reader == nil {
		return nil, ErrNoTransport
	}
	return c.reader.ChainID(ctx)
}

// Ping asks the node for its chain id and checks it against the configured
// network.
func (c *Client) Ping(ctx context.Context) (*big.Int, error) {
	if c.reader == nil {
		return nil, ErrNoTransport
	}
	id, err := c.reader.ChainID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "node chain id")
	}
	if c.chain.ChainID != 0 && id.Uint64() != c.chain.ChainID {
		return id, errors.Newf("rpc serves chain %s, network %q expects %d", id, c.network, c.chain.ChainID)
	}
	return id, nil
}

// Address returns the active signing address.
func (c *Client) Address(ctx context.Context) (common.Address, error) {
	if c.account == nil {
		return common.Address{}, ErrWalletNotInitialised
	}
	addrs, err := c.account.Addresses(ctx)
	if err != nil {
		return common.Address{}, err
	}
	if len(addrs) == 0 || addrs[0] == (common.Address{}) {
		return common.Address{}, ErrWalletNotInitialised
	}
	return addrs[0], nil
}

// Balance returns the native balance of the active account, in wei.
func (c *Client) Balance(ctx context.Context) (*big.Int, error) {
	addr, err := c.Address(ctx)
	if err != nil {
		return nil, err
	}
	if c.reader == nil {
		return nil, ErrNoTransport
	}
	wei, err := c.reader.BalanceAt(ctx, addr, nil)
	if err != nil {
		return nil, errors.Wrap(err, "native balance")
	}
	return wei, nil
}

// contract looks the name up on every call; nothing is memoized.
func (c *Client) contract(name string) (chains.Contract, error) {
	ct, err := c.registry.Contract(c.network, name)
	if err != nil {
		return chains.Contract{}, errors.Mark(errors.Wrapf(err, "contract %q", name), ErrInvalidContract)
	}
	return ct, nil
}

// Method returns the ABI method so callers can coerce untyped arguments.
func (c *Client) Method(contractName, functionName string) (abi.Method, error) {
	ct, err := c.contract(contractName)
	if err != nil {
		return abi.Method{}, err
	}
	m, ok := ct.ABI.Methods[functionName]
	if !ok {
		return abi.Method{}, errors.Wrapf(ErrUnknownFunction, "%s.%s", contractName, functionName)
	}
	return m, nil
}

// Close releases the read transport.
func (c *Client) Close() {
	if c.reader != nil {
		c.reader.Close()
	}
}
