package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	utilsconfig "github.com/quantumauth-io/quantum-go-utils/config"

	"github.com/talentlayer/talentlayer-client/internal/chains"
	"github.com/talentlayer/talentlayer-client/internal/client"
	"github.com/talentlayer/talentlayer-client/internal/constants"
)

const keystoreDefault = "default"

type ClientSettings struct {
	LocalHost      string
	Port           string
	PageSize       int
	AllowedOrigins []string
}

type WalletSettings struct {
	PrivateKey   string
	Mnemonic     string
	RPCURL       string
	ProviderURL  string
	Network      string
	PreferredRPC string
	// Keystore is a path to an encrypted key file, or "default" for the
	// per-user config location.
	Keystore string
}

type Config struct {
	ClientSettings *ClientSettings
	Wallet         *WalletSettings
	Chains         *chains.AllChainsConfig `mapstructure:"Chains"`
}

func Load() (*Config, error) {
	home, _ := os.UserHomeDir()
	paths := []string{
		filepath.Join(home, ".config", constants.AppName),
		filepath.Join(home, "config"),
		".",
	}

	cfg, err := utilsconfig.ParseConfigWithEmbedded[Config](paths, EmbeddedConfigYAML)
	if err != nil {
		return nil, err
	}
	if err := cfg.Finalize(os.Getenv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Finalize fills defaults, applies TL_* environment overrides and merges the
// configured chains over the built-in table.
func (c *Config) Finalize(getenv func(string) string) error {
	if c.ClientSettings == nil {
		c.ClientSettings = &ClientSettings{}
	}
	if c.ClientSettings.LocalHost == "" {
		c.ClientSettings.LocalHost = "127.0.0.1"
	}
	if c.ClientSettings.Port == "" {
		c.ClientSettings.Port = "8090"
	}
	if c.Wallet == nil {
		c.Wallet = &WalletSettings{}
	}

	c.ApplyEnv(getenv)

	merged := MergeChains(chains.DefaultConfig(), c.Chains)
	network := strings.ToLower(strings.TrimSpace(c.Wallet.Network))
	if network == "" {
		network = merged.ActiveNetwork
	}
	if _, ok := merged.Networks[network]; !ok {
		return errors.Newf("unknown network %q", network)
	}
	merged.ActiveNetwork = network
	c.Wallet.Network = network
	c.Chains = merged
	return nil
}

func (c *Config) ApplyEnv(getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	set(&c.Wallet.PrivateKey, "TL_PRIVATE_KEY")
	set(&c.Wallet.Mnemonic, "TL_MNEMONIC")
	set(&c.Wallet.RPCURL, "TL_RPC_URL")
	set(&c.Wallet.ProviderURL, "TL_PROVIDER_URL")
	set(&c.Wallet.Network, "TL_NETWORK")
	set(&c.Wallet.Keystore, "TL_KEYSTORE")
}

// KeystorePath returns "" when no keystore is configured.
func (c *Config) KeystorePath() string {
	p := strings.TrimSpace(c.Wallet.Keystore)
	if strings.EqualFold(p, keystoreDefault) {
		return ""
	}
	return p
}

func (c *Config) KeystoreEnabled() bool {
	return strings.TrimSpace(c.Wallet.Keystore) != ""
}

func (c *Config) ClientConfig() client.Config {
	return client.Config{
		PrivateKey:   c.Wallet.PrivateKey,
		Mnemonic:     c.Wallet.Mnemonic,
		RPCURL:       c.Wallet.RPCURL,
		Network:      c.Wallet.Network,
		PreferredRPC: c.Wallet.PreferredRPC,
	}
}

// MergeChains overlays non-empty fields of override onto base. base is
// modified and returned.
func MergeChains(base, override *chains.AllChainsConfig) *chains.AllChainsConfig {
	if override == nil {
		return base
	}
	override.Normalize()

	if override.ActiveNetwork != "" {
		base.ActiveNetwork = override.ActiveNetwork
	}
	if override.ActiveRPC != "" {
		base.ActiveRPC = override.ActiveRPC
	}

	for name, o := range override.Networks {
		n := base.Networks[name]
		n.Name = name
		if o.ChainID != 0 {
			n.ChainID = o.ChainID
		}
		if len(o.RPCs) > 0 {
			n.RPCs = o.RPCs
		}
		if o.Subgraph != "" {
			n.Subgraph = o.Subgraph
		}
		if o.Explorer != "" {
			n.Explorer = o.Explorer
		}
		if len(o.Contracts) > 0 {
			contracts := make(map[string]chains.ContractConfig, len(n.Contracts)+len(o.Contracts))
			for k, v := range n.Contracts {
				contracts[k] = v
			}
			for k, v := range o.Contracts {
				contracts[canonicalContractName(k, n.Contracts)] = v
			}
			n.Contracts = contracts
		}
		base.Networks[name] = n
	}
	return base
}

// canonicalContractName maps a case-folded key back onto an existing name.
func canonicalContractName(name string, existing map[string]chains.ContractConfig) string {
	for k := range existing {
		if strings.EqualFold(k, name) {
			return k
		}
	}
	return name
}
