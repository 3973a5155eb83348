package chains

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

type AllChainsConfig struct {
	Networks      map[string]NetworkConfig `json:"networks" yaml:"networks"`
	ActiveNetwork string                   `json:"activeNetwork" yaml:"activeNetwork" mapstructure:"activeNetwork"`
	ActiveRPC     string                   `json:"activeRPC" yaml:"activeRPC" mapstructure:"activeRPC"`
}

// NetworkConfig describes a network, its RPC endpoints and the protocol
// contracts deployed on it.
type NetworkConfig struct {
	Name      string                    `json:"name" yaml:"name"`
	ChainID   uint64                    `json:"chainId" yaml:"chainId" mapstructure:"chainId"`
	RPCs      []RPC                     `json:"rpcs" yaml:"rpcs"`
	Subgraph  string                    `json:"subgraph" yaml:"subgraph"`
	Explorer  string                    `json:"explorer" yaml:"explorer"`
	Contracts map[string]ContractConfig `json:"contracts" yaml:"contracts"`
}

type RPC struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

// ContractConfig points at a deployed contract. ABI is the name of one of the
// ABIs embedded in package contracts.
type ContractConfig struct {
	Address string `json:"address" yaml:"address"`
	ABI     string `json:"abi" yaml:"abi"`
}

// Contract is a resolved address/ABI pair.
type Contract struct {
	Name    string
	Address common.Address
	ABI     abi.ABI
}

type ResolvedChain struct {
	NetworkName string
	ChainID     uint64
	Subgraph    string
	Explorer    string

	RPCName string
	URL     string
}

// Normalize lower-cases network keys and fills in NetworkConfig.Name.
func (mc *AllChainsConfig) Normalize() {
	if mc == nil {
		return
	}
	out := make(map[string]NetworkConfig, len(mc.Networks))
	for name, n := range mc.Networks {
		key := normalizeNetworkKey(name)
		n.Name = key
		out[key] = n
	}
	mc.Networks = out
	mc.ActiveNetwork = normalizeNetworkKey(mc.ActiveNetwork)
}

func normalizeNetworkKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
